package main

import (
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/rs/zerolog"

	"cadence/internal/core/engine"
	"cadence/internal/core/ledger"
	"cadence/internal/core/model"
	"cadence/internal/i18n"
	"cadence/internal/platform"
	"cadence/internal/sound"
	"cadence/internal/storage"
	"cadence/internal/ui"
	"cadence/internal/ui/preferences"
	"cadence/internal/ui/tray"
)

const appName = "Cadence"

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Error().Err(err).Msg("single instance")
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logger.Warn().Err(err).Msg("settings unavailable, using defaults")
	}

	var store ledger.Store
	if ledgerPath, pathErr := storage.LedgerPath(appName); pathErr != nil {
		logger.Warn().Err(pathErr).Msg("session history will not be persisted")
	} else {
		store = storage.NewLedgerStore(ledgerPath)
	}
	led := ledger.New(store, logger.With().Str("component", "ledger").Logger())

	recorder := ledger.NewSessionRecorder(
		led,
		settings.EngineConfig().Units,
		func() string { return settings.Description },
		logger.With().Str("component", "recorder").Logger(),
	)
	eng := engine.New(settings.EngineConfig(), recorder, logger.With().Str("component", "engine").Logger())

	fyneApp := app.NewWithID("com.cadence.app")
	chime := sound.NewChime(logger.With().Str("component", "sound").Logger())

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, updated); err != nil {
			logger.Warn().Err(err).Msg("settings not saved")
		}
		for _, unitConfig := range updated.EngineConfig().Units {
			if err := eng.SetUnitDuration(unitConfig.ID, unitConfig.Duration); err != nil {
				logger.Warn().Err(err).Str("unit", string(unitConfig.ID)).Msg("duration not applied")
			}
		}
	})

	var window *ui.Window
	window = ui.New(fyneApp, eng.Units(), ui.Callbacks{
		OnActivate: func(id model.UnitID) {
			if err := eng.Activate(id); err != nil {
				logger.Warn().Err(err).Str("unit", string(id)).Msg("activate rejected")
			}
		},
		OnTogglePause: eng.TogglePause,
		OnReset:       eng.Reset,
		OnExport: func() {
			exportSessions(window, led, ledger.ExportMeta{Email: settings.Email, Project: settings.Project}, logger)
		},
		OnClear:    led.Clear,
		OnSettings: prefsWindow.Show,
		Sessions:   led.Sessions,
	})
	led.SetOnChange(window.RefreshSessions)

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        window.Show,
			OnTogglePause: eng.TogglePause,
			OnReset:       eng.Reset,
			OnQuit: func() {
				eng.Stop()
				fyneApp.Quit()
			},
		})
		window.Native().SetCloseIntercept(window.Native().Hide)
	} else {
		logger.Debug().Msg("system tray unsupported on this platform")
	}

	events := eng.Subscribe(64)
	go func() {
		var lastTrayStatus time.Time
		for event := range events {
			switch event.Type {
			case engine.EventRemaining:
				window.SetRemaining(event.Unit, event.Remaining)
				if trayManager != nil && time.Since(lastTrayStatus) >= time.Second {
					lastTrayStatus = time.Now()
					status := string(event.Unit) + " " + ledger.FormatClock(event.Remaining)
					fyne.Do(func() {
						trayManager.SetStatus(status)
					})
				}
			case engine.EventActiveChange:
				window.SetActive(event.Unit, event.Active)
			case engine.EventRunState:
				window.SetRunState(event.State)
				if trayManager != nil {
					paused := event.State == engine.StatePaused
					fyne.Do(func() {
						trayManager.SetPaused(paused)
					})
				}
			case engine.EventTimeout:
				chime.Play()
			}
		}
	}()

	window.Show()
	fyneApp.Run()
	eng.Stop()
}

func exportSessions(window *ui.Window, led *ledger.Ledger, meta ledger.ExportMeta, logger zerolog.Logger) {
	csvText, ok := led.ExportCSV(meta)
	if !ok {
		window.ShowInfo(i18n.T("No completed sessions to export."))
		return
	}
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn().Err(err).Msg("export failed")
		window.ShowInfo("Export failed: " + err.Error())
		return
	}
	path, err := storage.WriteExport(home, csvText, time.Now())
	if err != nil {
		logger.Warn().Err(err).Msg("export failed")
		window.ShowInfo("Export failed: " + err.Error())
		return
	}
	logger.Info().Str("path", path).Int("sessions", len(led.Sessions())).Msg("sessions exported")
	window.ShowInfo(i18n.T("Exported to") + " " + path)
}
