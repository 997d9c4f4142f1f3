// Package ui builds the main Cadence window: two tappable unit cards, the
// pause/reset controls and the session history list. It holds no timer or
// ledger logic; all state arrives through snapshots and update calls.
package ui

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"cadence/internal/core/engine"
	"cadence/internal/core/ledger"
	"cadence/internal/core/model"
	"cadence/internal/i18n"
)

// Callbacks defines the actions the window hands back to the application.
type Callbacks struct {
	OnActivate    func(model.UnitID)
	OnTogglePause func()
	OnReset       func()
	OnExport      func()
	OnClear       func()
	OnSettings    func()
	Sessions      func() []model.Session
}

// Window is the main application window.
type Window struct {
	window      fyne.Window
	callbacks   Callbacks
	unitButtons map[model.UnitID]*widget.Button
	remaining   map[model.UnitID]*widget.Label
	pauseButton *widget.Button
	resetButton *widget.Button
	sessionList *widget.List
}

// New builds the main window from the initial unit snapshots.
func New(app fyne.App, units []engine.UnitSnapshot, callbacks Callbacks) *Window {
	window := app.NewWindow("Cadence")

	win := &Window{
		window:      window,
		callbacks:   callbacks,
		unitButtons: make(map[model.UnitID]*widget.Button),
		remaining:   make(map[model.UnitID]*widget.Label),
	}

	cards := make([]fyne.CanvasObject, 0, len(units))
	for _, unit := range units {
		cards = append(cards, win.buildUnitCard(unit))
	}

	win.pauseButton = widget.NewButton(i18n.T("Pause"), func() {
		if callbacks.OnTogglePause != nil {
			callbacks.OnTogglePause()
		}
	})
	win.pauseButton.Disable()

	win.resetButton = widget.NewButton(i18n.T("Reset"), func() {
		if callbacks.OnReset != nil {
			callbacks.OnReset()
		}
	})

	settingsButton := widget.NewButton(i18n.T("Settings"), func() {
		if callbacks.OnSettings != nil {
			callbacks.OnSettings()
		}
	})

	win.sessionList = widget.NewList(
		func() int {
			return len(win.sessions())
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("")
		},
		func(index widget.ListItemID, object fyne.CanvasObject) {
			sessions := win.sessions()
			if index < 0 || index >= len(sessions) {
				return
			}
			session := sessions[index]
			object.(*widget.Label).SetText(fmt.Sprintf("%s  %s  %s",
				ledger.FormatDate(session.StartedAt),
				ledger.FormatDuration(session.DurationSeconds),
				session.Description,
			))
		},
	)

	exportButton := widget.NewButton(i18n.T("Export CSV"), func() {
		if callbacks.OnExport != nil {
			callbacks.OnExport()
		}
	})
	clearButton := widget.NewButton(i18n.T("Clear history"), func() {
		win.confirmClear()
	})

	controls := container.NewHBox(win.pauseButton, win.resetButton, settingsButton)
	historyHeader := container.NewHBox(
		widget.NewLabelWithStyle(i18n.T("Sessions"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		exportButton,
		clearButton,
	)

	top := container.NewVBox(
		container.NewGridWithColumns(len(cards), cards...),
		controls,
		historyHeader,
	)
	window.SetContent(container.NewBorder(top, nil, nil, nil, win.sessionList))
	window.Resize(fyne.NewSize(520, 560))

	return win
}

func (win *Window) buildUnitCard(unit engine.UnitSnapshot) fyne.CanvasObject {
	id := unit.ID
	button := widget.NewButton(i18n.T(unit.Label), func() {
		if win.callbacks.OnActivate != nil {
			win.callbacks.OnActivate(id)
		}
	})
	remaining := widget.NewLabelWithStyle(ledger.FormatClock(unit.Remaining), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})

	win.unitButtons[id] = button
	win.remaining[id] = remaining

	return container.NewVBox(button, remaining)
}

// Show displays the main window.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// Native returns the underlying fyne window for app wiring.
func (win *Window) Native() fyne.Window {
	return win.window
}

// SetRemaining updates a unit's countdown display.
func (win *Window) SetRemaining(id model.UnitID, remaining time.Duration) {
	label, ok := win.remaining[id]
	if !ok {
		return
	}
	fyne.Do(func() {
		label.SetText(ledger.FormatClock(remaining))
	})
}

// SetActive updates a unit's visual active state.
func (win *Window) SetActive(id model.UnitID, active bool) {
	button, ok := win.unitButtons[id]
	if !ok {
		return
	}
	fyne.Do(func() {
		if active {
			button.Importance = widget.HighImportance
		} else {
			button.Importance = widget.MediumImportance
		}
		button.Refresh()
	})
}

// SetRunState adjusts the pause button for the new engine state.
func (win *Window) SetRunState(state engine.RunState) {
	fyne.Do(func() {
		switch state {
		case engine.StateRunning:
			win.pauseButton.SetText(i18n.T("Pause"))
			win.pauseButton.Enable()
		case engine.StatePaused:
			win.pauseButton.SetText(i18n.T("Resume"))
			win.pauseButton.Enable()
		case engine.StateStopped:
			win.pauseButton.SetText(i18n.T("Pause"))
			win.pauseButton.Disable()
		}
	})
}

// RefreshSessions redraws the history list.
func (win *Window) RefreshSessions() {
	fyne.Do(func() {
		win.sessionList.Refresh()
	})
}

// ShowInfo displays a plain information dialog.
func (win *Window) ShowInfo(message string) {
	fyne.Do(func() {
		dialog.ShowInformation("Cadence", message, win.window)
	})
}

func (win *Window) confirmClear() {
	dialog.ShowConfirm(
		i18n.T("Clear history"),
		i18n.T("Clear all completed sessions? This cannot be undone."),
		func(confirmed bool) {
			if confirmed && win.callbacks.OnClear != nil {
				win.callbacks.OnClear()
			}
		},
		win.window,
	)
}

func (win *Window) sessions() []model.Session {
	if win.callbacks.Sessions == nil {
		return nil
	}
	return win.callbacks.Sessions()
}
