package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"cadence/internal/i18n"
)

// Window handles the settings UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	workDur     *widget.Entry
	restDur     *widget.Entry
	description *widget.Entry
	email       *widget.Entry
	project     *widget.Entry
}

// New creates a settings window. onSave receives the validated settings;
// non-positive duration input is ignored rather than applied.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Cadence " + i18n.T("Settings"))

	workDur := widget.NewEntry()
	restDur := widget.NewEntry()
	description := widget.NewEntry()
	email := widget.NewEntry()
	project := widget.NewEntry()

	workDur.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	restDur.SetText(fmt.Sprintf("%d", int(settings.RestDuration.Minutes())))
	description.SetText(settings.Description)
	email.SetText(settings.Email)
	project.SetText(settings.Project)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel(i18n.T("Work")+" duration"), workDur, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel(i18n.T("Rest")+" duration"), restDur, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Tracking", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Session description"), description),
		container.NewHBox(widget.NewLabel("Export email"), email),
		container.NewHBox(widget.NewLabel("Export project"), project),
	)

	saveButton := widget.NewButton(i18n.T("Save"), nil)
	cancelButton := widget.NewButton(i18n.T("Cancel"), nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(420, 360))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	prefs := &Window{
		window:      window,
		settings:    settings,
		onSave:      onSave,
		workDur:     workDur,
		restDur:     restDur,
		description: description,
		email:       email,
		project:     project,
	}

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		window.Hide()
	}

	return prefs
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workDur.SetText(fmt.Sprintf("%d", int(settings.WorkDuration.Minutes())))
	prefs.restDur.SetText(fmt.Sprintf("%d", int(settings.RestDuration.Minutes())))
	prefs.description.SetText(settings.Description)
	prefs.email.SetText(settings.Email)
	prefs.project.SetText(settings.Project)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workDur.Text); ok {
		settings.WorkDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.restDur.Text); ok {
		settings.RestDuration = time.Duration(minutes) * time.Minute
	}
	settings.Description = prefs.description.Text
	settings.Email = prefs.email.Text
	settings.Project = prefs.project.Text

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
