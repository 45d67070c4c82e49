package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/modernaudio/converter/internal/config"
	"github.com/modernaudio/converter/internal/download"
	"github.com/modernaudio/converter/internal/job"
)

// RootUI owns the main window content: the convert and download tabs and
// the shared status bar. The UI goroutine is the single consumer of every
// job's event channel; workers never touch widgets directly.
type RootUI struct {
	window   fyne.Window
	app      fyne.App
	settings *config.Settings
	runner   *job.Runner
	loc      *Localization

	statusLabel *widget.Label
}

// NewRootUI creates the main UI and sets the window content
func NewRootUI(window fyne.Window, app fyne.App, settings *config.Settings, runner *job.Runner, client download.Client) *RootUI {
	loc := NewLocalization()
	loc.SetLanguage(settings.GetLanguage())

	root := &RootUI{
		window:      window,
		app:         app,
		settings:    settings,
		runner:      runner,
		loc:         loc,
		statusLabel: widget.NewLabel(loc.T(KeyStatusReady)),
	}

	convertTab := newConvertTab(root)
	downloadTab := newDownloadTab(root, client)

	tabs := container.NewAppTabs(
		container.NewTabItem(loc.T(KeyConvertTab), convertTab.content()),
		container.NewTabItem(loc.T(KeyDownloadTab), downloadTab.content()),
	)
	tabs.SetTabLocation(container.TabLocationTop)

	settingsDialog := NewSettingsDialog(settings, window, loc)
	settingsButton := widget.NewButton(loc.T(KeySettings), settingsDialog.Show)

	statusBar := container.NewBorder(nil, nil, nil, settingsButton, root.statusLabel)
	window.SetContent(container.NewBorder(nil, statusBar, nil, nil, tabs))
	return root
}

// setStatus updates the status bar. Must be called on the UI thread.
func (r *RootUI) setStatus(text string) {
	r.statusLabel.SetText(text)
}
