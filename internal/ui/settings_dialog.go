package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/modernaudio/converter/internal/config"
)

// Settings dialog size
const (
	SettingsDialogWidth  = 450
	SettingsDialogHeight = 350
)

// SettingsDialog edits the persisted application settings: download
// directory, MP3 bitrate and interface language.
type SettingsDialog struct {
	settings *config.Settings
	window   fyne.Window
	loc      *Localization
	dialog   *dialog.ConfirmDialog

	downloadDirEntry *widget.Entry
	bitrateSelect    *widget.Select
	languageSelect   *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, window fyne.Window, loc *Localization) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		window:   window,
		loc:      loc,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog with current values loaded
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder(sd.loc.T(KeyDownloadFolder))

	browseButton := widget.NewButton(sd.loc.T(KeyBrowse), sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseButton, sd.downloadDirEntry)

	sd.bitrateSelect = widget.NewSelect(config.BitrateOptions, nil)

	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.loc.T(KeyDownloadFolder)),
		downloadDirRow,

		widget.NewLabel(sd.loc.T(KeyBitrateLabel)),
		sd.bitrateSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.loc.T(KeyLanguageLabel)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.T(KeySettings),
		sd.loc.T(KeySave),
		sd.loc.T(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.bitrateSelect.SetSelected(sd.settings.GetAudioBitrate())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave persists the edited settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if sd.downloadDirEntry.Text != "" {
		sd.settings.SetDownloadDirectory(sd.downloadDirEntry.Text)
	}
	if sd.bitrateSelect.Selected != "" {
		sd.settings.SetAudioBitrate(sd.bitrateSelect.Selected)
	}
	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
		sd.loc.SetLanguage(sd.languageSelect.Selected)
	}

	dialog.ShowInformation(sd.loc.T(KeySettings), sd.loc.T(KeySettingsSaved), sd.window)
}
