package config

import (
	"fyne.io/fyne/v2"

	"github.com/modernaudio/converter/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir   = "download_directory"
	KeyAudioBitrate  = "audio_bitrate"
	KeyLanguage      = "app_language"
	KeyLastSourceDir = "last_source_directory"
	KeyLastDestDir   = "last_destination_directory"
)

// Default values
const (
	DefaultAudioBitrate = "192k"
	DefaultLanguage     = "system"
)

// BitrateOptions are the MP3 bitrates offered in settings
var BitrateOptions = []string{"128k", "192k", "256k", "320k"}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetAudioBitrate returns the MP3 encoding bitrate
func (s *Settings) GetAudioBitrate() string {
	bitrate := s.app.Preferences().String(KeyAudioBitrate)
	for _, option := range BitrateOptions {
		if bitrate == option {
			return bitrate
		}
	}
	s.SetAudioBitrate(DefaultAudioBitrate)
	return DefaultAudioBitrate
}

// SetAudioBitrate sets the MP3 encoding bitrate; unknown values fall back
// to the default
func (s *Settings) SetAudioBitrate(bitrate string) {
	valid := false
	for _, option := range BitrateOptions {
		if bitrate == option {
			valid = true
			break
		}
	}
	if !valid {
		bitrate = DefaultAudioBitrate
	}
	s.app.Preferences().SetString(KeyAudioBitrate, bitrate)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastSourceDirectory returns the most recently used convert source folder
func (s *Settings) GetLastSourceDirectory() string {
	return s.app.Preferences().String(KeyLastSourceDir)
}

// SetLastSourceDirectory remembers the convert source folder
func (s *Settings) SetLastSourceDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastSourceDir, dir)
}

// GetLastDestDirectory returns the most recently used convert destination folder
func (s *Settings) GetLastDestDirectory() string {
	return s.app.Preferences().String(KeyLastDestDir)
}

// SetLastDestDirectory remembers the convert destination folder
func (s *Settings) SetLastDestDirectory(dir string) {
	s.app.Preferences().SetString(KeyLastDestDir, dir)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"tr":     "Türkçe",
	}
}
