package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Filename constraints
const (
	MaxFilenameLength = 200

	// InvalidFilenameChars are characters illegal in common filesystem
	// naming rules, replaced during sanitization
	InvalidFilenameChars = `<>:"/\|?*`
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// EnsureDir creates the directory if it doesn't exist
func EnsureDir(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// SanitizeFilename makes a string safe for use as a file name: invalid
// characters become underscores, whitespace runs collapse to one space,
// surrounding spaces and dots are trimmed, and the result is capped at
// MaxFilenameLength characters.
func SanitizeFilename(name string) string {
	for _, ch := range InvalidFilenameChars {
		name = strings.ReplaceAll(name, string(ch), "_")
	}

	name = whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
	name = strings.Trim(name, ".")

	// Cap by rune count so a multibyte character is never split
	if utf8.RuneCountInString(name) > MaxFilenameLength {
		name = string([]rune(name)[:MaxFilenameLength])
	}

	return name
}

// CollisionFreePath returns dir/name+ext, appending a numeric
// disambiguator ("name (1).mp3", "name (2).mp3", ...) until a free name
// is found. The result is deterministic for a given directory state.
func CollisionFreePath(dir, name, ext string) (string, error) {
	candidate := filepath.Join(dir, name+ext)
	for counter := 1; ; counter++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check output path %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", name, counter, ext))
	}
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// FormatFileSize formats a byte count in human readable form
func FormatFileSize(sizeBytes int64) string {
	switch {
	case sizeBytes < 1024:
		return fmt.Sprintf("%d B", sizeBytes)
	case sizeBytes < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(sizeBytes)/1024)
	case sizeBytes < 1024*1024*1024:
		return fmt.Sprintf("%.1f MB", float64(sizeBytes)/(1024*1024))
	default:
		return fmt.Sprintf("%.1f GB", float64(sizeBytes)/(1024*1024*1024))
	}
}
