package download

import (
	"regexp"
	"strings"

	"github.com/modernaudio/converter/internal/job"
)

// urlPatterns match the accepted YouTube URL forms; the capture group is
// the 11-character video ID
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/v/([a-zA-Z0-9_-]{11})`),
}

// ValidateURL checks the syntactic form of a YouTube URL without any
// network access. Malformed input yields a *job.InvalidURLError.
func ValidateURL(rawURL string) error {
	if _, ok := ExtractVideoID(rawURL); !ok {
		return &job.InvalidURLError{URL: rawURL}
	}
	return nil
}

// ExtractVideoID returns the 11-character video ID of a YouTube URL
func ExtractVideoID(rawURL string) (string, bool) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", false
	}

	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(rawURL); match != nil {
			return match[1], true
		}
	}
	return "", false
}
