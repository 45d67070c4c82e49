package download

import (
	"context"
	"errors"
	"testing"

	"github.com/modernaudio/converter/internal/job"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		id    string
		valid bool
	}{
		{"watch URL", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL without www", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"watch URL without scheme", "www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short URL", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"embed URL", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"v URL", "https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"surrounding whitespace", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ", true},
		{"extra query params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42", "dQw4w9WgXcQ", true},
		{"not a url", "not a url", "", false},
		{"empty", "", "", false},
		{"wrong host", "https://example.com/watch?v=dQw4w9WgXcQ", "", false},
		{"short video ID", "https://youtu.be/abc", "", false},
		{"channel URL", "https://www.youtube.com/@somechannel", "", false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, ok := ExtractVideoID(test.url)
			if ok != test.valid {
				t.Fatalf("ExtractVideoID(%q) valid = %v, expected %v", test.url, ok, test.valid)
			}
			if id != test.id {
				t.Errorf("ExtractVideoID(%q) = %q, expected %q", test.url, id, test.id)
			}
		})
	}
}

func TestValidateURL_InvalidURLError(t *testing.T) {
	err := ValidateURL("not a url")

	var invalidErr *job.InvalidURLError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Expected *job.InvalidURLError, got %T: %v", err, err)
	}
}

// Preview on a malformed URL must fail before any network call; the
// yt-dlp binary is never invoked here.
func TestYTDLPClient_FetchInfoRejectsMalformedURL(t *testing.T) {
	client := NewYTDLPClient()

	_, err := client.FetchInfo(context.Background(), "not a url")

	var invalidErr *job.InvalidURLError
	if !errors.As(err, &invalidErr) {
		t.Fatalf("Expected *job.InvalidURLError, got %T: %v", err, err)
	}
}
