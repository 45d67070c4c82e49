package download

import (
	"fmt"

	"github.com/bogem/id3v2"

	"github.com/modernaudio/converter/internal/model"
)

// Tag writes ID3v2 title and artist frames to the produced MP3 so music
// players show the video title and channel instead of the file name
func Tag(path string, info *model.VideoInfo) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s for tagging: %w", path, err)
	}
	defer tag.Close()

	if info.Title != "" {
		tag.SetTitle(info.Title)
	}
	if info.Channel != "" {
		tag.SetArtist(info.Channel)
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags for %s: %w", path, err)
	}
	return nil
}
