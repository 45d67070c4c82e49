package download

import (
	"context"

	"github.com/modernaudio/converter/internal/model"
)

// MetadataFetcher retrieves video metadata for the preview phase.
type MetadataFetcher interface {
	FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error)
}

// Downloader fetches a video's audio stream and extracts it as MP3 into
// dir, returning the path of the produced file. onProgress, if non-nil,
// receives the downloaded fraction (0.0 to 1.0).
type Downloader interface {
	DownloadAudio(ctx context.Context, url, dir string, onProgress func(float64)) (string, error)
}

// Client combines both halves of the download backend, the shape the UI
// consumes. *YTDLPClient is the production implementation.
type Client interface {
	MetadataFetcher
	Downloader
}
