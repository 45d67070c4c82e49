package download

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/model"
)

// yt-dlp invocation constants
const (
	DefaultFetchTimeout = 60 * time.Second

	ProgressInterval = 500 * time.Millisecond

	// AudioQualityVBR is the libmp3lame VBR level passed to yt-dlp's
	// audio extraction postprocessor
	AudioQualityVBR = "2"

	OutputTemplate     = "%(id)s.%(ext)s"
	OutputExtensionMP3 = ".mp3"
)

// YTDLPClient fetches metadata and audio via the yt-dlp tool. It
// implements both MetadataFetcher and Downloader.
type YTDLPClient struct {
	timeout time.Duration
}

// NewYTDLPClient creates a new yt-dlp backed client
func NewYTDLPClient() *YTDLPClient {
	return &YTDLPClient{timeout: DefaultFetchTimeout}
}

// SetTimeout sets the timeout for metadata fetches
func (c *YTDLPClient) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// FetchInfo retrieves title, channel, duration and view count for a video.
// Malformed URLs fail before any network call.
func (c *YTDLPClient) FetchInfo(ctx context.Context, rawURL string) (*model.VideoInfo, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	dl := ytdlp.New().
		NoPlaylist().
		SkipDownload().
		DumpSingleJSON()

	result, err := dl.Run(ctx, rawURL)
	if err != nil {
		return nil, &job.FetchError{URL: rawURL, Err: err}
	}

	infos, err := result.GetExtractedInfo()
	if err != nil || len(infos) == 0 {
		if err == nil {
			err = fmt.Errorf("no video info in yt-dlp output")
		}
		return nil, &job.FetchError{URL: rawURL, Err: err}
	}

	entry := infos[0]
	info := &model.VideoInfo{ID: entry.ID}
	if entry.Title != nil {
		info.Title = *entry.Title
	}
	if entry.Channel != nil {
		info.Channel = *entry.Channel
	} else if entry.Uploader != nil {
		info.Channel = *entry.Uploader
	}
	if entry.Duration != nil {
		info.Seconds = int(*entry.Duration)
	}
	if entry.ViewCount != nil {
		info.Views = int64(*entry.ViewCount)
	}

	return info, nil
}

// DownloadAudio downloads the best audio stream and extracts it to MP3 in
// dir, reporting byte progress through onProgress
func (c *YTDLPClient) DownloadAudio(ctx context.Context, rawURL, dir string, onProgress func(float64)) (string, error) {
	dl := ytdlp.New().
		NoPlaylist().
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(AudioQualityVBR).
		Output(filepath.Join(dir, OutputTemplate))

	if onProgress != nil {
		dl.ProgressFunc(ProgressInterval, func(update ytdlp.ProgressUpdate) {
			if update.TotalBytes > 0 {
				onProgress(float64(update.DownloadedBytes) / float64(update.TotalBytes))
			}
		})
	}

	if _, err := dl.Run(ctx, rawURL); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &job.DownloadError{URL: rawURL, Err: err}
	}

	produced, err := findProducedMP3(dir)
	if err != nil {
		return "", &job.ConversionError{Path: rawURL, Err: err}
	}
	return produced, nil
}

// findProducedMP3 locates the extracted MP3 in a download directory
func findProducedMP3(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), OutputExtensionMP3) {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no MP3 produced in %s", dir)
}
