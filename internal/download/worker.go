package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/model"
	"github.com/modernaudio/converter/internal/platform"
)

// Stage progress bands (0 to 100)
const (
	StageMetadata      = 5
	StageDownloadStart = 15
	StageDownloadEnd   = 85
	StageConverting    = 90
)

// FallbackBaseName is used when the sanitized title is empty
const FallbackBaseName = "audio"

// Worker downloads one video's audio and converts it to MP3 in DestDir.
// It implements job.Worker.
type Worker struct {
	url        string
	destDir    string
	fetcher    MetadataFetcher
	downloader Downloader

	taskMutex sync.RWMutex
	task      model.DownloadTask
}

// NewWorker creates a download worker for one video
func NewWorker(url, destDir string, fetcher MetadataFetcher, downloader Downloader) *Worker {
	return &Worker{
		url:        url,
		destDir:    destDir,
		fetcher:    fetcher,
		downloader: downloader,
		task:       model.DownloadTask{URL: url, Outcome: model.FileOutcomePending},
	}
}

// Kind identifies this as a download job
func (w *Worker) Kind() model.JobKind {
	return model.JobKindDownload
}

// Validate rejects a malformed URL or empty destination before the job starts
func (w *Worker) Validate() error {
	if err := ValidateURL(w.url); err != nil {
		return &job.ValidationError{Field: "url", Reason: err.Error()}
	}
	if strings.TrimSpace(w.destDir) == "" {
		return &job.ValidationError{Field: "destination folder", Reason: "must not be empty"}
	}
	return nil
}

// Run performs the download phase: fetch metadata, download and extract
// the audio into a temporary directory, then move the MP3 to its
// collision-free destination name and tag it.
func (w *Worker) Run(ctx context.Context, report job.ReportFunc) error {
	report(StageMetadata, "fetching metadata")

	info, err := w.fetcher.FetchInfo(ctx, w.url)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	w.taskMutex.Lock()
	w.task.Info = info
	w.taskMutex.Unlock()

	if err := platform.EnsureDir(w.destDir); err != nil {
		return fmt.Errorf("failed to create destination folder %s: %w", w.destDir, err)
	}

	tempDir, err := os.MkdirTemp("", "converter-download-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	report(StageDownloadStart, fmt.Sprintf("downloading: %s", info.Title))

	span := StageDownloadEnd - StageDownloadStart
	produced, err := w.downloader.DownloadAudio(ctx, w.url, tempDir, func(fraction float64) {
		report(StageDownloadStart+int(fraction*float64(span)), fmt.Sprintf("downloading: %s", info.Title))
	})
	if err != nil {
		// A cancelled download is not a failure; the task stays Pending
		if !errors.Is(err, context.Canceled) {
			w.markFailed(err)
		}
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report(StageConverting, "converting")

	name := platform.SanitizeFilename(info.Title)
	if name == "" {
		name = info.ID
	}
	if name == "" {
		name = FallbackBaseName
	}

	outputPath, err := platform.CollisionFreePath(w.destDir, name, OutputExtensionMP3)
	if err != nil {
		w.markFailed(err)
		return err
	}

	if err := moveFile(produced, outputPath); err != nil {
		err = fmt.Errorf("failed to move output to %s: %w", outputPath, err)
		w.markFailed(err)
		return err
	}

	// Tagging is best-effort; an untagged file is still a success
	if err := Tag(outputPath, info); err != nil {
		log.Printf("Tagging %s failed: %v", outputPath, err)
	}

	w.taskMutex.Lock()
	w.task.OutputPath = outputPath
	w.task.Outcome = model.FileOutcomeDone
	w.taskMutex.Unlock()

	report(100, fmt.Sprintf("saved: %s", filepath.Base(outputPath)))
	return nil
}

// Task returns a snapshot of the download state
func (w *Worker) Task() model.DownloadTask {
	w.taskMutex.RLock()
	defer w.taskMutex.RUnlock()
	return w.task
}

// markFailed records the failure reason on the task
func (w *Worker) markFailed(err error) {
	w.taskMutex.Lock()
	w.task.Outcome = model.FileOutcomeFailed
	w.task.Reason = err.Error()
	w.taskMutex.Unlock()
}

// moveFile renames src to dst, falling back to copy-and-remove across
// filesystems (temp dir and destination may be on different mounts)
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}

	return os.Remove(src)
}
