package convert

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/modernaudio/converter/internal/model"
)

// Scan constants
const (
	// ProbeParallelism bounds concurrent ffprobe calls during a scan
	ProbeParallelism = 4
)

// SupportedExtensions are the input formats accepted for conversion,
// matched case-insensitively
var SupportedExtensions = map[string]bool{
	".m4a":  true,
	".mp4":  true,
	".wav":  true,
	".flac": true,
	".aac":  true,
	".ogg":  true,
	".wma":  true,
}

// IsSupported reports whether a file name has a supported audio extension
func IsSupported(name string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Scan walks sourceDir recursively and returns one FileTask per supported
// audio file. An unreadable source folder is a structural error.
func Scan(sourceDir string) ([]*model.FileTask, error) {
	var tasks []*model.FileTask

	err := filepath.WalkDir(sourceDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !IsSupported(entry.Name()) {
			return nil
		}

		task := &model.FileTask{
			Source:  path,
			Outcome: model.FileOutcomePending,
		}
		if info, err := entry.Info(); err == nil {
			task.Size = info.Size()
		}

		tasks = append(tasks, task)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan source folder %s: %w", sourceDir, err)
	}

	return tasks, nil
}

// ProbeDurations fills in task durations using the transcoder's probe, a
// few files at a time. Probe failures leave the duration at zero; the scan
// result is for display only.
func ProbeDurations(ctx context.Context, t Transcoder, tasks []*model.FileTask) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(ProbeParallelism)

	for _, task := range tasks {
		group.Go(func() error {
			if seconds, err := t.Probe(ctx, task.Source); err == nil {
				task.Seconds = seconds
			}
			return nil
		})
	}

	group.Wait()
}
