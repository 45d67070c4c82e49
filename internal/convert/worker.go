package convert

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync"

	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/model"
	"github.com/modernaudio/converter/internal/platform"
)

// Worker converts every supported audio file under SourceDir into MP3
// files in DestDir. It implements job.Worker.
type Worker struct {
	sourceDir  string
	destDir    string
	transcoder Transcoder

	tasksMutex sync.RWMutex
	tasks      []*model.FileTask
	converted  int
	failed     int
}

// NewWorker creates a conversion worker for one batch
func NewWorker(sourceDir, destDir string, transcoder Transcoder) *Worker {
	return &Worker{
		sourceDir:  sourceDir,
		destDir:    destDir,
		transcoder: transcoder,
	}
}

// Kind identifies this as a conversion job
func (w *Worker) Kind() model.JobKind {
	return model.JobKindConvert
}

// Validate rejects empty folder parameters before the job starts
func (w *Worker) Validate() error {
	if strings.TrimSpace(w.sourceDir) == "" {
		return &job.ValidationError{Field: "source folder", Reason: "must not be empty"}
	}
	if strings.TrimSpace(w.destDir) == "" {
		return &job.ValidationError{Field: "destination folder", Reason: "must not be empty"}
	}
	return nil
}

// Run converts the batch. Per-file failures are recorded and the batch
// continues; only structural errors (unreadable source, un-creatable
// destination) abort the job.
func (w *Worker) Run(ctx context.Context, report job.ReportFunc) error {
	tasks, err := Scan(w.sourceDir)
	if err != nil {
		return err
	}

	if err := platform.EnsureDir(w.destDir); err != nil {
		return fmt.Errorf("failed to create destination folder %s: %w", w.destDir, err)
	}

	w.tasksMutex.Lock()
	w.tasks = tasks
	w.tasksMutex.Unlock()

	total := len(tasks)
	if total == 0 {
		report(100, "no supported audio files found")
		return nil
	}

	for i, task := range tasks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		name := strings.TrimSuffix(task.Filename(), filepath.Ext(task.Filename()))
		report(i*100/total, fmt.Sprintf("Converting: %s", task.Filename()))

		outputPath, err := platform.CollisionFreePath(w.destDir, name, OutputExtensionMP3)
		if err != nil {
			w.markFailed(task, err)
			continue
		}

		w.tasksMutex.Lock()
		task.Target = outputPath
		w.tasksMutex.Unlock()

		err = w.transcoder.Transcode(ctx, task.Source, outputPath, func(fraction float64) {
			report((i*100+int(fraction*100))/total, fmt.Sprintf("Converting: %s", task.Filename()))
		})
		if IsCancellation(err) {
			return err
		}
		if err != nil {
			w.markFailed(task, err)
			report((i+1)*100/total, fmt.Sprintf("Failed: %s", task.Filename()))
			continue
		}

		w.tasksMutex.Lock()
		task.Outcome = model.FileOutcomeDone
		w.converted++
		w.tasksMutex.Unlock()
		report((i+1)*100/total, fmt.Sprintf("Done: %s (%d/%d)", task.Filename(), i+1, total))
	}

	converted, failed := w.Summary()
	report(100, fmt.Sprintf("%d converted, %d failed", converted, failed))
	return nil
}

// markFailed records a per-file failure without aborting the batch
func (w *Worker) markFailed(task *model.FileTask, err error) {
	log.Printf("Conversion of %s failed: %v", task.Source, err)
	w.tasksMutex.Lock()
	task.Outcome = model.FileOutcomeFailed
	task.Reason = err.Error()
	w.failed++
	w.tasksMutex.Unlock()
}

// Tasks returns snapshots of the batch's file tasks
func (w *Worker) Tasks() []model.FileTask {
	w.tasksMutex.RLock()
	defer w.tasksMutex.RUnlock()

	tasks := make([]model.FileTask, 0, len(w.tasks))
	for _, task := range w.tasks {
		tasks = append(tasks, *task)
	}
	return tasks
}

// Summary returns the converted and failed counts so far
func (w *Worker) Summary() (converted, failed int) {
	w.tasksMutex.RLock()
	defer w.tasksMutex.RUnlock()
	return w.converted, w.failed
}
