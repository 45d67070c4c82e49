package job

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/modernaudio/converter/internal/model"
)

// Event channel and ID constants
const (
	// EventBufferSize is the per-job event channel capacity. Non-terminal
	// events are dropped when the consumer falls this far behind; the
	// terminal event is always delivered.
	EventBufferSize = 128

	JobIDPrefix = "job-"
)

// ReportFunc relays a progress value (0 to 100) and a human-readable
// message from a worker to the job's event stream.
type ReportFunc func(progress int, message string)

// Worker performs the actual work of one job on a background goroutine.
type Worker interface {
	// Kind identifies the type of job this worker performs
	Kind() model.JobKind

	// Validate checks parameters synchronously before the job starts.
	// A non-nil result fails the submit call immediately.
	Validate() error

	// Run executes the work, reporting progress through report. It must
	// return promptly once ctx is cancelled, returning an error that
	// wraps ctx.Err().
	Run(ctx context.Context, report ReportFunc) error
}

// jobState holds one job's mutable state. Snapshot fields are guarded by
// the runner mutex; seq is touched only by the worker goroutine.
type jobState struct {
	job    model.Job
	cancel context.CancelFunc
	events chan model.ProgressEvent
	seq    uint64
}

// Runner executes jobs on dedicated goroutines and relays ordered progress
// events to the interactive thread. There is no cap on concurrently active
// jobs: they are user-initiated and small in number.
type Runner struct {
	jobs      map[string]*jobState
	jobsMutex sync.RWMutex
}

// NewRunner creates a new job runner
func NewRunner() *Runner {
	return &Runner{
		jobs: make(map[string]*jobState),
	}
}

// Handle is the interactive surface's view of a submitted job
type Handle struct {
	id     string
	runner *Runner
	events <-chan model.ProgressEvent
	cancel context.CancelFunc
}

// ID returns the job identifier
func (h *Handle) ID() string {
	return h.id
}

// Events returns the job's ordered event stream. The channel is closed
// after the terminal event.
func (h *Handle) Events() <-chan model.ProgressEvent {
	return h.events
}

// Cancel requests cooperative cancellation. The worker honors it at the
// next per-item boundary; the job then terminates as Cancelled.
func (h *Handle) Cancel() {
	h.cancel()
}

// Snapshot returns the latest observed state of the job
func (h *Handle) Snapshot() (model.Job, bool) {
	return h.runner.Job(h.id)
}

// Submit validates the worker's parameters and, if they are acceptable,
// starts the job on a dedicated goroutine. Invalid parameters fail here
// with a *ValidationError and never surface asynchronously.
func (r *Runner) Submit(w Worker) (*Handle, error) {
	if err := w.Validate(); err != nil {
		var ve *ValidationError
		if !errors.As(err, &ve) {
			err = &ValidationError{Field: "parameters", Reason: err.Error()}
		}
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	st := &jobState{
		job: model.Job{
			ID:        generateJobID(),
			Kind:      w.Kind(),
			Status:    model.JobStatusPending,
			StartedAt: time.Now(),
		},
		cancel: cancel,
		events: make(chan model.ProgressEvent, EventBufferSize),
	}

	r.jobsMutex.Lock()
	r.jobs[st.job.ID] = st
	r.jobsMutex.Unlock()

	go r.run(ctx, st, w)

	return &Handle{
		id:     st.job.ID,
		runner: r,
		events: st.events,
		cancel: cancel,
	}, nil
}

// Job returns a snapshot of a job by ID
func (r *Runner) Job(id string) (model.Job, bool) {
	r.jobsMutex.RLock()
	defer r.jobsMutex.RUnlock()
	st, exists := r.jobs[id]
	if !exists {
		return model.Job{}, false
	}
	return st.job, true
}

// Jobs returns snapshots of all known jobs
func (r *Runner) Jobs() []model.Job {
	r.jobsMutex.RLock()
	defer r.jobsMutex.RUnlock()

	jobs := make([]model.Job, 0, len(r.jobs))
	for _, st := range r.jobs {
		jobs = append(jobs, st.job)
	}
	return jobs
}

// Remove discards a finished job. Active jobs are kept.
func (r *Runner) Remove(id string) {
	r.jobsMutex.Lock()
	defer r.jobsMutex.Unlock()
	if st, exists := r.jobs[id]; exists && st.job.Status.IsTerminal() {
		delete(r.jobs, id)
	}
}

// run executes the worker and guarantees exactly one terminal event,
// converting panics and cancellation into Failed and Cancelled states.
func (r *Runner) run(ctx context.Context, st *jobState, w Worker) {
	defer close(st.events)

	r.setStatus(st, model.JobStatusRunning)
	r.emit(st, model.ProgressEvent{Status: model.JobStatusRunning, Message: "started"})

	report := func(progress int, message string) {
		if progress < 0 {
			progress = 0
		}
		if progress > 100 {
			progress = 100
		}
		r.jobsMutex.Lock()
		st.job.Progress = progress
		st.job.Message = message
		r.jobsMutex.Unlock()

		r.emit(st, model.ProgressEvent{Status: model.JobStatusRunning, Progress: progress, Message: message})
	}

	var runErr error
	func() {
		defer func() {
			if p := recover(); p != nil {
				runErr = fmt.Errorf("worker panic: %v", p)
				log.Printf("Job %s worker panicked: %v", st.job.ID, p)
			}
		}()
		runErr = w.Run(ctx, report)
	}()

	r.jobsMutex.Lock()
	progress := st.job.Progress
	message := st.job.Message
	r.jobsMutex.Unlock()

	switch {
	case runErr == nil:
		r.setStatus(st, model.JobStatusSucceeded)
		r.emit(st, model.ProgressEvent{Status: model.JobStatusSucceeded, Progress: 100, Message: message})
	case errors.Is(runErr, context.Canceled):
		r.setStatus(st, model.JobStatusCancelled)
		r.emit(st, model.ProgressEvent{Status: model.JobStatusCancelled, Progress: progress, Message: "cancelled"})
	default:
		log.Printf("Job %s failed: %v", st.job.ID, runErr)
		r.setFailure(st, runErr)
		r.emit(st, model.ProgressEvent{Status: model.JobStatusFailed, Progress: progress, Message: runErr.Error(), Err: runErr})
	}
}

// setStatus advances the job status. Transitions are monotone.
func (r *Runner) setStatus(st *jobState, status model.JobStatus) {
	r.jobsMutex.Lock()
	defer r.jobsMutex.Unlock()
	st.job.Status = status
	if status.IsTerminal() {
		st.job.FinishedAt = time.Now()
		if status == model.JobStatusSucceeded {
			st.job.Progress = 100
		}
	}
}

// setFailure marks the job failed with its cause
func (r *Runner) setFailure(st *jobState, err error) {
	r.jobsMutex.Lock()
	defer r.jobsMutex.Unlock()
	st.job.Status = model.JobStatusFailed
	st.job.LastError = err.Error()
	st.job.Message = err.Error()
	st.job.FinishedAt = time.Now()
}

// emit stamps and delivers an event. The send blocks for terminal events
// so they are never lost; a non-terminal event is dropped if the consumer
// has fallen EventBufferSize events behind.
func (r *Runner) emit(st *jobState, event model.ProgressEvent) {
	st.seq++
	event.JobID = st.job.ID
	event.Seq = st.seq
	event.Timestamp = time.Now()

	if event.Terminal() {
		st.events <- event
		return
	}

	select {
	case st.events <- event:
	default:
	}
}

// generateJobID generates a unique job ID using UUID v7 for better
// uniqueness and time ordering
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
