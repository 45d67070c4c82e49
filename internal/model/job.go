package model

import "time"

// JobKind identifies the type of work a job performs
type JobKind string

const (
	// JobKindConvert is a batch audio conversion job
	JobKindConvert JobKind = "convert"

	// JobKindDownload is a single download-and-convert job
	JobKindDownload JobKind = "download"
)

// Job represents one user-initiated unit of background work. A Job is
// created by the runner on submit and mutated only by the worker goroutine
// executing it; the UI observes it through ProgressEvents and snapshots.
type Job struct {
	ID         string
	Kind       JobKind
	Status     JobStatus
	Progress   int    // 0 to 100
	Message    string // last human-readable status message
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// ProgressEvent is an immutable status snapshot emitted by a worker.
// Events of one job carry strictly increasing sequence numbers and the
// final event always has a terminal status.
type ProgressEvent struct {
	JobID     string
	Seq       uint64
	Status    JobStatus
	Progress  int // 0 to 100
	Message   string
	Err       error // set only on a Failed terminal event
	Timestamp time.Time
}

// Terminal returns true if this is the final event of its job
func (e ProgressEvent) Terminal() bool {
	return e.Status.IsTerminal()
}
