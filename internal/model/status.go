package model

// JobStatus represents the lifecycle state of a background job
type JobStatus string

const (
	// JobStatusPending means the job is created but not started
	JobStatusPending JobStatus = "Pending"

	// JobStatusRunning means the job is being executed by its worker
	JobStatusRunning JobStatus = "Running"

	// JobStatusSucceeded means the job ran to completion
	JobStatusSucceeded JobStatus = "Succeeded"

	// JobStatusFailed means the job aborted with a structural error
	JobStatusFailed JobStatus = "Failed"

	// JobStatusCancelled means the job was stopped by the user
	JobStatusCancelled JobStatus = "Cancelled"
)

// String returns the string representation of JobStatus
func (js JobStatus) String() string {
	return string(js)
}

// IsActive returns true if the job is still being worked on
func (js JobStatus) IsActive() bool {
	return js == JobStatusPending || js == JobStatusRunning
}

// IsTerminal returns true if no further events can follow this status
func (js JobStatus) IsTerminal() bool {
	return js == JobStatusSucceeded || js == JobStatusFailed || js == JobStatusCancelled
}

// FileOutcome represents the result of a single file conversion
type FileOutcome string

const (
	// FileOutcomePending means the file has not been processed yet
	FileOutcomePending FileOutcome = "Pending"

	// FileOutcomeDone means the file converted successfully
	FileOutcomeDone FileOutcome = "Done"

	// FileOutcomeFailed means conversion of this file failed
	FileOutcomeFailed FileOutcome = "Failed"
)

// String returns the string representation of FileOutcome
func (fo FileOutcome) String() string {
	return string(fo)
}
