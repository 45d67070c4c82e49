package job

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/modernaudio/converter/internal/model"
)

// fakeWorker is a configurable Worker for runner tests
type fakeWorker struct {
	kind        model.JobKind
	validateErr error
	run         func(ctx context.Context, report ReportFunc) error
}

func (w *fakeWorker) Kind() model.JobKind {
	if w.kind == "" {
		return model.JobKindConvert
	}
	return w.kind
}

func (w *fakeWorker) Validate() error {
	return w.validateErr
}

func (w *fakeWorker) Run(ctx context.Context, report ReportFunc) error {
	if w.run == nil {
		return nil
	}
	return w.run(ctx, report)
}

// drain collects all events until the channel closes
func drain(t *testing.T, h *Handle) []model.ProgressEvent {
	t.Helper()

	var events []model.ProgressEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-h.Events():
			if !ok {
				return events
			}
			events = append(events, event)
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
}

func TestSubmit_ValidationErrorIsSynchronous(t *testing.T) {
	runner := NewRunner()

	worker := &fakeWorker{
		validateErr: &ValidationError{Field: "source folder", Reason: "must not be empty"},
		run: func(ctx context.Context, report ReportFunc) error {
			t.Error("Run should never be called for invalid parameters")
			return nil
		},
	}

	handle, err := runner.Submit(worker)
	if handle != nil {
		t.Error("Expected nil handle for invalid parameters")
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *ValidationError, got %T: %v", err, err)
	}

	if len(runner.Jobs()) != 0 {
		t.Errorf("Expected no jobs after rejected submit, got %d", len(runner.Jobs()))
	}
}

func TestSubmit_PlainErrorBecomesValidationError(t *testing.T) {
	runner := NewRunner()

	worker := &fakeWorker{validateErr: errors.New("something is off")}

	_, err := runner.Submit(worker)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected plain validation failure to be wrapped, got %T", err)
	}
}

func TestRunner_EventOrderingAndSingleTerminal(t *testing.T) {
	runner := NewRunner()

	worker := &fakeWorker{
		run: func(ctx context.Context, report ReportFunc) error {
			for i := 1; i <= 5; i++ {
				report(i*20, "step")
			}
			return nil
		},
	}

	handle, err := runner.Submit(worker)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	events := drain(t, handle)
	if len(events) == 0 {
		t.Fatal("Expected at least one event")
	}

	var lastSeq uint64
	terminals := 0
	sawTerminal := false
	for i, event := range events {
		if event.JobID != handle.ID() {
			t.Errorf("Event %d has job ID %s, expected %s", i, event.JobID, handle.ID())
		}
		if event.Seq <= lastSeq {
			t.Errorf("Event %d sequence %d not increasing (previous %d)", i, event.Seq, lastSeq)
		}
		lastSeq = event.Seq

		if sawTerminal {
			t.Errorf("Event %d emitted after terminal event", i)
		}
		if event.Terminal() {
			terminals++
			sawTerminal = true
		}
	}

	if terminals != 1 {
		t.Errorf("Expected exactly one terminal event, got %d", terminals)
	}

	last := events[len(events)-1]
	if last.Status != model.JobStatusSucceeded {
		t.Errorf("Expected terminal status Succeeded, got %s", last.Status)
	}
	if last.Progress != 100 {
		t.Errorf("Expected terminal progress 100, got %d", last.Progress)
	}
}

func TestRunner_WorkerErrorBecomesFailed(t *testing.T) {
	runner := NewRunner()

	cause := errors.New("source folder unreadable")
	worker := &fakeWorker{
		run: func(ctx context.Context, report ReportFunc) error {
			return cause
		},
	}

	handle, err := runner.Submit(worker)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	events := drain(t, handle)
	last := events[len(events)-1]
	if last.Status != model.JobStatusFailed {
		t.Fatalf("Expected Failed terminal, got %s", last.Status)
	}
	if !errors.Is(last.Err, cause) {
		t.Errorf("Expected terminal event to carry the cause, got %v", last.Err)
	}

	snapshot, exists := handle.Snapshot()
	if !exists {
		t.Fatal("Expected job snapshot to exist")
	}
	if snapshot.LastError == "" {
		t.Error("Expected snapshot to record the error")
	}
}

func TestRunner_PanicBecomesFailed(t *testing.T) {
	runner := NewRunner()

	worker := &fakeWorker{
		run: func(ctx context.Context, report ReportFunc) error {
			panic("boom")
		},
	}

	handle, err := runner.Submit(worker)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	events := drain(t, handle)
	last := events[len(events)-1]
	if last.Status != model.JobStatusFailed {
		t.Fatalf("Expected Failed terminal after panic, got %s", last.Status)
	}
	if !strings.Contains(last.Message, "panic") {
		t.Errorf("Expected panic description in terminal message, got %q", last.Message)
	}
}

func TestRunner_CancelBetweenItems(t *testing.T) {
	runner := NewRunner()

	processed := 0
	secondDone := make(chan struct{})
	cancelled := make(chan struct{})

	worker := &fakeWorker{
		run: func(ctx context.Context, report ReportFunc) error {
			for i := 1; i <= 5; i++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				processed++
				report(i*20, "item done")

				if i == 2 {
					close(secondDone)
					<-cancelled
				}
			}
			return nil
		},
	}

	handle, err := runner.Submit(worker)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	<-secondDone
	handle.Cancel()
	close(cancelled)

	events := drain(t, handle)
	last := events[len(events)-1]
	if last.Status != model.JobStatusCancelled {
		t.Fatalf("Expected Cancelled terminal, got %s", last.Status)
	}

	if processed != 2 {
		t.Errorf("Expected 2 items processed before cancellation, got %d", processed)
	}
}

func TestRunner_ConcurrentJobsAreIndependent(t *testing.T) {
	runner := NewRunner()

	worker := func() *fakeWorker {
		return &fakeWorker{
			run: func(ctx context.Context, report ReportFunc) error {
				report(50, "half way")
				return nil
			},
		}
	}

	h1, err := runner.Submit(worker())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	h2, err := runner.Submit(worker())
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if h1.ID() == h2.ID() {
		t.Error("Expected distinct job IDs")
	}

	for _, h := range []*Handle{h1, h2} {
		events := drain(t, h)
		for _, event := range events {
			if event.JobID != h.ID() {
				t.Errorf("Event for job %s leaked into stream of %s", event.JobID, h.ID())
			}
		}
	}
}

func TestRunner_RemoveKeepsActiveJobs(t *testing.T) {
	runner := NewRunner()

	release := make(chan struct{})
	worker := &fakeWorker{
		run: func(ctx context.Context, report ReportFunc) error {
			<-release
			return nil
		},
	}

	handle, err := runner.Submit(worker)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	runner.Remove(handle.ID())
	if _, exists := runner.Job(handle.ID()); !exists {
		t.Fatal("Remove should not discard an active job")
	}

	close(release)
	drain(t, handle)

	runner.Remove(handle.ID())
	if _, exists := runner.Job(handle.ID()); exists {
		t.Error("Expected finished job to be removed")
	}
}
