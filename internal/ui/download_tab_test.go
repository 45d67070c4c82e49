package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/modernaudio/converter/internal/config"
	"github.com/modernaudio/converter/internal/download"
	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/model"
)

const (
	queueTestURL      = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	queueTestShortURL = "https://youtu.be/dQw4w9WgXcQ"
	queueTestOtherURL = "https://www.youtube.com/watch?v=aaaaaaaaaaa"
)

// fakeClient returns canned metadata and writes a stub MP3 on download
type fakeClient struct {
	info *model.VideoInfo
	err  error
}

func (f *fakeClient) FetchInfo(ctx context.Context, url string) (*model.VideoInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeClient) DownloadAudio(ctx context.Context, url, dir string, onProgress func(float64)) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	path := filepath.Join(dir, "dQw4w9WgXcQ.mp3")
	if err := os.WriteFile(path, []byte("mp3 payload"), 0644); err != nil {
		return "", err
	}
	return path, nil
}

func newTestDownloadTab(t *testing.T, client download.Client) *downloadTab {
	t.Helper()
	app := test.NewApp()
	window := app.NewWindow("test")

	root := &RootUI{
		window:      window,
		app:         app,
		settings:    config.NewSettings(app),
		runner:      job.NewRunner(),
		loc:         NewLocalization(),
		statusLabel: widget.NewLabel(""),
	}
	return newDownloadTab(root, client)
}

func TestDownloadTab_EnqueueAndFetch(t *testing.T) {
	info := &model.VideoInfo{ID: "dQw4w9WgXcQ", Title: "My Song", Channel: "My Channel", Seconds: 212}
	tab := newTestDownloadTab(t, &fakeClient{info: info})

	item, err := tab.enqueue(queueTestURL)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	if len(tab.items) != 1 {
		t.Fatalf("Expected 1 queued item, got %d", len(tab.items))
	}
	if len(tab.pendingItems()) != 0 {
		t.Error("Expected no pending items before metadata arrives")
	}

	tab.applyFetched(item, info, nil)

	if len(tab.pendingItems()) != 1 {
		t.Fatal("Expected 1 pending item after metadata arrives")
	}
	row := tab.rowText(item)
	for _, want := range []string{"My Song", "3:32", "My Channel"} {
		if !strings.Contains(row, want) {
			t.Errorf("Expected row %q to contain %q", row, want)
		}
	}
}

func TestDownloadTab_RejectsDuplicateVideo(t *testing.T) {
	tab := newTestDownloadTab(t, &fakeClient{})

	if _, err := tab.enqueue(queueTestURL); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}
	// Same video through a different URL form is still a duplicate
	if _, err := tab.enqueue(queueTestShortURL); err == nil {
		t.Fatal("Expected duplicate video to be rejected")
	}
	if len(tab.items) != 1 {
		t.Errorf("Expected queue to keep 1 item, got %d", len(tab.items))
	}
}

func TestDownloadTab_RejectsMalformedURL(t *testing.T) {
	tab := newTestDownloadTab(t, &fakeClient{})

	_, err := tab.enqueue("not a url")

	var urlErr *job.InvalidURLError
	if !errors.As(err, &urlErr) {
		t.Fatalf("Expected *job.InvalidURLError, got %v", err)
	}
	if len(tab.items) != 0 {
		t.Errorf("Expected empty queue, got %d items", len(tab.items))
	}
}

func TestDownloadTab_FailedFetchRemovesRow(t *testing.T) {
	tab := newTestDownloadTab(t, &fakeClient{})

	item, err := tab.enqueue(queueTestURL)
	if err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	tab.applyFetched(item, nil, &job.FetchError{URL: queueTestURL, Err: errors.New("video unavailable")})

	if len(tab.items) != 0 {
		t.Errorf("Expected failed fetch to remove the row, got %d items", len(tab.items))
	}
}

func TestDownloadTab_RemoveSelectedAndClear(t *testing.T) {
	info := &model.VideoInfo{ID: "dQw4w9WgXcQ", Title: "First"}
	tab := newTestDownloadTab(t, &fakeClient{info: info})

	first, _ := tab.enqueue(queueTestURL)
	second, _ := tab.enqueue(queueTestOtherURL)
	tab.applyFetched(first, info, nil)
	tab.applyFetched(second, &model.VideoInfo{ID: "aaaaaaaaaaa", Title: "Second"}, nil)

	tab.selected = 0
	tab.onRemoveSelected()

	if len(tab.items) != 1 || tab.items[0] != second {
		t.Fatalf("Expected only the second item to remain, got %d items", len(tab.items))
	}

	tab.onClear()
	if len(tab.items) != 0 {
		t.Errorf("Expected empty queue after clear, got %d items", len(tab.items))
	}
}

func TestDownloadTab_RemoveBlockedWhileDownloading(t *testing.T) {
	info := &model.VideoInfo{ID: "dQw4w9WgXcQ", Title: "My Song"}
	tab := newTestDownloadTab(t, &fakeClient{info: info})

	item, _ := tab.enqueue(queueTestURL)
	tab.applyFetched(item, info, nil)

	tab.activeJobs = 1
	tab.selected = 0
	tab.onRemoveSelected()
	tab.onClear()

	if len(tab.items) != 1 {
		t.Errorf("Expected queue untouched while downloading, got %d items", len(tab.items))
	}
}

func TestDownloadTab_ItemEventsDriveRow(t *testing.T) {
	destDir := t.TempDir()
	info := &model.VideoInfo{ID: "dQw4w9WgXcQ", Title: "My Song"}
	client := &fakeClient{info: info}
	tab := newTestDownloadTab(t, client)

	item, _ := tab.enqueue(queueTestURL)
	tab.applyFetched(item, info, nil)

	// Run the worker to completion so its task carries the output path
	worker := download.NewWorker(queueTestURL, destDir, client, client)
	if err := worker.Run(context.Background(), func(int, string) {}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	item.worker = worker
	tab.activeJobs = 1

	tab.applyItemEvent(item, model.ProgressEvent{Status: model.JobStatusRunning, Progress: 40, Message: "downloading: My Song"})
	if item.progress != 40 || item.status != "downloading: My Song" {
		t.Errorf("Expected row to follow the running event, got %d%% %q", item.progress, item.status)
	}

	tab.applyItemEvent(item, model.ProgressEvent{Status: model.JobStatusSucceeded, Progress: 100})

	if !item.done {
		t.Error("Expected item marked done after terminal success")
	}
	if item.status != "Succeeded" {
		t.Errorf("Expected status Succeeded, got %q", item.status)
	}
	if item.outputPath == "" {
		t.Error("Expected output path recorded from the finished worker")
	}
	if tab.activeJobs != 0 {
		t.Errorf("Expected no active jobs, got %d", tab.activeJobs)
	}
	if len(tab.pendingItems()) != 0 {
		t.Error("Expected finished item not to be pending")
	}
}

func TestDownloadTab_OverallProgressAveragesRows(t *testing.T) {
	info := &model.VideoInfo{ID: "dQw4w9WgXcQ", Title: "First"}
	tab := newTestDownloadTab(t, &fakeClient{info: info})

	first, _ := tab.enqueue(queueTestURL)
	second, _ := tab.enqueue(queueTestOtherURL)
	tab.applyFetched(first, info, nil)
	tab.applyFetched(second, &model.VideoInfo{ID: "aaaaaaaaaaa", Title: "Second"}, nil)

	first.progress = 100
	second.progress = 0

	if got := tab.overallProgress(); got != 0.5 {
		t.Errorf("Expected overall progress 0.5, got %v", got)
	}
}
