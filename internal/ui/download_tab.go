package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/modernaudio/converter/internal/download"
	"github.com/modernaudio/converter/internal/job"
	"github.com/modernaudio/converter/internal/model"
	"github.com/modernaudio/converter/internal/platform"
)

// queueItem is one row of the download queue. Metadata is fetched when the
// row is added; the job fields are set once the queue download starts.
type queueItem struct {
	url     string
	videoID string

	info     *model.VideoInfo
	status   string
	progress int

	worker     *download.Worker
	handle     *job.Handle
	outputPath string
	done       bool
}

// downloadTab drives the YouTube download feature as a queue: URLs are
// added with fetched metadata rows, then the whole queue is downloaded
// with per-item status and progress.
type downloadTab struct {
	root   *RootUI
	client download.Client

	urlEntry       *widget.Entry
	destEntry      *widget.Entry
	addButton      *widget.Button
	downloadButton *widget.Button
	cancelButton   *widget.Button
	removeButton   *widget.Button
	clearButton    *widget.Button
	revealButton   *widget.Button
	queueList      *widget.List
	progressBar    *widget.ProgressBar
	stageLabel     *widget.Label

	items      []*queueItem
	selected   int
	activeJobs int
}

// newDownloadTab builds the YouTube download tab
func newDownloadTab(root *RootUI, client download.Client) *downloadTab {
	t := &downloadTab{root: root, client: client, selected: -1}
	loc := root.loc

	t.urlEntry = widget.NewEntry()
	t.urlEntry.SetPlaceHolder(loc.T(KeyEnterURL))
	t.urlEntry.OnChanged = t.onURLChanged
	t.urlEntry.OnSubmitted = func(string) { t.onAdd() }

	t.destEntry = widget.NewEntry()
	t.destEntry.SetPlaceHolder(loc.T(KeyDownloadFolder))
	t.destEntry.SetText(root.settings.GetDownloadDirectory())

	t.addButton = widget.NewButton(loc.T(KeyAddToQueue), t.onAdd)
	t.addButton.Disable()
	t.downloadButton = widget.NewButton(loc.T(KeyDownloadAll), t.onDownloadAll)
	t.downloadButton.Disable()
	t.cancelButton = widget.NewButton(loc.T(KeyCancel), t.onCancel)
	t.cancelButton.Disable()
	t.removeButton = widget.NewButton(loc.T(KeyRemoveSelected), t.onRemoveSelected)
	t.removeButton.Disable()
	t.clearButton = widget.NewButton(loc.T(KeyClearQueue), t.onClear)
	t.clearButton.Disable()
	t.revealButton = widget.NewButton(loc.T(KeyReveal), t.onReveal)
	t.revealButton.Disable()

	t.queueList = widget.NewList(
		func() int { return len(t.items) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id >= len(t.items) {
				return
			}
			object.(*widget.Label).SetText(t.rowText(t.items[id]))
		},
	)
	t.queueList.OnSelected = func(id widget.ListItemID) {
		t.selected = id
		t.updateButtons()
	}
	t.queueList.OnUnselected = func(widget.ListItemID) {
		t.selected = -1
		t.updateButtons()
	}

	t.progressBar = widget.NewProgressBar()
	t.stageLabel = widget.NewLabel(loc.T(KeyEnterURL))

	return t
}

// content lays out the tab
func (t *downloadTab) content() fyne.CanvasObject {
	loc := t.root.loc

	urlRow := container.NewBorder(nil, nil, nil, t.addButton, t.urlEntry)
	destRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(loc.T(KeyBrowse), t.chooseFolder),
		t.destEntry)

	buttons := container.NewHBox(
		t.downloadButton, t.cancelButton,
		t.removeButton, t.clearButton,
		t.revealButton,
	)

	top := container.NewVBox(
		widget.NewLabel("YouTube URL"), urlRow,
		widget.NewLabel(loc.T(KeyDownloadFolder)), destRow,
		widget.NewLabel(loc.T(KeyQueueHeader)),
	)
	bottom := container.NewVBox(buttons, t.progressBar, t.stageLabel)

	return container.NewBorder(top, bottom, nil, nil, t.queueList)
}

// rowText renders one queue row: title, duration, channel, status, progress
func (t *downloadTab) rowText(item *queueItem) string {
	if item.info == nil {
		return fmt.Sprintf("%s  •  %s", item.url, item.status)
	}
	return fmt.Sprintf("%s  •  %s  •  %s  •  %s %d%%",
		item.info.Title, item.info.DurationString(), item.info.Channel,
		item.status, item.progress)
}

// onURLChanged enables adding only for syntactically valid URLs
func (t *downloadTab) onURLChanged(text string) {
	if _, ok := download.ExtractVideoID(text); ok && t.activeJobs == 0 {
		t.addButton.Enable()
		t.stageLabel.SetText(t.root.loc.T(KeyStatusReady))
	} else {
		t.addButton.Disable()
		if text != "" {
			t.stageLabel.SetText(t.root.loc.T(KeyInvalidURL))
		}
	}
}

// chooseFolder opens a native folder picker into the destination entry
func (t *downloadTab) chooseFolder() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		t.destEntry.SetText(uri.Path())
		t.root.settings.SetDownloadDirectory(uri.Path())
	}, t.root.window)
}

// enqueue appends a queue row for the URL. Malformed URLs and URLs whose
// video is already queued are rejected.
func (t *downloadTab) enqueue(url string) (*queueItem, error) {
	videoID, ok := download.ExtractVideoID(url)
	if !ok {
		return nil, &job.InvalidURLError{URL: url}
	}

	for _, item := range t.items {
		if item.videoID == videoID {
			return nil, fmt.Errorf("%s", t.root.loc.T(KeyAlreadyQueued))
		}
	}

	item := &queueItem{
		url:     url,
		videoID: videoID,
		status:  t.root.loc.T(KeyFetchingInfo),
	}
	t.items = append(t.items, item)
	return item, nil
}

// applyFetched records the metadata fetch result for a queued row. A failed
// fetch removes the row; the caller reports the error.
func (t *downloadTab) applyFetched(item *queueItem, info *model.VideoInfo, err error) {
	if err != nil {
		t.removeItem(item)
		return
	}
	item.info = info
	item.status = t.root.loc.T(KeyStatusWaiting)
}

// removeItem drops one row from the queue
func (t *downloadTab) removeItem(target *queueItem) {
	for i, item := range t.items {
		if item == target {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

// onAdd fetches metadata on a background goroutine and adds the row
func (t *downloadTab) onAdd() {
	url := t.urlEntry.Text

	item, err := t.enqueue(url)
	if err != nil {
		t.stageLabel.SetText(err.Error())
		return
	}

	t.urlEntry.SetText("")
	t.queueList.Refresh()
	t.updateButtons()

	go func() {
		info, fetchErr := t.client.FetchInfo(context.Background(), url)

		fyne.Do(func() {
			t.applyFetched(item, info, fetchErr)
			t.queueList.Refresh()
			t.updateButtons()
			if fetchErr != nil {
				dialog.ShowError(fetchErr, t.root.window)
			}
		})
	}()
}

// pendingItems returns the rows ready to download
func (t *downloadTab) pendingItems() []*queueItem {
	var pending []*queueItem
	for _, item := range t.items {
		if item.info != nil && !item.done {
			pending = append(pending, item)
		}
	}
	return pending
}

// onDownloadAll submits one download job per pending row and drains each
// job's event stream into its row
func (t *downloadTab) onDownloadAll() {
	destDir := t.destEntry.Text
	pending := t.pendingItems()
	if destDir == "" || len(pending) == 0 {
		return
	}

	t.root.settings.SetDownloadDirectory(destDir)
	t.progressBar.SetValue(0)

	for _, item := range pending {
		worker := download.NewWorker(item.url, destDir, t.client, t.client)
		handle, err := t.root.runner.Submit(worker)
		if err != nil {
			item.status = err.Error()
			continue
		}

		item.worker = worker
		item.handle = handle
		item.status = t.root.loc.T(KeyStatusWaiting)
		item.progress = 0
		t.activeJobs++

		go func(item *queueItem, handle *job.Handle) {
			for event := range handle.Events() {
				ev := event
				fyne.Do(func() { t.applyItemEvent(item, ev) })
			}
		}(item, handle)
	}

	t.queueList.Refresh()
	t.updateButtons()
}

// applyItemEvent updates one queue row from a progress event. Runs on the
// UI thread.
func (t *downloadTab) applyItemEvent(item *queueItem, event model.ProgressEvent) {
	item.progress = event.Progress
	item.status = event.Message

	if event.Terminal() {
		item.status = event.Status.String()
		if event.Status == model.JobStatusSucceeded && item.worker != nil {
			item.outputPath = item.worker.Task().OutputPath
			item.done = true
		}
		item.handle = nil
		t.activeJobs--
		if t.activeJobs == 0 {
			t.stageLabel.SetText(t.root.loc.T(KeyStatusReady))
		}
		t.updateButtons()
	} else {
		t.stageLabel.SetText(event.Message)
	}

	t.progressBar.SetValue(t.overallProgress())
	t.queueList.Refresh()
}

// overallProgress averages row progress over the whole queue
func (t *downloadTab) overallProgress() float64 {
	if len(t.items) == 0 {
		return 0
	}
	total := 0
	for _, item := range t.items {
		total += item.progress
	}
	return float64(total) / float64(len(t.items)*100)
}

// onCancel requests cancellation of every running row
func (t *downloadTab) onCancel() {
	for _, item := range t.items {
		if item.handle != nil {
			item.handle.Cancel()
		}
	}
}

// onRemoveSelected drops the selected row; rows cannot be removed while
// the queue is downloading
func (t *downloadTab) onRemoveSelected() {
	if t.activeJobs > 0 || t.selected < 0 || t.selected >= len(t.items) {
		return
	}
	t.removeItem(t.items[t.selected])
	t.selected = -1
	t.queueList.UnselectAll()
	t.queueList.Refresh()
	t.updateButtons()
}

// onClear empties the queue
func (t *downloadTab) onClear() {
	if t.activeJobs > 0 {
		return
	}
	t.items = nil
	t.selected = -1
	t.queueList.UnselectAll()
	t.queueList.Refresh()
	t.updateButtons()
}

// onReveal shows the selected finished file in the system file manager
func (t *downloadTab) onReveal() {
	if t.selected < 0 || t.selected >= len(t.items) {
		return
	}
	item := t.items[t.selected]
	if item.outputPath == "" {
		return
	}
	if err := platform.OpenFileInManager(item.outputPath); err != nil {
		dialog.ShowError(err, t.root.window)
	}
}

// updateButtons reconciles button states with the queue and job activity
func (t *downloadTab) updateButtons() {
	downloading := t.activeJobs > 0
	hasItems := len(t.items) > 0
	hasPending := len(t.pendingItems()) > 0

	if hasPending && !downloading {
		t.downloadButton.Enable()
	} else {
		t.downloadButton.Disable()
	}
	if downloading {
		t.cancelButton.Enable()
	} else {
		t.cancelButton.Disable()
	}
	if hasItems && !downloading && t.selected >= 0 {
		t.removeButton.Enable()
	} else {
		t.removeButton.Disable()
	}
	if hasItems && !downloading {
		t.clearButton.Enable()
	} else {
		t.clearButton.Disable()
	}
	if t.selected >= 0 && t.selected < len(t.items) && t.items[t.selected].outputPath != "" {
		t.revealButton.Enable()
	} else {
		t.revealButton.Disable()
	}

	t.onURLChanged(t.urlEntry.Text)
}
