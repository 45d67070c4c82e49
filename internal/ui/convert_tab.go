package ui

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/modernaudio/converter/internal/convert"
	"github.com/modernaudio/converter/internal/model"
	"github.com/modernaudio/converter/internal/platform"
)

// convertTab drives the batch conversion feature: folder selection, file
// scan preview, and the conversion job with its progress stream.
type convertTab struct {
	root *RootUI

	sourceEntry   *widget.Entry
	destEntry     *widget.Entry
	scanButton    *widget.Button
	convertButton *widget.Button
	cancelButton  *widget.Button
	fileList      *widget.List
	progressBar   *widget.ProgressBar
	summaryLabel  *widget.Label

	tasks  []model.FileTask
	worker *convert.Worker
}

// newConvertTab builds the batch conversion tab
func newConvertTab(root *RootUI) *convertTab {
	t := &convertTab{root: root}
	loc := root.loc

	t.sourceEntry = widget.NewEntry()
	t.sourceEntry.SetPlaceHolder(loc.T(KeySourceFolder))
	t.sourceEntry.SetText(root.settings.GetLastSourceDirectory())

	t.destEntry = widget.NewEntry()
	t.destEntry.SetPlaceHolder(loc.T(KeyDestFolder))
	t.destEntry.SetText(root.settings.GetLastDestDirectory())

	t.scanButton = widget.NewButton(loc.T(KeyScan), t.onScan)
	t.convertButton = widget.NewButton(loc.T(KeyConvert), t.onConvert)
	t.convertButton.Disable()
	t.cancelButton = widget.NewButton(loc.T(KeyCancel), t.onCancel)
	t.cancelButton.Disable()

	t.fileList = widget.NewList(
		func() int { return len(t.tasks) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			if id >= len(t.tasks) {
				return
			}
			task := t.tasks[id]
			label := object.(*widget.Label)
			label.SetText(fmt.Sprintf("%s  •  %s  •  %s", task.Filename(), platform.FormatFileSize(task.Size), t.outcomeText(task)))
		},
	)

	t.progressBar = widget.NewProgressBar()
	t.summaryLabel = widget.NewLabel(loc.T(KeySelectFoldersHint))

	return t
}

// content lays out the tab
func (t *convertTab) content() fyne.CanvasObject {
	loc := t.root.loc

	sourceRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(loc.T(KeyBrowse), func() { t.chooseFolder(t.sourceEntry) }),
		t.sourceEntry)
	destRow := container.NewBorder(nil, nil, nil,
		widget.NewButton(loc.T(KeyBrowse), func() { t.chooseFolder(t.destEntry) }),
		t.destEntry)

	buttons := container.NewHBox(t.scanButton, t.convertButton, t.cancelButton)
	top := container.NewVBox(
		widget.NewLabel(loc.T(KeySourceFolder)), sourceRow,
		widget.NewLabel(loc.T(KeyDestFolder)), destRow,
		buttons,
	)
	bottom := container.NewVBox(t.progressBar, t.summaryLabel)

	return container.NewBorder(top, bottom, nil, nil, t.fileList)
}

// outcomeText renders a task's state, preferring the live worker state
// over the scan preview
func (t *convertTab) outcomeText(task model.FileTask) string {
	if task.Outcome == model.FileOutcomeFailed && task.Reason != "" {
		return fmt.Sprintf("%s (%s)", task.Outcome, task.Reason)
	}
	return task.Outcome.String()
}

// chooseFolder opens a native folder picker into the given entry
func (t *convertTab) chooseFolder(entry *widget.Entry) {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		entry.SetText(uri.Path())
	}, t.root.window)
}

// onScan previews the files a conversion job would process
func (t *convertTab) onScan() {
	sourceDir := t.sourceEntry.Text
	destDir := t.destEntry.Text
	if sourceDir == "" || destDir == "" {
		t.summaryLabel.SetText(t.root.loc.T(KeySelectFoldersHint))
		return
	}

	t.scanButton.Disable()
	t.root.setStatus(t.root.loc.T(KeyStatusScanning))

	go func() {
		tasks, err := convert.Scan(sourceDir)
		if err == nil {
			transcoder := convert.NewFFmpegTranscoder(t.root.settings.GetAudioBitrate())
			convert.ProbeDurations(context.Background(), transcoder, tasks)
		}

		fyne.Do(func() {
			t.scanButton.Enable()
			if err != nil {
				t.root.setStatus(t.root.loc.T(KeyStatusReady))
				dialog.ShowError(err, t.root.window)
				return
			}

			t.tasks = t.tasks[:0]
			for _, task := range tasks {
				t.tasks = append(t.tasks, *task)
			}
			t.fileList.Refresh()

			if len(tasks) == 0 {
				t.summaryLabel.SetText(t.root.loc.T(KeyNoFilesFound))
				t.convertButton.Disable()
			} else {
				t.summaryLabel.SetText(fmt.Sprintf(t.root.loc.T(KeyFilesFound), len(tasks)))
				t.convertButton.Enable()
			}
			t.root.setStatus(t.root.loc.T(KeyStatusReady))
		})
	}()
}

// onConvert submits a conversion job and drains its event stream
func (t *convertTab) onConvert() {
	sourceDir := t.sourceEntry.Text
	destDir := t.destEntry.Text

	transcoder := convert.NewFFmpegTranscoder(t.root.settings.GetAudioBitrate())
	worker := convert.NewWorker(sourceDir, destDir, transcoder)

	handle, err := t.root.runner.Submit(worker)
	if err != nil {
		dialog.ShowError(err, t.root.window)
		return
	}

	t.worker = worker
	t.root.settings.SetLastSourceDirectory(sourceDir)
	t.root.settings.SetLastDestDirectory(destDir)

	t.scanButton.Disable()
	t.convertButton.Disable()
	t.cancelButton.Enable()
	t.cancelButton.OnTapped = func() { handle.Cancel() }
	t.progressBar.SetValue(0)

	go func() {
		for event := range handle.Events() {
			ev := event
			fyne.Do(func() { t.applyEvent(ev) })
		}
	}()
}

// applyEvent updates the tab from one progress event. Runs on the UI thread.
func (t *convertTab) applyEvent(event model.ProgressEvent) {
	t.progressBar.SetValue(float64(event.Progress) / 100)
	t.root.setStatus(event.Message)

	if t.worker != nil {
		t.tasks = t.worker.Tasks()
		t.fileList.Refresh()
	}

	if !event.Terminal() {
		return
	}

	t.scanButton.Enable()
	t.convertButton.Enable()
	t.cancelButton.Disable()
	t.summaryLabel.SetText(fmt.Sprintf("%s: %s", event.Status, event.Message))

	if event.Status == model.JobStatusFailed && event.Err != nil {
		dialog.ShowError(event.Err, t.root.window)
	}
}

// onCancel is replaced per job; the default does nothing
func (t *convertTab) onCancel() {}
