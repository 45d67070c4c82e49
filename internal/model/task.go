package model

import (
	"fmt"
	"path/filepath"
	"strings"
)

// FileTask represents a single input-to-output unit within a conversion job
type FileTask struct {
	Source  string // absolute path of the input file
	Target  string // collision-adjusted output path, set when processing starts
	Size    int64  // input size in bytes
	Seconds float64 // input duration in seconds, 0 if unknown
	Outcome FileOutcome
	Reason  string // failure reason if Outcome is Failed
}

// Filename returns the base name of the source file
func (ft *FileTask) Filename() string {
	return filepath.Base(ft.Source)
}

// DownloadTask represents a single download-and-convert unit
type DownloadTask struct {
	URL        string
	Info       *VideoInfo // resolved metadata, nil until fetched
	OutputPath string     // path of the produced MP3
	Outcome    FileOutcome
	Reason     string
}

// VideoInfo holds metadata fetched for a video
type VideoInfo struct {
	ID      string
	Title   string
	Channel string
	Seconds int   // duration in seconds
	Views   int64 // view count
}

// DurationString returns the duration formatted as m:ss or h:mm:ss
func (vi *VideoInfo) DurationString() string {
	if vi.Seconds <= 0 {
		return "0:00"
	}

	hours := vi.Seconds / 3600
	minutes := (vi.Seconds % 3600) / 60
	seconds := vi.Seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// DisplayTitle returns the title, or the URL as a fallback
func (dt *DownloadTask) DisplayTitle() string {
	if dt.Info != nil && dt.Info.Title != "" && !strings.HasPrefix(dt.Info.Title, "http") {
		return dt.Info.Title
	}
	return dt.URL
}
