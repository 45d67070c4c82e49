package convert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modernaudio/converter/internal/job"
)

// FFmpeg constants for MP3 encoding settings
const (
	// Audio codec settings
	AudioCodec     = "libmp3lame"
	DefaultBitrate = "192k"
	AudioQuality   = "2"

	// Executable and I/O constants
	FFmpegCommand       = "ffmpeg"
	FFprobeCommand      = "ffprobe"
	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "csv=p=0"
	ProgressPipeTarget  = "pipe:2"
	ProgressTimePrefix  = "out_time_us="
	OutputExtensionMP3  = ".mp3"
)

// Transcoder converts a single audio file to MP3 and probes input durations
type Transcoder interface {
	// Transcode converts inputPath to MP3 at outputPath. onProgress, if
	// non-nil, receives the completed fraction (0.0 to 1.0).
	Transcode(ctx context.Context, inputPath, outputPath string, onProgress func(float64)) error

	// Probe returns the duration of the input in seconds
	Probe(ctx context.Context, inputPath string) (float64, error)
}

// FFmpegTranscoder shells out to ffmpeg/ffprobe
type FFmpegTranscoder struct {
	bitrate string
}

// NewFFmpegTranscoder creates a transcoder encoding at the given bitrate
// (e.g. "192k"); an empty bitrate uses DefaultBitrate
func NewFFmpegTranscoder(bitrate string) *FFmpegTranscoder {
	if bitrate == "" {
		bitrate = DefaultBitrate
	}
	return &FFmpegTranscoder{bitrate: bitrate}
}

// BuildArgs builds the ffmpeg command arguments
func (t *FFmpegTranscoder) BuildArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",            // Overwrite output file
		"-i", inputPath, // Input file
		"-vn",                  // Drop any video stream (cover art, .mp4 inputs)
		"-codec:a", AudioCodec, // MP3 encoder
		"-b:a", t.bitrate, // Target bitrate
		"-q:a", AudioQuality, // Encoder quality
		"-progress", ProgressPipeTarget, // Progress to stderr
		"-nostats", // No stats output
		outputPath, // Output file
	}
}

// Transcode converts one file, reporting progress parsed from ffmpeg's
// out_time_us output against the probed input duration
func (t *FFmpegTranscoder) Transcode(ctx context.Context, inputPath, outputPath string, onProgress func(float64)) error {
	// Duration is only needed for progress; ignore probe failures
	duration, _ := t.Probe(ctx, inputPath)

	cmd := exec.CommandContext(ctx, FFmpegCommand, t.BuildArgs(inputPath, outputPath)...)

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return &job.ConversionError{Path: inputPath, Err: fmt.Errorf("failed to create stderr pipe: %w", err)}
	}

	if err := cmd.Start(); err != nil {
		return &job.ConversionError{Path: inputPath, Err: fmt.Errorf("failed to start ffmpeg: %w", err)}
	}

	go monitorProgress(stderr, duration, onProgress)

	err = cmd.Wait()

	if ctx.Err() != nil {
		// Remove partial output file
		os.Remove(outputPath)
		return ctx.Err()
	}
	if err != nil {
		os.Remove(outputPath)
		return &job.ConversionError{Path: inputPath, Err: err}
	}

	if onProgress != nil {
		onProgress(1.0)
	}
	return nil
}

// Probe gets the duration of an audio file using ffprobe
func (t *FFmpegTranscoder) Probe(ctx context.Context, inputPath string) (float64, error) {
	cmd := exec.CommandContext(ctx, FFprobeCommand,
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		inputPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}

// monitorProgress parses ffmpeg progress lines (out_time_us=123456) and
// reports the completed fraction
func monitorProgress(stderr io.ReadCloser, totalDuration float64, onProgress func(float64)) {
	defer stderr.Close()

	if onProgress == nil || totalDuration <= 0 {
		io.Copy(io.Discard, stderr)
		return
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, ProgressTimePrefix) {
			continue
		}

		timeMicroseconds, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
		if err != nil {
			continue
		}

		progress := (float64(timeMicroseconds) / 1e6) / totalDuration
		if progress > 1.0 {
			progress = 1.0
		}
		onProgress(progress)
	}
}

// IsCancellation reports whether err is a cooperative cancellation rather
// than a conversion failure
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled)
}
