package convert

// Package convert implements batch audio-to-MP3 conversion built on ffmpeg.
// It enumerates supported audio files under a source folder, resolves
// collision-free output names, transcodes each file, and isolates per-file
// failures so one bad input never aborts the batch.
