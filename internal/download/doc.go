package download

// Package download implements the YouTube-to-MP3 pipeline built on yt-dlp
// (via github.com/lrstanley/go-ytdlp): URL validation, metadata preview,
// audio download and extraction, output naming, and ID3 tagging.
