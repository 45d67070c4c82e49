package job

import "fmt"

// ValidationError reports parameters rejected synchronously on submit,
// before any background work starts.
type ValidationError struct {
	Field  string
	Reason string
}

// Error returns the error message
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvalidURLError reports a syntactically malformed media URL
type InvalidURLError struct {
	URL string
}

// Error returns the error message
func (e *InvalidURLError) Error() string {
	return fmt.Sprintf("invalid URL: %q", e.URL)
}

// FetchError reports a metadata retrieval failure (network, unavailable
// video, private or region-locked content)
type FetchError struct {
	URL string
	Err error
}

// Error returns the error message
func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch info for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *FetchError) Unwrap() error {
	return e.Err
}

// DownloadError reports a failure while fetching the media stream
type DownloadError struct {
	URL string
	Err error
}

// Error returns the error message
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ConversionError reports a transcode failure for one input
type ConversionError struct {
	Path string
	Err  error
}

// Error returns the error message
func (e *ConversionError) Error() string {
	return fmt.Sprintf("conversion failed for %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *ConversionError) Unwrap() error {
	return e.Err
}
