package job

// Package job implements the background job runner shared by the conversion
// and download features. It owns job lifecycle (pending, running, terminal),
// ordered progress event delivery to the UI thread, cooperative cancellation,
// and the error taxonomy surfaced by workers.
