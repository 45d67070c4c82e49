package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the job runner and the
// conversion/download workers, and renders progress by draining each
// job's event channel. All UI strings are localized via Localization.
