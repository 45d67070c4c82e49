package model

// Package model defines domain data structures used across the app: jobs,
// progress events, per-file conversion tasks, and video metadata. Structures
// are designed for direct binding in the UI and explicit state transitions.
