package platform

// Package platform contains OS/filesystem integration glue: output path
// resolution, filename sanitization, directory helpers, and opening files
// in the system file manager.
