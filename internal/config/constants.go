package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Backend client timeouts
const (
	BackendRequestTimeout = 30 * time.Second
	// Uploads carry multi-megabyte audio files.
	BackendUploadTimeout = 5 * time.Minute
)

// Request body limits for the console surface
const (
	DefaultMaxBodySize = 1 << 20  // 1MB
	UploadMaxBodySize  = 64 << 20 // 64MB, audio recordings
)
