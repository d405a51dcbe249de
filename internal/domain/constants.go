package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for backend requests
	DefaultHTTPClientTimeout = 60 * time.Second
	// DefaultCacheTTL is how long a generated name stays reusable
	DefaultCacheTTL = 24 * time.Hour
)

// Tracker constants
const (
	// DefaultCommandThreshold is how many commands trigger automatic naming
	DefaultCommandThreshold = 3
	// MaxSessionHistory is the number of commands retained per session
	MaxSessionHistory = 10
)

// Prompt constants
const (
	// MaxPromptCommands caps the distinct commands sent to a backend
	MaxPromptCommands = 5
)

// Usage constants
const (
	// MaxUsageRecords is the size of the retained usage log
	MaxUsageRecords = 1000
)

// Usage storage backends
const (
	UsageBackendSQLite = "sqlite"
	UsageBackendFile   = "file"
	UsageBackendMemory = "memory"
)

// Cache constants
const (
	// DefaultMaxCacheEntries is the maximum number of cached names
	DefaultMaxCacheEntries = 200
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339
)
