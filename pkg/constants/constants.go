// Package constants provides shared constants used throughout pkgsync.
// This includes timeouts, file permissions, and the defaults that the CLI
// and writers fall back to when configuration leaves a value unset.
package constants

import "time"

// Timeout constants
const (
	// DefaultTimeout is the standard timeout for general operations
	DefaultTimeout = 10 * time.Second

	// SyncTimeout bounds a single reconciliation run
	SyncTimeout = 30 * time.Minute

	// KafkaWriteTimeout is the per-batch write timeout for the Kafka writer
	KafkaWriteTimeout = 10 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Scheduling
const (
	// DefaultSchedule is the cron expression used by `sync --schedule` with no argument
	DefaultSchedule = "@daily"
)

// Output
const (
	// DefaultOutputDir is where the file writer places changesets
	DefaultOutputDir = "./pkgsync-out"

	// DefaultKafkaTopic is the topic changeset rows are published to
	DefaultKafkaTopic = "pkgsync.changes"
)
