// Package gscptypes provides shared type definitions for the gscp module.
package gscptypes

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
)

// RemoteObject is an opaque handle to an object in the bucket.
// Key is the full object path within the bucket.
type RemoteObject struct {
	Key string
}

// DownloadTask describes one unit of download work: a selected object and the
// local directory tree it is materialized under. Tasks are created by the
// scheduler and consumed exactly once.
type DownloadTask struct {
	Object          RemoteObject
	DestinationRoot string
}

// DownloadOutcome is the per-task result collected by the scheduler. A failed
// task carries its error here instead of terminating sibling tasks.
type DownloadOutcome struct {
	// Key is the object key the task downloaded
	Key string

	// LocalPath is the resolved local file path
	LocalPath string

	// ContentType is the sniffed content type of the downloaded bytes
	ContentType string

	// Bytes is the number of bytes written to LocalPath
	Bytes int64

	// Err is the failure, if any
	Err error
}

// Success reports whether the task completed without error.
func (o DownloadOutcome) Success() bool {
	return o.Err == nil
}

// CopyResult contains the aggregated outcomes of one copy run.
type CopyResult struct {
	// Outcomes holds one entry per selected object
	Outcomes []DownloadOutcome

	// Duration is how long the download phase took
	Duration time.Duration
}

// Failed returns the number of tasks that ended in error.
func (r *CopyResult) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Success() {
			n++
		}
	}
	return n
}

// Succeeded returns the number of tasks that completed cleanly.
func (r *CopyResult) Succeeded() int {
	return len(r.Outcomes) - r.Failed()
}

// ClientConfig holds the configuration for the gscp client.
type ClientConfig struct {
	// Concurrency is the default worker count for copy runs.
	// Zero or one means sequential execution.
	Concurrency int

	// PathBoundary makes recursive selection respect path boundaries by default
	PathBoundary bool

	// KeepPartial leaves partially written files in place on a failed transfer
	KeepPartial bool

	// Filesystem is the filesystem the materializer writes to.
	// Defaults to the OS filesystem.
	Filesystem billy.Filesystem

	// Logger receives structured progress and debug output.
	// Defaults to a no-op logger.
	Logger zerolog.Logger

	// StorageClient overrides the default credential-chain storage client.
	// Used for tests and custom endpoints.
	StorageClient *storage.Client
}

// Option is a functional option for configuring the client.
type Option func(*ClientConfig)

// CopyConfig holds per-run settings for a single copy operation.
type CopyConfig struct {
	// Recursive selects every object whose key starts with the prefix.
	// Without it only an exact key match is downloaded.
	Recursive bool

	// Parallelism is the number of tasks allowed in flight simultaneously.
	// Zero or one means sequential execution in listing order.
	Parallelism int

	// PathBoundary restricts recursive matching to whole path segments,
	// so prefix "a" no longer matches sibling keys like "a2/...".
	PathBoundary bool

	// KeepPartial leaves partially written files in place on a failed transfer
	KeepPartial bool
}

// CopyOption is a functional option for configuring a single copy run.
type CopyOption func(*CopyConfig)
