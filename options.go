// Package gscp provides functional options for configuring client and
// per-run behavior. These options follow the functional options pattern for
// clean, composable configuration.
package gscp

import (
	"cloud.google.com/go/storage"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/infraops/gscp/gscptypes"
)

// WithConcurrency sets the default worker count for copy runs.
// Zero or one means sequential execution; this is also the default.
func WithConcurrency(concurrency int) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		if concurrency > 0 {
			c.Concurrency = concurrency
		}
	}
}

// WithFilesystem sets the filesystem the materializer writes to.
// Defaults to the OS filesystem. This is useful for testing.
func WithFilesystem(fsys billy.Filesystem) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		c.Filesystem = fsys
	}
}

// WithLogger sets the logger for progress and debug output.
// Defaults to a no-op logger.
func WithLogger(log zerolog.Logger) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		c.Logger = log
	}
}

// WithStorageClient provides a custom Cloud Storage client, overriding the
// default credential-chain client. Use this for custom endpoints or fakes.
func WithStorageClient(client *storage.Client) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		c.StorageClient = client
	}
}

// WithDefaultPathBoundary makes recursive selection respect path boundaries
// by default for every copy run. See WithPathBoundary.
func WithDefaultPathBoundary(enabled bool) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		c.PathBoundary = enabled
	}
}

// WithDefaultKeepPartial leaves partially written files in place on failed
// transfers by default for every copy run. See WithKeepPartial.
func WithDefaultKeepPartial(enabled bool) gscptypes.Option {
	return func(c *gscptypes.ClientConfig) {
		c.KeepPartial = enabled
	}
}

// WithRecursive selects every object whose key starts with the prefix,
// instead of requiring an exact key match.
func WithRecursive(recursive bool) gscptypes.CopyOption {
	return func(c *gscptypes.CopyConfig) {
		c.Recursive = recursive
	}
}

// WithParallel sets the number of downloads allowed in flight simultaneously
// for this run. Zero or one means sequential execution in listing order.
func WithParallel(parallelism int) gscptypes.CopyOption {
	return func(c *gscptypes.CopyConfig) {
		if parallelism > 0 {
			c.Parallelism = parallelism
		}
	}
}

// WithPathBoundary restricts recursive matching to whole path segments, so
// prefix "a" matches "a/..." but no longer sibling keys like "a2/...".
// The default preserves the historical raw string-prefix behavior.
func WithPathBoundary(enabled bool) gscptypes.CopyOption {
	return func(c *gscptypes.CopyConfig) {
		c.PathBoundary = enabled
	}
}

// WithKeepPartial leaves a partially written file in place when its transfer
// fails. By default partial files are removed.
func WithKeepPartial(enabled bool) gscptypes.CopyOption {
	return func(c *gscptypes.CopyConfig) {
		c.KeepPartial = enabled
	}
}
