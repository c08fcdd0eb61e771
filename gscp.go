// Package gscp provides the copy operation tying URL parsing, bucket
// resolution, object selection, and the download scheduler together.
package gscp

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/gscptypes"
	"github.com/infraops/gscp/internal/bucketurl"
	"github.com/infraops/gscp/internal/materializer"
	"github.com/infraops/gscp/internal/scheduler"
	"github.com/infraops/gscp/internal/selector"
)

// Copy downloads the objects selected by srcURL into the dest directory,
// creating missing parent directories as needed and overwriting existing
// files.
//
// srcURL must be a gs://bucket/prefix URL. Without WithRecursive only an
// object whose key equals the prefix exactly is downloaded; with it, every
// object whose key starts with the prefix is. WithParallel bounds the number
// of simultaneous downloads; the default is sequential.
//
// A selection that matches nothing fails with ErrEmptySelection before any
// download is attempted. Per-object failures do not abort the run: they are
// captured in the result's outcomes, and callers decide how to surface them.
//
// Returns:
//   - *CopyResult: One outcome per selected object, plus the run duration
//   - error: A fatal, pre-dispatch error (bad URL, missing bucket, listing
//     failure, empty selection)
//
// Example:
//
//	result, err := client.Copy(ctx, "gs://my-bucket/reports", "/tmp/out",
//	    gscp.WithRecursive(true),
//	    gscp.WithParallel(4),
//	)
//	if err != nil {
//	    return err
//	}
//	if result.Failed() > 0 {
//	    return fmt.Errorf("%d of %d downloads failed", result.Failed(), len(result.Outcomes))
//	}
func (c *Client) Copy(
	ctx context.Context,
	srcURL, dest string,
	opts ...gscptypes.CopyOption,
) (*gscptypes.CopyResult, error) {
	cfg := gscptypes.CopyConfig{
		Parallelism:  c.cfg.Concurrency,
		PathBoundary: c.cfg.PathBoundary,
		KeepPartial:  c.cfg.KeepPartial,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ref, err := bucketurl.Parse(srcURL)
	if err != nil {
		return nil, err
	}
	if dest == "" {
		return nil, errors.NewError("copy", errors.ErrInvalidInput).
			WithMessage("destination directory cannot be empty")
	}

	destRoot, err := filepath.Abs(dest)
	if err != nil {
		return nil, errors.NewError("copy", err).
			WithMessage("failed to resolve destination directory " + dest)
	}

	if err := c.gateway.ResolveBucket(ctx, ref.Bucket); err != nil {
		return nil, err
	}

	// The prefix is pushed down to the store as a narrowing optimization; the
	// selector filter below stays authoritative for what gets downloaded.
	listing, err := c.gateway.ListObjects(ctx, ref.Bucket, ref.Prefix)
	if err != nil {
		return nil, err
	}

	selected := selector.Select(listing, ref.Prefix, cfg.Recursive, cfg.PathBoundary)
	if len(selected) == 0 {
		return nil, errors.NewBucketError("copy", ref.Bucket, errors.ErrEmptySelection).
			WithMessage(fmt.Sprintf("no objects match prefix %q", ref.Prefix))
	}

	c.log.Info().
		Str("bucket", ref.Bucket).
		Str("prefix", ref.Prefix).
		Int("objects", len(selected)).
		Int("parallel", cfg.Parallelism).
		Msg("starting copy")
	for _, obj := range selected {
		c.log.Debug().Str("key", obj.Key).Msg("selected object")
	}

	m := materializer.New(c.gateway, c.fs, ref.Bucket, cfg.KeepPartial, c.log)
	sched := scheduler.New(cfg.Parallelism, c.log)

	start := time.Now()
	outcomes := sched.Run(ctx, selected, destRoot, m.Materialize)

	result := &gscptypes.CopyResult{
		Outcomes: outcomes,
		Duration: time.Since(start),
	}

	c.log.Info().
		Int("succeeded", result.Succeeded()).
		Int("failed", result.Failed()).
		Dur("duration", result.Duration).
		Msg("copy finished")

	return result, nil
}
