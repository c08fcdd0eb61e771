// Package scheduler dispatches per-object download tasks, either sequentially
// or through a bounded pool of workers.
//
// The pool enforces the caller's concurrency bound exactly: at most N tasks
// are in flight at any moment, and Run blocks until every dispatched task has
// completed. One outcome is collected per task; a failing task never aborts
// its siblings.
package scheduler

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/infraops/gscp/gscptypes"
)

// MaterializeFunc downloads one object and reports its outcome. It must not
// panic or leak errors past the task boundary; failures belong in the outcome.
type MaterializeFunc func(ctx context.Context, task gscptypes.DownloadTask) gscptypes.DownloadOutcome

// Scheduler decides sequential vs. bounded-concurrent execution and
// dispatches download tasks.
type Scheduler struct {
	concurrency int
	semaphore   chan struct{}
	log         zerolog.Logger
}

// New creates a scheduler. A concurrency of zero or one selects sequential
// execution in listing order.
func New(concurrency int, log zerolog.Logger) *Scheduler {
	s := &Scheduler{
		concurrency: concurrency,
		log:         log,
	}
	if concurrency > 1 {
		s.semaphore = make(chan struct{}, concurrency)
	}
	return s
}

// Run dispatches one task per object and blocks until all of them complete.
// It returns exactly one outcome per object. Outcomes are indexed by the
// listing order of their objects; completion order is not guaranteed.
func (s *Scheduler) Run(
	ctx context.Context,
	objects []gscptypes.RemoteObject,
	destinationRoot string,
	materialize MaterializeFunc,
) []gscptypes.DownloadOutcome {
	if len(objects) == 0 {
		return nil
	}

	if s.concurrency <= 1 {
		return s.runSequential(ctx, objects, destinationRoot, materialize)
	}
	return s.runConcurrent(ctx, objects, destinationRoot, materialize)
}

func (s *Scheduler) runSequential(
	ctx context.Context,
	objects []gscptypes.RemoteObject,
	destinationRoot string,
	materialize MaterializeFunc,
) []gscptypes.DownloadOutcome {
	outcomes := make([]gscptypes.DownloadOutcome, len(objects))
	for i, obj := range objects {
		task := gscptypes.DownloadTask{Object: obj, DestinationRoot: destinationRoot}
		outcomes[i] = s.runTask(ctx, task, materialize)
	}
	return outcomes
}

func (s *Scheduler) runConcurrent(
	ctx context.Context,
	objects []gscptypes.RemoteObject,
	destinationRoot string,
	materialize MaterializeFunc,
) []gscptypes.DownloadOutcome {
	var wg sync.WaitGroup

	// Each task writes only its own slot, so the slice needs no lock.
	outcomes := make([]gscptypes.DownloadOutcome, len(objects))

	for i, obj := range objects {
		task := gscptypes.DownloadTask{Object: obj, DestinationRoot: destinationRoot}

		// Acquire a worker slot before dispatching; this is what bounds the
		// number of in-flight tasks.
		select {
		case s.semaphore <- struct{}{}:
		case <-ctx.Done():
			outcomes[i] = gscptypes.DownloadOutcome{Key: obj.Key, Err: ctx.Err()}
			continue
		}

		wg.Add(1)
		go func(i int, task gscptypes.DownloadTask) {
			defer func() {
				<-s.semaphore
				wg.Done()
			}()
			outcomes[i] = s.runTask(ctx, task, materialize)
		}(i, task)
	}

	wg.Wait()
	return outcomes
}

func (s *Scheduler) runTask(
	ctx context.Context,
	task gscptypes.DownloadTask,
	materialize MaterializeFunc,
) gscptypes.DownloadOutcome {
	outcome := materialize(ctx, task)
	if outcome.Success() {
		s.log.Debug().
			Str("key", outcome.Key).
			Str("local_path", outcome.LocalPath).
			Int64("bytes", outcome.Bytes).
			Msg("downloaded object")
	} else {
		s.log.Error().
			Err(outcome.Err).
			Str("key", outcome.Key).
			Msg("download failed")
	}
	return outcome
}
