// Package materializer resolves local destination paths and writes object
// byte streams to them.
package materializer

import (
	"context"
	"io"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"

	"github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/gscptypes"
	"github.com/infraops/gscp/internal/pool"
)

// sniffLen is how many leading bytes feed content-type detection.
const sniffLen = 512

// ObjectStreamer retrieves an object's byte stream from the store.
type ObjectStreamer interface {
	NewObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// Materializer writes remote objects into a local directory tree.
// It is safe for use by concurrent scheduler workers: the only shared state
// is the destination tree, and parent directory creation tolerates races.
type Materializer struct {
	streamer    ObjectStreamer
	fs          billy.Filesystem
	bucket      string
	keepPartial bool
	log         zerolog.Logger
}

// New creates a materializer for objects of a single bucket.
func New(streamer ObjectStreamer, fsys billy.Filesystem, bucket string, keepPartial bool, log zerolog.Logger) *Materializer {
	return &Materializer{
		streamer:    streamer,
		fs:          fsys,
		bucket:      bucket,
		keepPartial: keepPartial,
		log:         log,
	}
}

// Materialize downloads one object under the task's destination root,
// creating missing parent directories and overwriting any existing file.
// Failures are captured in the outcome, never raised past the task boundary.
func (m *Materializer) Materialize(ctx context.Context, task gscptypes.DownloadTask) gscptypes.DownloadOutcome {
	key := task.Object.Key
	localPath := m.fs.Join(task.DestinationRoot, key)
	outcome := gscptypes.DownloadOutcome{Key: key, LocalPath: localPath}

	// Concurrent sibling tasks race to create shared parents; MkdirAll treats
	// an already existing directory as success, so losing the race is fine.
	parent := filepath.Dir(localPath)
	if err := m.fs.MkdirAll(parent, 0o755); err != nil {
		outcome.Err = errors.NewObjectError("materialize", m.bucket, key, err).
			WithMessage("failed to create parent directory " + parent)
		return outcome
	}

	reader, err := m.streamer.NewObjectReader(ctx, m.bucket, key)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	defer reader.Close()

	written, contentType, err := m.writeFile(localPath, reader)
	outcome.Bytes = written
	outcome.ContentType = contentType
	if err != nil {
		outcome.Err = errors.NewObjectError("materialize", m.bucket, key, err).
			WithMessage("failed to write " + localPath)
		if !m.keepPartial {
			if rmErr := m.fs.Remove(localPath); rmErr != nil {
				m.log.Warn().Err(rmErr).Str("local_path", localPath).Msg("could not remove partial file")
			}
		}
		return outcome
	}

	return outcome
}

// writeFile streams the object into localPath, truncating any existing file,
// and sniffs the content type from the leading bytes.
func (m *Materializer) writeFile(localPath string, reader io.Reader) (int64, string, error) {
	file, err := m.fs.Create(localPath)
	if err != nil {
		return 0, "", err
	}

	header := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, header)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		file.Close()
		return 0, "", err
	}
	contentType := mimetype.Detect(header[:n]).String()

	written := int64(0)
	if n > 0 {
		if _, err := file.Write(header[:n]); err != nil {
			file.Close()
			return 0, contentType, err
		}
		written += int64(n)
	}

	buf := pool.GetBuffer()
	rest, err := io.CopyBuffer(file, reader, buf)
	pool.PutBuffer(buf)
	written += rest
	if err != nil {
		file.Close()
		return written, contentType, err
	}

	return written, contentType, file.Close()
}
