package materializer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gscperrors "github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/gscptypes"
)

// fakeStreamer serves object bytes from memory and can simulate failures.
type fakeStreamer struct {
	objects   map[string][]byte
	openErr   error
	failAfter int // if > 0, readers fail after this many bytes
}

func (f *fakeStreamer) NewObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	content, ok := f.objects[key]
	if !ok {
		return nil, gscperrors.NewObjectError("newObjectReader", bucket, key, gscperrors.ErrObjectNotFound)
	}
	if f.failAfter > 0 {
		return io.NopCloser(&failingReader{data: content[:f.failAfter]}), nil
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// failingReader yields its data and then an error instead of EOF.
type failingReader struct {
	data []byte
	pos  int
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, errors.New("simulated transfer failure")
	}
	n := copy(p, r.data[r.pos:])
	r.pos += n
	return n, nil
}

func task(key string) gscptypes.DownloadTask {
	return gscptypes.DownloadTask{
		Object:          gscptypes.RemoteObject{Key: key},
		DestinationRoot: "/out",
	}
}

func readFile(t *testing.T, fsys billy.Filesystem, path string) []byte {
	t.Helper()
	content, err := util.ReadFile(fsys, path)
	require.NoError(t, err)
	return content
}

func TestMaterialize_WritesFileUnderDestinationRoot(t *testing.T) {
	fsys := memfs.New()
	streamer := &fakeStreamer{objects: map[string][]byte{
		"reports/2024/jan.csv": []byte("month,total\njan,42\n"),
	}}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("reports/2024/jan.csv"))

	require.NoError(t, outcome.Err)
	assert.Equal(t, "/out/reports/2024/jan.csv", outcome.LocalPath)
	assert.Equal(t, int64(len("month,total\njan,42\n")), outcome.Bytes)
	assert.Contains(t, outcome.ContentType, "text/")
	assert.Equal(t, []byte("month,total\njan,42\n"), readFile(t, fsys, "/out/reports/2024/jan.csv"))

	// Both intermediate directories exist.
	info, err := fsys.Stat("/out/reports/2024")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestMaterialize_OverwritesExistingFile(t *testing.T) {
	fsys := memfs.New()
	require.NoError(t, util.WriteFile(fsys, "/out/a/1.txt", []byte("stale and much longer content"), 0o644))

	streamer := &fakeStreamer{objects: map[string][]byte{"a/1.txt": []byte("fresh")}}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("a/1.txt"))

	require.NoError(t, outcome.Err)
	assert.Equal(t, []byte("fresh"), readFile(t, fsys, "/out/a/1.txt"))
}

func TestMaterialize_LargeObjectStreamsPastSniffWindow(t *testing.T) {
	fsys := memfs.New()
	content := bytes.Repeat([]byte("0123456789abcdef"), 1024) // 16 KiB
	streamer := &fakeStreamer{objects: map[string][]byte{"big.bin": content}}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("big.bin"))

	require.NoError(t, outcome.Err)
	assert.Equal(t, int64(len(content)), outcome.Bytes)
	assert.Equal(t, content, readFile(t, fsys, "/out/big.bin"))
}

func TestMaterialize_OpenFailureIsCapturedInOutcome(t *testing.T) {
	fsys := memfs.New()
	streamer := &fakeStreamer{objects: map[string][]byte{}}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("missing.txt"))

	require.Error(t, outcome.Err)
	assert.True(t, gscperrors.IsObjectNotFound(outcome.Err))
	assert.Equal(t, "missing.txt", outcome.Key)
}

func TestMaterialize_FailedTransferRemovesPartialFile(t *testing.T) {
	fsys := memfs.New()
	streamer := &fakeStreamer{
		objects:   map[string][]byte{"a/1.txt": []byte(strings.Repeat("x", 2048))},
		failAfter: 1024,
	}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("a/1.txt"))

	require.Error(t, outcome.Err)
	_, err := fsys.Stat("/out/a/1.txt")
	assert.Error(t, err, "partial file should have been removed")
}

func TestMaterialize_KeepPartialLeavesFile(t *testing.T) {
	fsys := memfs.New()
	streamer := &fakeStreamer{
		objects:   map[string][]byte{"a/1.txt": []byte(strings.Repeat("x", 2048))},
		failAfter: 1024,
	}
	m := New(streamer, fsys, "my-bucket", true, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("a/1.txt"))

	require.Error(t, outcome.Err)
	content, err := util.ReadFile(fsys, "/out/a/1.txt")
	require.NoError(t, err)
	assert.Len(t, content, 1024)
}

func TestMaterialize_KeyWithoutDirectories(t *testing.T) {
	fsys := memfs.New()
	streamer := &fakeStreamer{objects: map[string][]byte{"top.txt": []byte("hi")}}
	m := New(streamer, fsys, "my-bucket", false, zerolog.Nop())

	outcome := m.Materialize(context.Background(), task("top.txt"))

	require.NoError(t, outcome.Err)
	assert.Equal(t, []byte("hi"), readFile(t, fsys, "/out/top.txt"))
}
