// Package gscp copies objects from Google Cloud Storage to a local directory.
package gscp

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	gscperrors "github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/gscptypes"
)

// Gateway is the object-store surface the copy engine depends on: bucket
// lookup, object listing, and object byte-stream retrieval. The production
// implementation wraps the Cloud Storage client; tests substitute a double.
type Gateway interface {
	// ResolveBucket confirms the bucket exists. It fails with
	// ErrBucketNotFound when the store reports the bucket absent; any other
	// failure is surfaced verbatim.
	ResolveBucket(ctx context.Context, name string) error

	// ListObjects returns the bucket's objects in listing order. The prefix
	// is a server-side narrowing hint only; callers still filter the result.
	ListObjects(ctx context.Context, bucket, prefix string) ([]gscptypes.RemoteObject, error)

	// NewObjectReader opens the object's byte stream. The caller owns the
	// returned reader and must close it.
	NewObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error)
}

// gcsGateway implements Gateway on top of a Cloud Storage client.
type gcsGateway struct {
	client *storage.Client
}

// NewGCSGateway wraps a Cloud Storage client as a Gateway.
func NewGCSGateway(client *storage.Client) Gateway {
	return &gcsGateway{client: client}
}

func (g *gcsGateway) ResolveBucket(ctx context.Context, name string) error {
	_, err := g.client.Bucket(name).Attrs(ctx)
	if errors.Is(err, storage.ErrBucketNotExist) {
		return gscperrors.NewBucketError("resolveBucket", name, gscperrors.ErrBucketNotFound)
	}
	if err != nil {
		return gscperrors.NewBucketError("resolveBucket", name, err)
	}
	return nil
}

func (g *gcsGateway) ListObjects(ctx context.Context, bucket, prefix string) ([]gscptypes.RemoteObject, error) {
	var query *storage.Query
	if prefix != "" {
		query = &storage.Query{Prefix: prefix}
	}

	var objects []gscptypes.RemoteObject
	it := g.client.Bucket(bucket).Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, gscperrors.NewBucketError("listObjects", bucket, err)
		}
		objects = append(objects, gscptypes.RemoteObject{Key: attrs.Name})
	}

	return objects, nil
}

func (g *gcsGateway) NewObjectReader(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	reader, err := g.client.Bucket(bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, gscperrors.NewObjectError("newObjectReader", bucket, key, gscperrors.ErrObjectNotFound)
	}
	if err != nil {
		return nil, gscperrors.NewObjectError("newObjectReader", bucket, key, err)
	}
	return reader, nil
}
