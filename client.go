// Package gscp provides client initialization and configuration.
//
// The Client provides a high-level interface for copying objects out of a
// Cloud Storage bucket into a local directory tree, with prefix-based
// selection and bounded-concurrent downloads.
package gscp

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"

	"github.com/infraops/gscp/errors"
	"github.com/infraops/gscp/gscptypes"
)

// Client copies objects from a bucket to the local filesystem. The gateway is
// an explicit value constructed once at startup, never a package-level
// singleton, so tests can substitute a double.
type Client struct {
	gateway Gateway
	fs      billy.Filesystem
	log     zerolog.Logger
	cfg     gscptypes.ClientConfig
}

// New creates a new gscp client. It builds a Cloud Storage client using the
// default credential chain unless one is provided via WithStorageClient.
//
// Example:
//
//	client, err := gscp.New(ctx,
//	    gscp.WithConcurrency(4),
//	    gscp.WithLogger(log),
//	)
func New(ctx context.Context, opts ...gscptypes.Option) (*Client, error) {
	cfg := gscptypes.ClientConfig{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	storageClient := cfg.StorageClient
	if storageClient == nil {
		var err error
		storageClient, err = storage.NewClient(ctx)
		if err != nil {
			return nil, errors.NewError("client initialization", errors.ErrCredentials).
				WithMessage(err.Error())
		}
	}

	return newClient(NewGCSGateway(storageClient), cfg), nil
}

// NewWithGateway creates a client around an existing Gateway implementation.
// This is primarily used for testing with gateway doubles.
func NewWithGateway(gateway Gateway, opts ...gscptypes.Option) *Client {
	cfg := gscptypes.ClientConfig{
		Logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return newClient(gateway, cfg)
}

func newClient(gateway Gateway, cfg gscptypes.ClientConfig) *Client {
	fsys := cfg.Filesystem
	if fsys == nil {
		fsys = osfs.New("/")
	}

	return &Client{
		gateway: gateway,
		fs:      fsys,
		log:     cfg.Logger,
		cfg:     cfg,
	}
}
