// Package localstore persists store snapshots between application sessions:
// a small keyed JSON store backed by a gocloud.dev blob bucket.
package localstore

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	"storefront/config"
	"storefront/internal/domain/service"
)

// blobStorage implements service.SnapshotStorage over a blob bucket.
type blobStorage struct {
	ctx    context.Context
	bucket *blob.Bucket
	logger *slog.Logger
}

// Params holds dependencies for the snapshot storage, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New opens a file-backed bucket under the configured storage path and
// registers its teardown with the fx lifecycle.
func New(params Params) (service.SnapshotStorage, error) {
	bucket, err := fileblob.OpenBucket(params.Config.Storage.Path, &fileblob.Options{
		CreateDir: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open snapshot bucket at %s", params.Config.Storage.Path)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return bucket.Close()
		},
	})

	return NewWithBucket(params.Ctx, bucket, params.Logger), nil
}

// NewWithBucket wraps an already opened bucket. Tests pass a memblob bucket.
func NewWithBucket(ctx context.Context, bucket *blob.Bucket, logger *slog.Logger) service.SnapshotStorage {
	return &blobStorage{ctx: ctx, bucket: bucket, logger: logger}
}

// Save encodes value and stores it under key, replacing any prior value.
func (s *blobStorage) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encode snapshot %s", key)
	}

	if err := s.bucket.WriteAll(s.ctx, key, data, nil); err != nil {
		return errors.Wrapf(err, "write snapshot %s", key)
	}
	s.logger.Debug("Saved snapshot", slog.String("key", key), slog.Int("bytes", len(data)))

	return nil
}

// Load decodes the value stored under key into out.
func (s *blobStorage) Load(key string, out any) error {
	data, err := s.bucket.ReadAll(s.ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return service.ErrKeyNotFound
		}

		return errors.Wrapf(err, "read snapshot %s", key)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decode snapshot %s", key)
	}

	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (s *blobStorage) Delete(key string) error {
	err := s.bucket.Delete(s.ctx, key)
	if err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete snapshot %s", key)
	}

	return nil
}
