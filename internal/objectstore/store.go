// Package objectstore publishes generated audio artifacts through a NATS
// JetStream object store bucket.
package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// AudioStore implements core.ObjectStore on a single JetStream bucket.
type AudioStore struct {
	bucket string
	store  nats.ObjectStore
}

// New creates the bucket when absent and binds to it otherwise.
func New(jetstreamContext nats.JetStreamContext, bucketName string) (*AudioStore, error) {
	store, createErr := jetstreamContext.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucketName,
		Description: fmt.Sprintf("Generated note audio artifacts (%s).", bucketName),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})
	if createErr != nil {
		if !errors.Is(createErr, jetstream.ErrBucketExists) {
			return nil, fmt.Errorf(
				"failed to create object store bucket '%s': %w",
				bucketName,
				createErr,
			)
		}

		store, createErr = jetstreamContext.ObjectStore(bucketName)
		if createErr != nil {
			return nil, fmt.Errorf(
				"failed to bind to existing object store bucket '%s': %w",
				bucketName,
				createErr,
			)
		}
	}

	return &AudioStore{
		bucket: bucketName,
		store:  store,
	}, nil
}

// Download retrieves an artifact by key.
func (s *AudioStore) Download(_ context.Context, key string) ([]byte, error) {
	object, getErr := s.store.Get(key)
	if getErr != nil {
		return nil, fmt.Errorf(
			"failed to get object '%s' from bucket '%s': %w",
			key,
			s.bucket,
			getErr,
		)
	}

	data, readErr := io.ReadAll(object)
	closeErr := object.Close()

	if readErr != nil {
		return nil, fmt.Errorf("failed to read object '%s': %w", key, readErr)
	}

	if closeErr != nil {
		return data, fmt.Errorf("failed to close object '%s': %w", key, closeErr)
	}

	return data, nil
}

// Upload stores an artifact under key, replacing any previous object with
// the same key.
func (s *AudioStore) Upload(_ context.Context, key string, data []byte) error {
	_, putErr := s.store.Put(&nats.ObjectMeta{Name: key}, bytes.NewReader(data))
	if putErr != nil {
		return fmt.Errorf(
			"failed to put object '%s' to bucket '%s': %w",
			key,
			s.bucket,
			putErr,
		)
	}

	return nil
}
