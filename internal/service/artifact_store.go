package service

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"rfpflow/internal/port"
)

// ArtifactStore writes per-run artifacts under <prefix>/<run id>/<name>.
type ArtifactStore struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewArtifactStore creates an ArtifactStore. A nil storage disables artifacts.
func NewArtifactStore(storage port.ObjectStorage, bucket, prefix string) *ArtifactStore {
	return &ArtifactStore{storage: storage, bucket: bucket, prefix: prefix}
}

// Key returns the object key for a run artifact.
func (a *ArtifactStore) Key(runID uuid.UUID, name string) string {
	return path.Join(a.prefix, runID.String(), name)
}

// Put uploads data as the named artifact of runID.
func (a *ArtifactStore) Put(ctx context.Context, runID uuid.UUID, name, contentType string, data []byte) error {
	if a == nil || a.storage == nil {
		return nil
	}
	key := a.Key(runID, name)
	_, err := a.storage.Upload(ctx, port.UploadInput{
		Bucket:      a.bucket,
		Key:         key,
		Body:        bytes.NewReader(data),
		ContentType: contentType,
		Size:        int64(len(data)),
	})
	if err != nil {
		return fmt.Errorf("artifacts.Put %s: %w", key, err)
	}
	return nil
}
