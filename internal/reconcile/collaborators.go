package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/climblog/climblog/internal/blob"
)

// Filesystem is the local side of a reconciliation pass.
type Filesystem interface {
	// ListDirectory returns the file names in path, or nothing if path does not exist.
	ListDirectory(path string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	// WriteFile creates path. It fails with fs.ErrExist rather than replace
	// a log written since the listing.
	WriteFile(path string, data []byte) error
}

// ObjectStore is the remote side of a reconciliation pass.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucket string) ([]string, error)
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	PutObject(ctx context.Context, bucket, key string, data []byte) error
}

type blobStore struct {
	client blob.IBlobClient
}

// NewBlobStore adapts a blob client to ObjectStore, buffering whole objects.
func NewBlobStore(client blob.IBlobClient) ObjectStore {
	return &blobStore{client: client}
}

func (b *blobStore) ListObjects(ctx context.Context, bucket string) ([]string, error) {
	objects, err := b.client.ListObjects(ctx, bucket)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		keys = append(keys, obj.Key)
	}
	return keys, nil
}

func (b *blobStore) GetObject(ctx context.Context, bucket, key string) ([]byte, error) {
	resp, err := b.client.GetObject(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (b *blobStore) PutObject(ctx context.Context, bucket, key string, data []byte) error {
	_, err := b.client.PutObject(ctx, &blob.PutObjectParams{
		Bucket: bucket,
		Key:    key,
		Size:   int64(len(data)),
		Body:   bytes.NewReader(data),
	})
	return err
}
