package reconcile

import "context"

// Executor moves one whole file in one direction. Files are read fully into
// memory and written in one call; there is no streaming or resume.
type Executor struct {
	fs    Filesystem
	store ObjectStore
}

func NewExecutor(fs Filesystem, store ObjectStore) *Executor {
	return &Executor{fs: fs, store: store}
}

func (e *Executor) Upload(ctx context.Context, bucket, key, localPath string) error {
	data, err := e.fs.ReadFile(localPath)
	if err != nil {
		return &TransferError{Action: ActionUpload, Key: key, Path: localPath, Err: err}
	}

	if err := e.store.PutObject(ctx, bucket, key, data); err != nil {
		return &TransferError{Action: ActionUpload, Key: key, Path: localPath, Err: err}
	}
	return nil
}

func (e *Executor) Download(ctx context.Context, bucket, key, localPath string) error {
	data, err := e.store.GetObject(ctx, bucket, key)
	if err != nil {
		return &TransferError{Action: ActionDownload, Key: key, Path: localPath, Err: err}
	}

	if err := e.fs.WriteFile(localPath, data); err != nil {
		return &TransferError{Action: ActionDownload, Key: key, Path: localPath, Err: err}
	}
	return nil
}
