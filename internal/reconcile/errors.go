package reconcile

import (
	"errors"
	"fmt"
)

var ErrListingFailed = errors.New("listing failed")

type Side string

const (
	SideLocal  Side = "local"
	SideRemote Side = "remote"
)

// ListingError aborts a pass: without both listings there is nothing to diff.
type ListingError struct {
	Side Side
	Err  error
}

func (e *ListingError) Error() string {
	return fmt.Sprintf("%s listing failed: %v", e.Side, e.Err)
}

func (e *ListingError) Unwrap() error {
	return e.Err
}

func (e *ListingError) Is(target error) bool {
	return target == ErrListingFailed
}

// TransferError is recorded against a single file. It never aborts a pass.
type TransferError struct {
	Action Action
	Key    string
	Path   string
	Err    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Action, e.Key, e.Err)
}

func (e *TransferError) Unwrap() error {
	return e.Err
}
