// Package extractionerror defines the error taxonomy of the question
// extraction pipeline and its store commit.
package extractionerror

import (
	"errors"
	"fmt"

	"fjacquet/mocktest/internal/models"
)

// ErrDocumentUnreadable matches every DocumentUnreadableError via errors.Is.
var ErrDocumentUnreadable = errors.New("document unreadable")

// DocumentUnreadableError reports a PDF that could not be opened or parsed at
// the container level. It aborts the whole extraction.
type DocumentUnreadableError struct {
	Source string
	Err    error
}

func (e *DocumentUnreadableError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("document unreadable: %v", e.Err)
	}
	return fmt.Sprintf("document unreadable '%s': %v", e.Source, e.Err)
}

func (e *DocumentUnreadableError) Unwrap() error {
	return e.Err
}

func (e *DocumentUnreadableError) Is(target error) bool {
	return target == ErrDocumentUnreadable
}

// StoreError is a failed commit of an upload's records. Nothing from the
// batch is visible in the store when it is returned.
type StoreError struct {
	Op     string
	TestID int64
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for test %d: %v", e.Op, e.TestID, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// BlockError describes a single rejected block. The pipeline collects these
// into the report instead of returning them.
type BlockError struct {
	Ordinal int
	Reason  models.RejectReason
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("question %d rejected: %s", e.Ordinal, e.Reason)
}

// IsDocumentUnreadable reports whether err is, or wraps, a
// DocumentUnreadableError.
func IsDocumentUnreadable(err error) bool {
	return errors.Is(err, ErrDocumentUnreadable)
}

// AsStoreError unwraps err to a StoreError.
func AsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
