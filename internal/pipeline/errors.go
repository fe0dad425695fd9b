package pipeline

import (
	"errors"
	"fmt"
)

// InvalidTypeMessage is the client-facing rejection for non-PDF uploads.
const InvalidTypeMessage = "Invalid file type. Only PDFs are accepted."

// ErrInvalidInputType rejects an upload whose declared media type is not
// application/pdf. The check happens before any upstream call.
var ErrInvalidInputType = errors.New(InvalidTypeMessage)

// StorageWriteError reports a failed artifact write. A failed write fails
// the whole request; partial results are never returned.
type StorageWriteError struct {
	Path string
	Err  error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("failed to write artifact %s: %v", e.Path, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
