package recommend

import (
	"errors"
	"fmt"
)

var (
	// ErrModelNotReady is returned by every query before a successful Build.
	ErrModelNotReady = errors.New("recommend: model not ready")
	// ErrMovieNotFound matches any *MovieNotFoundError.
	ErrMovieNotFound = errors.New("recommend: movie not found")
	// ErrAlreadyBuilt is returned by a second Build on the same engine.
	ErrAlreadyBuilt = errors.New("recommend: engine already built")
	// ErrBuildInProgress is returned when Build is called concurrently.
	ErrBuildInProgress = errors.New("recommend: build in progress")
	// ErrEmptyCatalog is returned when the catalog has no usable rows.
	ErrEmptyCatalog = errors.New("recommend: catalog is empty")
)

// MovieNotFoundError carries the query exactly as the caller gave it.
type MovieNotFoundError struct {
	Query string
}

func (e *MovieNotFoundError) Error() string {
	return fmt.Sprintf("Movie '%s' not found in the database.", e.Query)
}

func (e *MovieNotFoundError) Is(target error) bool { return target == ErrMovieNotFound }
