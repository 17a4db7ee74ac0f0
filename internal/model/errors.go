package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable means the provider returned nothing for a symbol.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrInsufficientHistory means a series is shorter than a computation needs.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrMissingField means a dependent value could not be computed.
	ErrMissingField = errors.New("missing field")
	// ErrUniverseFetchFailed means no batch of the master fetch succeeded.
	ErrUniverseFetchFailed = errors.New("universe fetch failed")
)

// InsufficientHistoryError carries the bar counts behind an ErrInsufficientHistory.
type InsufficientHistoryError struct {
	Path string
	Need int
	Got  int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s: need %d bars, got %d", e.Path, e.Need, e.Got)
}

func (e *InsufficientHistoryError) Is(target error) bool {
	return target == ErrInsufficientHistory
}
