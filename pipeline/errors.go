package pipeline

import (
	"errors"
	"fmt"
)

// Kind is the failure category reported to callers.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindScrape        Kind = "scrape_failure"
	KindSummarization Kind = "summarization_failure"
	KindStorage       Kind = "storage_failure"
)

// Error wraps the stage error that aborted a request.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func fail(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the Kind of a pipeline error, or "" for any other error.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
