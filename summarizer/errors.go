package summarizer

import (
	"fmt"
	"net/http"
)

// Kind classifies a failed summarization call.
type Kind string

const (
	KindAuth      Kind = "auth"
	KindRateLimit Kind = "rate_limit"
	KindUpstream  Kind = "upstream"
	KindEmpty     Kind = "empty"
)

// SummarizationError wraps any failure of the upstream LLM API.
type SummarizationError struct {
	Kind       Kind
	Provider   string
	StatusCode int
	Err        error
}

func (e *SummarizationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s summarization failed (%s, status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s summarization failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// kindForStatus maps an upstream HTTP status to a Kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindUpstream
	}
}

func newError(provider string, status int, err error) *SummarizationError {
	return &SummarizationError{Kind: kindForStatus(status), Provider: provider, StatusCode: status, Err: err}
}
