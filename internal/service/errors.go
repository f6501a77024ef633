package service

import (
	"errors"
	"fmt"

	"github.com/ad-tracker/ytsummary-go/internal/validation"
)

var (
	// ErrUnauthenticated is returned when no user identity accompanies a request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidURL is returned for input that is not an absolute URL.
	ErrInvalidURL = validation.ErrInvalidURL

	// ErrEmptyURL is returned for blank input. It also matches ErrInvalidURL.
	ErrEmptyURL = validation.ErrEmptyURL

	// ErrUnsupportedSource is returned for URLs outside the supported platforms.
	ErrUnsupportedSource = validation.ErrUnsupportedSource

	// ErrStorageUnavailable is returned when the existing-record lookup fails.
	ErrStorageUnavailable = errors.New("storage unavailable")

	errEmptySummary = errors.New("empty summary text")
)

// PersistStep names the write that failed.
type PersistStep string

// Persistence steps, in execution order.
const (
	StepIncrement     PersistStep = "increment"
	StepURLRecord     PersistStep = "url_record"
	StepSummaryRecord PersistStep = "summary_record"
	StepRelation      PersistStep = "relation"
	StepCommit        PersistStep = "commit"
)

// PersistenceError reports a failed write. Nothing from the failed unit of
// work is left behind.
type PersistenceError struct {
	Step  PersistStep
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Step, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func persistErr(step PersistStep, cause error) error {
	return &PersistenceError{Step: step, Cause: cause}
}

// UserMessage maps a pipeline error to the message shown to the submitter.
func UserMessage(err error) string {
	var pErr *PersistenceError

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return "Please sign in to submit URLs."
	case errors.Is(err, ErrEmptyURL):
		return "Please provide a YouTube URL."
	case errors.Is(err, ErrInvalidURL):
		return "Please provide a valid URL."
	case errors.Is(err, ErrUnsupportedSource):
		return "Only YouTube URLs are supported right now."
	case errors.Is(err, ErrStorageUnavailable):
		return "Unable to check the existing URL."
	case errors.As(err, &pErr):
		switch pErr.Step {
		case StepSummaryRecord:
			return "Unable to save the summary."
		case StepRelation:
			return "Unable to link the URL and summary."
		default:
			return "Unable to save this URL."
		}
	default:
		return "Something went wrong. Please try again."
	}
}

// ErrorKind returns a short label for err, used for metrics and logs.
func ErrorKind(err error) string {
	var pErr *PersistenceError

	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrUnsupportedSource):
		return "unsupported_source"
	case errors.Is(err, ErrStorageUnavailable):
		return "storage_unavailable"
	case errors.As(err, &pErr):
		return "persistence_failed"
	default:
		return "internal"
	}
}
