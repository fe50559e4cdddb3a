package download

import (
	"errors"
	"strings"
)

// ErrorKind classifies failures surfaced to clients.
type ErrorKind string

const (
	KindMissingParameter ErrorKind = "missing_parameter"
	KindInvalidRequest   ErrorKind = "invalid_request"
	KindNotFound         ErrorKind = "not_found"
	KindNotReady         ErrorKind = "not_ready"
	KindRateLimited      ErrorKind = "rate_limited"
	KindUnavailable      ErrorKind = "unavailable"
	KindExtractionFailed ErrorKind = "extraction_failed"
)

var (
	ErrMissingURL      = errors.New("url is required")
	ErrJobNotFound     = errors.New("task not found")
	ErrNotReady        = errors.New("file is not ready yet")
	ErrArtifactMissing = errors.New("file does not exist")
)

// ExtractionError is returned by the extraction engine adapter.
type ExtractionError struct {
	Kind    ErrorKind
	Message string
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// NewExtractionError classifies message and wraps it.
func NewExtractionError(message string) *ExtractionError {
	return &ExtractionError{Kind: ClassifyMessage(message), Message: message}
}

var rateLimitMarkers = []string{
	"sign in to confirm you",
	"not a bot",
	"http error 429",
	"too many requests",
}

var unavailableMarkers = []string{
	"video unavailable",
	"private video",
	"has been removed",
	"not available in your country",
	"this video is not available",
	"http error 404",
	"members-only",
	"confirm your age",
}

// ClassifyMessage maps an extraction engine message to an ErrorKind.
// Unavailability is checked first: age-gated videos also ask the viewer to
// sign in.
func ClassifyMessage(message string) ErrorKind {
	lower := strings.ToLower(message)
	for _, marker := range unavailableMarkers {
		if strings.Contains(lower, marker) {
			return KindUnavailable
		}
	}
	for _, marker := range rateLimitMarkers {
		if strings.Contains(lower, marker) {
			return KindRateLimited
		}
	}
	return KindExtractionFailed
}

// KindOf returns the kind carried by err, classifying its text otherwise.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) && extractionErr.Kind != "" {
		return extractionErr.Kind
	}
	switch {
	case errors.Is(err, ErrMissingURL):
		return KindMissingParameter
	case errors.Is(err, ErrJobNotFound), errors.Is(err, ErrArtifactMissing):
		return KindNotFound
	case errors.Is(err, ErrNotReady):
		return KindNotReady
	}
	return ClassifyMessage(err.Error())
}
