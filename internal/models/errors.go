package models

import "errors"

// Error taxonomy shared by the analyzers, the sentiment classifiers and the HTTP layer.
// Callers wrap these with fmt.Errorf("%w: ...") and match with errors.Is.
var (
	// ErrInvalidInput reports blank text or a non-positive keyword limit.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSentimentUnavailable reports that the sentiment classifier is not ready.
	ErrSentimentUnavailable = errors.New("sentiment classifier unavailable")

	// ErrAnalysisFailure reports an unexpected internal fault.
	ErrAnalysisFailure = errors.New("analysis failure")
)
