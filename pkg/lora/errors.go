package lora

import "fmt"

// Validation errors are construction-time and non-retryable: the caller must
// fix the inputs and call New again. Each kind gets a typed value plus an Is*
// predicate so the HTTP/config layers can map them without string matching.

// validationError is implemented by every construction error in this package.
type validationError interface {
	error
	loraValidationError()
}

// IsValidationError reports whether err is any construction-time validation
// failure from this package. HTTP handlers use it for the 400 mapping.
func IsValidationError(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// invalidIdentifierError signals a numeric id below 1.
type invalidIdentifierError struct{ id int64 }

func (e invalidIdentifierError) Error() string {
	return fmt.Sprintf("adapter id must be >= 1, got %d", e.id)
}
func (invalidIdentifierError) loraValidationError() {}

// IsInvalidIdentifier reports whether err indicates a numeric id below 1.
func IsInvalidIdentifier(err error) bool {
	_, ok := err.(invalidIdentifierError)
	return ok
}

// incompleteInMemorySourceError signals that exactly one of source config and
// source tensors was given.
type incompleteInMemorySourceError struct{ hasConfig bool }

func (e incompleteInMemorySourceError) Error() string {
	if e.hasConfig {
		return "incomplete in-memory source: source_config given without source_tensors"
	}
	return "incomplete in-memory source: source_tensors given without source_config"
}
func (incompleteInMemorySourceError) loraValidationError() {}

// IsIncompleteInMemorySource reports whether err indicates a partial
// config/tensors pair.
func IsIncompleteInMemorySource(err error) bool {
	_, ok := err.(incompleteInMemorySourceError)
	return ok
}

// ambiguousSourceError signals that both a path and a complete in-memory pair
// were given.
type ambiguousSourceError struct{}

func (ambiguousSourceError) Error() string {
	return "ambiguous adapter source: provide either path or (source_config + source_tensors), not both"
}
func (ambiguousSourceError) loraValidationError() {}

// IsAmbiguousSource reports whether err indicates both source routes were
// given at once.
func IsAmbiguousSource(err error) bool {
	_, ok := err.(ambiguousSourceError)
	return ok
}

// missingSourceError signals that neither source route was given.
type missingSourceError struct{}

func (missingSourceError) Error() string {
	return "missing adapter source: provide path for file-based weights, or both source_config and source_tensors for in-memory weights"
}
func (missingSourceError) loraValidationError() {}

// IsMissingSource reports whether err indicates neither source route was
// given.
func IsMissingSource(err error) bool {
	_, ok := err.(missingSourceError)
	return ok
}
