package entity

import "errors"

// Domain errors
var (
	// Index errors
	ErrIndexUnavailable = errors.New("index is not available")
	ErrIndexCorrupt     = errors.New("index data is corrupt")
	ErrNoDocuments      = errors.New("no documents found in knowledge base")

	// Generation errors
	ErrGenerationUnavailable = errors.New("generation service unavailable")
	ErrGenerationRejected    = errors.New("generation rejected by content policy")
	ErrGenerationTimeout     = errors.New("generation timed out")
	ErrMalformedOutput       = errors.New("model output does not match expected schema")

	// Embedding and document errors
	ErrEmbeddingFailed   = errors.New("embedding request failed")
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// Currency errors
	ErrUnknownCurrency  = errors.New("unknown currency code")
	ErrRatesUnavailable = errors.New("exchange rates unavailable")

	// Validation errors
	ErrMissingField     = errors.New("required field is missing")
	ErrInvalidFormat    = errors.New("invalid format")
	ErrInvalidParameter = errors.New("invalid parameter")
)
