package generation

import "errors"

// Common errors returned by generators.
var (
	// ErrGenerationFailed is returned when answer generation fails for any general reason.
	ErrGenerationFailed = errors.New("failed to generate answer")

	// ErrInvalidResponse is returned when the model response is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry.
	ErrTransientFailure = errors.New("transient error during answer generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyQuestion is returned when asked to answer blank text.
	ErrEmptyQuestion = errors.New("question text cannot be empty")
)
