// Package errors provides centralized error definitions for the application.
//
// Naming conventions:
//   - Exported errors (Err*): use for errors that callers check with errors.Is
//   - All sentinel errors are variables, not inline errors.New calls
//   - Use fmt.Errorf with %w to wrap sentinel errors with context
package errors

import "errors"

// Calendar errors.
var (
	// ErrInvalidDate indicates a Jalali (year, month, day) triple that does
	// not exist, e.g. Esfand 30 in a non-leap year.
	ErrInvalidDate = errors.New("invalid jalali date")

	// ErrYearOutOfRange indicates a Jalali year outside the supported range.
	ErrYearOutOfRange = errors.New("jalali year out of supported range")
)

// Channel and entity resolution errors.
var (
	// ErrChannelNotFound indicates a channel could not be found.
	ErrChannelNotFound = errors.New("channel not found")

	// ErrNotAChannel indicates the entity is not a channel type.
	ErrNotAChannel = errors.New("entity is not a channel")

	// ErrNoMedia indicates a message carries no downloadable media.
	ErrNoMedia = errors.New("message has no media")
)

// LLM errors.
var (
	// ErrEmptyResponse indicates an empty response was received.
	ErrEmptyResponse = errors.New("empty response")

	// ErrNoProvidersAvailable indicates no configured LLM provider.
	ErrNoProvidersAvailable = errors.New("no LLM providers available")

	// ErrAllProvidersFailed indicates every provider in the chain failed.
	ErrAllProvidersFailed = errors.New("all LLM providers failed")

	// ErrCircuitBreakerOpen indicates the circuit breaker has tripped.
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// Storage errors.
var (
	// ErrNotFound is a generic not found error.
	ErrNotFound = errors.New("not found")

	// ErrCacheNotFound indicates a geocode cache entry was not found.
	ErrCacheNotFound = errors.New("cache entry not found")
)

// Is is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a convenience wrapper around errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
