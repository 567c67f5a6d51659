package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrProviderUnavailable indicates a catalog provider could not be reached
	ErrProviderUnavailable = errors.New("catalog provider is unreachable")

	// ErrAuthFailed indicates a provider rejected the configured API key
	ErrAuthFailed = errors.New("provider API key is invalid")

	// ErrNotFound indicates the requested entity does not exist at the provider
	ErrNotFound = errors.New("item not found")

	// ErrEmptyQuery indicates a search was invoked with a blank query
	ErrEmptyQuery = errors.New("search query is empty")
)
