package domain

import "errors"

var (
	// ErrUnknownLayer signals a layer name outside the fixed set.
	ErrUnknownLayer = errors.New("unknown search layer")
	// ErrEmptyQuery signals a missing search query.
	ErrEmptyQuery = errors.New("query is required")
	// ErrProviderError signals an LLM provider call failure.
	ErrProviderError = errors.New("llm provider error")
	// ErrAllProvidersFailed signals that every provider in the fallback chain failed.
	ErrAllProvidersFailed = errors.New("all llm providers failed")
	// ErrHistoryUnavailable signals a search-history store failure.
	ErrHistoryUnavailable = errors.New("search history unavailable")
)
