// Package engine talks to a LibreTranslate-compatible translation endpoint.
//
// The client retries transient failures with bounded exponential backoff,
// honours Retry-After on throttling responses, and gives up immediately on
// client errors and context cancellation.
package engine
