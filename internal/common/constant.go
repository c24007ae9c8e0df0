// Package common contains shared constants and sentinel errors used across
// the exercise tracker components.
package common

// RequestIDHeaderName is the HTTP header carrying the request correlation id.
const RequestIDHeaderName = "X-Request-ID"

// NotFoundMessage is the literal error text returned to API callers when a
// referenced user does not exist.
const NotFoundMessage = "Not found"
