// Package apiclient is a small HTTP client for the exercise tracker API.
//
// Requests are sent as application/x-www-form-urlencoded bodies. The "Not
// found" envelope the server returns with status 200 is surfaced as
// ErrNotFound; other error bodies become *APIError.
package apiclient
