// Package logquery turns a user's raw exercise log into the filtered,
// limited and rendered view served by the logs endpoint.
//
// Dates are compared at day granularity: every entry is first rendered as a
// calendar date ("Sun Jan 15 2023", UTC) and the rendered value is what the
// from/to bounds are checked against. Both bounds are inclusive. The limit is
// applied after filtering and keeps append order; entries are never sorted.
//
// Malformed parameters never fail a query. A from/to value that cannot be
// parsed, and a limit that is not a non-negative integer, are ignored as if
// they had not been sent.
package logquery
