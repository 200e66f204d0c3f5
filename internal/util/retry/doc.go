// Package retry re-runs an operation with exponential backoff.
//
// [Do] is used for best-effort side channels of a run, such as the metrics
// push, where a transient network error should not lose data. Key creation
// is never retried.
package retry
