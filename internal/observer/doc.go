// Package observer counts marker lines in the log stream of a running
// listener container.
//
// Observe returns when the marker has been seen Target times, when Timeout
// has elapsed since observation started, when the stream ends, or when the
// context is cancelled, whichever happens first. The timeout is driven by a
// timer that is independent of line arrival, so a stream that never produces
// output still returns on time.
//
// Whatever the exit path, the stream is terminated and the goroutine reading
// it is joined before Observe returns. A timeout is a normal outcome and is
// reported through Result.Reason, never as an error.
package observer
