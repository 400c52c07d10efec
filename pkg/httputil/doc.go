// Package httputil provides HTTP utilities for the align service client.
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped in [RetryableError] are retried; anything else is
// returned immediately. The delay doubles after each failed attempt:
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return doRequest()
//	})
//
// [RetryWithBackoff] applies the default policy of 3 attempts starting
// at 1 second.
package httputil
