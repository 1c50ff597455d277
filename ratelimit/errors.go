package ratelimit

import "errors"

// ErrStoreUnavailable wraps counter-store failures. Callers decide whether
// to fail open or closed; the limiter itself reports the error as-is.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")
