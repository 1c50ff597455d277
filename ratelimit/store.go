package ratelimit

import (
	"context"
	"time"
)

// Store is a fixed-window counter backend. Incr atomically increments the
// counter for key within the current window and returns the post-increment
// count. The first increment of a window starts it; once window elapses the
// counter resets to zero with a new window.
//
// Implementations must serialize concurrent increments per key so no update
// is lost. Failures are reported wrapping [ErrStoreUnavailable].
type Store interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}
