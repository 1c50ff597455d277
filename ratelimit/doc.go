// Package ratelimit provides fixed-window request throttling over a
// pluggable counter store.
//
// # Window semantics
//
// Fixed-window counters keyed by (policy name, caller key). Every Allow call
// increments the counter before comparing, so a rejected attempt still
// consumes the window and cannot be probed for free. The window math is
// identical across stores; [MemoryStore] serves single-instance deployments
// and [RedisStore] (INCR + conditional EXPIRE on first hit, key prefix
// "crl:") shares one budget across instances.
//
// # What this package must NOT do
//
//   - Decide which routes a policy guards (the HTTP layer does).
//   - Import any other credgate package.
package ratelimit
