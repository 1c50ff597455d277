// Package credgate provides a stateless credential pipeline: password policy
// enforcement, Argon2id digests, HS256 bearer tokens, and fixed-window rate
// limiting behind one builder.
//
// The package is designed for concurrent server workloads: Pipeline methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// credgate is the public surface. It exposes [Pipeline], [Builder], [Config],
// the [UserRepository] contract, and value types (MetricsSnapshot,
// LoginResult). Policy evaluation, hashing, token codec, and window math live
// in subpackages that never import this one; HTTP binding lives in
// middleware and httpapi on top.
//
// # What this package must NOT do
//
//   - Keep server-side token state: tokens are self-contained and cannot be
//     revoked individually before expiry.
//   - Expose password digests through any listing or error path.
//   - Log: the library stays silent and reports through errors and metrics;
//     logging belongs to the HTTP boundary and the binary.
package credgate
