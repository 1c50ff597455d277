// Package jwt issues and verifies HS256 bearer tokens.
//
// Tokens are self-contained: subject, issue time, expiry, and a random jti
// travel inside the signed payload, so verification needs no server-side
// state and a single token cannot be revoked before its expiry.
//
// # Architecture boundaries
//
// This package owns token encoding and validation only. Who gets a token is
// decided by the pipeline; how a token reaches a request is decided by the
// middleware.
//
// # What this package must NOT do
//
//   - Expose error detail beyond [ErrTokenExpired] and [ErrTokenInvalid].
//   - Log or return the signing secret.
//   - Import any other credgate package.
package jwt
