// Package userstore provides ready-made credgate.UserRepository
// implementations.
//
// [Memory] keeps records in a mutex-guarded map for single-instance deploys
// and tests. [Redis] stores one JSON record per username under "cu:user:"
// keys, enforces uniqueness with SETNX, and maintains a username set for
// listing.
//
// # What this package must NOT do
//
//   - Return password digests through ListUsernames.
//   - Apply password policy or hashing (the pipeline owns both).
package userstore
