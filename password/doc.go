// Package password implements password strength policy and Argon2id hashing.
//
// # Output format
//
// Digests are encoded in PHC string format:
//
//	$argon2id$v=19$m=<memory>,t=<time>,p=<threads>$<salt>$<hash>
//
// Every hashing call draws a fresh random salt, so two digests of the same
// plaintext differ while both verify.
//
// # Architecture boundaries
//
// This package owns strength evaluation, hashing, and verification only.
// User lookup, duplicate checks, and token issuance are enforced by the
// pipeline.
//
// # What this package must NOT do
//
//   - Store or retrieve passwords. Callers supply plaintext and receive digests.
//   - Import any other credgate package.
//   - Include plaintext or digest bytes in error text.
package password
