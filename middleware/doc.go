// Package middleware provides the HTTP gates in front of protected routes:
// token verification ([RequireToken]) and request throttling ([RateLimit]).
//
// Both middlewares terminate rejected requests themselves with the fixed
// JSON envelopes the API contract specifies; downstream handlers only ever
// see requests that passed.
package middleware
