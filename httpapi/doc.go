// Package httpapi binds the credential pipeline to its fixed HTTP contract.
//
// Routes:
//
//	POST /create        register, rate-limited
//	POST /authenticate  login, rate-limited
//	GET  /api/check     protected, echoes the decoded claims
//	GET  /api/users     protected, lists usernames only
//	GET  /metrics       Prometheus exposition of pipeline counters
//
// The token gate wraps the whole /api/ subtree, so every path under it is
// challenged for a token before route matching.
//
// Handlers bind to plain net/http, so they mount under any router. Response
// envelopes and status codes are contractual; internal failure detail never
// reaches a response body, only the structured log.
package httpapi
