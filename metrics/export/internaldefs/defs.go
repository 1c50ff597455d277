package internaldefs

import (
	"github.com/credgate/credgate"
)

// CounterDef binds a pipeline counter to its exported name.
type CounterDef struct {
	ID   credgate.MetricID
	Name string
	Help string
}

// HistogramDef binds a pipeline histogram to its exported name.
type HistogramDef struct {
	ID   credgate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a fixed order.
var CounterDefs = []CounterDef{
	{ID: credgate.MetricRegisterSuccess, Name: "credgate_register_success_total", Help: "Successful registrations."},
	{ID: credgate.MetricRegisterDuplicate, Name: "credgate_register_duplicate_total", Help: "Registrations rejected for an existing username."},
	{ID: credgate.MetricRegisterPolicyRejected, Name: "credgate_register_policy_rejected_total", Help: "Registrations rejected by the password policy."},
	{ID: credgate.MetricLoginSuccess, Name: "credgate_login_success_total", Help: "Successful logins."},
	{ID: credgate.MetricLoginFailure, Name: "credgate_login_failure_total", Help: "Logins rejected for unknown user or wrong password."},
	{ID: credgate.MetricTokenIssued, Name: "credgate_token_issued_total", Help: "Minted bearer tokens."},
	{ID: credgate.MetricTokenVerifySuccess, Name: "credgate_token_verify_success_total", Help: "Token verifications that passed."},
	{ID: credgate.MetricTokenVerifyFailure, Name: "credgate_token_verify_failure_total", Help: "Expired or invalid tokens presented."},
	{ID: credgate.MetricRateLimitHit, Name: "credgate_rate_limit_hit_total", Help: "Requests denied by the rate limiter."},
	{ID: credgate.MetricInternalError, Name: "credgate_internal_error_total", Help: "Hasher, token, and store failures."},
}

// HistogramDefs lists every exported histogram in a fixed order.
var HistogramDefs = []HistogramDef{
	{ID: credgate.MetricVerifyLatency, Name: "credgate_verify_latency_seconds", Help: "Token verification latency histogram."},
}

// HistogramBounds is the textual form of the bucket upper bounds.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramUpperBounds is the numeric form of the finite bucket bounds in
// seconds; the +Inf bucket is implicit.
var HistogramUpperBounds = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}

// HistogramBoundSuffix is the instrument-name-safe form of the bounds.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed
// bucket count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to the cumulative form both
// exposition formats expect.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
