package credgate

import "errors"

var (
	// ErrUsernameRequired is returned by Register when the username is empty.
	ErrUsernameRequired = errors.New("username required")
	// ErrDuplicateUser is returned when a registration targets an existing username.
	ErrDuplicateUser = errors.New("username already taken")
	// ErrPasswordPolicy is the sentinel unwrapped from a [PolicyError].
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrUserNotFound is returned by Login (and by [UserRepository] lookups)
	// when no record exists for the username.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword is returned by Login when the candidate password does
	// not verify against the stored digest.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInternal wraps hasher, token, and repository failures that are not
	// attributable to caller input. The wrapped detail never reaches HTTP
	// responses.
	ErrInternal = errors.New("internal error")
	// ErrPipelineNotReady is returned when a Pipeline is used before Build
	// completed.
	ErrPipelineNotReady = errors.New("pipeline not initialized")
)

// PolicyError reports which password-policy rules a candidate failed.
// Violations preserve rule order and are safe to show to the end user.
type PolicyError struct {
	Violations []string
}

func (e *PolicyError) Error() string { return "password policy violation" }

func (e *PolicyError) Unwrap() error { return ErrPasswordPolicy }
