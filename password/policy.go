package password

import "strconv"

// DefaultSpecials is the special-character set accepted by [DefaultPolicy].
const DefaultSpecials = "!@#$%^&*()-_=+[]{};:,.<>?/|\\~`'\""

// Policy is the password strength rule set. The zero value rejects
// everything; construct via [DefaultPolicy] or fill every field.
//
// Policy instances are configured once and treated as immutable.
type Policy struct {
	// MinLength is the minimum candidate length in runes.
	MinLength int
	// MaxRun is the longest permitted run of one repeated character.
	MaxRun int
	// Specials is the set of characters satisfying the special-character rule.
	Specials string
}

// Result reports the outcome of one policy evaluation. Violations lists each
// failed rule in rule order and is safe to show to the end user.
type Result struct {
	Accepted   bool
	Violations []string
}

// DefaultPolicy returns the standard rule set: at least 6 characters, no
// character repeated more than 3 times in a row, and at least one uppercase
// letter, one digit, and one special character.
func DefaultPolicy() Policy {
	return Policy{
		MinLength: 6,
		MaxRun:    3,
		Specials:  DefaultSpecials,
	}
}

// Evaluate checks candidate against the policy. Rules run in a fixed order
// (length, repetition, character classes) and each failed rule appends
// exactly one violation. Evaluate is pure: identical input produces
// identical output, with no locale or randomness dependence.
func (p Policy) Evaluate(candidate string) Result {
	var violations []string

	runes := []rune(candidate)

	if len(runes) < p.MinLength {
		violations = append(violations, lengthViolation(p.MinLength))
	}

	if longestRun(runes) > p.MaxRun {
		violations = append(violations, runViolation(p.MaxRun))
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range runes {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
		if indexRune(p.Specials, r) {
			hasSpecial = true
		}
	}
	if !hasUpper || !hasDigit || !hasSpecial {
		violations = append(violations, classViolation())
	}

	return Result{
		Accepted:   len(violations) == 0,
		Violations: violations,
	}
}

func lengthViolation(min int) string {
	return "must be at least " + strconv.Itoa(min) + " characters long"
}

func runViolation(max int) string {
	return "must not repeat the same character more than " + strconv.Itoa(max) + " times in a row"
}

func classViolation() string {
	return "must contain at least one uppercase letter, one digit, and one special character"
}

// longestRun returns the length of the longest run of one repeated rune.
func longestRun(runes []rune) int {
	longest, current := 0, 0
	var prev rune
	for i, r := range runes {
		if i == 0 || r != prev {
			current = 1
		} else {
			current++
		}
		if current > longest {
			longest = current
		}
		prev = r
	}
	return longest
}

func indexRune(set string, r rune) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}
