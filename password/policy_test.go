package password

import (
	"reflect"
	"strings"
	"testing"
)

func TestEvaluateAcceptsStrongPassword(t *testing.T) {
	policy := DefaultPolicy()

	for _, candidate := range []string{"Passw0rd!", "Other1!@", "A1!bcd", "xY9#zzz-long"} {
		result := policy.Evaluate(candidate)
		if !result.Accepted {
			t.Fatalf("expected %q to be accepted, violations: %v", candidate, result.Violations)
		}
		if len(result.Violations) != 0 {
			t.Fatalf("accepted result must carry no violations, got %v", result.Violations)
		}
	}
}

func TestEvaluateRejectsShortPassword(t *testing.T) {
	result := DefaultPolicy().Evaluate("short")
	if result.Accepted {
		t.Fatal("expected short password to be rejected")
	}

	found := false
	for _, v := range result.Violations {
		if strings.Contains(v, "at least 6 characters") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a length violation, got %v", result.Violations)
	}
}

func TestEvaluateRejectsLongRun(t *testing.T) {
	result := DefaultPolicy().Evaluate("Aaaaa1!x")
	if result.Accepted {
		t.Fatal("expected run of 4 identical characters to be rejected")
	}
	if len(result.Violations) != 1 {
		t.Fatalf("expected exactly the repetition violation, got %v", result.Violations)
	}
	if !strings.Contains(result.Violations[0], "more than 3 times in a row") {
		t.Fatalf("unexpected violation text: %q", result.Violations[0])
	}
}

func TestEvaluateAllowsRunAtLimit(t *testing.T) {
	result := DefaultPolicy().Evaluate("Aaa1!bcd")
	if !result.Accepted {
		t.Fatalf("run of exactly 3 must pass, violations: %v", result.Violations)
	}
}

func TestEvaluateRejectsMissingCharacterClasses(t *testing.T) {
	policy := DefaultPolicy()

	for _, candidate := range []string{
		"alllowercase1!", // no uppercase
		"NoDigits!!",     // no digit
		"NoSpecial123",   // no special
	} {
		result := policy.Evaluate(candidate)
		if result.Accepted {
			t.Fatalf("expected %q to be rejected", candidate)
		}
		if len(result.Violations) != 1 {
			t.Fatalf("expected only the character-class violation for %q, got %v", candidate, result.Violations)
		}
	}
}

func TestEvaluateViolationOrderFixed(t *testing.T) {
	// One candidate failing every rule: too short, a run of 4, and no
	// uppercase, digit, or special character.
	result := DefaultPolicy().Evaluate("aaaa")
	if result.Accepted {
		t.Fatal("expected rejection")
	}

	want := []string{
		lengthViolation(6),
		runViolation(3),
		classViolation(),
	}
	if !reflect.DeepEqual(result.Violations, want) {
		t.Fatalf("violations out of order:\n got %v\nwant %v", result.Violations, want)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	policy := DefaultPolicy()
	first := policy.Evaluate("weakpw")
	second := policy.Evaluate("weakpw")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Evaluate not deterministic: %v vs %v", first, second)
	}
}

func TestLongestRun(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"ab", 1},
		{"aab", 2},
		{"abbbba", 4},
		{"aaab", 3},
	}
	for _, c := range cases {
		if got := longestRun([]rune(c.in)); got != c.want {
			t.Fatalf("longestRun(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
