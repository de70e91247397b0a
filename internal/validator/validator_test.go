package validator

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/sungwon/mailcheck/internal/scoring"
)

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New(scoring.NewScorer(scoring.DefaultTable()))
	if err != nil {
		t.Fatalf("New() returned structural error: %v", err)
	}
	return v
}

// checkResultInvariant asserts the mutual-exclusivity invariant: a valid
// result carries exactly the parsed fields, an invalid result carries
// exactly the error message.
func checkResultInvariant(t *testing.T, input string, res Result) {
	t.Helper()
	if res.IsValid {
		if res.LocalPart == nil || res.Domain == nil || res.DomainScore == nil {
			t.Errorf("input %q: valid result with missing fields: %+v", input, res)
		}
		if res.ErrorMessage != nil {
			t.Errorf("input %q: valid result carries error message %q", input, *res.ErrorMessage)
		}
	} else {
		if res.ErrorMessage == nil {
			t.Errorf("input %q: invalid result without error message", input)
		}
		if res.LocalPart != nil || res.Domain != nil || res.DomainScore != nil {
			t.Errorf("input %q: invalid result with populated fields: %+v", input, res)
		}
	}
}

func TestValidate_EmptyInput(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate("")
	if res.IsValid {
		t.Fatal("expected empty input to be invalid")
	}
	if res.ErrorMessage == nil || *res.ErrorMessage != msgEmpty {
		t.Errorf("expected message %q, got %v", msgEmpty, res.ErrorMessage)
	}
	checkResultInvariant(t, "", res)
}

func TestValidate_CanonicalValid(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate("test@example.com")
	if !res.IsValid {
		t.Fatalf("expected test@example.com to be valid, got %v", res.ErrorMessage)
	}
	if *res.LocalPart != "test" {
		t.Errorf("expected local part 'test', got %q", *res.LocalPart)
	}
	if *res.Domain != "example.com" {
		t.Errorf("expected domain 'example.com', got %q", *res.Domain)
	}
	if *res.DomainScore != scoring.DefaultScore {
		t.Errorf("expected default score %v, got %v", scoring.DefaultScore, *res.DomainScore)
	}
	if res.ErrorMessage != nil {
		t.Errorf("expected no error message, got %q", *res.ErrorMessage)
	}
}

func TestValidate_TrustedDomain(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate("user@google.com")
	if !res.IsValid {
		t.Fatalf("expected user@google.com to be valid, got %v", res.ErrorMessage)
	}
	if *res.DomainScore != scoring.TrustedScore {
		t.Errorf("expected trusted score %v, got %v", scoring.TrustedScore, *res.DomainScore)
	}
}

func TestValidate_DisposableDomain(t *testing.T) {
	v := newTestValidator(t)

	for _, email := range []string{"user@mailinator.com", "user@MAILINATOR.COM"} {
		res := v.Validate(email)
		if !res.IsValid {
			t.Fatalf("expected %q to be valid, got %v", email, res.ErrorMessage)
		}
		if *res.DomainScore != scoring.DisposableScore {
			t.Errorf("%q: expected disposable score %v, got %v", email, scoring.DisposableScore, *res.DomainScore)
		}
	}
}

func TestValidate_PreservesCaseVerbatim(t *testing.T) {
	v := newTestValidator(t)

	res := v.Validate("Test.User@Example.COM")
	if !res.IsValid {
		t.Fatalf("expected valid, got %v", res.ErrorMessage)
	}
	if *res.LocalPart != "Test.User" {
		t.Errorf("expected local part taken verbatim, got %q", *res.LocalPart)
	}
	if *res.Domain != "Example.COM" {
		t.Errorf("expected domain taken verbatim, got %q", *res.Domain)
	}
}

func TestValidate_LengthBoundary(t *testing.T) {
	v := newTestValidator(t)

	// 308 + 1 + 11 = 320 bytes, otherwise well-formed
	atLimit := strings.Repeat("a", 308) + "@example.com"
	if len(atLimit) != 320 {
		t.Fatalf("test setup: expected 320 bytes, got %d", len(atLimit))
	}
	res := v.Validate(atLimit)
	if !res.IsValid {
		t.Errorf("expected 320-byte address to be valid, got %v", res.ErrorMessage)
	}

	overLimit := strings.Repeat("a", 309) + "@example.com"
	res = v.Validate(overLimit)
	if res.IsValid {
		t.Fatal("expected 321-byte address to be invalid")
	}
	if *res.ErrorMessage != msgTooLong {
		t.Errorf("expected message %q, got %q", msgTooLong, *res.ErrorMessage)
	}
}

func TestValidate_LengthMeasuredInBytes(t *testing.T) {
	v := newTestValidator(t)

	// 319 ASCII bytes plus one two-byte rune: 320 code points but 321
	// bytes, so the length check fires before the pattern ever runs.
	input := strings.Repeat("a", 319) + "é"
	if len(input) != 321 {
		t.Fatalf("test setup: expected 321 bytes, got %d", len(input))
	}

	res := v.Validate(input)
	if res.IsValid {
		t.Fatal("expected over-long input to be invalid")
	}
	if *res.ErrorMessage != msgTooLong {
		t.Errorf("expected length message (bytes unit), got %q", *res.ErrorMessage)
	}
}

func TestValidate_MalformedRejections(t *testing.T) {
	v := newTestValidator(t)

	malformed := []string{
		"test2.com",
		"@domain.com",
		"test@",
		"test@@domain.com",
		"test@domain",
		"test@domain.",
		"test@.domain.com",
		"test@domain..com",
		".test@domain.com",
		"test.@domain.com",
		"te..st@domain.com",
		"test@domain.c",
		"test @domain.com",
		"test@ domain.com",
		"test\n@domain.com",
		"test@domain\n.com",
		"test@domain.com\n",
		" ",
		"\t",
	}

	for _, email := range malformed {
		res := v.Validate(email)
		if res.IsValid {
			t.Errorf("expected %q to be invalid", email)
			continue
		}
		if *res.ErrorMessage != msgInvalidFormat {
			t.Errorf("%q: expected message %q, got %q", email, msgInvalidFormat, *res.ErrorMessage)
		}
		checkResultInvariant(t, email, res)
	}
}

func TestValidate_UnicodeDomainRejected(t *testing.T) {
	v := newTestValidator(t)

	unicodeEmails := []string{
		"test@münchen.de",
		"test@москва.рф",
		"test@中国.cn",
		"tëst@domain.com",
	}

	for _, email := range unicodeEmails {
		res := v.Validate(email)
		if res.IsValid {
			t.Errorf("expected %q to be invalid (non-ASCII unsupported)", email)
			continue
		}
		if *res.ErrorMessage != msgInvalidFormat {
			t.Errorf("%q: expected message %q, got %q", email, msgInvalidFormat, *res.ErrorMessage)
		}
	}
}

func TestValidate_SpecialCharacterLocalParts(t *testing.T) {
	v := newTestValidator(t)

	for _, ch := range []string{
		"#", "$", "&", "*", "(", ")", "[", "]", "{", "}", "\\", "/",
		"|", "<", ">", "?", ":", ";", "\"", "'", "`", "~", "=", ",",
	} {
		email := "test" + ch + "@domain.com"
		res := v.Validate(email)
		if res.IsValid {
			t.Errorf("expected %q to be invalid", email)
			continue
		}
		if *res.ErrorMessage != msgInvalidFormat {
			t.Errorf("%q: expected message %q, got %q", email, msgInvalidFormat, *res.ErrorMessage)
		}
	}
}

func TestValidate_AcceptedShapes(t *testing.T) {
	v := newTestValidator(t)

	accepted := []string{
		"a@b.co",
		"test@sub.domain.com",
		"test@domain-name.com",
		"test-user@domain.com",
		"test.user@domain.com",
		"test_user@domain.com",
		"test+tag@domain.com",
		"test%percent@domain.com",
		"123@456.com",
		"test@123domain.com",
	}

	for _, email := range accepted {
		res := v.Validate(email)
		if !res.IsValid {
			t.Errorf("expected %q to be valid, got %v", email, *res.ErrorMessage)
			continue
		}
		checkResultInvariant(t, email, res)
	}
}

// The anchored pattern only constrains the first and last characters of the
// local part, so interior ".." passes the pattern and must be caught by the
// dedicated guard. This pins the guard as reachable, not dead code.
func TestValidate_ConsecutiveDotGuardIsSoleRejector(t *testing.T) {
	v := newTestValidator(t)

	input := "te..st@domain.com"
	if !v.pattern.MatchString(input) {
		t.Fatalf("expected pattern to accept %q; the guard would be unreachable", input)
	}

	res := v.Validate(input)
	if res.IsValid {
		t.Fatalf("expected %q to be rejected by the consecutive-dot guard", input)
	}
	if *res.ErrorMessage != msgInvalidFormat {
		t.Errorf("expected message %q, got %q", msgInvalidFormat, *res.ErrorMessage)
	}
}

func TestValidate_Deterministic(t *testing.T) {
	v := newTestValidator(t)

	inputs := []string{"test@example.com", "", "te..st@domain.com", "user@google.com", "bad input"}
	for _, input := range inputs {
		first := v.Validate(input)
		for i := 0; i < 3; i++ {
			if got := v.Validate(input); !reflect.DeepEqual(got, first) {
				t.Errorf("input %q: call %d differed: %+v vs %+v", input, i+2, got, first)
			}
		}
	}
}

func TestValidate_ConcurrentUse(t *testing.T) {
	v := newTestValidator(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				res := v.Validate("user@google.com")
				if !res.IsValid || *res.DomainScore != scoring.TrustedScore {
					t.Errorf("concurrent call got unexpected result: %+v", res)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestValidate_MutualExclusivityAcrossInputs(t *testing.T) {
	v := newTestValidator(t)

	inputs := []string{
		"", "a", "test@example.com", "user@mailinator.com", "te..st@domain.com",
		"@", "@@", "test@domain.", strings.Repeat("x", 400), "\x00\x01\x02",
	}
	for _, input := range inputs {
		checkResultInvariant(t, input, v.Validate(input))
	}
}
