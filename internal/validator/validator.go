// Package validator implements email address validation and domain trust
// scoring as a single deterministic pipeline: guarded checks (emptiness,
// length, structural pattern, separator count, consecutive-dot guard)
// followed by a local-part/domain split and a trust score lookup.
package validator

import (
	"regexp"
	"strings"
)

// maxEmailLength is the RFC 5321 upper bound on a mail address. It is
// measured in bytes, matching the reference behavior; all boundary cases of
// interest are ASCII, where bytes and characters coincide.
const maxEmailLength = 320

// addressPattern matches the full input, anchored start to end. The local
// part must begin and end with a character from {letters, digits, _ % + -}
// and may contain dots in between. The domain is dot-separated labels that
// begin and end alphanumeric with optional interior hyphens, ending in an
// all-letter TLD of at least two characters. Non-ASCII input never matches;
// internationalized domains are unsupported.
const addressPattern = `^[a-zA-Z0-9_%+-](?:[a-zA-Z0-9._%+-]*[a-zA-Z0-9_%+-])?@[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`

// Fixed messages reported through Result.ErrorMessage.
const (
	msgEmpty         = "Email cannot be empty"
	msgTooLong       = "Email exceeds maximum length of 320 characters"
	msgInvalidFormat = "Invalid email format"
)

// Scorer assigns a trust score in [0, 100] to a domain. Implementations
// must be total and safe for concurrent use.
type Scorer interface {
	Score(domain string) float64
}

// Validator validates email addresses and scores their domains. It holds
// only the compiled pattern and the injected scorer, both read-only after
// construction, so a single Validator may be shared by any number of
// goroutines.
type Validator struct {
	pattern *regexp.Regexp
	scorer  Scorer
}

// New compiles the address pattern and returns a Validator using the given
// scorer. On pattern compilation failure it returns a *StructuralError; the
// host should treat that as a startup-time fatal condition, since it can
// only result from a build defect.
func New(scorer Scorer) (*Validator, error) {
	pattern, err := regexp.Compile(addressPattern)
	if err != nil {
		return nil, &StructuralError{
			Kind:    "PatternError",
			Message: "failed to compile address pattern",
			Detail:  err.Error(),
		}
	}
	return &Validator{pattern: pattern, scorer: scorer}, nil
}

// Validate runs the full pipeline over the input and always returns a
// Result, never an error: malformed input of any kind, including control
// characters and non-UTF8 byte sequences, is reported as an invalid Result.
// The checks run in a fixed order and short-circuit at the first failure.
func (v *Validator) Validate(email string) Result {
	if email == "" {
		return invalid(msgEmpty)
	}

	if len(email) > maxEmailLength {
		return invalid(msgTooLong)
	}

	if !v.pattern.MatchString(email) {
		return invalid(msgInvalidFormat)
	}

	// The pattern guarantees a single @, but the split is re-checked rather
	// than assumed.
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return invalid(msgInvalidFormat)
	}

	localPart, domain := parts[0], parts[1]

	// The pattern constrains only the first and last local-part characters,
	// so interior ".." still matches and must be rejected here.
	if strings.Contains(localPart, "..") {
		return invalid(msgInvalidFormat)
	}

	return valid(localPart, domain, v.scorer.Score(domain))
}
