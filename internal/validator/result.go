package validator

import "fmt"

// Result is the outcome of validating a single email address. The optional
// fields use pointers so that JSON encoding distinguishes "absent" from an
// empty string or zero score: on a valid result LocalPart, Domain, and
// DomainScore are set and ErrorMessage is nil; on an invalid result only
// ErrorMessage is set. The two groups are never mixed.
type Result struct {
	IsValid      bool     `json:"is_valid"`
	LocalPart    *string  `json:"local_part,omitempty"`
	Domain       *string  `json:"domain,omitempty"`
	DomainScore  *float64 `json:"domain_score,omitempty"`
	ErrorMessage *string  `json:"error_message,omitempty"`
}

// invalid builds a Result for input that failed validation.
func invalid(message string) Result {
	return Result{
		IsValid:      false,
		ErrorMessage: &message,
	}
}

// valid builds a Result for input that passed all checks.
func valid(localPart, domain string, score float64) Result {
	return Result{
		IsValid:     true,
		LocalPart:   &localPart,
		Domain:      &domain,
		DomainScore: &score,
	}
}

// StructuralError reports an internal fault in the validator itself, such as
// the address pattern failing to compile. It is never used for malformed
// input, which is always reported through Result. A StructuralError at
// construction time indicates a build defect and should be treated as fatal
// by the host.
type StructuralError struct {
	Kind    string `json:"error_type"`
	Message string `json:"message"`
	Detail  string `json:"details,omitempty"`
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}
