// Package scoring classifies email domains into fixed trust tiers.
package scoring

import "strings"

// Trust tier score values.
const (
	TrustedScore    = 80.0
	DisposableScore = 20.0
	DefaultScore    = 50.0
)

// Tier label names, used for metrics and diagnostics.
const (
	TierTrusted    = "trusted"
	TierDisposable = "disposable"
	TierDefault    = "default"
)

// Table maps lowercase domain names to their fixed trust score. Entries not
// present score DefaultScore.
type Table map[string]float64

// DefaultTable returns the compiled-in classification: well-known mailbox
// providers are trusted, known disposable-address services are penalized.
func DefaultTable() Table {
	return Table{
		"google.com":     TrustedScore,
		"outlook.com":    TrustedScore,
		"yahoo.com":      TrustedScore,
		"mailinator.com": DisposableScore,
		"tempmail.com":   DisposableScore,
	}
}

// Scorer looks up domain trust scores in an immutable table. The table is
// copied at construction and never mutated afterward, so a Scorer is safe
// for unlimited concurrent use.
type Scorer struct {
	table Table
}

// NewScorer builds a Scorer from the given table. The table is injected
// rather than hardcoded so the classification can later come from
// configuration without touching validation logic.
func NewScorer(table Table) *Scorer {
	copied := make(Table, len(table))
	for domain, score := range table {
		copied[strings.ToLower(domain)] = score
	}
	return &Scorer{table: copied}
}

// Score returns the trust score for a domain. Lookup is case-insensitive;
// ASCII folding is sufficient since only ASCII domains pass validation.
// Score is total and never fails: unknown domains score DefaultScore.
func (s *Scorer) Score(domain string) float64 {
	if score, ok := s.table[strings.ToLower(domain)]; ok {
		return score
	}
	return DefaultScore
}

// TierName maps a score back to its tier label.
func TierName(score float64) string {
	switch score {
	case TrustedScore:
		return TierTrusted
	case DisposableScore:
		return TierDisposable
	default:
		return TierDefault
	}
}
