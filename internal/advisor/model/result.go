package model

import "fmt"

// MatchOutcome tells whether a food was matched by color or picked as a fallback.
type MatchOutcome string

const (
	Matched  MatchOutcome = "matched"
	Degraded MatchOutcome = "degraded"
)

// MatchResult is the output of the color matcher.
type MatchResult struct {
	Outcome  MatchOutcome
	Profile  FoodProfile
	Distance float64 // only meaningful when Outcome is Matched
	Err      error   // upstream failure that caused a Degraded pick
}

// IsDegraded reports whether the profile was chosen without a usable signature.
func (m MatchResult) IsDegraded() bool {
	return m.Outcome == Degraded
}

// SaltDosage is one of the canned salt amounts the advisor recommends.
type SaltDosage string

const (
	DosageQuarterTsp  SaltDosage = "1/4 tsp"
	DosageHalfTsp     SaltDosage = "1/2 tsp"
	DosageStandardTsp SaltDosage = "1 tsp"
)

// Recommendation is derived fresh for every (food, user) pair.
type Recommendation struct {
	SaltDosage SaltDosage
	Reason     string
	Notes      []string
}

// SaltLine renders the dosage the way the advisor prints it.
func (r Recommendation) SaltLine() string {
	return fmt.Sprintf("Recommended salt: %s (%s)", r.SaltDosage, r.Reason)
}

// SuggestionList is the ordered output of one feedback round.
type SuggestionList []string
