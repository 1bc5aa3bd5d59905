// Package feedback turns free-text taste feedback into adjustment suggestions.
package feedback

import (
	"strings"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
)

// Branch is one of the mutually exclusive suggestion paths.
type Branch string

const (
	BranchMore    Branch = "more_taste"
	BranchLess    Branch = "less_taste"
	BranchGeneric Branch = "generic"
)

const (
	IncreaseSalt   = "Increase salt stimulation by 20%"
	EnhanceSpice   = "Enhance spice perception"
	BoostUmami     = "Boost umami flavor profile"
	AddStimulation = "Add mild electric stimulation for richer taste"

	ReduceSalt        = "Reduce salt stimulation by 15%"
	DecreaseSpice     = "Decrease spice perception"
	BalanceFlavor     = "Balance flavor profile"
	ReduceStimulation = "Reduce electric stimulation for milder taste"

	AdjustBalance     = "Adjust flavor balance based on your preference"
	OptimizeLevels    = "Optimize taste stimulation levels"
	AlternatePatterns = "Try alternating between different stimulation patterns"
)

// Classify picks the branch for a piece of feedback. "more taste" is checked
// before "less taste"; anything else is generic.
func Classify(text string) Branch {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "more taste"):
		return BranchMore
	case strings.Contains(lower, "less taste"):
		return BranchLess
	default:
		return BranchGeneric
	}
}

// Suggest classifies text and returns the suggestions for food.
func Suggest(food model.FoodProfile, text string) model.SuggestionList {
	return SuggestFor(food, Classify(text))
}

// SuggestFor returns the suggestions of a given branch for food.
func SuggestFor(food model.FoodProfile, branch Branch) model.SuggestionList {
	var out model.SuggestionList

	switch branch {
	case BranchMore:
		if food.SaltLevel == model.LevelLow {
			out = append(out, IncreaseSalt)
		}
		if food.SpiceLevel == model.LevelLow {
			out = append(out, EnhanceSpice)
		}
		out = append(out, BoostUmami, AddStimulation)
	case BranchLess:
		if elevated(food.SaltLevel) {
			out = append(out, ReduceSalt)
		}
		if elevated(food.SpiceLevel) {
			out = append(out, DecreaseSpice)
		}
		out = append(out, BalanceFlavor, ReduceStimulation)
	default:
		out = append(out, AdjustBalance, OptimizeLevels, AlternatePatterns)
	}
	return out
}

func elevated(l model.Level) bool {
	return l == model.LevelMedium || l == model.LevelHigh
}
