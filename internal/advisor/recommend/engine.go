// Package recommend derives salt dosage and advisory notes for a matched dish.
package recommend

import (
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
)

const (
	ReasonMedical  = "due to medical condition"
	ReasonHighSalt = "this dish is naturally high in salt"
	ReasonStandard = "standard recommendation"

	NoteSodium = "Note: Frequent restaurant visits suggest monitoring sodium intake"
	NoteSenior = "Senior recommendation: Consider reduced spice stimulation"
)

// SeniorAge is the age above which spice stimulation should be reduced.
const SeniorAge = 60

// Recommend applies the dosage rules in priority order (medical condition,
// then food salt level, then the standard dose) and appends independent notes.
func Recommend(food model.FoodProfile, user model.UserProfile) model.Recommendation {
	rec := model.Recommendation{}

	switch {
	case restrictsSodium(user.MedicalCondition):
		rec.SaltDosage, rec.Reason = model.DosageQuarterTsp, ReasonMedical
	case food.SaltLevel == model.LevelHigh:
		rec.SaltDosage, rec.Reason = model.DosageHalfTsp, ReasonHighSalt
	default:
		rec.SaltDosage, rec.Reason = model.DosageStandardTsp, ReasonStandard
	}

	if visitsOften(user.VisitFrequency) {
		rec.Notes = append(rec.Notes, NoteSodium)
	}
	if user.Age != nil && *user.Age > SeniorAge {
		rec.Notes = append(rec.Notes, NoteSenior)
	}
	return rec
}

func restrictsSodium(condition string) bool {
	return condition == model.ConditionHypertension || condition == model.ConditionKidneyDisease
}

func visitsOften(frequency string) bool {
	return frequency == model.FrequencyDaily || frequency == model.FrequencyWeekly
}
