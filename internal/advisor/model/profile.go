package model

// Visit frequencies recognised by the recommendation rules.
const (
	FrequencyDaily   = "Daily"
	FrequencyWeekly  = "Weekly"
	FrequencyMonthly = "Monthly"
	FrequencyRarely  = "Rarely"
)

// Medical conditions recognised by the recommendation rules.
const (
	ConditionHypertension  = "Hypertension"
	ConditionKidneyDisease = "Kidney disease"
	ConditionNone          = "None"
)

// UserProfile holds the answers of the current advisor run.
// Unrecognised values are kept verbatim and simply match no rule.
type UserProfile struct {
	Age              *int
	Gender           string
	VisitFrequency   string
	MedicalCondition string
}
