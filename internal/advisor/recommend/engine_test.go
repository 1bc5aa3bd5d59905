package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smart-spoon-core/advisor/internal/advisor/catalog"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
)

func age(n int) *int { return &n }

func TestMedicalConditionOverridesFood(t *testing.T) {
	t.Parallel()

	for _, condition := range []string{model.ConditionHypertension, model.ConditionKidneyDisease} {
		for _, food := range catalog.Default().All() {
			rec := Recommend(food, model.UserProfile{MedicalCondition: condition})
			assert.Equal(t, model.DosageQuarterTsp, rec.SaltDosage, "%s / %s", condition, food.Name)
			assert.Equal(t, ReasonMedical, rec.Reason)
		}
	}
}

func TestDosageByFoodSaltLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		salt      model.Level
		condition string
		want      model.SaltDosage
	}{
		{name: "high salt", salt: model.LevelHigh, condition: model.ConditionNone, want: model.DosageHalfTsp},
		{name: "medium salt", salt: model.LevelMedium, condition: model.ConditionNone, want: model.DosageStandardTsp},
		{name: "low salt", salt: model.LevelLow, condition: model.ConditionNone, want: model.DosageStandardTsp},
		{name: "unrecognised condition", salt: model.LevelHigh, condition: "Diabetes", want: model.DosageHalfTsp},
		{name: "lower-case condition is not recognised", salt: model.LevelLow, condition: "hypertension", want: model.DosageStandardTsp},
		{name: "empty condition", salt: model.LevelLow, want: model.DosageStandardTsp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := Recommend(model.FoodProfile{SaltLevel: tt.salt}, model.UserProfile{MedicalCondition: tt.condition})
			assert.Equal(t, tt.want, rec.SaltDosage)
		})
	}
}

func TestNotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		user model.UserProfile
		want []string
	}{
		{name: "daily visitor", user: model.UserProfile{VisitFrequency: model.FrequencyDaily}, want: []string{NoteSodium}},
		{name: "weekly senior", user: model.UserProfile{VisitFrequency: model.FrequencyWeekly, Age: age(75)}, want: []string{NoteSodium, NoteSenior}},
		{name: "monthly", user: model.UserProfile{VisitFrequency: model.FrequencyMonthly, Age: age(30)}},
		{name: "exactly sixty", user: model.UserProfile{Age: age(60)}},
		{name: "sixty one", user: model.UserProfile{Age: age(61)}, want: []string{NoteSenior}},
		{name: "missing age", user: model.UserProfile{VisitFrequency: "Sometimes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := Recommend(model.FoodProfile{SaltLevel: model.LevelLow}, tt.user)
			assert.Equal(t, tt.want, rec.Notes)
		})
	}
}

func TestHighSaltSeniorScenario(t *testing.T) {
	t.Parallel()

	food := model.FoodProfile{SaltLevel: model.LevelHigh, SpiceLevel: model.LevelLow}
	user := model.UserProfile{MedicalCondition: model.ConditionNone, VisitFrequency: model.FrequencyRarely, Age: age(70)}

	rec := Recommend(food, user)
	assert.Equal(t, model.DosageHalfTsp, rec.SaltDosage)
	assert.Equal(t, []string{NoteSenior}, rec.Notes)
	assert.Equal(t, "Recommended salt: 1/2 tsp (this dish is naturally high in salt)", rec.SaltLine())
}

func TestRecommendIsIdempotent(t *testing.T) {
	t.Parallel()

	food, _ := catalog.Default().Lookup("pizza")
	user := model.UserProfile{VisitFrequency: model.FrequencyDaily, Age: age(64)}

	first := Recommend(food, user)
	second := Recommend(food, user)
	assert.Equal(t, first, second)
	assert.Equal(t, 64, *user.Age)
}
