package graph

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-spoon-core/advisor/internal/advisor/catalog"
	"github.com/smart-spoon-core/advisor/internal/advisor/feedback"
	"github.com/smart-spoon-core/advisor/internal/advisor/graph/nodes"
	"github.com/smart-spoon-core/advisor/internal/advisor/matcher"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/advisor/recommend"
)

func newRunner(t *testing.T) Runner {
	t.Helper()
	m := matcher.New(catalog.Default(), matcher.WithRand(rand.New(rand.NewPCG(1, 2))))
	r, err := BuildAdvisor(context.Background(), Config{Matcher: m})
	require.NoError(t, err)
	return r
}

func TestBuildAdvisorRequiresMatcher(t *testing.T) {
	t.Parallel()

	_, err := BuildAdvisor(context.Background(), Config{})
	assert.Error(t, err)
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	age := 70

	out, err := r.Analyze(context.Background(), model.AnalysisInput{
		SessionID: "s1",
		Signature: model.ColorSignature{R: 180, G: 50, B: 50},
		Profile: model.UserProfile{
			Age:              &age,
			VisitFrequency:   model.FrequencyRarely,
			MedicalCondition: model.ConditionNone,
		},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, model.Matched, out.Match.Outcome)
	assert.Equal(t, "pizza", out.Match.Profile.Name)
	assert.Equal(t, model.DosageHalfTsp, out.Recommendation.SaltDosage)
	assert.Equal(t, []string{recommend.NoteSenior}, out.Recommendation.Notes)
}

func TestAnalyzeDegradesWithoutSignature(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	cause := errors.New("camera unavailable")

	out, err := r.Analyze(context.Background(), model.AnalysisInput{
		SessionID:    "s1",
		SignatureErr: cause,
		Profile:      model.UserProfile{MedicalCondition: model.ConditionHypertension},
	})
	require.NoError(t, err)
	assert.True(t, out.Match.IsDegraded())
	assert.ErrorIs(t, out.Match.Err, cause)
	assert.Equal(t, model.DosageQuarterTsp, out.Recommendation.SaltDosage)
}

func TestSuggestRoutesEveryBranch(t *testing.T) {
	t.Parallel()

	r := newRunner(t)
	food := model.FoodProfile{Name: "biryani", SaltLevel: model.LevelMedium, SpiceLevel: model.LevelHigh}

	tests := []struct {
		feedback string
		branch   feedback.Branch
		want     model.SuggestionList
	}{
		{feedback: "need less taste", branch: feedback.BranchLess, want: model.SuggestionList{feedback.ReduceSalt, feedback.DecreaseSpice, feedback.BalanceFlavor, feedback.ReduceStimulation}},
		{feedback: "I need MORE TASTE", branch: feedback.BranchMore, want: model.SuggestionList{feedback.BoostUmami, feedback.AddStimulation}},
		{feedback: "ok", branch: feedback.BranchGeneric, want: model.SuggestionList{feedback.AdjustBalance, feedback.OptimizeLevels, feedback.AlternatePatterns}},
	}

	for _, tt := range tests {
		t.Run(tt.feedback, func(t *testing.T) {
			t.Parallel()
			got, err := r.Suggest(context.Background(), model.FeedbackInput{SessionID: "s1", Food: food, Feedback: tt.feedback})
			require.NoError(t, err)
			assert.Equal(t, string(tt.branch), got.Branch)
			assert.Equal(t, tt.want, got.Suggestions)
			assert.Equal(t, feedback.Suggest(food, tt.feedback), got.Suggestions)
		})
	}
}

func TestNodeForBranch(t *testing.T) {
	t.Parallel()

	assert.Equal(t, nodes.NodeMoreTaste, nodes.NodeForBranch(feedback.BranchMore))
	assert.Equal(t, nodes.NodeLessTaste, nodes.NodeForBranch(feedback.BranchLess))
	assert.Equal(t, nodes.NodeGeneric, nodes.NodeForBranch(feedback.BranchGeneric))
}
