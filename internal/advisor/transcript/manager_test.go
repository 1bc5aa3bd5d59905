package transcript

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/advisor/repo"
	errx "github.com/smart-spoon-core/advisor/internal/core/error"
)

func TestManagerRounds(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := NewManager(repo.NewMemorySessionStore(), model.SessionConfig{RecentRounds: 2})

	require.NoError(t, m.Begin(ctx, "s", model.Analysis{
		Match:          model.MatchResult{Outcome: model.Degraded, Profile: model.FoodProfile{Name: "idli"}},
		Recommendation: model.Recommendation{SaltDosage: model.DosageStandardTsp},
	}))

	last, err := m.LastRound(ctx, "s")
	require.NoError(t, err)
	assert.Nil(t, last)

	for i, fb := range []string{"need more taste", "need less taste", "ok"} {
		n, err := m.RecordRound(ctx, "s", fb, model.Adjustment{Branch: "generic", Suggestions: model.SuggestionList{fb}})
		require.NoError(t, err)
		assert.Equal(t, i+1, n)
	}

	last, err = m.LastRound(ctx, "s")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Number)
	assert.Equal(t, "ok", last.Feedback)
	assert.False(t, last.At.IsZero())

	sum, err := m.Summarize(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, "idli", sum.Food)
	assert.Equal(t, model.Degraded, sum.Outcome)
	assert.Equal(t, model.DosageStandardTsp, sum.SaltDosage)
	assert.Equal(t, 3, sum.TotalRounds)
	require.Len(t, sum.Recent, 2)
	assert.Equal(t, "need less taste", sum.Recent[0].Feedback)
	assert.Equal(t, 3, sum.Recent[1].Number)

	require.NoError(t, m.Close(ctx, "s"))
	_, err = m.Summarize(ctx, "s")
	assert.True(t, errx.IsKind(err, errx.KindNotFound))
}

func TestTrimTail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a"}, trimTail([]string{"a"}, 3))
	assert.Equal(t, []string{"b", "c"}, trimTail([]string{"a", "b", "c"}, 2))
	assert.Equal(t, 3, NewManager(nil, model.SessionConfig{}).recentRounds)
}
