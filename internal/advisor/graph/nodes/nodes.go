package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/smart-spoon-core/advisor/internal/advisor/feedback"
	"github.com/smart-spoon-core/advisor/internal/advisor/matcher"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	"github.com/smart-spoon-core/advisor/internal/advisor/recommend"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

const (
	NodeMatch     = "ColorMatcher"
	NodeRecommend = "RecommendationEngine"

	NodeClassify  = "FeedbackClassifier"
	NodeMoreTaste = "MoreTasteAdjuster"
	NodeLessTaste = "LessTasteAdjuster"
	NodeGeneric   = "GenericAdjuster"
)

// NewMatchPreHandler copies the session context of the request into graph state.
func NewMatchPreHandler() func(context.Context, model.AnalysisInput, *model.AdvisorState) (model.AnalysisInput, error) {
	return func(ctx context.Context, in model.AnalysisInput, s *model.AdvisorState) (model.AnalysisInput, error) {
		s.SessionID = in.SessionID
		s.Profile = in.Profile
		s.Match = nil
		return in, nil
	}
}

// NewMatchNode resolves the signature to a dish, degrading when it is missing.
func NewMatchNode(m *matcher.Matcher) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.AnalysisInput) (model.MatchResult, error) {
		return m.Resolve(in.Signature, in.SignatureErr), nil
	})
}

// NewMatchPostHandler stores the match so the recommend node can read it.
func NewMatchPostHandler() func(context.Context, model.MatchResult, *model.AdvisorState) (model.MatchResult, error) {
	return func(ctx context.Context, out model.MatchResult, s *model.AdvisorState) (model.MatchResult, error) {
		s.Match = &out
		logx.Debug().
			Str("session_id", s.SessionID).
			Str("food", out.Profile.Name).
			Str("outcome", string(out.Outcome)).
			Msg("food identified")
		return out, nil
	}
}

// NewRecommendNode combines the match with the user profile held in state.
func NewRecommendNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, match model.MatchResult) (*model.Analysis, error) {
		var user model.UserProfile
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.AdvisorState) error {
			if s.Match == nil {
				return fmt.Errorf("missing match in state")
			}
			user = s.Profile
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		return &model.Analysis{
			Match:          match,
			Recommendation: recommend.Recommend(match.Profile, user),
		}, nil
	})
}

// NewClassifyPreHandler records which dish this feedback round is about.
func NewClassifyPreHandler() func(context.Context, model.FeedbackInput, *model.AdvisorState) (model.FeedbackInput, error) {
	return func(ctx context.Context, in model.FeedbackInput, s *model.AdvisorState) (model.FeedbackInput, error) {
		s.SessionID = in.SessionID
		s.Food = in.Food
		s.Branch = ""
		return in, nil
	}
}

// NewClassifyNode passes the feedback through; routing happens in the branch condition.
func NewClassifyNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.FeedbackInput) (model.FeedbackInput, error) {
		return in, nil
	})
}

// NewFeedbackCondition routes a feedback round to the adjuster for its branch.
func NewFeedbackCondition() func(context.Context, model.FeedbackInput) (string, error) {
	return func(ctx context.Context, in model.FeedbackInput) (string, error) {
		branch := feedback.Classify(in.Feedback)
		logx.Debug().Str("session_id", in.SessionID).Str("branch", string(branch)).Msg("routing feedback")
		return NodeForBranch(branch), nil
	}
}

// NodeForBranch maps a feedback branch to its adjuster node.
func NodeForBranch(b feedback.Branch) string {
	switch b {
	case feedback.BranchMore:
		return NodeMoreTaste
	case feedback.BranchLess:
		return NodeLessTaste
	default:
		return NodeGeneric
	}
}

// NewAdjusterNode produces the suggestions of one branch.
func NewAdjusterNode(b feedback.Branch) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.FeedbackInput) (model.Adjustment, error) {
		return model.Adjustment{Branch: string(b), Suggestions: feedback.SuggestFor(in.Food, b)}, nil
	})
}

// NewAdjusterPostHandler notes the branch taken for this round.
func NewAdjusterPostHandler(b feedback.Branch) func(context.Context, model.Adjustment, *model.AdvisorState) (model.Adjustment, error) {
	return func(ctx context.Context, out model.Adjustment, s *model.AdvisorState) (model.Adjustment, error) {
		s.Branch = string(b)
		logx.Debug().
			Str("session_id", s.SessionID).
			Str("food", s.Food.Name).
			Str("branch", s.Branch).
			Int("suggestions", len(out.Suggestions)).
			Msg("suggestions ready")
		return out, nil
	}
}
