package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/smart-spoon-core/advisor/internal/advisor/feedback"
	"github.com/smart-spoon-core/advisor/internal/advisor/graph/nodes"
	"github.com/smart-spoon-core/advisor/internal/advisor/graph/observers"
	"github.com/smart-spoon-core/advisor/internal/advisor/matcher"
	"github.com/smart-spoon-core/advisor/internal/advisor/model"
	logx "github.com/smart-spoon-core/advisor/pkg/logger"
)

// Runner executes the compiled advisor graphs.
type Runner interface {
	// Analyze identifies the dish and derives the salt recommendation.
	Analyze(ctx context.Context, in model.AnalysisInput) (*model.Analysis, error)
	// Suggest turns one round of feedback into a branch and its suggestions.
	Suggest(ctx context.Context, in model.FeedbackInput) (model.Adjustment, error)
}

// Config holds everything needed to compose the advisor graphs.
type Config struct {
	Matcher *matcher.Matcher
}

type graphRunner struct {
	analysis compose.Runnable[model.AnalysisInput, *model.Analysis]
	feedback compose.Runnable[model.FeedbackInput, model.Adjustment]
}

func (r *graphRunner) Analyze(ctx context.Context, in model.AnalysisInput) (*model.Analysis, error) {
	return r.analysis.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

func (r *graphRunner) Suggest(ctx context.Context, in model.FeedbackInput) (model.Adjustment, error) {
	return r.feedback.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// BuildAdvisor compiles the analysis and feedback graphs and returns a Runner.
func BuildAdvisor(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Matcher == nil {
		return nil, fmt.Errorf("matcher is nil")
	}

	analysis, err := BuildAnalysisGraph(ctx, cfg.Matcher)
	if err != nil {
		return nil, err
	}
	fb, err := BuildFeedbackGraph(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Advisor graphs built successfully")
	return &graphRunner{analysis: analysis, feedback: fb}, nil
}

func newState(context.Context) *model.AdvisorState {
	return &model.AdvisorState{}
}

// BuildAnalysisGraph wires START -> match -> recommend -> END.
func BuildAnalysisGraph(ctx context.Context, m *matcher.Matcher) (compose.Runnable[model.AnalysisInput, *model.Analysis], error) {
	g := compose.NewGraph[model.AnalysisInput, *model.Analysis](compose.WithGenLocalState(newState))

	if err := g.AddLambdaNode(nodes.NodeMatch, nodes.NewMatchNode(m),
		compose.WithNodeName(nodes.NodeMatch),
		compose.WithStatePreHandler(nodes.NewMatchPreHandler()),
		compose.WithStatePostHandler(nodes.NewMatchPostHandler()),
	); err != nil {
		return nil, fmt.Errorf("add match node: %w", err)
	}
	if err := g.AddLambdaNode(nodes.NodeRecommend, nodes.NewRecommendNode(),
		compose.WithNodeName(nodes.NodeRecommend),
	); err != nil {
		return nil, fmt.Errorf("add recommend node: %w", err)
	}

	if err := addEdges(g, [][2]string{
		{compose.START, nodes.NodeMatch},
		{nodes.NodeMatch, nodes.NodeRecommend},
		{nodes.NodeRecommend, compose.END},
	}); err != nil {
		return nil, err
	}

	runnable, err := g.Compile(ctx, compose.WithGraphName("AdvisorAnalysis"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling analysis graph")
		return nil, fmt.Errorf("error compiling analysis graph: %w", err)
	}
	return runnable, nil
}

// BuildFeedbackGraph wires START -> classify -> {more, less, generic} -> END.
func BuildFeedbackGraph(ctx context.Context) (compose.Runnable[model.FeedbackInput, model.Adjustment], error) {
	g := compose.NewGraph[model.FeedbackInput, model.Adjustment](compose.WithGenLocalState(newState))

	if err := g.AddLambdaNode(nodes.NodeClassify, nodes.NewClassifyNode(),
		compose.WithNodeName(nodes.NodeClassify),
		compose.WithStatePreHandler(nodes.NewClassifyPreHandler()),
	); err != nil {
		return nil, fmt.Errorf("add classify node: %w", err)
	}

	branches := []feedback.Branch{feedback.BranchMore, feedback.BranchLess, feedback.BranchGeneric}
	endNodes := make(map[string]bool, len(branches))
	for _, b := range branches {
		key := nodes.NodeForBranch(b)
		if err := g.AddLambdaNode(key, nodes.NewAdjusterNode(b),
			compose.WithNodeName(key),
			compose.WithStatePostHandler(nodes.NewAdjusterPostHandler(b)),
		); err != nil {
			return nil, fmt.Errorf("add %s node: %w", key, err)
		}
		if err := g.AddEdge(key, compose.END); err != nil {
			return nil, fmt.Errorf("add edge %s -> END: %w", key, err)
		}
		endNodes[key] = true
	}

	if err := g.AddEdge(compose.START, nodes.NodeClassify); err != nil {
		return nil, fmt.Errorf("add edge START -> %s: %w", nodes.NodeClassify, err)
	}
	if err := g.AddBranch(nodes.NodeClassify, compose.NewGraphBranch(nodes.NewFeedbackCondition(), endNodes)); err != nil {
		logx.Error().Err(err).Msg("Error adding feedback branch")
		return nil, fmt.Errorf("error adding feedback branch: %w", err)
	}

	runnable, err := g.Compile(ctx, compose.WithGraphName("AdvisorFeedback"))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling feedback graph")
		return nil, fmt.Errorf("error compiling feedback graph: %w", err)
	}
	return runnable, nil
}

type edgeAdder interface {
	AddEdge(startNode, endNode string) error
}

func addEdges(g edgeAdder, edges [][2]string) error {
	for _, e := range edges {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			return fmt.Errorf("add edge %s -> %s: %w", e[0], e[1], err)
		}
	}
	return nil
}
