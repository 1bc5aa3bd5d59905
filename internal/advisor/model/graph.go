package model

// AdvisorState stores per-invocation state for the advisor graphs.
// It is registered as graph local state and is only touched inside eino
// state handlers or compose.ProcessState, which serialise access.
type AdvisorState struct {
	SessionID string
	Profile   UserProfile
	Match     *MatchResult // set by the match post-handler, read by the recommend node
	Food      FoodProfile  // set by the feedback pre-handler
	Branch    string       // feedback branch picked for this round
}

// AnalysisInput is the input of the analysis graph.
// SignatureErr is non-nil when the image could not be turned into a signature.
type AnalysisInput struct {
	SessionID    string
	Signature    ColorSignature
	SignatureErr error
	Profile      UserProfile
}

// Analysis is the output of the analysis graph.
type Analysis struct {
	Match          MatchResult
	Recommendation Recommendation
}

// FeedbackInput is the input of the feedback graph.
type FeedbackInput struct {
	SessionID string
	Food      FoodProfile
	Feedback  string
}
