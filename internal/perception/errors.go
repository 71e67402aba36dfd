package perception

import (
	"errors"
)

// Kind classifies why an operation failed.
type Kind int

const (
	// KindService covers transport, API and authentication failures,
	// including a missing API key.
	KindService Kind = iota + 1
	// KindMalformed covers responses that could not be parsed into the
	// expected shape.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindService:
		return "service"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Precondition errors, returned before any request is made.
var (
	ErrEmptyDescription = errors.New("practice description is empty")
	ErrNoPractices      = errors.New("no practices to build an action plan from")
)

// ErrMalformedResponse is wrapped by every KindMalformed cause.
var ErrMalformedResponse = errors.New("malformed response")

var errAPIKeyMissing = errors.New("API key not configured")

const (
	analysisMessage = "Failed to get analysis from AI. The API key might be invalid or the service may be unavailable."
	planMessage     = "Failed to get action plan from AI. The API key might be invalid or the service may be unavailable."
	ideaMessage     = "Failed to get practice idea from AI. The API key might be invalid or the service may be unavailable."
)

// AnalysisError is returned by AnalyzePractice. Error returns the message
// shown to the user; the cause is available through Unwrap.
type AnalysisError struct {
	Kind Kind
	Err  error
}

func (e *AnalysisError) Error() string { return analysisMessage }
func (e *AnalysisError) Unwrap() error { return e.Err }

// ActionPlanError is returned by GenerateActionPlan.
type ActionPlanError struct {
	Kind Kind
	Err  error
}

func (e *ActionPlanError) Error() string { return planMessage }
func (e *ActionPlanError) Unwrap() error { return e.Err }

// IdeaError is returned by GeneratePracticeIdea.
type IdeaError struct {
	Kind Kind
	Err  error
}

func (e *IdeaError) Error() string { return ideaMessage }
func (e *IdeaError) Unwrap() error { return e.Err }

// KindOf returns the failure kind of err, or 0 if err did not come from
// an analysis operation.
func KindOf(err error) Kind {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	var pe *ActionPlanError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	var ie *IdeaError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	return 0
}

// IsMalformed reports whether err was caused by an unusable response.
func IsMalformed(err error) bool {
	return KindOf(err) == KindMalformed
}
