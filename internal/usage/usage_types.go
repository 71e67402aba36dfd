package usage

import "time"

// Outcome labels for a tracked request.
const (
	OutcomeSuccess   = "success"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

// Event represents a single generative AI request.
type Event struct {
	Operation    string // analyze, action_plan, idea
	Model        string
	InputTokens  int
	OutputTokens int
	Outcome      string
	Duration     time.Duration
}

// AggregatedStats holds counters broken down by various dimensions.
type AggregatedStats struct {
	Total       TokenCounts            `json:"total"`
	ByModel     map[string]TokenCounts `json:"by_model"`
	ByOperation map[string]TokenCounts `json:"by_operation"`
	Requests    int64                  `json:"requests"`
	Failures    int64                  `json:"failures"`
}

// TokenCounts holds input/output sums.
type TokenCounts struct {
	Input  int64 `json:"input"`
	Output int64 `json:"output"`
	Total  int64 `json:"total"`
}

func (tc *TokenCounts) Add(input, output int) {
	tc.Input += int64(input)
	tc.Output += int64(output)
	tc.Total += int64(input + output)
}
