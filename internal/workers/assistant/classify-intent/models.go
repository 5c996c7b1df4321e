// internal/workers/assistant/classify-intent/models.go
package classifyintent

type Input struct {
	Text string `json:"text"`
	// Route is the conversation route the user is currently in,
	// empty when unknown.
	Route string `json:"route"`
	// Timestamp anchors relative date extraction (RFC 3339).
	// Defaults to the current time when empty.
	Timestamp string `json:"timestamp"`
}

type Output struct {
	Classified           bool              `json:"classified"`
	IntentID             string            `json:"intentId,omitempty"`
	Domain               string            `json:"domain,omitempty"`
	Confidence           float64           `json:"confidence"`
	Risk                 string            `json:"risk,omitempty"`
	RequiresConfirmation bool              `json:"requiresConfirmation"`
	Entities             map[string]string `json:"entities"`
	MissingEntities      []string          `json:"missingEntities,omitempty"`
	NeedsClarification   bool              `json:"needsClarification"`
	Clarification        string            `json:"clarification,omitempty"`
	Candidates           []CandidateModel  `json:"candidates,omitempty"`
}

type CandidateModel struct {
	IntentID  string  `json:"intentId"`
	PatternID string  `json:"patternId"`
	Trigger   string  `json:"trigger"`
	Score     float64 `json:"score"`
}
