// internal/workers/assistant/match-workflow/models.go
package matchworkflow

type Input struct {
	Text string `json:"text"`
}

type Output struct {
	Matched         bool        `json:"matched"`
	WorkflowID      string      `json:"workflowId,omitempty"`
	Domain          string      `json:"domain,omitempty"`
	PatternID       string      `json:"patternId,omitempty"`
	Trigger         string      `json:"trigger,omitempty"`
	Steps           []StepModel `json:"steps,omitempty"`
	SuccessMetrics  []string    `json:"successMetrics,omitempty"`
	SpecialCardType string      `json:"specialCardType,omitempty"`
}

type StepModel struct {
	Order        int               `json:"order"`
	Tool         string            `json:"tool"`
	Description  string            `json:"description,omitempty"`
	ArgsTemplate map[string]string `json:"argsTemplate,omitempty"`
}
