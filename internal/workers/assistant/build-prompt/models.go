// internal/workers/assistant/build-prompt/models.go
package buildprompt

type Input struct {
	// Target is an intent id ("lead.create") or a workflow step
	// ("invoice-collection/compose-reminder").
	Target string `json:"target"`
	// Context carries the resolved values the template renders with.
	Context map[string]interface{} `json:"context"`
	// WorkflowID, when set, builds prompts for every templated step of
	// the workflow instead of a single target. Overlays add per-step
	// context on top of Context.
	WorkflowID string                            `json:"workflowId,omitempty"`
	Overlays   map[string]map[string]interface{} `json:"overlays,omitempty"`
}

type Output struct {
	Prompt      *PromptModel      `json:"prompt,omitempty"`
	StepPrompts []StepPromptModel `json:"stepPrompts,omitempty"`
}

type PromptModel struct {
	Target      string   `json:"target"`
	Role        string   `json:"role"`
	Context     string   `json:"context"`
	Task        string   `json:"task"`
	Constraints []string `json:"constraints,omitempty"`
	Text        string   `json:"text"`
}

type StepPromptModel struct {
	Order  int          `json:"order"`
	Tool   string       `json:"tool"`
	Prompt *PromptModel `json:"prompt"`
}
