// internal/workers/assistant/resolve-context/models.go
package resolvecontext

type Input struct {
	// Domain and Step address one entry in the context map, e.g.
	// ("communication", "send-message").
	Domain string `json:"domain"`
	Step   string `json:"step"`
	// Hints carry values already known to the conversation: extracted
	// entities and outputs of earlier workflow steps.
	Hints map[string]string `json:"hints"`
}

type Output struct {
	Values map[string]string `json:"values"`
	// Missing lists optional fields that stayed unresolved. Required
	// fields that stay unresolved fail the job instead.
	Missing []string `json:"missing,omitempty"`
}
