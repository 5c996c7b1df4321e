// internal/workers/assistant/build-prompt/handler_test.go
package buildprompt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/prompt"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/workflow"
	"assistant-engine/pkg/registry"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)

	catalog, err := registry.NewCatalog(registry.DefaultCapabilities())
	require.NoError(t, err)

	workflows, err := workflow.NewRegistry(workflow.DefaultWorkflows(), catalog)
	require.NoError(t, err)

	prompts, err := prompt.NewRegistry(prompt.DefaultTemplates(), intents, workflows)
	require.NoError(t, err)

	return NewHandler(LoadConfig(), prompts, workflows, logger.NewTestLogger(t))
}

func TestHandler_Execute_IntentTarget(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Target: "lead.create",
		Context: map[string]interface{}{
			"customer_name": "John Smith",
			"phone":         "+15550100",
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, output.Prompt)

	assert.Equal(t, "lead.create", output.Prompt.Target)
	assert.Contains(t, output.Prompt.Text, "John Smith")
	assert.Contains(t, output.Prompt.Text, "+15550100")
	assert.Empty(t, output.StepPrompts)
}

func TestHandler_Execute_MissingTemplate(t *testing.T) {
	h := newTestHandler(t)

	// lead.qualify is a registered intent without a shipped template.
	output, err := h.Execute(context.Background(), &Input{Target: "lead.qualify"})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingTemplate))
}

func TestHandler_Execute_MissingRequiredContext(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Target: "lead.create",
		Context: map[string]interface{}{
			"phone": "+15550100",
		},
	}

	output, err := h.Execute(context.Background(), input)
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredContext))
	assert.Contains(t, err.Error(), "customer_name")
}

func TestHandler_Execute_WorkflowPrompts(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		WorkflowID: "invoice-collection",
		Context: map[string]interface{}{
			"invoice_id": "INV-2201",
		},
		Overlays: map[string]map[string]interface{}{
			"compose-reminder": {"balance_due": "450.00"},
		},
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, output.StepPrompts, 1)

	sp := output.StepPrompts[0]
	assert.Equal(t, "compose-reminder", sp.Tool)
	assert.Contains(t, sp.Prompt.Text, "INV-2201")
	assert.Contains(t, sp.Prompt.Text, "450.00")
}

func TestHandler_Execute_WorkflowMissingOverlay(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		WorkflowID: "invoice-collection",
		Context:    map[string]interface{}{"invoice_id": "INV-2201"},
	}

	output, err := h.Execute(context.Background(), input)
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredContext))
}

func TestHandler_Execute_InputValidation(t *testing.T) {
	h := newTestHandler(t)

	t.Run("no target", func(t *testing.T) {
		output, err := h.Execute(context.Background(), &Input{})
		assert.Nil(t, output)
		assert.True(t, errors.HasCode(err, "BUSINESS_RULE_VIOLATION"))
	})

	t.Run("unknown workflow", func(t *testing.T) {
		output, err := h.Execute(context.Background(), &Input{WorkflowID: "roof-repair"})
		assert.Nil(t, output)
		assert.True(t, errors.HasCode(err, "BUSINESS_RULE_VIOLATION"))
	})
}
