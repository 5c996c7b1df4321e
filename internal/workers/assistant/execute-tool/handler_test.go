// internal/workers/assistant/execute-tool/handler_test.go
package executetool

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/toolexec"
	"assistant-engine/pkg/registry"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	catalog, err := registry.NewCatalog(registry.DefaultCapabilities())
	require.NoError(t, err)

	d := toolexec.NewDispatcher(catalog, logger.NewTestLogger(t))
	require.NoError(t, d.Register("check-quote-status", toolexec.StaticTool(toolexec.Result{
		"quote_status": "viewed",
	})))
	require.NoError(t, d.Register("compute-balance", func(_ context.Context, args toolexec.Args) (toolexec.Result, error) {
		return toolexec.Result{"balance_due": "450.00"}, nil
	}))
	require.NoError(t, d.Register("assign-job", func(_ context.Context, _ toolexec.Args) (toolexec.Result, error) {
		return nil, fmt.Errorf("no technician on shift")
	}))

	return NewHandler(LoadConfig(), d, logger.NewTestLogger(t))
}

func TestHandler_Execute_InvokesTool(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Tool: "check-quote-status",
		Args: map[string]string{"quote_id": "QT-77"},
	})
	require.NoError(t, err)

	assert.Equal(t, "check-quote-status", output.Tool)
	assert.Equal(t, "viewed", output.Result["quote_status"])
}

func TestHandler_Execute_ToolNotRegistered(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Tool: "fetch-invoice",
		Args: map[string]string{"invoice_id": "INV-2201"},
	})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeToolNotRegistered))
}

func TestHandler_Execute_MissingInputKey(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Tool: "compute-balance",
		Args: map[string]string{"invoice_total": "1200.00"},
	})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeToolInvocationFailed))
	assert.Contains(t, err.Error(), "amount_paid")
}

func TestHandler_Execute_ToolFailure(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Tool: "assign-job",
		Args: map[string]string{"job_id": "JOB-5"},
	})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeToolInvocationFailed))
}

func TestHandler_Execute_EmptyTool(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, "BUSINESS_RULE_VIOLATION"))
}
