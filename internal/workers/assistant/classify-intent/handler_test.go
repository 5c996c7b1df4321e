// internal/workers/assistant/classify-intent/handler_test.go
package classifyintent

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)

	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)

	c, err := classifier.New(intents, patterns, classifier.DefaultWeights, logger.NewTestLogger(t))
	require.NoError(t, err)

	return NewHandler(LoadConfig(), c, logger.NewTestLogger(t))
}

func TestHandler_Execute_Classifies(t *testing.T) {
	h := newTestHandler(t)

	input := &Input{
		Text:      "new lead from John Smith, 555-0100",
		Route:     "lead",
		Timestamp: "2026-03-02T10:00:00Z",
	}

	output, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, output.Classified)
	assert.Equal(t, "lead.create", output.IntentID)
	assert.Equal(t, "lead_generation", output.Domain)
	assert.Equal(t, "John Smith", output.Entities["name"])
	assert.Equal(t, "+15550100", output.Entities["phone"])
	assert.False(t, output.NeedsClarification)
	assert.NotEmpty(t, output.Candidates)
}

func TestHandler_Execute_NoMatchAsksForClarification(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{Text: "hello there", Timestamp: "2026-03-02T10:00:00Z"})
	require.NoError(t, err)

	assert.False(t, output.Classified)
	assert.Empty(t, output.IntentID)
	assert.True(t, output.NeedsClarification)
	assert.NotEmpty(t, output.Clarification)
}

func TestHandler_Execute_MissingEntities(t *testing.T) {
	h := newTestHandler(t)

	// lead.create needs a name and a phone number.
	output, err := h.Execute(context.Background(), &Input{
		Text:      "add a new lead please",
		Route:     "lead",
		Timestamp: "2026-03-02T10:00:00Z",
	})
	require.NoError(t, err)

	assert.True(t, output.NeedsClarification)
	assert.Contains(t, output.MissingEntities, "name")
	assert.Contains(t, output.MissingEntities, "phone")
}

func TestHandler_Execute_InputValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name  string
		input *Input
	}{
		{"empty text", &Input{Text: "", Timestamp: "2026-03-02T10:00:00Z"}},
		{"missing timestamp", &Input{Text: "new lead from John Smith"}},
		{"bad timestamp", &Input{Text: "new lead from John Smith", Timestamp: "yesterday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := h.Execute(context.Background(), tt.input)
			assert.Nil(t, output)
			assert.True(t, errors.HasCode(err, "BUSINESS_RULE_VIOLATION"))
		})
	}
}

func TestHandler_Execute_Deterministic(t *testing.T) {
	h := newTestHandler(t)
	now := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

	input := &Input{
		Text:      "send the invoice for job #1043 tomorrow",
		Route:     "invoices",
		Timestamp: now.Format(time.RFC3339),
	}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	second, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "2026-03-03", first.Entities["date"])
}
