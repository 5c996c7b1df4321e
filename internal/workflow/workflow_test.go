package workflow

import (
	"testing"

	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T) *registry.Catalog {
	t.Helper()
	cat, err := registry.NewCatalog(registry.DefaultCapabilities())
	require.NoError(t, err)
	return cat
}

func TestNewRegistry_Defaults(t *testing.T) {
	reg, err := NewRegistry(DefaultWorkflows(), newCatalog(t))
	require.NoError(t, err)
	assert.Equal(t, 4, reg.Len())

	wf, ok := reg.Get("site-assessment")
	require.True(t, ok)
	assert.Equal(t, []string{
		"search-customer",
		"create-customer",
		"create-request",
		"check-availability",
		"create-assessment-job",
		"assign-job",
		"send-confirmation",
	}, wf.Tools())
	assert.Equal(t, CardBookingSummary, wf.SpecialCardType)
	assert.Contains(t, wf.SuccessMetrics, "assessment_booked")

	// Every shipped step maps its args onto declared tool inputs only.
	for _, shipped := range DefaultWorkflows() {
		assert.NotEmpty(t, shipped.SuccessMetrics, "workflow %s has no success metrics", shipped.ID)
		for _, step := range shipped.Steps {
			assert.NotEmpty(t, step.ArgsTemplate, "workflow %s step %d has no args template", shipped.ID, step.Order)
		}
	}
}

func TestNewRegistry_Validation(t *testing.T) {
	cat := newCatalog(t)

	tests := []struct {
		name    string
		wfs     []Workflow
		wantErr string
	}{
		{
			name: "duplicate id",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					Steps: []Step{{Order: 1, Tool: "fetch-quote"}}},
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					Steps: []Step{{Order: 1, Tool: "fetch-quote"}}},
			},
			wantErr: "duplicate workflow id",
		},
		{
			name:    "no steps",
			wfs:     []Workflow{{ID: "w", Domain: taxonomy.DomainQuoting}},
			wantErr: "no steps",
		},
		{
			name: "step order gap",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"}, Steps: []Step{
					{Order: 1, Tool: "fetch-quote"},
					{Order: 3, Tool: "send-message"},
				}},
			},
			wantErr: "contiguous",
		},
		{
			name: "step order not starting at one",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					Steps: []Step{{Order: 0, Tool: "fetch-quote"}}},
			},
			wantErr: "contiguous",
		},
		{
			name: "unregistered tool",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					Steps: []Step{{Order: 1, Tool: "frobnicate"}}},
			},
			wantErr: "not in the capability catalog",
		},
		{
			name: "no success metrics",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, Steps: []Step{{Order: 1, Tool: "fetch-quote"}}},
			},
			wantErr: "no success metrics",
		},
		{
			name: "unknown card type",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					SpecialCardType: "hologram",
					Steps:           []Step{{Order: 1, Tool: "fetch-quote"}}},
			},
			wantErr: "unknown card type",
		},
		{
			name: "arg template key not a tool input",
			wfs: []Workflow{
				{ID: "w", Domain: taxonomy.DomainQuoting, SuccessMetrics: []string{"done"},
					Steps: []Step{{Order: 1, Tool: "fetch-quote",
						ArgsTemplate: map[string]string{"color": "{{color}}"}}}},
			},
			wantErr: "not an input of tool",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.wfs, cat)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatcher(t *testing.T) {
	reg, err := NewRegistry(DefaultWorkflows(), newCatalog(t))
	require.NoError(t, err)
	pats, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)
	m, err := NewMatcher(reg, pats)
	require.NoError(t, err)

	matches := m.Match("can you schedule a site visit for tomorrow")
	require.Len(t, matches, 1)
	assert.Equal(t, "site-assessment", matches[0].Workflow.ID)
	assert.Len(t, matches[0].Workflow.Steps, 7)

	matches = m.Match("contact the customer about the reschedule")
	require.Len(t, matches, 1)
	assert.Equal(t, "customer-communication", matches[0].Workflow.ID)

	assert.Empty(t, m.Match("hello there"))
}

func TestNewMatcher_Validation(t *testing.T) {
	reg, err := NewRegistry(DefaultWorkflows(), newCatalog(t))
	require.NoError(t, err)

	pats, err := pattern.NewRegistry([]pattern.Definition{
		{ID: "p", Pool: pattern.PoolWorkflow, TargetID: "nope",
			Domain: taxonomy.DomainQuoting, Triggers: []string{"x"}},
	})
	require.NoError(t, err)
	_, err = NewMatcher(reg, pats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown workflow")

	pats, err = pattern.NewRegistry([]pattern.Definition{
		{ID: "p", Pool: pattern.PoolWorkflow, TargetID: "quote-followup",
			Domain: taxonomy.DomainInvoicing, Triggers: []string{"x"}},
	})
	require.NoError(t, err)
	_, err = NewMatcher(reg, pats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match workflow")
}
