// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/contextmap"
	"assistant-engine/internal/coverage"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/prompt"
	"assistant-engine/internal/resolver"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/toolexec"
	"assistant-engine/internal/workflow"
	"assistant-engine/pkg/registry"

	buildprompt "assistant-engine/internal/workers/assistant/build-prompt"
	classifyintent "assistant-engine/internal/workers/assistant/classify-intent"
	executetool "assistant-engine/internal/workers/assistant/execute-tool"
	matchworkflow "assistant-engine/internal/workers/assistant/match-workflow"
	resolvecontext "assistant-engine/internal/workers/assistant/resolve-context"
)

// recordResolver stands in for the Postgres or Elasticsearch backends
// with a fixed record set, so the pipeline runs without live services.
type recordResolver struct {
	source  contextmap.Source
	records map[string]string
}

func (r *recordResolver) Source() contextmap.Source { return r.source }

func (r *recordResolver) Resolve(_ context.Context, keys []string, _ resolver.Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.records[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

// pipeline wires the five workers over the shipped registries, the same
// construction order assistant-manager uses at startup.
type pipeline struct {
	classify *classifyintent.Handler
	match    *matchworkflow.Handler
	resolve  *resolvecontext.Handler
	prompts  *buildprompt.Handler
	execute  *executetool.Handler
	analyzer *coverage.Analyzer
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	log := logger.NewTestLogger(t)

	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)

	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)
	require.Empty(t, patterns.FindOverlapping(pattern.PoolIntent))
	require.Empty(t, patterns.FindOverlapping(pattern.PoolWorkflow))

	clf, err := classifier.New(intents, patterns, classifier.DefaultWeights, log)
	require.NoError(t, err)

	catalog, err := registry.NewCatalog(registry.DefaultCapabilities())
	require.NoError(t, err)

	workflows, err := workflow.NewRegistry(workflow.DefaultWorkflows(), catalog)
	require.NoError(t, err)

	matcher, err := workflow.NewMatcher(workflows, patterns)
	require.NoError(t, err)

	contexts, err := contextmap.NewMap(contextmap.DefaultEntries())
	require.NoError(t, err)

	templates, err := prompt.NewRegistry(prompt.DefaultTemplates(), intents, workflows)
	require.NoError(t, err)

	multi, err := resolver.NewMultiResolver(
		2*time.Second,
		log,
		resolver.NewConversationResolver(),
		resolver.NewStaticResolver(nil),
		&recordResolver{source: contextmap.SourceDatabase, records: map[string]string{
			"channel": "email",
			"address": "henderson@example.com",
		}},
		&recordResolver{source: contextmap.SourceSearch, records: map[string]string{
			"customer_id": "cust-301",
		}},
	)
	require.NoError(t, err)

	dispatcher := toolexec.NewDispatcher(catalog, log)
	require.NoError(t, dispatcher.Register("search-customer", toolexec.StaticTool(toolexec.Result{
		"customer_id":   "cust-301",
		"customer_name": "Henderson",
	})))
	require.NoError(t, dispatcher.Register("check-availability", toolexec.StaticTool(toolexec.Result{
		"available_slots": "2026-03-12T10:00,2026-03-12T14:00",
	})))

	return &pipeline{
		classify: classifyintent.NewHandler(classifyintent.LoadConfig(), clf, log),
		match:    matchworkflow.NewHandler(matchworkflow.LoadConfig(), matcher, log),
		resolve:  resolvecontext.NewHandler(resolvecontext.LoadConfig(), contexts, multi, log),
		prompts:  buildprompt.NewHandler(buildprompt.LoadConfig(), templates, workflows, log),
		execute:  executetool.NewHandler(executetool.LoadConfig(), dispatcher, log),
		analyzer: coverage.NewAnalyzer(clf, matcher, patterns),
	}
}

// Lead intake: classify the message, then build the confirmation prompt
// from the extracted entities.
func TestE2E_LeadIntake(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	classified, err := p.classify.Execute(ctx, &classifyintent.Input{
		Text:      "new lead from John Smith, 555-0100",
		Route:     "lead",
		Timestamp: "2026-03-02T10:00:00Z",
	})
	require.NoError(t, err)

	require.True(t, classified.Classified)
	assert.Equal(t, "lead.create", classified.IntentID)
	assert.Equal(t, "lead_generation", classified.Domain)
	assert.False(t, classified.NeedsClarification)
	assert.Empty(t, classified.MissingEntities)

	built, err := p.prompts.Execute(ctx, &buildprompt.Input{
		Target: classified.IntentID,
		Context: map[string]interface{}{
			"customer_name": classified.Entities["name"],
			"phone":         classified.Entities["phone"],
		},
	})
	require.NoError(t, err)
	require.NotNil(t, built.Prompt)
	assert.Contains(t, built.Prompt.Text, "John Smith")
	assert.Contains(t, built.Prompt.Text, "+15550100")
}

// Site assessment: match the workflow, resolve context for a step, and
// run the first tools through the dispatcher.
func TestE2E_SiteAssessmentWorkflow(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	matched, err := p.match.Execute(ctx, &matchworkflow.Input{
		Text: "can you schedule a site visit for the Hendersons?",
	})
	require.NoError(t, err)

	require.True(t, matched.Matched)
	assert.Equal(t, "site-assessment", matched.WorkflowID)

	wantTools := []string{
		"search-customer",
		"create-customer",
		"create-request",
		"check-availability",
		"create-assessment-job",
		"assign-job",
		"send-confirmation",
	}
	require.Len(t, matched.Steps, len(wantTools))
	for i, step := range matched.Steps {
		assert.Equal(t, i+1, step.Order)
		assert.Equal(t, wantTools[i], step.Tool)
	}

	resolved, err := p.resolve.Execute(ctx, &resolvecontext.Input{
		Domain: "site_assessment",
		Step:   "check-availability",
		Hints:  map[string]string{"date": "2026-03-12"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", resolved.Values["date"])

	found, err := p.execute.Execute(ctx, &executetool.Input{
		Tool: "search-customer",
		Args: map[string]string{"customer_name": "Henderson"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cust-301", found.Result["customer_id"])

	slots, err := p.execute.Execute(ctx, &executetool.Input{
		Tool: "check-availability",
		Args: map[string]string{"date": resolved.Values["date"]},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, slots.Result["available_slots"])
}

// Customer communication: the resolved values of one step feed the next
// step as hints, ending in a deliverable message.
func TestE2E_CustomerCommunication(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	matched, err := p.match.Execute(ctx, &matchworkflow.Input{
		Text: "please contact the customer about the delay",
	})
	require.NoError(t, err)

	require.True(t, matched.Matched)
	assert.Equal(t, "customer-communication", matched.WorkflowID)
	require.Len(t, matched.Steps, 3)

	compose, err := p.resolve.Execute(ctx, &resolvecontext.Input{
		Domain: "communication",
		Step:   "compose-message",
		Hints:  map[string]string{"topic": "schedule delay"},
	})
	require.NoError(t, err)
	assert.Equal(t, "cust-301", compose.Values["customer_id"])
	assert.Equal(t, "schedule delay", compose.Values["topic"])

	send, err := p.resolve.Execute(ctx, &resolvecontext.Input{
		Domain: "communication",
		Step:   "send-message",
		Hints:  map[string]string{"message_body": "We are running behind, new window is 2-4pm."},
	})
	require.NoError(t, err)
	assert.Equal(t, "email", send.Values["channel"])
	assert.Equal(t, "henderson@example.com", send.Values["address"])
	assert.NotEmpty(t, send.Values["message_body"])
}

// Unrecognized text falls through both pools without guessing.
func TestE2E_UnrecognizedText(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()

	classified, err := p.classify.Execute(ctx, &classifyintent.Input{
		Text:      "hello there",
		Timestamp: "2026-03-02T10:00:00Z",
	})
	require.NoError(t, err)
	assert.False(t, classified.Classified)
	assert.True(t, classified.NeedsClarification)
	assert.NotEmpty(t, classified.Clarification)

	matched, err := p.match.Execute(ctx, &matchworkflow.Input{Text: "hello there"})
	require.NoError(t, err)
	assert.False(t, matched.Matched)
	assert.Empty(t, matched.Steps)
}

// A prompt build with incomplete context fails loudly instead of
// producing a half-filled prompt.
func TestE2E_PromptMissingContext(t *testing.T) {
	p := newPipeline(t)

	output, err := p.prompts.Execute(context.Background(), &buildprompt.Input{
		Target:  "lead.create",
		Context: map[string]interface{}{"phone": "+15550100"},
	})
	assert.Nil(t, output)
	assert.True(t, errors.HasCode(err, errors.ErrCodeMissingRequiredContext))
	assert.Contains(t, err.Error(), "customer_name")
}

// The shipped registries must clear the same bars the CI gate enforces.
func TestE2E_CoverageBars(t *testing.T) {
	p := newPipeline(t)

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	report, err := p.analyzer.QuickCheck(coverage.DefaultCorpus(), now, 0.80, 0.80)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, report.Accuracy, 0.80)
	assert.GreaterOrEqual(t, report.Coverage, 0.80)
	assert.Empty(t, report.Overlaps)
	t.Logf("corpus: %d phrases, accuracy %.3f, coverage %.3f", report.Total, report.Accuracy, report.Coverage)
}
