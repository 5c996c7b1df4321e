package coverage

import (
	"testing"
	"time"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/workflow"
	"assistant-engine/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	require.NoError(t, err)
	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)
	c, err := classifier.New(intents, patterns, classifier.DefaultWeights, logger.NewTestLogger(t))
	require.NoError(t, err)
	catalog, err := registry.NewCatalog(registry.DefaultCapabilities())
	require.NoError(t, err)
	workflows, err := workflow.NewRegistry(workflow.DefaultWorkflows(), catalog)
	require.NoError(t, err)
	m, err := workflow.NewMatcher(workflows, patterns)
	require.NoError(t, err)
	return NewAnalyzer(c, m, patterns)
}

func TestAnalyze_ShippedCorpusPassesBars(t *testing.T) {
	a := newAnalyzer(t)
	corpus := DefaultCorpus()
	require.GreaterOrEqual(t, len(corpus.Entries), 60)

	report, err := a.Analyze(corpus, refNow)
	require.NoError(t, err)

	assert.Empty(t, report.Misclassified, "misclassified: %+v", report.Misclassified)
	assert.Empty(t, report.Unmatched, "unmatched: %+v", report.Unmatched)
	assert.Empty(t, report.Overlaps)
	assert.GreaterOrEqual(t, report.Accuracy, 0.80)
	assert.GreaterOrEqual(t, report.Coverage, 0.80)
	assert.NoError(t, report.MeetsBars(0.80, 0.80))
}

func TestAnalyze_EveryPatternCovered(t *testing.T) {
	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	require.NoError(t, err)
	corpus := DefaultCorpus()

	covered := make(map[string]bool)
	for _, e := range corpus.Entries {
		covered[e.Target] = true
	}
	for _, def := range patterns.IntentPatterns() {
		assert.True(t, covered[def.TargetID], "no corpus phrase targets %s", def.TargetID)
	}
	for _, def := range patterns.WorkflowPatterns() {
		assert.True(t, covered[def.TargetID], "no corpus phrase targets %s", def.TargetID)
	}
}

func TestAnalyze_ReportsFailures(t *testing.T) {
	a := newAnalyzer(t)
	corpus := &Corpus{Entries: []Entry{
		{Text: "new lead from Dana Cruz, 555-0142", Pool: pattern.PoolIntent, Target: "lead.create"},
		{Text: "new lead from Dana Cruz, 555-0142", Pool: pattern.PoolIntent, Target: "customer.create"}, // mislabeled
		{Text: "complete gibberish utterance", Pool: pattern.PoolIntent, Target: "lead.create"},
		{Text: "schedule a site visit", Pool: pattern.PoolWorkflow, Target: "site-assessment"},
	}}

	report, err := a.Analyze(corpus, refNow)
	require.NoError(t, err)
	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 3, report.Matched)
	assert.InDelta(t, 0.5, report.Accuracy, 0.001)
	assert.InDelta(t, 0.75, report.Coverage, 0.001)
	require.Len(t, report.Misclassified, 1)
	assert.Equal(t, "customer.create", report.Misclassified[0].Expected)
	assert.Equal(t, "lead.create", report.Misclassified[0].Got)
	require.Len(t, report.Unmatched, 1)

	err = report.MeetsBars(0.80, 0.80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accuracy")
}

func TestAnalyze_EmptyCorpus(t *testing.T) {
	a := newAnalyzer(t)
	_, err := a.Analyze(&Corpus{}, refNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestMeetsBars_Overlaps(t *testing.T) {
	r := &Report{
		Total: 1, Correct: 1, Matched: 1, Accuracy: 1, Coverage: 1,
		Overlaps: []pattern.OverlapPair{{PatternA: "a", PatternB: "b", Trigger: "x"}},
	}
	err := r.MeetsBars(0.80, 0.80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestParseCorpus(t *testing.T) {
	good := `{"entries": [{"text": "new lead from Ann Lee", "pool": "intent", "target": "lead.create", "route": "lead"}]}`
	corpus, err := ParseCorpus([]byte(good))
	require.NoError(t, err)
	require.Len(t, corpus.Entries, 1)
	assert.Equal(t, pattern.PoolIntent, corpus.Entries[0].Pool)

	bad := []string{
		`{"entries": []}`,
		`{"entries": [{"text": "x", "pool": "other", "target": "t"}]}`,
		`{"entries": [{"text": "x", "pool": "intent"}]}`,
		`{}`,
	}
	for _, data := range bad {
		_, err := ParseCorpus([]byte(data))
		assert.Error(t, err, "expected %s to fail validation", data)
	}
}

func TestQuickCheck(t *testing.T) {
	a := newAnalyzer(t)
	report, err := a.QuickCheck(DefaultCorpus(), refNow, 0.80, 0.80)
	require.NoError(t, err)
	assert.Equal(t, report.Total, report.Correct)
}
