// Package coverage measures the shipped pattern registry against a
// labeled phrase corpus. It computes top-1 accuracy and pattern
// coverage per pool and reports mutual-exclusivity violations, so CI
// can refuse a registry change that regresses classification quality.
package coverage

import (
	"fmt"
	"time"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/workflow"
)

// Entry is one labeled corpus phrase.
type Entry struct {
	Text   string       `json:"text"`
	Pool   pattern.Pool `json:"pool"`
	Target string       `json:"target"`
	Route  string       `json:"route,omitempty"`
}

// Corpus is the labeled evaluation set.
type Corpus struct {
	Entries []Entry `json:"entries"`
}

// Misclassification records one phrase the classifier got wrong.
type Misclassification struct {
	Text     string `json:"text"`
	Expected string `json:"expected"`
	Got      string `json:"got"`
}

// Report is the full evaluation outcome.
type Report struct {
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Matched  int     `json:"matched"`
	Accuracy float64 `json:"accuracy"`
	Coverage float64 `json:"coverage"`

	IntentTotal   int `json:"intent_total"`
	WorkflowTotal int `json:"workflow_total"`

	Misclassified []Misclassification   `json:"misclassified,omitempty"`
	Unmatched     []string              `json:"unmatched,omitempty"`
	Overlaps      []pattern.OverlapPair `json:"overlaps,omitempty"`
}

// MeetsBars checks the report against minimum accuracy and coverage
// thresholds and mutual exclusivity. The first violation is returned.
func (r *Report) MeetsBars(minAccuracy, minCoverage float64) error {
	if len(r.Overlaps) > 0 {
		first := r.Overlaps[0]
		return fmt.Errorf("pattern pools are not mutually exclusive: %d overlapping pairs, first %s/%s on trigger %q",
			len(r.Overlaps), first.PatternA, first.PatternB, first.Trigger)
	}
	if r.Accuracy < minAccuracy {
		return fmt.Errorf("accuracy %.3f is below the %.2f bar (%d/%d correct)",
			r.Accuracy, minAccuracy, r.Correct, r.Total)
	}
	if r.Coverage < minCoverage {
		return fmt.Errorf("coverage %.3f is below the %.2f bar (%d/%d matched)",
			r.Coverage, minCoverage, r.Matched, r.Total)
	}
	return nil
}

// Analyzer evaluates a corpus against the live registries.
type Analyzer struct {
	classifier *classifier.Classifier
	matcher    *workflow.Matcher
	patterns   *pattern.Registry
}

// NewAnalyzer wires the analyzer over the same components the runtime
// uses, so the evaluation exercises exactly the production path.
func NewAnalyzer(c *classifier.Classifier, m *workflow.Matcher, p *pattern.Registry) *Analyzer {
	return &Analyzer{classifier: c, matcher: m, patterns: p}
}

// Analyze runs every corpus entry through its pool and aggregates the
// report. now anchors relative date extraction so runs are repeatable.
func (a *Analyzer) Analyze(corpus *Corpus, now time.Time) (*Report, error) {
	if len(corpus.Entries) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}

	report := &Report{Total: len(corpus.Entries)}
	for _, e := range corpus.Entries {
		switch e.Pool {
		case pattern.PoolIntent:
			report.IntentTotal++
			res := a.classifier.Classify(e.Text, e.Route, now)
			if !res.Classified {
				report.Unmatched = append(report.Unmatched, e.Text)
				continue
			}
			report.Matched++
			if res.IntentID == e.Target {
				report.Correct++
			} else {
				report.Misclassified = append(report.Misclassified, Misclassification{
					Text: e.Text, Expected: e.Target, Got: res.IntentID,
				})
			}
		case pattern.PoolWorkflow:
			report.WorkflowTotal++
			matches := a.matcher.Match(e.Text)
			if len(matches) == 0 {
				report.Unmatched = append(report.Unmatched, e.Text)
				continue
			}
			report.Matched++
			if matches[0].Workflow.ID == e.Target {
				report.Correct++
			} else {
				report.Misclassified = append(report.Misclassified, Misclassification{
					Text: e.Text, Expected: e.Target, Got: matches[0].Workflow.ID,
				})
			}
		default:
			return nil, fmt.Errorf("corpus entry %q: unknown pool %q", e.Text, e.Pool)
		}
	}

	report.Accuracy = float64(report.Correct) / float64(report.Total)
	report.Coverage = float64(report.Matched) / float64(report.Total)
	report.Overlaps = append(
		a.patterns.FindOverlapping(pattern.PoolIntent),
		a.patterns.FindOverlapping(pattern.PoolWorkflow)...,
	)
	return report, nil
}

// QuickCheck analyzes the corpus and applies the bars in one call.
func (a *Analyzer) QuickCheck(corpus *Corpus, now time.Time, minAccuracy, minCoverage float64) (*Report, error) {
	report, err := a.Analyze(corpus, now)
	if err != nil {
		return nil, err
	}
	if err := report.MeetsBars(minAccuracy, minCoverage); err != nil {
		return report, err
	}
	return report, nil
}
