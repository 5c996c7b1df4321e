// cmd/tools/coverage-check/main.go
//
// CI gate over the pattern registry: evaluates the labeled corpus
// against the shipped registries and fails (non-zero exit) when
// accuracy or coverage drops below the configured bars or the pattern
// pools lose mutual exclusivity.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/coverage"
	"assistant-engine/internal/pattern"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/workflow"
	"assistant-engine/pkg/registry"
)

func main() {
	corpusPath := flag.String("corpus", "configs/corpus.json", "Path to the labeled corpus (empty uses the built-in corpus)")
	minAccuracy := flag.Float64("min-accuracy", 0.80, "Minimum top-1 accuracy")
	minCoverage := flag.Float64("min-coverage", 0.80, "Minimum pattern coverage")
	asJSON := flag.Bool("json", false, "Print the full report as JSON")
	flag.Parse()

	if err := run(*corpusPath, *minAccuracy, *minCoverage, *asJSON); err != nil {
		fmt.Fprintln(os.Stderr, "coverage-check:", err)
		os.Exit(1)
	}
}

func run(corpusPath string, minAccuracy, minCoverage float64, asJSON bool) error {
	analyzer, err := buildAnalyzer()
	if err != nil {
		return err
	}

	corpus := coverage.DefaultCorpus()
	if corpusPath != "" {
		corpus, err = coverage.LoadCorpus(corpusPath)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
	}

	report, barErr := analyzer.QuickCheck(corpus, time.Now(), minAccuracy, minCoverage)
	if report == nil {
		return barErr
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(report)
	}

	if barErr != nil {
		return barErr
	}
	fmt.Printf("PASS: accuracy %.3f, coverage %.3f over %d phrases\n",
		report.Accuracy, report.Coverage, report.Total)
	return nil
}

func buildAnalyzer() (*coverage.Analyzer, error) {
	intents, err := taxonomy.NewRegistry(taxonomy.DefaultIntents())
	if err != nil {
		return nil, fmt.Errorf("intent taxonomy: %w", err)
	}
	patterns, err := pattern.NewRegistry(pattern.DefaultPatterns())
	if err != nil {
		return nil, fmt.Errorf("pattern registry: %w", err)
	}
	clf, err := classifier.New(intents, patterns, classifier.DefaultWeights, logger.NewNoOpLogger())
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	catalog, err := registry.NewCatalog(registry.DefaultCapabilities())
	if err != nil {
		return nil, fmt.Errorf("capability catalog: %w", err)
	}
	workflows, err := workflow.NewRegistry(workflow.DefaultWorkflows(), catalog)
	if err != nil {
		return nil, fmt.Errorf("workflow registry: %w", err)
	}
	matcher, err := workflow.NewMatcher(workflows, patterns)
	if err != nil {
		return nil, fmt.Errorf("workflow matcher: %w", err)
	}
	return coverage.NewAnalyzer(clf, matcher, patterns), nil
}

func printReport(r *coverage.Report) {
	fmt.Printf("phrases:  %d (%d intent, %d workflow)\n", r.Total, r.IntentTotal, r.WorkflowTotal)
	fmt.Printf("accuracy: %.3f (%d correct)\n", r.Accuracy, r.Correct)
	fmt.Printf("coverage: %.3f (%d matched)\n", r.Coverage, r.Matched)

	for _, m := range r.Misclassified {
		fmt.Printf("MISS %q: expected %s, got %s\n", m.Text, m.Expected, m.Got)
	}
	for _, text := range r.Unmatched {
		fmt.Printf("UNMATCHED %q\n", text)
	}
	for _, o := range r.Overlaps {
		fmt.Printf("OVERLAP %s / %s on trigger %q\n", o.PatternA, o.PatternB, o.Trigger)
	}
}
