// internal/workers/assistant/classify-intent/handler.go
package classifyintent

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assistant-engine/internal/classifier"
	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/common/metrics"
)

const TaskType = "classify-intent"

type Handler struct {
	config     *Config
	classifier *classifier.Classifier
	logger     logger.Logger
}

func NewHandler(config *Config, c *classifier.Classifier, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: c,
		logger: log.WithFields(map[string]interface{}{
			"taskType": TaskType,
		}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) error {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.Key,
		"processInstanceKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		stdErr := errors.NewBusinessRuleError("invalid job variables", err.Error())
		h.failJob(client, job, stdErr)
		return stdErr
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return err
	}

	h.completeJob(client, job, output)
	return nil
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input.Text == "" {
		return nil, errors.NewBusinessRuleError("text is required", "classify-intent received an empty utterance")
	}

	// Relative dates resolve against the request timestamp, so the
	// caller must supply one; a wall clock fallback would make replays
	// non-deterministic.
	if input.Timestamp == "" {
		return nil, errors.NewBusinessRuleError("timestamp is required", "classify-intent received no request timestamp")
	}
	now, err := time.Parse(time.RFC3339, input.Timestamp)
	if err != nil {
		return nil, errors.NewBusinessRuleError("invalid timestamp", fmt.Sprintf("cannot parse %q as RFC 3339", input.Timestamp))
	}

	result := h.classifier.Classify(input.Text, input.Route, now)

	if result.Classified {
		metrics.ClassificationsTotal.WithLabelValues(string(result.Domain)).Inc()
	} else {
		metrics.UnclassifiedTotal.Inc()
	}
	if result.NeedsClarification && result.IntentID != "" {
		metrics.ClarificationsTotal.WithLabelValues(result.IntentID).Inc()
	}

	output := &Output{
		Classified:           result.Classified,
		IntentID:             result.IntentID,
		Domain:               string(result.Domain),
		Confidence:           result.Confidence,
		Risk:                 string(result.Risk),
		RequiresConfirmation: result.RequiresConfirmation,
		Entities:             result.Entities.ToMap(),
		NeedsClarification:   result.NeedsClarification,
		Clarification:        result.Clarification,
	}
	for _, et := range result.MissingEntities {
		output.MissingEntities = append(output.MissingEntities, string(et))
	}
	for _, c := range result.Candidates {
		output.Candidates = append(output.Candidates, CandidateModel{
			IntentID:  c.IntentID,
			PatternID: c.PatternID,
			Trigger:   c.Trigger,
			Score:     c.Score,
		})
	}

	h.logger.Info("utterance classified", map[string]interface{}{
		"classified":    result.Classified,
		"intentId":      result.IntentID,
		"confidence":    result.Confidence,
		"clarification": result.NeedsClarification,
	})

	return output, nil
}

// Execute exposes the core logic for direct invocation in tests.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err = cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	var stdErr *errors.StandardError
	if !goerrors.As(err, &stdErr) {
		stdErr = errors.NewBusinessRuleError("classification failed", err.Error())
	}
	bpmnErr := errors.ConvertToBPMNError(stdErr)

	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":    job.Key,
		"errorCode": bpmnErr.Code,
		"error":     err.Error(),
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()

	_, _ = client.NewFailJobCommand().
		JobKey(job.Key).
		Retries(int32(bpmnErr.Retries)).
		ErrorMessage(bpmnErr.Code + ": " + bpmnErr.Message).
		Send(context.Background())
}
