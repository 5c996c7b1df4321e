// internal/workers/assistant/match-workflow/handler.go
package matchworkflow

import (
	"context"
	"encoding/json"
	goerrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/common/metrics"
	"assistant-engine/internal/workflow"
)

const TaskType = "match-workflow"

type Handler struct {
	config  *Config
	matcher *workflow.Matcher
	logger  logger.Logger
}

func NewHandler(config *Config, m *workflow.Matcher, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		matcher: m,
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
		return nil, errors.NewBusinessRuleError("text is required", "match-workflow received an empty utterance")
	}

	matches := h.matcher.Match(input.Text)
	if len(matches) == 0 {
		h.logger.Info("no workflow matched", nil)
		return &Output{Matched: false}, nil
	}

	// First match wins; registration order is the tie-break.
	best := matches[0]
	metrics.WorkflowMatchesTotal.WithLabelValues(best.PatternID).Inc()

	output := &Output{
		Matched:         true,
		WorkflowID:      best.Workflow.ID,
		Domain:          string(best.Workflow.Domain),
		PatternID:       best.PatternID,
		Trigger:         best.Trigger,
		SuccessMetrics:  best.Workflow.SuccessMetrics,
		SpecialCardType: string(best.Workflow.SpecialCardType),
	}
	for _, s := range best.Workflow.Steps {
		output.Steps = append(output.Steps, StepModel{
			Order:        s.Order,
			Tool:         s.Tool,
			Description:  s.Description,
			ArgsTemplate: s.ArgsTemplate,
		})
	}

	h.logger.Info("workflow matched", map[string]interface{}{
		"workflowId": best.Workflow.ID,
		"patternId":  best.PatternID,
		"steps":      len(best.Workflow.Steps),
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
		stdErr = errors.NewBusinessRuleError("workflow match failed", err.Error())
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
