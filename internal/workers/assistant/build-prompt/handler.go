// internal/workers/assistant/build-prompt/handler.go
package buildprompt

import (
	"context"
	"encoding/json"
	goerrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/common/metrics"
	"assistant-engine/internal/prompt"
	"assistant-engine/internal/workflow"
)

const TaskType = "build-prompt"

type Handler struct {
	config    *Config
	prompts   *prompt.Registry
	workflows *workflow.Registry
	logger    logger.Logger
}

func NewHandler(config *Config, prompts *prompt.Registry, workflows *workflow.Registry, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		prompts:   prompts,
		workflows: workflows,
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
	if input.WorkflowID != "" {
		return h.buildWorkflow(input)
	}
	if input.Target == "" {
		return nil, errors.NewBusinessRuleError("target is required", "build-prompt needs a target or a workflowId")
	}

	p, err := h.prompts.Build(input.Target, input.Context)
	if err != nil {
		metrics.PromptBuildsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	metrics.PromptBuildsTotal.WithLabelValues("ok").Inc()

	h.logger.Info("prompt built", map[string]interface{}{
		"target": input.Target,
		"length": len(p.Text),
	})

	return &Output{Prompt: toModel(p)}, nil
}

func (h *Handler) buildWorkflow(input *Input) (*Output, error) {
	wf, ok := h.workflows.Get(input.WorkflowID)
	if !ok {
		return nil, errors.NewBusinessRuleError("unknown workflow",
			fmt.Sprintf("%q is not a registered workflow", input.WorkflowID))
	}

	steps, err := h.prompts.BuildForWorkflow(wf, input.Context, input.Overlays)
	if err != nil {
		metrics.PromptBuildsTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return nil, err
	}
	metrics.PromptBuildsTotal.WithLabelValues("ok").Inc()

	output := &Output{}
	for _, sp := range steps {
		output.StepPrompts = append(output.StepPrompts, StepPromptModel{
			Order:  sp.Order,
			Tool:   sp.Tool,
			Prompt: toModel(sp.Prompt),
		})
	}

	h.logger.Info("workflow prompts built", map[string]interface{}{
		"workflowId": input.WorkflowID,
		"steps":      len(output.StepPrompts),
	})

	return output, nil
}

func outcomeLabel(err error) string {
	switch {
	case errors.HasCode(err, errors.ErrCodeMissingTemplate):
		return "missing_template"
	case errors.HasCode(err, errors.ErrCodeMissingRequiredContext):
		return "missing_context"
	default:
		return "error"
	}
}

func toModel(p *prompt.Prompt) *PromptModel {
	return &PromptModel{
		Target:      p.Target,
		Role:        p.Role,
		Context:     p.Context,
		Task:        p.Task,
		Constraints: p.Constraints,
		Text:        p.Text,
	}
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
		stdErr = errors.NewBusinessRuleError("prompt build failed", err.Error())
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
