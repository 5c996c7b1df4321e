// internal/workers/assistant/execute-tool/handler.go
package executetool

import (
	"context"
	"encoding/json"
	goerrors "errors"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/common/metrics"
	"assistant-engine/internal/toolexec"
)

const TaskType = "execute-tool"

type Handler struct {
	config     *Config
	dispatcher *toolexec.Dispatcher
	logger     logger.Logger
}

func NewHandler(config *Config, d *toolexec.Dispatcher, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		dispatcher: d,
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input.Tool == "" {
		return nil, errors.NewBusinessRuleError("tool is required", "execute-tool received no tool name")
	}

	result, err := h.dispatcher.Invoke(ctx, input.Tool, toolexec.Args(input.Args))
	if err != nil {
		return nil, err
	}

	h.logger.Info("tool executed", map[string]interface{}{
		"tool":    input.Tool,
		"outputs": len(result),
	})

	return &Output{Tool: input.Tool, Result: result}, nil
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
		stdErr = errors.NewToolInvocationFailedError("unknown", err)
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
