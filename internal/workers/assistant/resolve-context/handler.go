// internal/workers/assistant/resolve-context/handler.go
package resolvecontext

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
	"assistant-engine/internal/contextmap"
	"assistant-engine/internal/resolver"
	"assistant-engine/internal/taxonomy"
)

const TaskType = "resolve-context"

type Handler struct {
	config   *Config
	contexts *contextmap.Map
	resolver *resolver.MultiResolver
	logger   logger.Logger
}

func NewHandler(config *Config, contexts *contextmap.Map, r *resolver.MultiResolver, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		contexts: contexts,
		resolver: r,
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
	domain := taxonomy.Domain(input.Domain)
	if !domain.Valid() {
		return nil, errors.NewBusinessRuleError("unknown domain", fmt.Sprintf("%q is not a declared domain", input.Domain))
	}
	if !h.contexts.Has(domain, input.Step) {
		return nil, errors.NewBusinessRuleError("unknown step",
			fmt.Sprintf("no context entry for step %q in domain %q", input.Step, input.Domain))
	}

	fields := h.contexts.Fields(domain, input.Step)
	res, err := h.resolver.ResolveFields(ctx, fields, resolver.Hints(input.Hints))
	if err != nil {
		return nil, err
	}

	if missing := res.MissingRequired(h.contexts.Required(domain, input.Step)); len(missing) > 0 {
		return nil, errors.NewMissingRequiredContextError(input.Domain+"/"+input.Step, missing)
	}

	h.logger.Info("context resolved", map[string]interface{}{
		"domain":   input.Domain,
		"step":     input.Step,
		"resolved": len(res.Values),
		"missing":  len(res.Missing),
	})

	return &Output{Values: res.Values, Missing: res.Missing}, nil
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
		stdErr = errors.NewContextResolutionFailedError("unknown", err)
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
