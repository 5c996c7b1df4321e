// Package toolexec dispatches tool invocations for workflow steps.
// Tools register against the capability catalog by name; invoking an
// unregistered tool or skipping a declared input key is refused before
// any side effect happens.
package toolexec

import (
	"context"
	goerrors "errors"
	"fmt"
	"sort"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/pkg/registry"
)

// Args are the string inputs for one tool call.
type Args map[string]string

// Result are the string outputs of one tool call.
type Result map[string]string

// ToolFunc executes one tool.
type ToolFunc func(ctx context.Context, args Args) (Result, error)

// Dispatcher routes invocations to registered tool functions.
type Dispatcher struct {
	catalog *registry.Catalog
	tools   map[string]ToolFunc
	log     logger.Logger
}

// NewDispatcher builds an empty dispatcher over the capability catalog.
func NewDispatcher(catalog *registry.Catalog, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Dispatcher{
		catalog: catalog,
		tools:   make(map[string]ToolFunc),
		log:     log,
	}
}

// Register binds a function to a capability name. The name must exist
// in the catalog and must not already be bound.
func (d *Dispatcher) Register(name string, fn ToolFunc) error {
	if fn == nil {
		return fmt.Errorf("tool %s: nil function", name)
	}
	if !d.catalog.Has(name) {
		return errors.NewCapabilityUnknownError("dispatcher", name)
	}
	if _, exists := d.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}
	d.tools[name] = fn
	return nil
}

// Registered returns the bound tool names, sorted.
func (d *Dispatcher) Registered() []string {
	names := make([]string, 0, len(d.tools))
	for name := range d.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the named tool. Unbound tools fail with
// TOOL_NOT_REGISTERED; calls missing a declared input key fail before
// the tool runs; tool failures are wrapped as TOOL_INVOCATION_FAILED.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args Args) (Result, error) {
	fn, ok := d.tools[name]
	if !ok {
		return nil, errors.NewToolNotRegisteredError(name)
	}
	cap, _ := d.catalog.Get(name)
	for _, key := range cap.InputKeys {
		if args[key] == "" {
			return nil, errors.NewToolInvocationFailedError(name,
				fmt.Errorf("missing input key %q", key))
		}
	}

	result, err := fn(ctx, args)
	if err != nil {
		d.log.Warn("tool invocation failed", map[string]interface{}{
			"tool":  name,
			"error": err.Error(),
		})
		var stdErr *errors.StandardError
		if goerrors.As(err, &stdErr) {
			return nil, err
		}
		return nil, errors.NewToolInvocationFailedError(name, err)
	}

	d.log.Debug("tool invoked", map[string]interface{}{
		"tool":    name,
		"outputs": len(result),
	})
	return result, nil
}

// StaticTool returns a tool that always succeeds with fixed outputs.
// Useful for local development and for steps whose real backend is not
// wired yet.
func StaticTool(outputs Result) ToolFunc {
	return func(_ context.Context, _ Args) (Result, error) {
		out := make(Result, len(outputs))
		for k, v := range outputs {
			out[k] = v
		}
		return out, nil
	}
}
