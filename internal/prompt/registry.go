// internal/prompt/registry.go
package prompt

import (
	"fmt"
	"strings"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/taxonomy"
	"assistant-engine/internal/workflow"
)

// Prompt is one fully rendered prompt.
type Prompt struct {
	Target      string   `json:"target"`
	Role        string   `json:"role"`
	Context     string   `json:"context"`
	Task        string   `json:"task"`
	Constraints []string `json:"constraints,omitempty"`
	Text        string   `json:"text"`
}

// StepPrompt pairs a workflow step with its rendered prompt.
type StepPrompt struct {
	Order  int     `json:"order"`
	Tool   string  `json:"tool"`
	Prompt *Prompt `json:"prompt"`
}

// Registry is the immutable template catalog, one template per target.
type Registry struct {
	byTarget map[string]*Template
	byDomain map[taxonomy.Domain][]*Template
}

// NewRegistry validates the templates. Every target must resolve to a
// registered intent or to a "workflow-id/tool" step of a registered
// workflow, and every placeholder must be a declared key.
func NewRegistry(templates []Template, intents *taxonomy.Registry, workflows *workflow.Registry) (*Registry, error) {
	r := &Registry{
		byTarget: make(map[string]*Template, len(templates)),
		byDomain: make(map[taxonomy.Domain][]*Template),
	}
	for i := range templates {
		tpl := templates[i]
		if err := tpl.validate(); err != nil {
			return nil, err
		}
		if _, exists := r.byTarget[tpl.Target]; exists {
			return nil, fmt.Errorf("duplicate template for target %q", tpl.Target)
		}
		domain, err := targetDomain(tpl.Target, intents, workflows)
		if err != nil {
			return nil, fmt.Errorf("template %s: %w", tpl.ID, err)
		}
		r.byTarget[tpl.Target] = &tpl
		r.byDomain[domain] = append(r.byDomain[domain], &tpl)
	}
	return r, nil
}

// targetDomain resolves the business domain a target belongs to: the
// intent's domain for intent targets, the workflow's domain for
// "workflow-id/tool" step targets.
func targetDomain(target string, intents *taxonomy.Registry, workflows *workflow.Registry) (taxonomy.Domain, error) {
	if wfID, tool, ok := strings.Cut(target, "/"); ok {
		wf, exists := workflows.Get(wfID)
		if !exists {
			return "", fmt.Errorf("target %q references unknown workflow %q", target, wfID)
		}
		for _, step := range wf.Steps {
			if step.Tool == tool {
				return wf.Domain, nil
			}
		}
		return "", fmt.Errorf("target %q: workflow %s has no step using tool %q", target, wfID, tool)
	}
	def, exists := intents.Get(target)
	if !exists {
		return "", fmt.Errorf("target %q is not a registered intent", target)
	}
	return def.Domain, nil
}

// Has reports whether a template exists for the target.
func (r *Registry) Has(target string) bool {
	_, ok := r.byTarget[target]
	return ok
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.byTarget)
}

// ByDomain returns the templates whose target belongs to the domain, in
// registration order. Intent targets use the intent's domain, workflow
// step targets use the workflow's domain.
func (r *Registry) ByDomain(domain taxonomy.Domain) []Template {
	tpls := r.byDomain[domain]
	out := make([]Template, len(tpls))
	for i, tpl := range tpls {
		out[i] = *tpl
	}
	return out
}

// Build renders the template for target with the given context. It
// fails with a MISSING_TEMPLATE error when no template exists and with
// a MISSING_REQUIRED_CONTEXT error naming every absent required key.
func (r *Registry) Build(target string, ctx map[string]interface{}) (*Prompt, error) {
	tpl, ok := r.byTarget[target]
	if !ok {
		return nil, errors.NewMissingTemplateError(target)
	}
	var missing []string
	for _, key := range tpl.RequiredKeys {
		if !hasValue(ctx, key) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, errors.NewMissingRequiredContextError(tpl.ID, missing)
	}
	return assemble(tpl, ctx), nil
}

// Preview renders the template with "<key>" markers in place of real
// values, bypassing the required-context check. Useful for reviewing
// shipped templates.
func (r *Registry) Preview(target string) (*Prompt, error) {
	tpl, ok := r.byTarget[target]
	if !ok {
		return nil, errors.NewMissingTemplateError(target)
	}
	ctx := make(map[string]interface{})
	for _, key := range append(append([]string{}, tpl.RequiredKeys...), tpl.OptionalKeys...) {
		ctx[key] = "<" + key + ">"
	}
	return assemble(tpl, ctx), nil
}

// MergeContext layers overlay on top of base without mutating either.
// Overlay values win on key collisions.
func MergeContext(base, overlay map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(base)+len(overlay))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// BuildForWorkflow renders a prompt for every workflow step that has a
// template, in step order. Each step sees the base context merged with
// its own overlay; steps without templates are skipped. The first
// failed render aborts the build.
func (r *Registry) BuildForWorkflow(wf *workflow.Workflow, base map[string]interface{}, overlays map[string]map[string]interface{}) ([]StepPrompt, error) {
	var out []StepPrompt
	for _, step := range wf.Steps {
		target := wf.ID + "/" + step.Tool
		if !r.Has(target) {
			continue
		}
		ctx := MergeContext(base, overlays[step.Tool])
		p, err := r.Build(target, ctx)
		if err != nil {
			return nil, fmt.Errorf("workflow %s step %d (%s): %w", wf.ID, step.Order, step.Tool, err)
		}
		out = append(out, StepPrompt{Order: step.Order, Tool: step.Tool, Prompt: p})
	}
	return out, nil
}

// assemble renders each section and joins them into the final text.
func assemble(tpl *Template, ctx map[string]interface{}) *Prompt {
	p := &Prompt{
		Target:  tpl.Target,
		Role:    render(tpl.Role, ctx),
		Context: render(tpl.Context, ctx),
		Task:    render(tpl.Task, ctx),
	}
	for _, c := range tpl.Constraints {
		if rendered := render(c, ctx); rendered != "" {
			p.Constraints = append(p.Constraints, rendered)
		}
	}

	var b strings.Builder
	if p.Role != "" {
		b.WriteString("Role: " + p.Role + "\n")
	}
	if p.Context != "" {
		b.WriteString("Context: " + p.Context + "\n")
	}
	b.WriteString("Task: " + p.Task + "\n")
	if len(p.Constraints) > 0 {
		b.WriteString("Constraints:\n")
		for _, c := range p.Constraints {
			b.WriteString("- " + c + "\n")
		}
	}
	p.Text = strings.TrimRight(b.String(), "\n")
	return p
}
