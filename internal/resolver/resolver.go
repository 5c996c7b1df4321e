// Package resolver fetches context field values from their declared
// sources: the conversation itself, Postgres, the search index, or
// static configuration. A MultiResolver batches a step's fields by
// source so each backend is consulted once per step.
package resolver

import (
	"context"
	"fmt"
	"time"

	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/common/logger"
	"assistant-engine/internal/contextmap"
)

// Hints carry the values already known from the conversation: the
// normalized entity map plus anything earlier steps produced.
type Hints map[string]string

// Resolver resolves values for one source.
type Resolver interface {
	Source() contextmap.Source
	Resolve(ctx context.Context, keys []string, hints Hints) (map[string]string, error)
}

// Resolution is the outcome of resolving one step's fields.
type Resolution struct {
	Values  map[string]string `json:"values"`
	Missing []string          `json:"missing,omitempty"`
}

// MissingRequired returns the required field keys that stayed
// unresolved, in field order.
func (r *Resolution) MissingRequired(fields []contextmap.Field) []string {
	missing := make(map[string]bool, len(r.Missing))
	for _, k := range r.Missing {
		missing[k] = true
	}
	var out []string
	for _, f := range fields {
		if f.Required && missing[f.Key] {
			out = append(out, f.Key)
		}
	}
	return out
}

// MultiResolver routes each field to its source's resolver.
type MultiResolver struct {
	resolvers map[contextmap.Source]Resolver
	timeout   time.Duration
	log       logger.Logger
}

// NewMultiResolver indexes the resolvers by source. Registering two
// resolvers for the same source is a construction error.
func NewMultiResolver(timeout time.Duration, log logger.Logger, resolvers ...Resolver) (*MultiResolver, error) {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	m := &MultiResolver{
		resolvers: make(map[contextmap.Source]Resolver, len(resolvers)),
		timeout:   timeout,
		log:       log,
	}
	for _, r := range resolvers {
		if _, exists := m.resolvers[r.Source()]; exists {
			return nil, fmt.Errorf("duplicate resolver for source %q", r.Source())
		}
		m.resolvers[r.Source()] = r
	}
	return m, nil
}

// ResolveFields resolves every field, batched per source. Fields whose
// source has no resolver, or whose resolver returned no value, are
// reported in Resolution.Missing. Backend failures abort with a
// CONTEXT_RESOLUTION_FAILED or RESOLVER_TIMEOUT error.
func (m *MultiResolver) ResolveFields(ctx context.Context, fields []contextmap.Field, hints Hints) (*Resolution, error) {
	res := &Resolution{Values: make(map[string]string, len(fields))}
	groups := contextmap.GroupBySource(fields)

	// Iterate fields (not the group map) so missing-key order is stable.
	resolved := make(map[contextmap.Source]map[string]string, len(groups))
	for source, grouped := range groups {
		r, ok := m.resolvers[source]
		if !ok {
			continue
		}
		keys := make([]string, len(grouped))
		for i, f := range grouped {
			keys[i] = f.Key
		}

		callCtx, cancel := context.WithTimeout(ctx, m.timeout)
		values, err := r.Resolve(callCtx, keys, hints)
		cancel()
		if err != nil {
			if callCtx.Err() == context.DeadlineExceeded {
				return nil, errors.NewResolverTimeoutError(string(source))
			}
			return nil, errors.NewContextResolutionFailedError(string(source), err)
		}
		resolved[source] = values
	}

	for _, f := range fields {
		if v, ok := resolved[f.Source][f.Key]; ok && v != "" {
			res.Values[f.Key] = v
		} else {
			res.Missing = append(res.Missing, f.Key)
		}
	}

	m.log.Debug("resolved context fields", map[string]interface{}{
		"requested": len(fields),
		"resolved":  len(res.Values),
		"missing":   len(res.Missing),
	})
	return res, nil
}
