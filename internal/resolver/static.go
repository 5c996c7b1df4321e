// internal/resolver/static.go
package resolver

import (
	"context"

	"assistant-engine/internal/contextmap"
)

// ConversationResolver serves fields whose values were already
// extracted from the conversation. It never errors: an unknown key is
// simply absent from the result.
type ConversationResolver struct{}

func NewConversationResolver() *ConversationResolver {
	return &ConversationResolver{}
}

func (r *ConversationResolver) Source() contextmap.Source {
	return contextmap.SourceConversation
}

func (r *ConversationResolver) Resolve(_ context.Context, keys []string, hints Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := hints[k]; ok && v != "" {
			out[k] = v
		}
	}
	return out, nil
}

// StaticResolver serves fixed configuration values, plus anything the
// pipeline injected into the hints for the step (values produced by
// earlier workflow steps travel as hints with static source).
type StaticResolver struct {
	values map[string]string
}

func NewStaticResolver(values map[string]string) *StaticResolver {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &StaticResolver{values: copied}
}

func (r *StaticResolver) Source() contextmap.Source {
	return contextmap.SourceStatic
}

func (r *StaticResolver) Resolve(_ context.Context, keys []string, hints Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := hints[k]; ok && v != "" {
			out[k] = v
			continue
		}
		if v, ok := r.values[k]; ok && v != "" {
			out[k] = v
		}
	}
	return out, nil
}
