// internal/resolver/elasticsearch.go
package resolver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"assistant-engine/internal/common/database"
	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/contextmap"
)

// SearchLookup binds a context key to a match query on one index.
type SearchLookup struct {
	Key         string
	Index       string
	MatchField  string // document field matched against the hint value
	HintArg     string // hint providing the match value
	ReturnField string // document field returned as the resolved value
}

// ElasticsearchResolver resolves search-sourced fields with top-1
// match queries against the customer index.
type ElasticsearchResolver struct {
	client  *database.ElasticsearchClient
	lookups map[string]SearchLookup
}

// NewElasticsearchResolver indexes the lookups by key.
func NewElasticsearchResolver(client *database.ElasticsearchClient, lookups []SearchLookup) (*ElasticsearchResolver, error) {
	r := &ElasticsearchResolver{
		client:  client,
		lookups: make(map[string]SearchLookup, len(lookups)),
	}
	for _, l := range lookups {
		if l.Key == "" || l.Index == "" || l.MatchField == "" || l.HintArg == "" || l.ReturnField == "" {
			return nil, fmt.Errorf("search lookup for %q is incomplete", l.Key)
		}
		if _, exists := r.lookups[l.Key]; exists {
			return nil, fmt.Errorf("duplicate search lookup for key %q", l.Key)
		}
		r.lookups[l.Key] = l
	}
	return r, nil
}

func (r *ElasticsearchResolver) Source() contextmap.Source {
	return contextmap.SourceSearch
}

func (r *ElasticsearchResolver) Resolve(ctx context.Context, keys []string, hints Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup, ok := r.lookups[key]
		if !ok {
			continue
		}
		hint, present := hints[lookup.HintArg]
		if !present || hint == "" {
			continue
		}

		value, found, err := r.searchTopHit(ctx, lookup, hint)
		if err != nil {
			return nil, err
		}
		if found {
			out[key] = value
		}
	}
	return out, nil
}

// searchTopHit runs a size-1 match query and pulls ReturnField out of
// the best hit's source document.
func (r *ElasticsearchResolver) searchTopHit(ctx context.Context, lookup SearchLookup, hint string) (string, bool, error) {
	query := map[string]interface{}{
		"size": 1,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				lookup.MatchField: hint,
			},
		},
	}
	var body bytes.Buffer
	if err := json.NewEncoder(&body).Encode(query); err != nil {
		return "", false, errors.NewSearchQueryFailedError(lookup.Key, err)
	}

	es := r.client.Client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(lookup.Index),
		es.Search.WithBody(&body),
	)
	if err != nil {
		return "", false, errors.NewSearchQueryFailedError(lookup.Key, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return "", false, errors.NewSearchQueryFailedError(lookup.Key, fmt.Errorf("search returned %s", res.Status()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return "", false, errors.NewSearchQueryFailedError(lookup.Key, err)
	}
	if len(parsed.Hits.Hits) == 0 {
		return "", false, nil
	}
	raw, ok := parsed.Hits.Hits[0].Source[lookup.ReturnField]
	if !ok {
		return "", false, nil
	}
	return fmt.Sprintf("%v", raw), true, nil
}

// DefaultSearchLookups are the shipped lookups for search-sourced
// fields in the default context map.
func DefaultSearchLookups() []SearchLookup {
	return []SearchLookup{
		{Key: "customer_id", Index: "customers", MatchField: "name", HintArg: "customer_name", ReturnField: "id"},
	}
}
