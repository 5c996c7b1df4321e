// internal/resolver/postgres.go
package resolver

import (
	"context"
	"database/sql"
	"fmt"

	"assistant-engine/internal/common/database"
	"assistant-engine/internal/common/errors"
	"assistant-engine/internal/contextmap"
)

// Lookup binds a context key to the parameterized query that resolves
// it. HintArgs name the hint values bound as query parameters, in
// positional order.
type Lookup struct {
	Key      string
	Query    string
	HintArgs []string
}

// PostgresResolver resolves database-sourced fields with single-value
// lookups. A lookup whose hint arguments are unavailable is skipped
// rather than failed: the field shows up as missing and the caller
// decides whether that is fatal.
type PostgresResolver struct {
	client  *database.PostgresClient
	lookups map[string]Lookup
}

// NewPostgresResolver indexes the lookups by key.
func NewPostgresResolver(client *database.PostgresClient, lookups []Lookup) (*PostgresResolver, error) {
	r := &PostgresResolver{
		client:  client,
		lookups: make(map[string]Lookup, len(lookups)),
	}
	for _, l := range lookups {
		if l.Key == "" || l.Query == "" {
			return nil, fmt.Errorf("postgres lookup needs a key and a query")
		}
		if _, exists := r.lookups[l.Key]; exists {
			return nil, fmt.Errorf("duplicate postgres lookup for key %q", l.Key)
		}
		r.lookups[l.Key] = l
	}
	return r, nil
}

func (r *PostgresResolver) Source() contextmap.Source {
	return contextmap.SourceDatabase
}

func (r *PostgresResolver) Resolve(ctx context.Context, keys []string, hints Hints) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	for _, key := range keys {
		lookup, ok := r.lookups[key]
		if !ok {
			continue
		}
		args := make([]interface{}, 0, len(lookup.HintArgs))
		satisfied := true
		for _, hintName := range lookup.HintArgs {
			v, present := hints[hintName]
			if !present || v == "" {
				satisfied = false
				break
			}
			args = append(args, v)
		}
		if !satisfied {
			continue
		}

		var value string
		err := r.client.QueryRow(ctx, lookup.Query, args...).Scan(&value)
		switch {
		case err == sql.ErrNoRows:
			// Absent data is a missing field, not a failure.
		case err != nil:
			return nil, errors.NewQueryExecutionFailedError(key, err)
		default:
			out[key] = value
		}
	}
	return out, nil
}

// DefaultLookups are the shipped single-value lookups for the fields
// the default context map sources from the database.
func DefaultLookups() []Lookup {
	return []Lookup{
		{Key: "customer_id", Query: "SELECT id FROM customers WHERE name = $1 LIMIT 1", HintArgs: []string{"customer_name"}},
		{Key: "request_id", Query: "SELECT id FROM requests WHERE customer_id = $1 ORDER BY created_at DESC LIMIT 1", HintArgs: []string{"customer_id"}},
		{Key: "job_id", Query: "SELECT id FROM jobs WHERE request_id = $1 ORDER BY created_at DESC LIMIT 1", HintArgs: []string{"request_id"}},
		{Key: "channel", Query: "SELECT preferred_channel FROM customers WHERE id = $1", HintArgs: []string{"customer_id"}},
		{Key: "address", Query: "SELECT contact_address FROM customers WHERE id = $1", HintArgs: []string{"customer_id"}},
		{Key: "quote_status", Query: "SELECT status FROM quotes WHERE reference = $1", HintArgs: []string{"quote_id"}},
		{Key: "quote_total", Query: "SELECT total::text FROM quotes WHERE reference = $1", HintArgs: []string{"quote_id"}},
		{Key: "invoice_total", Query: "SELECT total::text FROM invoices WHERE reference = $1", HintArgs: []string{"invoice_id"}},
		{Key: "amount_paid", Query: "SELECT COALESCE(SUM(amount), 0)::text FROM payments WHERE invoice_reference = $1", HintArgs: []string{"invoice_id"}},
		{Key: "balance_due", Query: "SELECT (total - COALESCE(paid, 0))::text FROM invoice_balances WHERE reference = $1", HintArgs: []string{"invoice_id"}},
	}
}
