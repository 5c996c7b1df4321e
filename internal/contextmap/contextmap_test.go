package contextmap

import (
	"testing"

	"assistant-engine/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMap_Defaults(t *testing.T) {
	m, err := NewMap(DefaultEntries())
	require.NoError(t, err)

	fields := m.Fields(taxonomy.DomainSiteAssessment, "create-customer")
	require.Len(t, fields, 3)
	assert.Equal(t, "customer_name", fields[0].Key)
	assert.True(t, fields[0].Required)

	required := m.Required(taxonomy.DomainSiteAssessment, "create-customer")
	require.Len(t, required, 2)
	assert.Equal(t, "customer_name", required[0].Key)
	assert.Equal(t, "phone", required[1].Key)

	assert.True(t, m.Has(taxonomy.DomainInvoicing, "compute-balance"))
	assert.False(t, m.Has(taxonomy.DomainInvoicing, "frobnicate"))
	assert.Empty(t, m.Fields(taxonomy.DomainInvoicing, "frobnicate"))
}

func TestNewMap_Validation(t *testing.T) {
	tests := []struct {
		name    string
		entries []Entry
		wantErr string
	}{
		{
			name:    "unknown domain",
			entries: []Entry{{Domain: "nope", Step: "s", Fields: []Field{{Key: "k", Source: SourceStatic}}}},
			wantErr: "unknown domain",
		},
		{
			name:    "empty step",
			entries: []Entry{{Domain: taxonomy.DomainQuoting, Fields: []Field{{Key: "k", Source: SourceStatic}}}},
			wantErr: "empty step",
		},
		{
			name: "duplicate step",
			entries: []Entry{
				{Domain: taxonomy.DomainQuoting, Step: "s", Fields: []Field{{Key: "a", Source: SourceStatic}}},
				{Domain: taxonomy.DomainQuoting, Step: "s", Fields: []Field{{Key: "b", Source: SourceStatic}}},
			},
			wantErr: "duplicate context entry",
		},
		{
			name:    "no fields",
			entries: []Entry{{Domain: taxonomy.DomainQuoting, Step: "s"}},
			wantErr: "no fields",
		},
		{
			name: "duplicate field key",
			entries: []Entry{
				{Domain: taxonomy.DomainQuoting, Step: "s", Fields: []Field{
					{Key: "k", Source: SourceStatic},
					{Key: "k", Source: SourceDatabase},
				}},
			},
			wantErr: "duplicate field key",
		},
		{
			name: "unknown source",
			entries: []Entry{
				{Domain: taxonomy.DomainQuoting, Step: "s", Fields: []Field{{Key: "k", Source: "ldap"}}},
			},
			wantErr: "unknown source",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMap(tt.entries)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGroupBySource(t *testing.T) {
	m, err := NewMap(DefaultEntries())
	require.NoError(t, err)

	groups := GroupBySource(m.Fields(taxonomy.DomainSiteAssessment, "create-request"))
	require.Len(t, groups[SourceDatabase], 1)
	assert.Equal(t, "customer_id", groups[SourceDatabase][0].Key)
	require.Len(t, groups[SourceConversation], 1)
	assert.Equal(t, "address", groups[SourceConversation][0].Key)
}
