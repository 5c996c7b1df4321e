package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCatalog_Defaults(t *testing.T) {
	cat, err := NewCatalog(DefaultCapabilities())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCapabilities()), cat.Len())

	tool, ok := cat.Get("search-customer")
	require.True(t, ok)
	assert.Equal(t, KindQuery, tool.Kind)
	assert.True(t, cat.Has("send-confirmation"))
	assert.False(t, cat.Has("frobnicate"))
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := NewCatalog([]Capability{{Name: "", Kind: KindQuery}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty name")

	_, err = NewCatalog([]Capability{{Name: "x", Kind: "cron"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown kind")

	_, err = NewCatalog([]Capability{
		{Name: "x", Kind: KindQuery},
		{Name: "x", Kind: KindAction},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate capability")
}

func TestParse(t *testing.T) {
	good := `{
	  "capabilities": [
	    {"name": "search-customer", "kind": "query", "description": "find a customer"}
	  ]
	}`
	cat, err := Parse([]byte(good))
	require.NoError(t, err)
	assert.True(t, cat.Has("search-customer"))

	tests := []struct {
		name string
		data string
	}{
		{"missing kind", `{"capabilities": [{"name": "x", "description": "d"}]}`},
		{"bad kind", `{"capabilities": [{"name": "x", "kind": "cron", "description": "d"}]}`},
		{"bad name casing", `{"capabilities": [{"name": "SearchCustomer", "kind": "query", "description": "d"}]}`},
		{"empty list", `{"capabilities": []}`},
		{"extra field", `{"capabilities": [{"name": "x", "kind": "query", "description": "d", "owner": "me"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
