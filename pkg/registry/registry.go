// Package registry holds the tool capability catalog: the set of
// executable tools workflows and prompts are allowed to reference.
// The catalog ships as JSON and is schema-validated at load time so a
// typo in a tool name fails startup instead of a live conversation.
package registry

import (
	"fmt"
	"sort"
)

// Kind classifies what a capability does when invoked.
type Kind string

const (
	KindQuery        Kind = "query"
	KindAction       Kind = "action"
	KindNotification Kind = "notification"
)

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool {
	switch k {
	case KindQuery, KindAction, KindNotification:
		return true
	}
	return false
}

// Capability describes one invokable tool.
type Capability struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Kind        Kind     `json:"kind"`
	InputKeys   []string `json:"input_keys,omitempty"`
	OutputKeys  []string `json:"output_keys,omitempty"`
}

// Catalog is the immutable set of registered capabilities.
type Catalog struct {
	byName  map[string]Capability
	ordered []Capability
}

// NewCatalog validates the capabilities and builds the name index.
func NewCatalog(caps []Capability) (*Catalog, error) {
	c := &Catalog{
		byName:  make(map[string]Capability, len(caps)),
		ordered: make([]Capability, 0, len(caps)),
	}
	for _, cap := range caps {
		if cap.Name == "" {
			return nil, fmt.Errorf("capability has empty name")
		}
		if !cap.Kind.Valid() {
			return nil, fmt.Errorf("capability %s: unknown kind %q", cap.Name, cap.Kind)
		}
		if _, exists := c.byName[cap.Name]; exists {
			return nil, fmt.Errorf("duplicate capability name %q", cap.Name)
		}
		c.byName[cap.Name] = cap
		c.ordered = append(c.ordered, cap)
	}
	return c, nil
}

// Get returns the capability for name, or false when unregistered.
func (c *Catalog) Get(name string) (Capability, bool) {
	cap, ok := c.byName[name]
	return cap, ok
}

// Has reports whether name is a registered capability.
func (c *Catalog) Has(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Names returns all capability names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.byName))
	for name := range c.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every capability in registration order.
func (c *Catalog) All() []Capability {
	out := make([]Capability, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len returns the number of registered capabilities.
func (c *Catalog) Len() int {
	return len(c.ordered)
}

// DefaultCapabilities is the shipped tool set.
func DefaultCapabilities() []Capability {
	return []Capability{
		{Name: "search-customer", Kind: KindQuery, Description: "Find a customer record by name or contact detail",
			InputKeys: []string{"customer_name"}, OutputKeys: []string{"customer_id", "customer_name"}},
		{Name: "create-customer", Kind: KindAction, Description: "Create a new customer record",
			InputKeys: []string{"customer_name", "phone"}, OutputKeys: []string{"customer_id"}},
		{Name: "create-request", Kind: KindAction, Description: "Open a service request for a customer",
			InputKeys: []string{"customer_id"}, OutputKeys: []string{"request_id"}},
		{Name: "check-availability", Kind: KindQuery, Description: "Check technician availability for a date",
			InputKeys: []string{"date"}, OutputKeys: []string{"available_slots"}},
		{Name: "create-assessment-job", Kind: KindAction, Description: "Create a site assessment job",
			InputKeys: []string{"request_id", "date"}, OutputKeys: []string{"job_id"}},
		{Name: "assign-job", Kind: KindAction, Description: "Assign a technician to a job",
			InputKeys: []string{"job_id"}, OutputKeys: []string{"technician_name"}},
		{Name: "send-confirmation", Kind: KindNotification, Description: "Send a booking confirmation to the customer",
			InputKeys: []string{"customer_id", "job_id"}},
		{Name: "lookup-contact", Kind: KindQuery, Description: "Fetch a customer's preferred contact channel",
			InputKeys: []string{"customer_id"}, OutputKeys: []string{"channel", "address"}},
		{Name: "compose-message", Kind: KindAction, Description: "Draft an outbound message for review",
			InputKeys: []string{"customer_id", "topic"}, OutputKeys: []string{"message_body"}},
		{Name: "send-message", Kind: KindNotification, Description: "Deliver a message over the customer's channel",
			InputKeys: []string{"channel", "address", "message_body"}},
		{Name: "fetch-quote", Kind: KindQuery, Description: "Load a quote and its line items",
			InputKeys: []string{"quote_id"}, OutputKeys: []string{"quote_total", "quote_status"}},
		{Name: "check-quote-status", Kind: KindQuery, Description: "Check whether the customer viewed or accepted a quote",
			InputKeys: []string{"quote_id"}, OutputKeys: []string{"quote_status"}},
		{Name: "compose-followup", Kind: KindAction, Description: "Draft a follow-up message referencing the quote",
			InputKeys: []string{"quote_id", "quote_status"}, OutputKeys: []string{"message_body"}},
		{Name: "fetch-invoice", Kind: KindQuery, Description: "Load an invoice and its payment history",
			InputKeys: []string{"invoice_id"}, OutputKeys: []string{"invoice_total", "amount_paid"}},
		{Name: "compute-balance", Kind: KindQuery, Description: "Compute the outstanding balance on an invoice",
			InputKeys: []string{"invoice_total", "amount_paid"}, OutputKeys: []string{"balance_due"}},
		{Name: "compose-reminder", Kind: KindAction, Description: "Draft a payment reminder for an overdue invoice",
			InputKeys: []string{"invoice_id", "balance_due"}, OutputKeys: []string{"message_body"}},
	}
}
