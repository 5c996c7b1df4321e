// internal/taxonomy/registry.go
package taxonomy

import (
	"fmt"
	"sort"
	"strings"
)

// Registry is an immutable catalog of intent definitions with O(1)
// lookup by id. Build it once at startup via NewRegistry; a registry
// that fails validation is never returned.
type Registry struct {
	byID     map[string]*IntentDefinition
	byDomain map[Domain][]*IntentDefinition
	ordered  []*IntentDefinition
}

// NewRegistry validates the given definitions and builds the lookup
// indexes. Duplicate ids or invalid definitions are load-time errors.
func NewRegistry(defs []IntentDefinition) (*Registry, error) {
	r := &Registry{
		byID:     make(map[string]*IntentDefinition, len(defs)),
		byDomain: make(map[Domain][]*IntentDefinition),
		ordered:  make([]*IntentDefinition, 0, len(defs)),
	}
	for i := range defs {
		def := defs[i]
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("invalid intent definition: %w", err)
		}
		if _, exists := r.byID[def.ID]; exists {
			return nil, fmt.Errorf("duplicate intent id %q", def.ID)
		}
		r.byID[def.ID] = &def
		r.byDomain[def.Domain] = append(r.byDomain[def.Domain], &def)
		r.ordered = append(r.ordered, &def)
	}
	return r, nil
}

// Get returns the definition for id, or false when unknown.
func (r *Registry) Get(id string) (*IntentDefinition, bool) {
	def, ok := r.byID[id]
	return def, ok
}

// All returns every definition in registration order.
func (r *Registry) All() []*IntentDefinition {
	out := make([]*IntentDefinition, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByDomain returns the definitions registered under domain, in
// registration order.
func (r *Registry) ByDomain(domain Domain) []*IntentDefinition {
	defs := r.byDomain[domain]
	out := make([]*IntentDefinition, len(defs))
	copy(out, defs)
	return out
}

// Len returns the number of registered intents.
func (r *Registry) Len() int {
	return len(r.ordered)
}

// HighRiskIntents returns the ids of all high risk intents, sorted.
func (r *Registry) HighRiskIntents() []string {
	var ids []string
	for _, def := range r.ordered {
		if def.Risk == RiskHigh {
			ids = append(ids, def.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// ConfirmationRequiredIntents returns the ids of all intents that must
// be confirmed before execution, sorted.
func (r *Registry) ConfirmationRequiredIntents() []string {
	var ids []string
	for _, def := range r.ordered {
		if def.RequiresConfirmation {
			ids = append(ids, def.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// routeDomains maps conversation route names onto domains. Routes are
// a weaker signal than the user's words so lookups here are only used
// as a tie-break preference, never a hard filter.
var routeDomains = map[string]Domain{
	"lead":       DomainLeadGeneration,
	"leads":      DomainLeadGeneration,
	"customer":   DomainCustomerManagement,
	"customers":  DomainCustomerManagement,
	"comm":       DomainCommunication,
	"messages":   DomainCommunication,
	"assessment": DomainSiteAssessment,
	"site":       DomainSiteAssessment,
	"schedule":   DomainScheduling,
	"calendar":   DomainScheduling,
	"job":        DomainJobManagement,
	"jobs":       DomainJobManagement,
	"quote":      DomainQuoting,
	"quotes":     DomainQuoting,
	"invoice":    DomainInvoicing,
	"invoices":   DomainInvoicing,
	"payment":    DomainPayments,
	"payments":   DomainPayments,
	"team":       DomainTeamManagement,
	"staff":      DomainTeamManagement,
	"marketing":  DomainMarketing,
	"campaigns":  DomainMarketing,
	"report":     DomainReporting,
	"reports":    DomainReporting,
}

// DomainFromRoute maps a conversation route name onto a domain. The
// match is case-insensitive; an exact domain name always maps to
// itself. Unknown routes return false.
func DomainFromRoute(route string) (Domain, bool) {
	route = strings.ToLower(strings.TrimSpace(route))
	if route == "" {
		return "", false
	}
	if d := Domain(route); d.Valid() {
		return d, true
	}
	d, ok := routeDomains[route]
	return d, ok
}
