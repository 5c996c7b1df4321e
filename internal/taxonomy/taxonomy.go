// Package taxonomy defines the closed set of business domains, entity
// types, and intent definitions the assistant can classify into.
package taxonomy

import "fmt"

// Domain is a top-level business area an intent belongs to.
type Domain string

const (
	DomainLeadGeneration     Domain = "lead_generation"
	DomainCustomerManagement Domain = "customer_management"
	DomainCommunication      Domain = "communication"
	DomainSiteAssessment     Domain = "site_assessment"
	DomainScheduling         Domain = "scheduling"
	DomainJobManagement      Domain = "job_management"
	DomainQuoting            Domain = "quoting"
	DomainInvoicing          Domain = "invoicing"
	DomainPayments           Domain = "payments"
	DomainTeamManagement     Domain = "team_management"
	DomainMarketing          Domain = "marketing"
	DomainReporting          Domain = "reporting"
)

// AllDomains lists every domain in declaration order.
var AllDomains = []Domain{
	DomainLeadGeneration,
	DomainCustomerManagement,
	DomainCommunication,
	DomainSiteAssessment,
	DomainScheduling,
	DomainJobManagement,
	DomainQuoting,
	DomainInvoicing,
	DomainPayments,
	DomainTeamManagement,
	DomainMarketing,
	DomainReporting,
}

// Valid reports whether d is one of the declared domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainLeadGeneration, DomainCustomerManagement, DomainCommunication,
		DomainSiteAssessment, DomainScheduling, DomainJobManagement,
		DomainQuoting, DomainInvoicing, DomainPayments,
		DomainTeamManagement, DomainMarketing, DomainReporting:
		return true
	}
	return false
}

func (d Domain) String() string { return string(d) }

// EntityType identifies a kind of structured value extractable from text.
type EntityType string

const (
	EntityDate       EntityType = "date"
	EntityTime       EntityType = "time"
	EntityMoney      EntityType = "money"
	EntityIdentifier EntityType = "identifier"
	EntityName       EntityType = "name"
	EntityEmail      EntityType = "email"
	EntityPhone      EntityType = "phone"
	EntityAddress    EntityType = "address"
	EntityNote       EntityType = "note"
)

// AllEntityTypes lists every entity type in declaration order.
var AllEntityTypes = []EntityType{
	EntityDate,
	EntityTime,
	EntityMoney,
	EntityIdentifier,
	EntityName,
	EntityEmail,
	EntityPhone,
	EntityAddress,
	EntityNote,
}

// Valid reports whether t is one of the declared entity types.
func (t EntityType) Valid() bool {
	switch t {
	case EntityDate, EntityTime, EntityMoney, EntityIdentifier,
		EntityName, EntityEmail, EntityPhone, EntityAddress, EntityNote:
		return true
	}
	return false
}

func (t EntityType) String() string { return string(t) }

// RiskLevel indicates how much damage a wrongly executed intent can do.
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// Valid reports whether r is one of the declared risk levels.
func (r RiskLevel) Valid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

func (r RiskLevel) String() string { return string(r) }

// IntentDefinition describes one classifiable intent: what it means,
// which entities it needs, and how careful execution must be.
type IntentDefinition struct {
	ID                   string       `json:"id"`
	Domain               Domain       `json:"domain"`
	Description          string       `json:"description"`
	RequiredEntities     []EntityType `json:"required_entities"`
	OptionalEntities     []EntityType `json:"optional_entities,omitempty"`
	Risk                 RiskLevel    `json:"risk"`
	RequiresConfirmation bool         `json:"requires_confirmation"`
	// SendsExternal marks intents that emit a message to someone outside
	// the system (email, SMS, mailed documents).
	SendsExternal bool `json:"sends_external,omitempty"`
}

// Validate checks the structural invariants of a single definition.
func (d *IntentDefinition) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("intent has empty id")
	}
	if !d.Domain.Valid() {
		return fmt.Errorf("intent %s: unknown domain %q", d.ID, d.Domain)
	}
	if !d.Risk.Valid() {
		return fmt.Errorf("intent %s: unknown risk level %q", d.ID, d.Risk)
	}
	seen := make(map[EntityType]bool, len(d.RequiredEntities))
	for _, et := range d.RequiredEntities {
		if !et.Valid() {
			return fmt.Errorf("intent %s: unknown required entity type %q", d.ID, et)
		}
		if seen[et] {
			return fmt.Errorf("intent %s: duplicate required entity type %q", d.ID, et)
		}
		seen[et] = true
	}
	for _, et := range d.OptionalEntities {
		if !et.Valid() {
			return fmt.Errorf("intent %s: unknown optional entity type %q", d.ID, et)
		}
		if seen[et] {
			return fmt.Errorf("intent %s: entity type %q is both required and optional", d.ID, et)
		}
		seen[et] = true
	}
	if d.Risk == RiskHigh && !d.RequiresConfirmation {
		return fmt.Errorf("intent %s: high risk intents must require confirmation", d.ID)
	}
	if d.SendsExternal && d.Risk != RiskHigh && !d.RequiresConfirmation {
		return fmt.Errorf("intent %s: externally sending intents must be high risk or require confirmation", d.ID)
	}
	return nil
}
