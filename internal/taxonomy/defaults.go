// internal/taxonomy/defaults.go
package taxonomy

// DefaultIntents is the shipped intent catalog for the field-service
// assistant. Every entry is validated when loaded into a Registry.
func DefaultIntents() []IntentDefinition {
	return []IntentDefinition{
		// Lead generation
		{
			ID:               "lead.create",
			Domain:           DomainLeadGeneration,
			Description:      "Capture a new sales lead with contact details",
			RequiredEntities: []EntityType{EntityName, EntityPhone},
			OptionalEntities: []EntityType{EntityEmail, EntityNote},
			Risk:             RiskLow,
		},
		{
			ID:               "lead.qualify",
			Domain:           DomainLeadGeneration,
			Description:      "Mark an existing lead as qualified or disqualified",
			RequiredEntities: []EntityType{EntityIdentifier},
			OptionalEntities: []EntityType{EntityNote},
			Risk:             RiskLow,
		},

		// Customer management
		{
			ID:               "customer.create",
			Domain:           DomainCustomerManagement,
			Description:      "Create a customer record",
			RequiredEntities: []EntityType{EntityName},
			OptionalEntities: []EntityType{EntityPhone, EntityEmail, EntityAddress},
			Risk:             RiskLow,
		},
		{
			ID:               "customer.search",
			Domain:           DomainCustomerManagement,
			Description:      "Find an existing customer by name or contact detail",
			RequiredEntities: []EntityType{EntityName},
			OptionalEntities: []EntityType{EntityPhone, EntityEmail},
			Risk:             RiskLow,
		},

		// Communication
		{
			ID:                   "communication.send_email",
			Domain:               DomainCommunication,
			Description:          "Send an email to a customer or team member",
			RequiredEntities:     []EntityType{EntityEmail},
			OptionalEntities:     []EntityType{EntityNote},
			Risk:                 RiskMedium,
			RequiresConfirmation: true,
			SendsExternal:        true,
		},
		{
			ID:                   "communication.send_sms",
			Domain:               DomainCommunication,
			Description:          "Send a text message to a customer or team member",
			RequiredEntities:     []EntityType{EntityPhone},
			OptionalEntities:     []EntityType{EntityNote},
			Risk:                 RiskMedium,
			RequiresConfirmation: true,
			SendsExternal:        true,
		},

		// Site assessment
		{
			ID:               "assessment.request",
			Domain:           DomainSiteAssessment,
			Description:      "Request a site assessment at a property",
			RequiredEntities: []EntityType{EntityAddress},
			OptionalEntities: []EntityType{EntityDate, EntityNote},
			Risk:             RiskLow,
		},
		{
			ID:               "assessment.record_result",
			Domain:           DomainSiteAssessment,
			Description:      "Record the outcome of a completed site assessment",
			RequiredEntities: []EntityType{EntityIdentifier, EntityNote},
			Risk:             RiskLow,
		},

		// Scheduling
		{
			ID:               "schedule.check_availability",
			Domain:           DomainScheduling,
			Description:      "Check technician availability for a date",
			RequiredEntities: []EntityType{EntityDate},
			OptionalEntities: []EntityType{EntityTime},
			Risk:             RiskLow,
		},
		{
			ID:               "schedule.book_appointment",
			Domain:           DomainScheduling,
			Description:      "Book an appointment on a specific date and time",
			RequiredEntities: []EntityType{EntityDate, EntityTime},
			OptionalEntities: []EntityType{EntityName, EntityAddress},
			Risk:             RiskMedium,
		},
		{
			ID:                   "schedule.cancel_appointment",
			Domain:               DomainScheduling,
			Description:          "Cancel a previously booked appointment",
			RequiredEntities:     []EntityType{EntityIdentifier},
			OptionalEntities:     []EntityType{EntityNote},
			Risk:                 RiskHigh,
			RequiresConfirmation: true,
		},

		// Job management
		{
			ID:               "job.create",
			Domain:           DomainJobManagement,
			Description:      "Create a service job for a customer",
			RequiredEntities: []EntityType{EntityName},
			OptionalEntities: []EntityType{EntityAddress, EntityDate, EntityNote},
			Risk:             RiskLow,
		},
		{
			ID:               "job.update_status",
			Domain:           DomainJobManagement,
			Description:      "Update the status of an existing job",
			RequiredEntities: []EntityType{EntityIdentifier},
			OptionalEntities: []EntityType{EntityNote},
			Risk:             RiskMedium,
		},

		// Quoting
		{
			ID:               "quote.create",
			Domain:           DomainQuoting,
			Description:      "Prepare a quote with a price for requested work",
			RequiredEntities: []EntityType{EntityMoney},
			OptionalEntities: []EntityType{EntityName, EntityNote},
			Risk:             RiskMedium,
		},
		{
			ID:                   "quote.send",
			Domain:               DomainQuoting,
			Description:          "Send a prepared quote to the customer",
			RequiredEntities:     []EntityType{EntityIdentifier},
			OptionalEntities:     []EntityType{EntityEmail},
			Risk:                 RiskMedium,
			RequiresConfirmation: true,
			SendsExternal:        true,
		},

		// Invoicing
		{
			ID:               "invoice.create",
			Domain:           DomainInvoicing,
			Description:      "Create an invoice for completed work",
			RequiredEntities: []EntityType{EntityMoney},
			OptionalEntities: []EntityType{EntityIdentifier, EntityName},
			Risk:             RiskMedium,
		},
		{
			ID:                   "invoice.send",
			Domain:               DomainInvoicing,
			Description:          "Send an invoice to the customer",
			RequiredEntities:     []EntityType{EntityIdentifier},
			OptionalEntities:     []EntityType{EntityEmail},
			Risk:                 RiskMedium,
			RequiresConfirmation: true,
			SendsExternal:        true,
		},

		// Payments
		{
			ID:                   "payment.record",
			Domain:               DomainPayments,
			Description:          "Record a payment received against an invoice",
			RequiredEntities:     []EntityType{EntityMoney},
			OptionalEntities:     []EntityType{EntityIdentifier, EntityDate},
			Risk:                 RiskHigh,
			RequiresConfirmation: true,
		},
		{
			ID:                   "payment.refund",
			Domain:               DomainPayments,
			Description:          "Issue a refund to a customer",
			RequiredEntities:     []EntityType{EntityMoney, EntityIdentifier},
			Risk:                 RiskHigh,
			RequiresConfirmation: true,
		},

		// Team management
		{
			ID:               "team.assign_technician",
			Domain:           DomainTeamManagement,
			Description:      "Assign a technician to a job",
			RequiredEntities: []EntityType{EntityName},
			OptionalEntities: []EntityType{EntityIdentifier, EntityDate},
			Risk:             RiskMedium,
		},
		{
			ID:               "team.view_schedule",
			Domain:           DomainTeamManagement,
			Description:      "View a team member's schedule",
			RequiredEntities: []EntityType{EntityDate},
			OptionalEntities: []EntityType{EntityName},
			Risk:             RiskLow,
		},

		// Marketing
		{
			ID:               "marketing.create_campaign",
			Domain:           DomainMarketing,
			Description:      "Create a marketing campaign",
			RequiredEntities: []EntityType{EntityName},
			OptionalEntities: []EntityType{EntityDate, EntityMoney},
			Risk:             RiskLow,
		},
		{
			ID:                   "marketing.send_promotion",
			Domain:               DomainMarketing,
			Description:          "Send a promotional message to a customer segment",
			RequiredEntities:     []EntityType{EntityNote},
			Risk:                 RiskHigh,
			RequiresConfirmation: true,
			SendsExternal:        true,
		},

		// Reporting
		{
			ID:               "report.revenue",
			Domain:           DomainReporting,
			Description:      "Generate a revenue report for a period",
			RequiredEntities: []EntityType{EntityDate},
			Risk:             RiskLow,
		},
		{
			ID:               "report.jobs",
			Domain:           DomainReporting,
			Description:      "Generate a job completion report for a period",
			RequiredEntities: []EntityType{EntityDate},
			Risk:             RiskLow,
		},
	}
}
