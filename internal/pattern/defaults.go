// internal/pattern/defaults.go
package pattern

import "assistant-engine/internal/taxonomy"

// DefaultPatterns is the shipped phrase registry. One pattern per
// intent plus the multi-step workflow patterns. Trigger phrases are
// chosen so no pattern shadows another within its pool; the coverage
// gate verifies that property.
func DefaultPatterns() []Definition {
	return []Definition{
		// Intent pool
		{
			ID: "pat.lead.create", Pool: PoolIntent, TargetID: "lead.create",
			Domain:   taxonomy.DomainLeadGeneration,
			Triggers: []string{"new lead", "add a lead", "capture a lead"},
		},
		{
			ID: "pat.lead.qualify", Pool: PoolIntent, TargetID: "lead.qualify",
			Domain:   taxonomy.DomainLeadGeneration,
			Triggers: []string{"qualify the lead", "qualify lead", "lead is qualified"},
		},
		{
			ID: "pat.customer.create", Pool: PoolIntent, TargetID: "customer.create",
			Domain:   taxonomy.DomainCustomerManagement,
			Triggers: []string{"create a customer", "add a customer", "new customer"},
		},
		{
			ID: "pat.customer.search", Pool: PoolIntent, TargetID: "customer.search",
			Domain:   taxonomy.DomainCustomerManagement,
			Triggers: []string{"find the customer", "look up the customer", "search for customer"},
		},
		{
			ID: "pat.communication.send_email", Pool: PoolIntent, TargetID: "communication.send_email",
			Domain:   taxonomy.DomainCommunication,
			Triggers: []string{"send an email", "email the quote", "email the invoice"},
		},
		{
			ID: "pat.communication.send_sms", Pool: PoolIntent, TargetID: "communication.send_sms",
			Domain:   taxonomy.DomainCommunication,
			Triggers: []string{"send a text", "text the customer", "send an sms"},
		},
		{
			ID: "pat.assessment.request", Pool: PoolIntent, TargetID: "assessment.request",
			Domain:   taxonomy.DomainSiteAssessment,
			Triggers: []string{"request an assessment", "assess the property", "needs an assessment"},
		},
		{
			ID: "pat.assessment.record_result", Pool: PoolIntent, TargetID: "assessment.record_result",
			Domain:   taxonomy.DomainSiteAssessment,
			Triggers: []string{"record the assessment", "assessment came back", "assessment results"},
		},
		{
			ID: "pat.schedule.check_availability", Pool: PoolIntent, TargetID: "schedule.check_availability",
			Domain:   taxonomy.DomainScheduling,
			Triggers: []string{"check availability", "are we free", "any openings"},
		},
		{
			ID: "pat.schedule.book_appointment", Pool: PoolIntent, TargetID: "schedule.book_appointment",
			Domain:   taxonomy.DomainScheduling,
			Triggers: []string{"book an appointment", "set up an appointment", "book them in"},
		},
		{
			ID: "pat.schedule.cancel_appointment", Pool: PoolIntent, TargetID: "schedule.cancel_appointment",
			Domain:   taxonomy.DomainScheduling,
			Triggers: []string{"cancel the appointment", "call off the appointment", "cancel their appointment"},
		},
		{
			ID: "pat.job.create", Pool: PoolIntent, TargetID: "job.create",
			Domain:   taxonomy.DomainJobManagement,
			Triggers: []string{"create a job", "open a job", "new job for"},
		},
		{
			ID: "pat.job.update_status", Pool: PoolIntent, TargetID: "job.update_status",
			Domain:   taxonomy.DomainJobManagement,
			Triggers: []string{"update the job", "mark the job", "job is done"},
		},
		{
			ID: "pat.quote.create", Pool: PoolIntent, TargetID: "quote.create",
			Domain:   taxonomy.DomainQuoting,
			Triggers: []string{"prepare a quote", "quote them", "put together a quote"},
		},
		{
			ID: "pat.quote.send", Pool: PoolIntent, TargetID: "quote.send",
			Domain:   taxonomy.DomainQuoting,
			Triggers: []string{"send the quote", "resend the quote", "send over the quote"},
		},
		{
			ID: "pat.invoice.create", Pool: PoolIntent, TargetID: "invoice.create",
			Domain:   taxonomy.DomainInvoicing,
			Triggers: []string{"create an invoice", "invoice them", "bill them"},
		},
		{
			ID: "pat.invoice.send", Pool: PoolIntent, TargetID: "invoice.send",
			Domain:   taxonomy.DomainInvoicing,
			Triggers: []string{"send the invoice", "resend the invoice", "send out the invoice"},
		},
		{
			ID: "pat.payment.record", Pool: PoolIntent, TargetID: "payment.record",
			Domain:   taxonomy.DomainPayments,
			Triggers: []string{"record a payment", "payment received", "they paid"},
		},
		{
			ID: "pat.payment.refund", Pool: PoolIntent, TargetID: "payment.refund",
			Domain:   taxonomy.DomainPayments,
			Triggers: []string{"issue a refund", "refund the customer", "give them a refund"},
		},
		{
			ID: "pat.team.assign_technician", Pool: PoolIntent, TargetID: "team.assign_technician",
			Domain:   taxonomy.DomainTeamManagement,
			Triggers: []string{"assign a technician", "put a tech on", "assign someone to"},
		},
		{
			ID: "pat.team.view_schedule", Pool: PoolIntent, TargetID: "team.view_schedule",
			Domain:   taxonomy.DomainTeamManagement,
			Triggers: []string{"team schedule", "who is working", "crew schedule"},
		},
		{
			ID: "pat.marketing.create_campaign", Pool: PoolIntent, TargetID: "marketing.create_campaign",
			Domain:   taxonomy.DomainMarketing,
			Triggers: []string{"create a campaign", "new campaign", "set up a campaign"},
		},
		{
			ID: "pat.marketing.send_promotion", Pool: PoolIntent, TargetID: "marketing.send_promotion",
			Domain:   taxonomy.DomainMarketing,
			Triggers: []string{"send a promotion", "send a promo", "promotional blast"},
		},
		{
			ID: "pat.report.revenue", Pool: PoolIntent, TargetID: "report.revenue",
			Domain:   taxonomy.DomainReporting,
			Triggers: []string{"revenue report", "how much did we make", "revenue numbers"},
		},
		{
			ID: "pat.report.jobs", Pool: PoolIntent, TargetID: "report.jobs",
			Domain:   taxonomy.DomainReporting,
			Triggers: []string{"jobs report", "job completion report", "how many jobs"},
		},

		// Workflow pool
		{
			ID: "pat.workflow.site_assessment", Pool: PoolWorkflow, TargetID: "site-assessment",
			Domain:   taxonomy.DomainSiteAssessment,
			Triggers: []string{"schedule a site visit", "schedule a site assessment", "get someone out to look"},
		},
		{
			ID: "pat.workflow.customer_communication", Pool: PoolWorkflow, TargetID: "customer-communication",
			Domain:   taxonomy.DomainCommunication,
			Triggers: []string{"contact the customer", "reach out to the customer", "get in touch with the customer"},
		},
		{
			ID: "pat.workflow.quote_followup", Pool: PoolWorkflow, TargetID: "quote-followup",
			Domain:   taxonomy.DomainQuoting,
			Triggers: []string{"follow up on the quote", "chase the quote", "any word on the quote"},
		},
		{
			ID: "pat.workflow.invoice_collection", Pool: PoolWorkflow, TargetID: "invoice-collection",
			Domain:   taxonomy.DomainInvoicing,
			Triggers: []string{"collect on the invoice", "overdue invoice", "chase the payment"},
		},
	}
}
