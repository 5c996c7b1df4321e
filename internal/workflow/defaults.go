// internal/workflow/defaults.go
package workflow

import "assistant-engine/internal/taxonomy"

// DefaultWorkflows is the shipped workflow catalog. Each step's tool
// name must exist in the capability catalog and each args template key
// must be one of the tool's declared inputs.
func DefaultWorkflows() []Workflow {
	return []Workflow{
		{
			ID:          "site-assessment",
			Name:        "Site Assessment Booking",
			Domain:      taxonomy.DomainSiteAssessment,
			Description: "Book a technician to assess a property, end to end",
			Steps: []Step{
				{Order: 1, Tool: "search-customer", Description: "Look for an existing customer record",
					ArgsTemplate: map[string]string{"customer_name": "{{customer_name}}"}},
				{Order: 2, Tool: "create-customer", Description: "Create the customer when no record exists",
					ArgsTemplate: map[string]string{"customer_name": "{{customer_name}}", "phone": "{{phone}}"}},
				{Order: 3, Tool: "create-request", Description: "Open a service request",
					ArgsTemplate: map[string]string{"customer_id": "{{customer_id}}"}},
				{Order: 4, Tool: "check-availability", Description: "Find an open assessment slot",
					ArgsTemplate: map[string]string{"date": "{{date}}"}},
				{Order: 5, Tool: "create-assessment-job", Description: "Create the assessment job",
					ArgsTemplate: map[string]string{"request_id": "{{request_id}}", "date": "{{date}}"}},
				{Order: 6, Tool: "assign-job", Description: "Assign a technician",
					ArgsTemplate: map[string]string{"job_id": "{{job_id}}"}},
				{Order: 7, Tool: "send-confirmation", Description: "Confirm the booking with the customer",
					ArgsTemplate: map[string]string{"customer_id": "{{customer_id}}", "job_id": "{{job_id}}"}},
			},
			SuccessMetrics:  []string{"assessment_booked", "confirmation_sent"},
			SpecialCardType: CardBookingSummary,
		},
		{
			ID:          "customer-communication",
			Name:        "Customer Communication",
			Domain:      taxonomy.DomainCommunication,
			Description: "Reach a customer over their preferred channel",
			Steps: []Step{
				{Order: 1, Tool: "lookup-contact", Description: "Fetch the preferred contact channel",
					ArgsTemplate: map[string]string{"customer_id": "{{customer_id}}"}},
				{Order: 2, Tool: "compose-message", Description: "Draft the outbound message",
					ArgsTemplate: map[string]string{"customer_id": "{{customer_id}}", "topic": "{{topic}}"}},
				{Order: 3, Tool: "send-message", Description: "Deliver the message",
					ArgsTemplate: map[string]string{"channel": "{{channel}}", "address": "{{address}}", "message_body": "{{message_body}}"}},
			},
			SuccessMetrics:  []string{"message_delivered"},
			SpecialCardType: CardMessageReceipt,
		},
		{
			ID:          "quote-followup",
			Name:        "Quote Follow-up",
			Domain:      taxonomy.DomainQuoting,
			Description: "Chase a quote that has not been accepted",
			Steps: []Step{
				{Order: 1, Tool: "fetch-quote", Description: "Load the quote",
					ArgsTemplate: map[string]string{"quote_id": "{{quote_id}}"}},
				{Order: 2, Tool: "check-quote-status", Description: "Check whether it was viewed or accepted",
					ArgsTemplate: map[string]string{"quote_id": "{{quote_id}}"}},
				{Order: 3, Tool: "compose-followup", Description: "Draft the follow-up",
					ArgsTemplate: map[string]string{"quote_id": "{{quote_id}}", "quote_status": "{{quote_status}}"}},
				{Order: 4, Tool: "send-message", Description: "Deliver the follow-up",
					ArgsTemplate: map[string]string{"channel": "{{channel}}", "address": "{{address}}", "message_body": "{{message_body}}"}},
			},
			SuccessMetrics:  []string{"followup_sent", "quote_decision_recorded"},
			SpecialCardType: CardQuoteStatus,
		},
		{
			ID:          "invoice-collection",
			Name:        "Invoice Collection",
			Domain:      taxonomy.DomainInvoicing,
			Description: "Remind a customer about an unpaid invoice",
			Steps: []Step{
				{Order: 1, Tool: "fetch-invoice", Description: "Load the invoice and payments",
					ArgsTemplate: map[string]string{"invoice_id": "{{invoice_id}}"}},
				{Order: 2, Tool: "compute-balance", Description: "Compute the outstanding balance",
					ArgsTemplate: map[string]string{"invoice_total": "{{invoice_total}}", "amount_paid": "{{amount_paid}}"}},
				{Order: 3, Tool: "compose-reminder", Description: "Draft the payment reminder",
					ArgsTemplate: map[string]string{"invoice_id": "{{invoice_id}}", "balance_due": "{{balance_due}}"}},
				{Order: 4, Tool: "send-message", Description: "Deliver the reminder",
					ArgsTemplate: map[string]string{"channel": "{{channel}}", "address": "{{address}}", "message_body": "{{message_body}}"}},
			},
			SuccessMetrics:  []string{"reminder_sent"},
			SpecialCardType: CardInvoiceBalance,
		},
	}
}
