// internal/prompt/defaults.go
package prompt

// DefaultTemplates is the shipped template catalog. Intent templates
// cover the operations that reach the model directly; workflow step
// templates cover the compose steps of the shipped workflows.
func DefaultTemplates() []Template {
	return []Template{
		{
			ID:     "tpl.lead.create",
			Target: "lead.create",
			Role:   "You are an intake assistant for a field service company.",
			Context: "A new lead came in for {{customer_name}}, reachable at {{phone}}." +
				"{{#if email}} Their email is {{email}}.{{/if}}" +
				"{{#if note}} Notes from the conversation: {{note}}.{{/if}}",
			Task: "Record the lead and suggest the next follow-up action.",
			Constraints: []string{
				"Do not invent contact details that were not provided.",
				"Keep the follow-up suggestion to one sentence.",
			},
			RequiredKeys: []string{"customer_name", "phone"},
			OptionalKeys: []string{"email", "note"},
		},
		{
			ID:      "tpl.customer.create",
			Target:  "customer.create",
			Role:    "You are a customer records assistant.",
			Context: "Creating a record for {{customer_name}}.{{#if address}} Property address: {{address}}.{{/if}}",
			Task:    "Confirm the record details back to the user before saving.",
			Constraints: []string{
				"List only fields that were actually provided.",
			},
			RequiredKeys: []string{"customer_name"},
			OptionalKeys: []string{"address", "phone", "email"},
		},
		{
			ID:      "tpl.customer.search",
			Target:  "customer.search",
			Role:    "You are a customer records assistant.",
			Context: "The user is looking for a customer named {{customer_name}}.",
			Task:    "Summarize the best matching records and ask which one the user means.",
			Constraints: []string{
				"Never show more than three matches.",
			},
			RequiredKeys: []string{"customer_name"},
		},
		{
			ID:      "tpl.schedule.book_appointment",
			Target:  "schedule.book_appointment",
			Role:    "You are a scheduling assistant.",
			Context: "Booking for {{date}} at {{time}}.{{#if customer_name}} Customer: {{customer_name}}.{{/if}}",
			Task:    "Propose the booking and ask for confirmation.",
			Constraints: []string{
				"State the date and time exactly as resolved.",
			},
			RequiredKeys: []string{"date", "time"},
			OptionalKeys: []string{"customer_name"},
		},
		{
			ID:      "tpl.quote.create",
			Target:  "quote.create",
			Role:    "You are a quoting assistant.",
			Context: "The quoted amount is {{amount}}.{{#if note}} Scope notes: {{note}}.{{/if}}",
			Task:    "Draft the quote summary for the customer.",
			Constraints: []string{
				"Show the amount with two decimal places.",
				"Do not promise a start date.",
			},
			RequiredKeys: []string{"amount"},
			OptionalKeys: []string{"note", "customer_name"},
		},
		{
			ID:      "tpl.invoice.send",
			Target:  "invoice.send",
			Role:    "You are a billing assistant.",
			Context: "Invoice {{invoice_id}} is ready to send.{{#if email}} Destination: {{email}}.{{/if}}",
			Task:    "Draft the covering message for the invoice.",
			Constraints: []string{
				"Reference the invoice number exactly.",
				"Keep the tone friendly but direct.",
			},
			RequiredKeys: []string{"invoice_id"},
			OptionalKeys: []string{"email"},
		},
		{
			ID:      "tpl.payment.refund",
			Target:  "payment.refund",
			Role:    "You are a payments assistant.",
			Context: "A refund of {{amount}} was requested against {{reference_id}}.",
			Task:    "Summarize the refund and ask the user to confirm before it is issued.",
			Constraints: []string{
				"Always restate the exact amount.",
				"Never issue the refund without an explicit confirmation.",
			},
			RequiredKeys: []string{"amount", "reference_id"},
		},
		{
			ID:      "tpl.report.revenue",
			Target:  "report.revenue",
			Role:    "You are a reporting assistant.",
			Context: "Reporting period starting {{date}}.",
			Task:    "Summarize revenue for the period in three bullet points.",
			Constraints: []string{
				"Use exact figures, no rounding commentary.",
			},
			RequiredKeys: []string{"date"},
		},

		// Workflow step templates
		{
			ID:      "tpl.customer-communication.compose-message",
			Target:  "customer-communication/compose-message",
			Role:    "You are drafting an outbound message on behalf of the business.",
			Context: "Customer {{customer_id}}. Topic: {{topic}}.",
			Task:    "Write a short message the customer would appreciate receiving.",
			Constraints: []string{
				"Under 80 words.",
				"No marketing language.",
			},
			RequiredKeys: []string{"customer_id", "topic"},
		},
		{
			ID:     "tpl.quote-followup.compose-followup",
			Target: "quote-followup/compose-followup",
			Role:   "You are drafting a quote follow-up.",
			Context: "Quote {{quote_id}} currently has status {{quote_status}}." +
				"{{#if quote_total}} Quoted total: {{quote_total}}.{{/if}}",
			Task: "Write a follow-up nudging the customer toward a decision.",
			Constraints: []string{
				"Mention the quote reference once.",
				"Offer to adjust scope rather than price.",
			},
			RequiredKeys: []string{"quote_id", "quote_status"},
			OptionalKeys: []string{"quote_total"},
		},
		{
			ID:      "tpl.invoice-collection.compose-reminder",
			Target:  "invoice-collection/compose-reminder",
			Role:    "You are drafting a payment reminder.",
			Context: "Invoice {{invoice_id}} has an outstanding balance of {{balance_due}}.",
			Task:    "Write a polite but firm payment reminder.",
			Constraints: []string{
				"State the balance exactly.",
				"Include no late-fee threats.",
			},
			RequiredKeys: []string{"invoice_id", "balance_due"},
		},
		{
			ID:      "tpl.site-assessment.send-confirmation",
			Target:  "site-assessment/send-confirmation",
			Role:    "You are confirming a booked site assessment.",
			Context: "Customer {{customer_id}}, job {{job_id}}.{{#if date}} Scheduled for {{date}}.{{/if}}",
			Task:    "Write the booking confirmation message.",
			Constraints: []string{
				"Include what the technician will assess.",
			},
			RequiredKeys: []string{"customer_id", "job_id"},
			OptionalKeys: []string{"date"},
		},
	}
}
