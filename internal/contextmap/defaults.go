// internal/contextmap/defaults.go
package contextmap

import "assistant-engine/internal/taxonomy"

// DefaultEntries declares the context every shipped workflow step
// needs. Step names line up with the tool names in the workflow
// catalog.
func DefaultEntries() []Entry {
	return []Entry{
		// Site assessment booking
		{Domain: taxonomy.DomainSiteAssessment, Step: "search-customer", Fields: []Field{
			{Key: "customer_name", Source: SourceConversation, Required: true, Description: "Name to search for"},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "create-customer", Fields: []Field{
			{Key: "customer_name", Source: SourceConversation, Required: true},
			{Key: "phone", Source: SourceConversation, Required: true},
			{Key: "email", Source: SourceConversation},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "create-request", Fields: []Field{
			{Key: "customer_id", Source: SourceDatabase, Required: true},
			{Key: "address", Source: SourceConversation},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "check-availability", Fields: []Field{
			{Key: "date", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "create-assessment-job", Fields: []Field{
			{Key: "request_id", Source: SourceDatabase, Required: true},
			{Key: "date", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "assign-job", Fields: []Field{
			{Key: "job_id", Source: SourceDatabase, Required: true},
		}},
		{Domain: taxonomy.DomainSiteAssessment, Step: "send-confirmation", Fields: []Field{
			{Key: "customer_id", Source: SourceDatabase, Required: true},
			{Key: "job_id", Source: SourceDatabase, Required: true},
		}},

		// Customer communication
		{Domain: taxonomy.DomainCommunication, Step: "lookup-contact", Fields: []Field{
			{Key: "customer_id", Source: SourceSearch, Required: true, Description: "Resolved from the customer index"},
		}},
		{Domain: taxonomy.DomainCommunication, Step: "compose-message", Fields: []Field{
			{Key: "customer_id", Source: SourceSearch, Required: true},
			{Key: "topic", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainCommunication, Step: "send-message", Fields: []Field{
			{Key: "channel", Source: SourceDatabase, Required: true},
			{Key: "address", Source: SourceDatabase, Required: true},
			{Key: "message_body", Source: SourceStatic, Required: true},
		}},

		// Quote follow-up
		{Domain: taxonomy.DomainQuoting, Step: "fetch-quote", Fields: []Field{
			{Key: "quote_id", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainQuoting, Step: "check-quote-status", Fields: []Field{
			{Key: "quote_id", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainQuoting, Step: "compose-followup", Fields: []Field{
			{Key: "quote_id", Source: SourceConversation, Required: true},
			{Key: "quote_status", Source: SourceDatabase, Required: true},
		}},
		{Domain: taxonomy.DomainQuoting, Step: "send-message", Fields: []Field{
			{Key: "channel", Source: SourceDatabase, Required: true},
			{Key: "address", Source: SourceDatabase, Required: true},
			{Key: "message_body", Source: SourceStatic, Required: true},
		}},

		// Invoice collection
		{Domain: taxonomy.DomainInvoicing, Step: "fetch-invoice", Fields: []Field{
			{Key: "invoice_id", Source: SourceConversation, Required: true},
		}},
		{Domain: taxonomy.DomainInvoicing, Step: "compute-balance", Fields: []Field{
			{Key: "invoice_total", Source: SourceDatabase, Required: true},
			{Key: "amount_paid", Source: SourceDatabase, Required: true},
		}},
		{Domain: taxonomy.DomainInvoicing, Step: "compose-reminder", Fields: []Field{
			{Key: "invoice_id", Source: SourceConversation, Required: true},
			{Key: "balance_due", Source: SourceDatabase, Required: true},
		}},
		{Domain: taxonomy.DomainInvoicing, Step: "send-message", Fields: []Field{
			{Key: "channel", Source: SourceDatabase, Required: true},
			{Key: "address", Source: SourceDatabase, Required: true},
			{Key: "message_body", Source: SourceStatic, Required: true},
		}},
	}
}
