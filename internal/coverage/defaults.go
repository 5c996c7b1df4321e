// internal/coverage/defaults.go
package coverage

import "assistant-engine/internal/pattern"

// DefaultCorpus is the shipped evaluation set: at least two phrases
// per intent pattern and three per workflow pattern, written the way
// franchise staff actually phrase requests. configs/corpus.json
// mirrors this set for the CLI gate.
func DefaultCorpus() *Corpus {
	intent := func(text, target string, route ...string) Entry {
		e := Entry{Text: text, Pool: pattern.PoolIntent, Target: target}
		if len(route) > 0 {
			e.Route = route[0]
		}
		return e
	}
	wf := func(text, target string) Entry {
		return Entry{Text: text, Pool: pattern.PoolWorkflow, Target: target}
	}

	return &Corpus{Entries: []Entry{
		intent("we have a new lead from Dana Cruz, 555-0142", "lead.create", "lead"),
		intent("please add a lead for the Henderson project", "lead.create"),
		intent("qualify the lead LEAD-204", "lead.qualify", "lead"),
		intent("the lead is qualified, move them along", "lead.qualify"),

		intent("create a customer for Maria Lopez", "customer.create", "customers"),
		intent("add a customer record for the new homeowner", "customer.create"),
		intent("find the customer named Brian Wu", "customer.search"),
		intent("look up the customer from yesterday", "customer.search", "customers"),

		intent("send an email with the updated arrival window", "communication.send_email"),
		intent("email the quote to sam@acme.com", "communication.send_email", "messages"),
		intent("send a text about the arrival window", "communication.send_sms"),
		intent("text the customer that we are running late", "communication.send_sms", "messages"),

		intent("the property on Oak needs an assessment", "assessment.request"),
		intent("request an assessment for 88 Cedar Lane", "assessment.request", "assessment"),
		intent("record the assessment for job #204", "assessment.record_result"),
		intent("the assessment came back clean", "assessment.record_result", "assessment"),

		intent("check availability for next tuesday", "schedule.check_availability", "schedule"),
		intent("are we free on friday morning", "schedule.check_availability"),
		intent("book an appointment for 3/12/2026 at 10am", "schedule.book_appointment", "schedule"),
		intent("set up an appointment with the Hendersons", "schedule.book_appointment"),
		intent("cancel the appointment for tomorrow", "schedule.cancel_appointment", "schedule"),
		intent("please call off the appointment at noon", "schedule.cancel_appointment"),

		intent("create a job for the Wilson fence", "job.create", "jobs"),
		intent("open a job for the gutter repair", "job.create"),
		intent("update the job to in progress", "job.update_status", "jobs"),
		intent("mark the job as waiting on parts", "job.update_status"),

		intent("prepare a quote for $2,400", "quote.create", "quotes"),
		intent("quote them twelve hundred dollars", "quote.create"),
		intent("send the quote to the customer", "quote.send", "quotes"),
		intent("resend the quote from last week", "quote.send"),

		intent("create an invoice for $880", "invoice.create", "invoices"),
		intent("bill them for the extra materials", "invoice.create"),
		intent("send the invoice tonight", "invoice.send", "invoices"),
		intent("resend the invoice INV-2210", "invoice.send"),

		intent("record a payment of $500", "payment.record", "payments"),
		intent("payment received on invoice INV-300", "payment.record"),
		intent("issue a refund for the deposit", "payment.refund", "payments"),
		intent("give them a refund of $75", "payment.refund"),

		intent("assign a technician to the Lopez job", "team.assign_technician", "team"),
		intent("put a tech on the morning route", "team.assign_technician"),
		intent("show me the team schedule for monday", "team.view_schedule", "team"),
		intent("who is working this weekend", "team.view_schedule"),

		intent("create a campaign for spring cleanups", "marketing.create_campaign", "marketing"),
		intent("set up a campaign targeting past customers", "marketing.create_campaign"),
		intent("send a promo to the north side list", "marketing.send_promotion", "marketing"),
		intent("send a promotion about gutter cleaning", "marketing.send_promotion"),

		intent("pull the revenue report for last month", "report.revenue", "reports"),
		intent("how much did we make in january", "report.revenue"),
		intent("show the jobs report for this week", "report.jobs", "reports"),
		intent("how many jobs did we finish", "report.jobs"),

		wf("schedule a site visit for 45 Birch Road", "site-assessment"),
		wf("schedule a site assessment next week", "site-assessment"),
		wf("can you get someone out to look at the roof", "site-assessment"),

		wf("contact the customer about the delay", "customer-communication"),
		wf("reach out to the customer today", "customer-communication"),
		wf("get in touch with the customer before friday", "customer-communication"),

		wf("follow up on the quote for the deck", "quote-followup"),
		wf("any word on the quote we sent", "quote-followup"),
		wf("chase the quote from march", "quote-followup"),

		wf("collect on the invoice for the Park job", "invoice-collection"),
		wf("that overdue invoice needs a call", "invoice-collection"),
		wf("chase the payment on INV-88", "invoice-collection"),
	}}
}
