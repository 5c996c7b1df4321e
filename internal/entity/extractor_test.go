package entity

import (
	"testing"
	"time"

	"assistant-engine/internal/taxonomy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// refNow is Monday, March 2nd 2026. Relative date tests anchor here.
var refNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func TestExtract_Phones(t *testing.T) {
	x := NewExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"new lead from John Smith, 555-0100", "+15550100"},
		{"call me at (555) 123-4567", "+15551234567"},
		{"reach him on 555-123-4567 today", "+15551234567"},
		{"his cell is +447911123456", "+447911123456"},
		{"number on file 15551234567", "+15551234567"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := x.Extract(tt.text, refNow)
			phone, ok := res.First(taxonomy.EntityPhone)
			require.True(t, ok, "no phone extracted from %q", tt.text)
			assert.Equal(t, tt.want, phone.Normalized)
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	first, ok := NormalizePhone("555-0100")
	require.True(t, ok)
	second, ok := NormalizePhone(first)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestExtract_Money(t *testing.T) {
	x := NewExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"quote them $1,200 for the fence", "1200.00"},
		{"the part costs $45.50", "45.50"},
		{"charge 300 dollars for labor", "300.00"},
		{"quote twelve hundred dollars for the deck", "1200.00"},
		{"it was twenty five bucks", "25.00"},
		{"budget is two thousand dollars", "2000.00"},
		{"quote them twelve hundred for the job", "1200.00"},
		{"call it five thousand all in", "5000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := x.Extract(tt.text, refNow)
			money, ok := res.First(taxonomy.EntityMoney)
			require.True(t, ok, "no money extracted from %q", tt.text)
			assert.Equal(t, tt.want, money.Normalized)
		})
	}
}

func TestExtract_Dates(t *testing.T) {
	x := NewExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"book it for 2026-08-29", "2026-08-29"},
		{"book it for 3/15/2026", "2026-03-15"},
		{"see you tomorrow", "2026-03-03"},
		{"availability today", "2026-03-02"},
		{"push it to next week", "2026-03-09"},
		{"come by friday", "2026-03-06"},
		{"come by next friday", "2026-03-06"},
		{"come by next monday", "2026-03-09"},
		{"schedule for March 5", "2026-03-05"},
		{"schedule for March 5th, 2027", "2027-03-05"},
		{"schedule for January 5", "2027-01-05"},
		{"follow up in 3 days", "2026-03-05"},
		{"book the follow-up in two weeks", "2026-03-16"},
		{"circle back in three days", "2026-03-05"},
		{"renewal comes up in two months", "2026-05-02"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := x.Extract(tt.text, refNow)
			date, ok := res.First(taxonomy.EntityDate)
			require.True(t, ok, "no date extracted from %q", tt.text)
			assert.Equal(t, tt.want, date.Normalized)
		})
	}
}

func TestExtract_Times(t *testing.T) {
	x := NewExtractor()
	tests := []struct {
		text string
		want string
	}{
		{"come at 3pm", "15:00"},
		{"come at 3:30 pm", "15:30"},
		{"come at 09:15", "09:15"},
		{"come at noon", "12:00"},
		{"come at 12am", "00:00"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			res := x.Extract(tt.text, refNow)
			clock, ok := res.First(taxonomy.EntityTime)
			require.True(t, ok, "no time extracted from %q", tt.text)
			assert.Equal(t, tt.want, clock.Normalized)
		})
	}
}

func TestExtract_Identifiers(t *testing.T) {
	x := NewExtractor()

	res := x.Extract("resend invoice INV-1042 please", refNow)
	id, ok := res.First(taxonomy.EntityIdentifier)
	require.True(t, ok)
	assert.Equal(t, "INV-1042", id.Normalized)

	res = x.Extract("look up job #778", refNow)
	id, ok = res.First(taxonomy.EntityIdentifier)
	require.True(t, ok)
	assert.Equal(t, "778", id.Normalized)

	res = x.Extract("record 6ba7b810-9dad-11d1-80b4-00c04fd430c8 is stale", refNow)
	id, ok = res.First(taxonomy.EntityIdentifier)
	require.True(t, ok)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", id.Normalized)
}

func TestExtract_EmailAndAddress(t *testing.T) {
	x := NewExtractor()

	res := x.Extract("email the quote to Jane.Doe@Example.COM", refNow)
	email, ok := res.First(taxonomy.EntityEmail)
	require.True(t, ok)
	assert.Equal(t, "jane.doe@example.com", email.Normalized)

	res = x.Extract("assessment at 123 Main Street for the fence", refNow)
	addr, ok := res.First(taxonomy.EntityAddress)
	require.True(t, ok)
	assert.Equal(t, "123 Main Street", addr.Normalized)
	// The street words must not be double-counted as a person name.
	assert.False(t, res.HasType(taxonomy.EntityName))
}

func TestExtract_NamesAndNotes(t *testing.T) {
	x := NewExtractor()

	res := x.Extract("create a customer for John Smith", refNow)
	name, ok := res.First(taxonomy.EntityName)
	require.True(t, ok)
	assert.Equal(t, "John Smith", name.Normalized)

	res = x.Extract(`add note: gate code is 4411`, refNow)
	note, ok := res.First(taxonomy.EntityNote)
	require.True(t, ok)
	assert.Equal(t, "gate code is 4411", note.Normalized)

	res = x.Extract(`tell them "running twenty minutes late"`, refNow)
	note, ok = res.First(taxonomy.EntityNote)
	require.True(t, ok)
	assert.Equal(t, "running twenty minutes late", note.Normalized)

	// Weekday words are never names.
	res = x.Extract("see you Monday Tuesday", refNow)
	assert.False(t, res.HasType(taxonomy.EntityName))
}

func TestExtract_Deterministic(t *testing.T) {
	x := NewExtractor()
	text := "new lead from John Smith, 555-0100, quote $1,200 tomorrow at 3pm"
	a := x.Extract(text, refNow)
	b := x.Extract(text, refNow)
	assert.Equal(t, a, b)
}

func TestExtract_NoOverlappingSpans(t *testing.T) {
	x := NewExtractor()
	res := x.Extract("invoice INV-9 for $45.50 due 2026-08-29 email a@b.co call 555-0100", refNow)
	require.NotEmpty(t, res.Entities)
	for i := 1; i < len(res.Entities); i++ {
		assert.GreaterOrEqual(t, res.Entities[i].Start, res.Entities[i-1].End,
			"entities %d and %d overlap", i-1, i)
	}
}

func TestExtract_RuleMatchesCarryFullConfidence(t *testing.T) {
	x := NewExtractor()
	res := x.Extract("new lead from John Smith, 555-0100, quote $1,200 tomorrow", refNow)
	require.NotEmpty(t, res.Entities)
	for _, e := range res.Entities {
		assert.Equal(t, 1.0, e.Confidence, "entity %s/%s", e.Type, e.Raw)
	}
}

func TestValidateRequired(t *testing.T) {
	x := NewExtractor()
	def := &taxonomy.IntentDefinition{
		ID:               "lead.create",
		Domain:           taxonomy.DomainLeadGeneration,
		Risk:             taxonomy.RiskLow,
		RequiredEntities: []taxonomy.EntityType{taxonomy.EntityName, taxonomy.EntityPhone},
	}

	res := x.Extract("new lead from John Smith, 555-0100", refNow)
	assert.Empty(t, res.ValidateRequired(def))

	res = x.Extract("new lead please", refNow)
	missing := res.ValidateRequired(def)
	require.Len(t, missing, 2)
	assert.Equal(t, taxonomy.EntityName, missing[0])
	assert.Equal(t, taxonomy.EntityPhone, missing[1])
}
