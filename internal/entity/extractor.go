// internal/entity/extractor.go
package entity

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"assistant-engine/internal/taxonomy"

	"github.com/google/uuid"
)

// Extractor runs the rule set over input text. All patterns are
// compiled once at construction; the extractor is safe for concurrent
// use.
type Extractor struct {
	email      *regexp.Regexp
	uuidLike   *regexp.Regexp
	refCode    *regexp.Regexp
	hashID     *regexp.Regexp
	moneySym   *regexp.Regexp
	moneyWord  *regexp.Regexp
	moneyText  *regexp.Regexp
	dateISO    *regexp.Regexp
	dateSlash  *regexp.Regexp
	dateMonth  *regexp.Regexp
	dateRel    *regexp.Regexp
	clock      *regexp.Regexp
	phone      *regexp.Regexp
	address    *regexp.Regexp
	properName *regexp.Regexp
	noteQuoted *regexp.Regexp
	noteTagged *regexp.Regexp
}

// NewExtractor compiles the full rule set.
func NewExtractor() *Extractor {
	monthNames := `january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec`
	dayNames := `monday|tuesday|wednesday|thursday|friday|saturday|sunday`

	return &Extractor{
		email:    regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
		uuidLike: regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`),
		refCode:  regexp.MustCompile(`(?i)\b(?:INV|JOB|QT|QUO|CUST|LEAD|REQ|EST|WO)-\d{1,10}\b`),
		hashID:   regexp.MustCompile(`#\d{1,10}\b`),

		moneySym:  regexp.MustCompile(`\$\s?\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?|\$\s?\d+(?:\.\d{1,2})?`),
		moneyWord: regexp.MustCompile(`(?i)\b\d{1,3}(?:,\d{3})*(?:\.\d{1,2})?\s?(?:dollars|bucks|usd)\b`),
		moneyText: regexp.MustCompile(`(?i)\b(?:(?:one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty|thirty|forty|fifty|sixty|seventy|eighty|ninety)[\s\-]?)+(?:(?:hundred|thousand)(?:\s(?:dollars|bucks))?|\s(?:dollars|bucks))\b`),

		dateISO:   regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
		dateSlash: regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`),
		dateMonth: regexp.MustCompile(`(?i)\b(?:` + monthNames + `)\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?\b`),
		dateRel:   regexp.MustCompile(`(?i)\b(?:today|tomorrow|yesterday|(?:next|this)\s+(?:` + dayNames + `|week|month)|in\s+(?:\d{1,3}|one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve)\s+(?:days?|weeks?|months?)|(?:` + dayNames + `))\b`),

		clock: regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s?(?:am|pm)?\b|\b\d{1,2}\s?(?:am|pm)\b|\b(?:noon|midnight)\b`),

		phone: regexp.MustCompile(`\+\d{7,15}\b|\b\d{1,2}[\s.\-]?\(?\d{3}\)?[\s.\-]\d{3}[\s.\-]?\d{4}\b|\(\d{3}\)\s?\d{3}[\s.\-]?\d{4}|\b\d{3}[\s.\-]\d{3}[\s.\-]\d{4}\b|\b\d{3}[.\-]\d{4}\b|\b1?\d{10}\b`),

		address: regexp.MustCompile(`\b\d{1,6}\s+(?:[A-Z][a-zA-Z]*\s+){0,3}[A-Z][a-zA-Z]*\s+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Lane|Ln|Drive|Dr|Court|Ct|Way|Place|Pl|Terrace|Circle|Cir)\b\.?`),

		properName: regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+\b`),

		noteQuoted: regexp.MustCompile(`"[^"]{2,}"`),
		noteTagged: regexp.MustCompile(`(?i)\bnotes?\s*:\s*[^.!?\n]+`),
	}
}

// candidate is a pre-claim match bound to its entity type.
type candidate struct {
	typ        taxonomy.EntityType
	start, end int
	normalized string
}

// Extract runs every rule over text. Relative date expressions are
// resolved against the supplied reference time. Overlapping matches
// are resolved by rule precedence (email before phone, money before
// bare numbers, addresses before names) so the output spans never
// intersect.
func (x *Extractor) Extract(text string, now time.Time) *ExtractionResult {
	result := &ExtractionResult{Text: text}
	claimed := make([]bool, len(text))

	take := func(cands []candidate) {
		for _, c := range cands {
			if c.start < 0 || c.end > len(text) || overlaps(claimed, c.start, c.end) {
				continue
			}
			for i := c.start; i < c.end; i++ {
				claimed[i] = true
			}
			result.Entities = append(result.Entities, Entity{
				Type:       c.typ,
				Raw:        text[c.start:c.end],
				Normalized: c.normalized,
				Confidence: 1.0,
				Start:      c.start,
				End:        c.end,
			})
		}
	}

	// Precedence order matters: earlier rules claim their spans first.
	take(x.findEmails(text))
	take(x.findIdentifiers(text))
	take(x.findMoney(text))
	take(x.findDates(text, now))
	take(x.findTimes(text))
	take(x.findPhones(text))
	take(x.findAddresses(text))
	take(x.findNames(text))
	take(x.findNotes(text))

	sort.SliceStable(result.Entities, func(i, j int) bool {
		return result.Entities[i].Start < result.Entities[j].Start
	})
	return result
}

func overlaps(claimed []bool, start, end int) bool {
	for i := start; i < end; i++ {
		if claimed[i] {
			return true
		}
	}
	return false
}

func (x *Extractor) findEmails(text string) []candidate {
	var out []candidate
	for _, loc := range x.email.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		out = append(out, candidate{taxonomy.EntityEmail, loc[0], loc[1], strings.ToLower(raw)})
	}
	return out
}

func (x *Extractor) findIdentifiers(text string) []candidate {
	var out []candidate
	for _, loc := range x.uuidLike.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if _, err := uuid.Parse(raw); err != nil {
			continue
		}
		out = append(out, candidate{taxonomy.EntityIdentifier, loc[0], loc[1], strings.ToLower(raw)})
	}
	for _, loc := range x.refCode.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		out = append(out, candidate{taxonomy.EntityIdentifier, loc[0], loc[1], strings.ToUpper(raw)})
	}
	for _, loc := range x.hashID.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		out = append(out, candidate{taxonomy.EntityIdentifier, loc[0], loc[1], strings.TrimPrefix(raw, "#")})
	}
	return out
}

func (x *Extractor) findMoney(text string) []candidate {
	var out []candidate
	for _, loc := range x.moneySym.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if cents, ok := normalizeMoneyDigits(raw); ok {
			out = append(out, candidate{taxonomy.EntityMoney, loc[0], loc[1], formatCents(cents)})
		}
	}
	for _, loc := range x.moneyWord.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if cents, ok := normalizeMoneyDigits(raw); ok {
			out = append(out, candidate{taxonomy.EntityMoney, loc[0], loc[1], formatCents(cents)})
		}
	}
	for _, loc := range x.moneyText.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if cents, ok := normalizeMoneyWords(raw); ok {
			out = append(out, candidate{taxonomy.EntityMoney, loc[0], loc[1], formatCents(cents)})
		}
	}
	return out
}

func (x *Extractor) findDates(text string, now time.Time) []candidate {
	var out []candidate
	for _, loc := range x.dateISO.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := normalizeISODate(raw); ok {
			out = append(out, candidate{taxonomy.EntityDate, loc[0], loc[1], normalized})
		}
	}
	for _, loc := range x.dateSlash.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := normalizeSlashDate(raw); ok {
			out = append(out, candidate{taxonomy.EntityDate, loc[0], loc[1], normalized})
		}
	}
	for _, loc := range x.dateMonth.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := normalizeMonthDate(raw, now); ok {
			out = append(out, candidate{taxonomy.EntityDate, loc[0], loc[1], normalized})
		}
	}
	for _, loc := range x.dateRel.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := normalizeRelativeDate(raw, now); ok {
			out = append(out, candidate{taxonomy.EntityDate, loc[0], loc[1], normalized})
		}
	}
	return out
}

func (x *Extractor) findTimes(text string) []candidate {
	var out []candidate
	for _, loc := range x.clock.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := normalizeClock(raw); ok {
			out = append(out, candidate{taxonomy.EntityTime, loc[0], loc[1], normalized})
		}
	}
	return out
}

func (x *Extractor) findPhones(text string) []candidate {
	var out []candidate
	for _, loc := range x.phone.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalized, ok := NormalizePhone(raw); ok {
			out = append(out, candidate{taxonomy.EntityPhone, loc[0], loc[1], normalized})
		}
	}
	return out
}

func (x *Extractor) findAddresses(text string) []candidate {
	var out []candidate
	for _, loc := range x.address.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		out = append(out, candidate{taxonomy.EntityAddress, loc[0], loc[1], strings.TrimSuffix(raw, ".")})
	}
	return out
}

// nameStopwords blocks capitalized phrases that are not people.
var nameStopwords = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
	"January": true, "February": true, "March": true, "April": true,
	"May": true, "June": true, "July": true, "August": true,
	"September": true, "October": true, "November": true, "December": true,
	"Next": true, "This": true, "The": true, "Please": true, "Can": true,
	"Send": true, "Create": true, "Schedule": true, "New": true, "Invoice": true,
	"Street": true, "Avenue": true, "Road": true, "Boulevard": true,
}

func (x *Extractor) findNames(text string) []candidate {
	var out []candidate
	for _, loc := range x.properName.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		words := strings.Fields(raw)
		blocked := false
		for _, w := range words {
			if nameStopwords[w] {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}
		out = append(out, candidate{taxonomy.EntityName, loc[0], loc[1], raw})
	}
	return out
}

func (x *Extractor) findNotes(text string) []candidate {
	var out []candidate
	for _, loc := range x.noteQuoted.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		out = append(out, candidate{taxonomy.EntityNote, loc[0], loc[1], strings.Trim(raw, `"`)})
	}
	for _, loc := range x.noteTagged.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		body := raw
		if idx := strings.Index(raw, ":"); idx >= 0 {
			body = strings.TrimSpace(raw[idx+1:])
		}
		if body == "" {
			continue
		}
		out = append(out, candidate{taxonomy.EntityNote, loc[0], loc[1], body})
	}
	return out
}
