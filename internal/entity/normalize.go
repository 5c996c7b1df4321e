// internal/entity/normalize.go
package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NormalizePhone converts a raw phone match to E.164-ish form.
// The mapping is idempotent: a value that already starts with '+' is
// returned unchanged, so normalizing twice yields the same output.
func NormalizePhone(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "+") {
		return trimmed, true
	}
	var digits strings.Builder
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch {
	case len(d) == 11 && d[0] == '1':
		return "+" + d, true
	case len(d) == 10:
		return "+1" + d, true
	case len(d) == 7:
		return "+1" + d, true
	default:
		return "", false
	}
}

// normalizeMoneyDigits parses a digit-based money expression ("$1,200",
// "45.50 dollars") into minor units (cents).
func normalizeMoneyDigits(raw string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "$")
	for _, suffix := range []string{"dollars", "bucks", "usd"} {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	wholePart := s
	centsPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		wholePart = s[:idx]
		centsPart = s[idx+1:]
	}
	whole, err := strconv.ParseInt(wholePart, 10, 64)
	if err != nil {
		return 0, false
	}
	cents := int64(0)
	switch len(centsPart) {
	case 0:
	case 1:
		c, err := strconv.ParseInt(centsPart, 10, 64)
		if err != nil {
			return 0, false
		}
		cents = c * 10
	case 2:
		c, err := strconv.ParseInt(centsPart, 10, 64)
		if err != nil {
			return 0, false
		}
		cents = c
	default:
		return 0, false
	}
	return whole*100 + cents, true
}

var numberWords = map[string]int64{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20, "thirty": 30, "forty": 40,
	"fifty": 50, "sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// normalizeMoneyWords parses spelled-out amounts like "twelve hundred
// dollars" or "twenty five bucks" into minor units.
func normalizeMoneyWords(raw string) (int64, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(s)

	var total, current int64
	sawNumber := false
	for _, w := range words {
		switch {
		case w == "dollars" || w == "bucks":
			// Terminal unit word
		case w == "hundred":
			if current == 0 {
				return 0, false
			}
			current *= 100
		case w == "thousand":
			if current == 0 {
				return 0, false
			}
			total += current * 1000
			current = 0
		default:
			n, ok := numberWords[w]
			if !ok {
				return 0, false
			}
			current += n
			sawNumber = true
		}
	}
	if !sawNumber {
		return 0, false
	}
	return (total + current) * 100, true
}

// formatCents renders minor units as a canonical decimal string used
// as the normalized money value ("120000" cents -> "1200.00").
func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

func normalizeISODate(raw string) (string, bool) {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

func normalizeSlashDate(raw string) (string, bool) {
	// US convention: month/day/year.
	t, err := time.Parse("1/2/2006", raw)
	if err != nil {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// normalizeMonthDate handles "March 5", "March 5th, 2026". A missing
// year resolves to the next occurrence on or after the reference date.
func normalizeMonthDate(raw string, now time.Time) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.ReplaceAll(s, ".", " ")
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return "", false
	}
	monthKey := fields[0]
	if len(monthKey) > 3 {
		monthKey = monthKey[:3]
	}
	month, ok := monthsByPrefix[monthKey]
	if !ok {
		return "", false
	}
	dayStr := strings.TrimRight(fields[1], "stndrh")
	day, err := strconv.Atoi(dayStr)
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	year := 0
	if len(fields) >= 3 {
		if y, err := strconv.Atoi(fields[2]); err == nil {
			year = y
		}
	}
	if year == 0 {
		year = now.Year()
		candidate := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if candidate.Before(today) {
			year++
		}
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, now.Location())
	if t.Day() != day || t.Month() != month {
		return "", false
	}
	return t.Format("2006-01-02"), true
}

var weekdaysByName = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
}

// normalizeRelativeDate resolves relative expressions against the
// reference time. "next <weekday>" is strictly after today (a full
// week out when today is that weekday); a bare or "this" weekday is
// the nearest upcoming occurrence, including today.
func normalizeRelativeDate(raw string, now time.Time) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch s {
	case "today":
		return today.Format("2006-01-02"), true
	case "tomorrow":
		return today.AddDate(0, 0, 1).Format("2006-01-02"), true
	case "yesterday":
		return today.AddDate(0, 0, -1).Format("2006-01-02"), true
	case "next week":
		return today.AddDate(0, 0, 7).Format("2006-01-02"), true
	case "this week":
		return today.Format("2006-01-02"), true
	case "next month":
		return today.AddDate(0, 1, 0).Format("2006-01-02"), true
	case "this month":
		return today.Format("2006-01-02"), true
	}

	if strings.HasPrefix(s, "in ") {
		fields := strings.Fields(s)
		if len(fields) != 3 {
			return "", false
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			w, ok := numberWords[fields[1]]
			if !ok {
				return "", false
			}
			n = int(w)
		}
		switch {
		case strings.HasPrefix(fields[2], "day"):
			return today.AddDate(0, 0, n).Format("2006-01-02"), true
		case strings.HasPrefix(fields[2], "week"):
			return today.AddDate(0, 0, 7*n).Format("2006-01-02"), true
		case strings.HasPrefix(fields[2], "month"):
			return today.AddDate(0, n, 0).Format("2006-01-02"), true
		}
		return "", false
	}

	strict := false
	dayWord := s
	if strings.HasPrefix(s, "next ") {
		strict = true
		dayWord = strings.TrimPrefix(s, "next ")
	} else if strings.HasPrefix(s, "this ") {
		dayWord = strings.TrimPrefix(s, "this ")
	}
	target, ok := weekdaysByName[dayWord]
	if !ok {
		return "", false
	}
	delta := (int(target) - int(today.Weekday()) + 7) % 7
	if delta == 0 && strict {
		delta = 7
	}
	return today.AddDate(0, 0, delta).Format("2006-01-02"), true
}

// normalizeClock converts clock expressions to 24h "HH:MM".
func normalizeClock(raw string) (string, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "noon":
		return "12:00", true
	case "midnight":
		return "00:00", true
	}

	meridiem := ""
	if strings.HasSuffix(s, "am") {
		meridiem = "am"
		s = strings.TrimSpace(strings.TrimSuffix(s, "am"))
	} else if strings.HasSuffix(s, "pm") {
		meridiem = "pm"
		s = strings.TrimSpace(strings.TrimSuffix(s, "pm"))
	}

	hour, minute := 0, 0
	if idx := strings.Index(s, ":"); idx >= 0 {
		h, err := strconv.Atoi(s[:idx])
		if err != nil {
			return "", false
		}
		m, err := strconv.Atoi(s[idx+1:])
		if err != nil {
			return "", false
		}
		hour, minute = h, m
	} else {
		h, err := strconv.Atoi(s)
		if err != nil {
			return "", false
		}
		// A bare number is only a time when qualified with am/pm.
		if meridiem == "" {
			return "", false
		}
		hour = h
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", false
	}
	if meridiem == "pm" && hour < 12 {
		hour += 12
	}
	if meridiem == "am" && hour == 12 {
		hour = 0
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}
