// Package prompt builds the structured prompts handed to the language
// model once an intent or workflow step is resolved. Templates are
// declared per target (an intent id or a workflow step), validated at
// load time, and refuse to render when required context is missing: an
// incomplete prompt is worse than no prompt.
package prompt

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Template declares the four prompt sections for one target. Targets
// are either an intent id ("lead.create") or a workflow step
// ("site-assessment/send-confirmation").
type Template struct {
	ID           string   `json:"id"`
	Target       string   `json:"target"`
	Role         string   `json:"role"`
	Context      string   `json:"context"`
	Task         string   `json:"task"`
	Constraints  []string `json:"constraints,omitempty"`
	RequiredKeys []string `json:"required_keys,omitempty"`
	OptionalKeys []string `json:"optional_keys,omitempty"`
}

var (
	eachRe = regexp.MustCompile(`(?s)\{\{#each ([a-zA-Z0-9_]+)\}\}(.*?)\{\{/each\}\}`)
	ifRe   = regexp.MustCompile(`(?s)\{\{#if ([a-zA-Z0-9_]+)\}\}(.*?)\{\{/if\}\}`)
	varRe  = regexp.MustCompile(`\{\{([a-zA-Z0-9_]+)\}\}`)
	itemRe = regexp.MustCompile(`\{\{\.\}\}`)
)

// placeholderKeys returns every context key the template text refers
// to, sorted and de-duplicated.
func (t *Template) placeholderKeys() []string {
	seen := make(map[string]bool)
	collect := func(s string) {
		for _, m := range eachRe.FindAllStringSubmatch(s, -1) {
			seen[m[1]] = true
		}
		for _, m := range ifRe.FindAllStringSubmatch(s, -1) {
			seen[m[1]] = true
		}
		// Strip block markers before scanning bare placeholders so the
		// block keys are not double-counted with stale bodies.
		stripped := eachRe.ReplaceAllString(s, "")
		stripped = ifRe.ReplaceAllStringFunc(stripped, func(block string) string {
			return ifRe.FindStringSubmatch(block)[2]
		})
		for _, m := range varRe.FindAllStringSubmatch(stripped, -1) {
			seen[m[1]] = true
		}
	}
	collect(t.Role)
	collect(t.Context)
	collect(t.Task)
	for _, c := range t.Constraints {
		collect(c)
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validate checks that every placeholder is a declared key.
func (t *Template) validate() error {
	if t.ID == "" {
		return fmt.Errorf("template has empty id")
	}
	if t.Target == "" {
		return fmt.Errorf("template %s: empty target", t.ID)
	}
	if t.Task == "" {
		return fmt.Errorf("template %s: empty task section", t.ID)
	}
	declared := make(map[string]bool, len(t.RequiredKeys)+len(t.OptionalKeys))
	for _, k := range t.RequiredKeys {
		if declared[k] {
			return fmt.Errorf("template %s: duplicate key %q", t.ID, k)
		}
		declared[k] = true
	}
	for _, k := range t.OptionalKeys {
		if declared[k] {
			return fmt.Errorf("template %s: key %q is both required and optional", t.ID, k)
		}
		declared[k] = true
	}
	for _, k := range t.placeholderKeys() {
		if !declared[k] {
			return fmt.Errorf("template %s: placeholder %q is not a declared key", t.ID, k)
		}
	}
	return nil
}

// render substitutes context values into one template section.
// Each-blocks expand per item, if-blocks drop when the key is absent
// or empty, bare placeholders substitute their value.
func render(s string, ctx map[string]interface{}) string {
	s = eachRe.ReplaceAllStringFunc(s, func(block string) string {
		m := eachRe.FindStringSubmatch(block)
		items := listValue(ctx[m[1]])
		if len(items) == 0 {
			return ""
		}
		var b strings.Builder
		for _, item := range items {
			b.WriteString(itemRe.ReplaceAllString(m[2], item))
		}
		return b.String()
	})
	s = ifRe.ReplaceAllStringFunc(s, func(block string) string {
		m := ifRe.FindStringSubmatch(block)
		if !hasValue(ctx, m[1]) {
			return ""
		}
		return m[2]
	})
	s = varRe.ReplaceAllStringFunc(s, func(ph string) string {
		m := varRe.FindStringSubmatch(ph)
		return stringValue(ctx[m[1]])
	})
	return strings.TrimSpace(s)
}

// hasValue reports whether the key holds a non-empty value.
func hasValue(ctx map[string]interface{}, key string) bool {
	v, ok := ctx[key]
	if !ok || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case []string:
		return len(val) > 0
	case []interface{}:
		return len(val) > 0
	default:
		return true
	}
}

func stringValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}

func listValue(v interface{}) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = stringValue(item)
		}
		return out
	default:
		return nil
	}
}
