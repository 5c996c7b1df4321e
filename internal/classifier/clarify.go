// internal/classifier/clarify.go
package classifier

import (
	"fmt"
	"strings"

	"assistant-engine/internal/taxonomy"
)

// entityQuestions phrases the follow-up for each missing entity type.
var entityQuestions = map[taxonomy.EntityType]string{
	taxonomy.EntityDate:       "What date should this be for?",
	taxonomy.EntityTime:       "What time works?",
	taxonomy.EntityMoney:      "What is the amount?",
	taxonomy.EntityIdentifier: "Which record is this about? A reference number helps.",
	taxonomy.EntityName:       "Who is this for? I need a name.",
	taxonomy.EntityEmail:      "What email address should I use?",
	taxonomy.EntityPhone:      "What phone number should I use?",
	taxonomy.EntityAddress:    "What is the property address?",
	taxonomy.EntityNote:       "What should the note say?",
}

// missingEntityQuestion builds one clarification prompt covering every
// missing required entity, in the intent's declared order.
func missingEntityQuestion(def *taxonomy.IntentDefinition, missing []taxonomy.EntityType) string {
	if len(missing) == 0 {
		return ""
	}
	questions := make([]string, 0, len(missing))
	for _, et := range missing {
		q, ok := entityQuestions[et]
		if !ok {
			q = fmt.Sprintf("Could you provide the %s?", et)
		}
		questions = append(questions, q)
	}
	return strings.Join(questions, " ")
}

// ambiguityQuestion asks the user to choose when the top candidates
// are too close to act on.
func ambiguityQuestion(candidates []Candidate) string {
	if len(candidates) < 2 {
		return "I am not confident I understood that. Could you say it another way?"
	}
	names := make([]string, 0, 3)
	for i, c := range candidates {
		if i == 3 {
			break
		}
		names = append(names, c.IntentID)
	}
	return fmt.Sprintf("I could read that a few ways (%s). Which did you mean?",
		strings.Join(names, ", "))
}
