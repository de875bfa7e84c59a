package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/orbitrest/internal/catalog"
)

const systemPrompt = `You write quiz questions for people learning how REST APIs work.

Rules:
- Every question is multiple choice with 2 to 6 short options and exactly one correct option.
- correctAnswer is the zero-based index of the correct option.
- Distractors should reflect common misunderstandings of HTTP and REST, not nonsense.
- Keep questions self-contained; do not refer to "the example above".
- The explanation says in one or two sentences why the correct option is right.
- Do not repeat or paraphrase any question from the "already asked" list.`

func buildUserMessage(c catalog.Concept, count int, prior []string, maxPrior int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Concept: %s\n", c.Title)
	fmt.Fprintf(&b, "HTTP method: %s\n", c.Method)
	fmt.Fprintf(&b, "Description: %s\n", c.Description)
	if c.Example != "" {
		fmt.Fprintf(&b, "Example request:\n%s\n", c.Example)
	}
	fmt.Fprintf(&b, "Number of questions: %d\n", count)
	b.WriteString("\nAlready asked:\n")
	b.WriteString(numberedList(prior, maxPrior))
	return b.String()
}

// numberedList keeps the last max entries; "None" when empty.
func numberedList(items []string, max int) string {
	if len(items) == 0 {
		return "None"
	}
	if max > 0 && len(items) > max {
		items = items[len(items)-max:]
	}
	var b strings.Builder
	for i, s := range items {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	return strings.TrimRight(b.String(), "\n")
}
