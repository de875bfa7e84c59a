package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/orbitrest/internal/ui/theme"
)

// QuestionView renders a quiz question with lettered options. When
// CorrectIndex is within range that option is highlighted.
type QuestionView struct {
	Question     string
	Options      []string
	CorrectIndex int
	Difficulty   string
}

// View renders the question.
func (q QuestionView) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(q.Question))
	if q.Difficulty != "" {
		b.WriteString(" " + theme.Hint.Render("("+q.Difficulty+")"))
	}
	b.WriteString("\n")

	for i, opt := range q.Options {
		line := fmt.Sprintf("  %c)  %s", 'A'+rune(i), opt)
		if i == q.CorrectIndex {
			b.WriteString(theme.Correct.Render(line) + "\n")
			continue
		}
		b.WriteString(theme.Muted.Render(line) + "\n")
	}
	return b.String()
}
