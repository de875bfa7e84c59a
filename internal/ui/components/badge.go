package components

import (
	"github.com/abhisek/orbitrest/internal/catalog"
	"github.com/abhisek/orbitrest/internal/ui/theme"
)

// MethodBadge renders m as a colored label, padded to the widest method
// name so badges line up in lists.
func MethodBadge(m catalog.Method) string {
	return theme.Badge.
		Background(theme.MethodColor(m)).
		Width(badgeWidth).
		Render(m.String())
}

// "DELETE" plus one cell of padding each side.
const badgeWidth = 8

// ConceptCard renders a concept with its method badge and example request.
func ConceptCard(c catalog.Concept, width int) string {
	body := MethodBadge(c.Method) + " " + theme.Title.Render(c.Title) + "\n" +
		theme.Body.Render(c.Description)
	if c.Example != "" {
		body += "\n" + theme.Code.Render(c.Example)
	}
	return theme.Card.Width(width).Render(body)
}
