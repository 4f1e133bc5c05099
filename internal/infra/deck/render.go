package deck

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var deckTemplate = template.Must(template.New("deck.html").Funcs(template.FuncMap{
	// Economies_of_Scale -> Economies of Scale
	"category": func(s string) string { return strings.ReplaceAll(s, "_", " ") },
	"legend": func(g *Grid) string {
		parts := make([]string, 0, len(g.Quadrants))
		for _, q := range g.Quadrants {
			parts = append(parts, q.Code+": "+q.Label)
		}
		return strings.Join(parts, "   ")
	},
}).ParseFS(templateFS, "templates/deck.html"))

// RenderHTML renders the deck as a standalone HTML document.
func RenderHTML(d Deck) ([]byte, error) {
	var buf bytes.Buffer
	if err := deckTemplate.Execute(&buf, d); err != nil {
		return nil, fmt.Errorf("render deck: %w", err)
	}
	return buf.Bytes(), nil
}
