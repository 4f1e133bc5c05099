package analysis

import "strings"

// bulletCutset is stripped from both ends of every edited line.
const bulletCutset = " \t\r-•"

// ListToText joins items one per line for editing.
func ListToText(items []string) string {
	return strings.Join(items, "\n")
}

// TextToList splits edited text back into items. Leading/trailing bullets
// and dashes are stripped and blank lines dropped.
func TextToList(text string) []string {
	out := []string{}
	for _, line := range strings.Split(text, "\n") {
		item := strings.Trim(line, bulletCutset)
		if strings.TrimSpace(item) == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}

// SWOTFromText builds a SWOT payload from the four edit fields.
func SWOTFromText(s, w, o, t string) SWOT {
	return SWOT{S: TextToList(s), W: TextToList(w), O: TextToList(o), T: TextToList(t)}
}

// AnsoffFromText builds an Ansoff payload from the four edit fields.
func AnsoffFromText(penetration, development, product, diversification string) Ansoff {
	return Ansoff{
		MarketPenetration:  TextToList(penetration),
		MarketDevelopment:  TextToList(development),
		ProductDevelopment: TextToList(product),
		Diversification:    TextToList(diversification),
	}
}
