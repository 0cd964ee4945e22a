package usecase

import (
	"regexp"
	"strings"

	"github.com/shopgrid/catalog-assistant/internal/core/domain"
)

// The completion is requested as a numbered list of the shape
// "N. Name (Category): description", with the name optionally bolded.
// Model output is not contractually guaranteed, so both patterns are
// best-effort and anything else degrades to the raw-text fallback.
var (
	boldListItem  = regexp.MustCompile(`(?i)\d+\.\s*\*\*(.*?)\*\*\s*\((.*?)\)\s*:\s*(.*)`)
	plainListItem = regexp.MustCompile(`(?i)\d+\.\s*(.*?)\s*\((.*?)\)\s*:\s*(.*)`)
)

// ParseAnswers extracts structured records from free-form smart-search
// output. The second return reports whether any structure was found; when it
// is false the single result carries the whole raw text. The result slice is
// never empty.
func ParseAnswers(raw string) ([]domain.ParsedAnswer, bool) {
	text := strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))

	var results []domain.ParsedAnswer
	for _, line := range strings.Split(text, "\n") {
		match := boldListItem.FindStringSubmatch(line)
		if match == nil {
			match = plainListItem.FindStringSubmatch(line)
		}
		if match == nil {
			continue
		}
		results = append(results, domain.ParsedAnswer{
			Name:     strings.TrimSpace(match[1]),
			Category: strings.TrimSpace(match[2]),
			Summary:  strings.TrimSpace(match[3]),
		})
	}

	if len(results) == 0 {
		return []domain.ParsedAnswer{{
			Name:     "General Result",
			Category: "-",
			Summary:  text,
		}}, false
	}
	return results, true
}
