package analytics

import (
	"encoding/json"
	"strings"
	"unicode/utf8"

	"analyst-stack/internal/models"
)

// ThemeUnknown is the sentinel label for records whose theme cannot be
// resolved from either the payload or the title.
const ThemeUnknown = "unknown"

// ThemeOrigin records how a theme label was obtained.
type ThemeOrigin int

const (
	// OriginPayload means the label was read from the structured script.
	OriginPayload ThemeOrigin = iota
	// OriginTitle means the label was inferred from title keywords.
	OriginTitle
	// OriginUnknown means neither source produced a label.
	OriginUnknown
)

// Theme is a resolved theme label together with its origin.
type Theme struct {
	Label  string
	Origin ThemeOrigin
}

// keywordGroups maps title keywords to theme labels. Matching is first match
// wins, so group order is part of observed behavior; do not reorder.
var keywordGroups = []struct {
	label    string
	keywords []string
}{
	{"spring", []string{"spring"}},
	{"summer", []string{"summer"}},
	{"autumn", []string{"autumn", "fall"}},
	{"winter", []string{"winter"}},
	{"animals", []string{"animal"}},
	{"food", []string{"food"}},
	{"rare-kanji", []string{"rare kanji", "hardest kanji"}},
}

// ExtractTheme resolves a record's theme. It tries the structured payload
// first, then an ordered keyword scan of the lower-cased title, and finally
// falls back to ThemeUnknown. It never fails: a malformed payload simply
// degrades to title inference.
func ExtractTheme(rec *models.PerformanceRecord) Theme {
	if rec.Script != "" {
		var payload models.ContentPayload
		if err := json.Unmarshal([]byte(rec.Script), &payload); err == nil && payload.Theme != "" {
			return Theme{Label: payload.Theme, Origin: OriginPayload}
		}
	}

	title := strings.ToLower(rec.Title)
	for _, group := range keywordGroups {
		for _, kw := range group.keywords {
			if strings.Contains(title, kw) {
				return Theme{Label: group.label, Origin: OriginTitle}
			}
		}
	}

	return Theme{Label: ThemeUnknown, Origin: OriginUnknown}
}

// AvgExplanationLength returns the mean character length of the explanation
// text across the record's payload items. Missing, malformed, or empty
// payloads yield 0.
func AvgExplanationLength(rec *models.PerformanceRecord) float64 {
	if rec.Script == "" {
		return 0
	}
	var payload models.ContentPayload
	if err := json.Unmarshal([]byte(rec.Script), &payload); err != nil {
		return 0
	}

	var total, count int
	for _, item := range payload.Items {
		if item.Explanation != "" {
			total += utf8.RuneCountInString(item.Explanation)
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
