package analytics

import (
	"fmt"

	"analyst-stack/internal/models"
)

// maxRecommendations bounds every recommendation list.
const maxRecommendations = 3

// videoRule is one (predicate, message) pair. Rules are evaluated in
// declaration order and the first three triggered win, so the order below is
// behaviorally significant: views rules lead because views carry the largest
// scoring weight.
type videoRule struct {
	triggered func(models.ScoreBreakdown, float64) bool
	message   string
}

var videoRules = []videoRule{
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.ViewsScore < 50 },
		"Rework the title to create a stronger hook (e.g. \"Rare kanji quiz\" -> \"Only a genius reads all 10 of these kanji\").",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.ViewsScore < 50 },
		"Show part of the first question on the thumbnail to earn the click.",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.CommentsCountScore < 50 },
		"Ask viewers a direct question in the video (e.g. \"Got all ten? Tell us in the comments!\").",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.CommentsCountScore < 50 },
		"Add a prompt that invites back-and-forth in the comment section.",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.CommentsQualityScore < 50 },
		"Include a question that sparks discussion rather than a single right answer.",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.CommentsQualityScore < 50 },
		"Enrich the explanations with trivia worth sharing in the comments.",
	},
	{
		func(b models.ScoreBreakdown, _ float64) bool { return b.ThemeBonus < 1.1 },
		"Try a more specialized theme (bug-kanji, rare-kanji) for the difficulty bonus.",
	},
	{
		func(_ models.ScoreBreakdown, explLen float64) bool { return explLen > 60 },
		"Shorten explanations to 60 characters or less to keep the pace up.",
	},
	{
		func(_ models.ScoreBreakdown, explLen float64) bool { return explLen < 20 },
		"Flesh out explanations with trivia to around 30-50 characters.",
	},
}

// VideoRecommendations returns up to three improvement actions for one
// scored record, in fixed priority order.
func VideoRecommendations(breakdown models.ScoreBreakdown, avgExplanationLength float64) []string {
	var recs []string
	for _, rule := range videoRules {
		if len(recs) == maxRecommendations {
			break
		}
		if rule.triggered(breakdown, avgExplanationLength) {
			recs = append(recs, rule.message)
		}
	}
	return recs
}

// ChannelRecommendations synthesizes up to three channel-wide actions from
// the scored collection. Same fixed-order policy as the per-video rules.
func ChannelRecommendations(scored []models.ScoredVideo, bestTheme string, distinctThemes int, avgComments float64) []string {
	if len(scored) == 0 {
		return nil
	}

	var recs []string
	add := func(msg string) {
		if len(recs) < maxRecommendations {
			recs = append(recs, msg)
		}
	}

	lowCount := 0
	for _, v := range scored {
		if v.Score.UnifiedScore < 50 {
			lowCount++
		}
	}

	if float64(lowCount) > float64(len(scored))*0.3 {
		add("Over 30% of videos score below 50: review titles and thumbnails across the channel to lift click-through.")
	}
	if bestTheme != "" {
		add(fmt.Sprintf("Double down on the top performing theme %q.", bestTheme))
	}
	if distinctThemes < 3 {
		add("Theme diversity is low: broaden the catalog to reach new viewers.")
	}
	if avgComments < 2 {
		add("Average comments per video is under 2: build a dialogue mechanism into each video.")
	}

	return recs
}

// ChannelSuggestions derives the report-level improvement suggestions from
// the metrics and theme sections. Unlike the recommendation lists this one
// is not capped; every matched rule is reported.
func ChannelSuggestions(metrics *models.PerformanceMetrics, themes *models.ThemeAnalysis) []string {
	var suggestions []string

	if themes != nil && len(themes.Themes) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Produce more videos around the high performing theme %q.", themes.Themes[0].Theme))
	}

	if metrics != nil {
		if metrics.EngagementRate.Avg < 3.0 {
			suggestions = append(suggestions,
				"Engagement rate is low: strengthen participation hooks (questions, quizzes).")
		}
		if metrics.Views.Avg > 0 && metrics.Views.Max > metrics.Views.Avg*2 {
			suggestions = append(suggestions,
				"Study what the top performing video did right and apply it to the rest.")
		}
	}

	if themes != nil && themes.DiversityScore < 0.3 {
		suggestions = append(suggestions,
			"Increase theme diversity to open up new audience segments.")
	}

	return suggestions
}
