package analytics

import (
	"fmt"
	"math"
	"sort"

	"analyst-stack/internal/models"
)

// themeAccumulator collects raw totals for one theme during grouping.
type themeAccumulator struct {
	count         int
	totalViews    int64
	totalLikes    int64
	totalComments int64
	best          *models.BestVideoRef
}

// AggregateByTheme groups records by extracted theme and rolls up per-theme
// averages, a capped priority score, and a strategy bucket. Themes are
// returned sorted by average views descending. The catalog parameter lists
// every theme the channel could produce; catalog themes never observed in
// the collection are surfaced as experimental candidates with the "new"
// strategy.
func AggregateByTheme(records []*models.PerformanceRecord, catalog []string) (*models.ThemeAnalysis, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("theme aggregation: no records: %w", ErrInsufficientData)
	}

	// First-seen order keeps the pre-sort ordering deterministic.
	var order []string
	groups := make(map[string]*themeAccumulator)

	for _, rec := range records {
		label := ExtractTheme(rec).Label
		acc, ok := groups[label]
		if !ok {
			acc = &themeAccumulator{}
			groups[label] = acc
			order = append(order, label)
		}
		acc.count++
		acc.totalViews += rec.ViewCount
		acc.totalLikes += rec.LikeCount
		acc.totalComments += rec.CommentCount
		if acc.best == nil || rec.ViewCount > acc.best.Views {
			acc.best = &models.BestVideoRef{VideoID: rec.VideoID, Title: rec.Title, Views: rec.ViewCount}
		}
	}

	themes := make([]models.ThemeAggregate, 0, len(order))
	for _, label := range order {
		acc := groups[label]
		n := float64(acc.count)
		agg := models.ThemeAggregate{
			Theme:       label,
			VideoCount:  acc.count,
			AvgViews:    float64(acc.totalViews) / n,
			AvgLikes:    float64(acc.totalLikes) / n,
			AvgComments: float64(acc.totalComments) / n,
			TotalViews:  acc.totalViews,
			BestVideo:   acc.best,
		}
		if acc.totalViews > 0 {
			agg.AvgEngagementRate = float64(acc.totalLikes+acc.totalComments) / float64(acc.totalViews) * 100
		}
		agg.PriorityScore = ThemePriorityScore(agg.AvgViews, agg.AvgEngagementRate, agg.VideoCount)
		agg.Strategy = classifyThemeStrategy(agg.AvgViews, agg.AvgEngagementRate, agg.VideoCount)
		themes = append(themes, agg)
	}

	sort.SliceStable(themes, func(i, j int) bool { return themes[i].AvgViews > themes[j].AvgViews })

	analysis := &models.ThemeAnalysis{
		Themes:         themes,
		TotalThemes:    len(themes),
		DiversityScore: float64(len(themes)) / float64(len(records)),
	}
	if len(themes) > 0 {
		analysis.MostPopularTheme = themes[0].Theme
	}

	byPriority := append([]models.ThemeAggregate(nil), themes...)
	sort.SliceStable(byPriority, func(i, j int) bool {
		return byPriority[i].PriorityScore > byPriority[j].PriorityScore
	})
	for i := 0; i < len(byPriority) && i < 3; i++ {
		analysis.FocusThemes = append(analysis.FocusThemes, byPriority[i].Theme)
	}

	for _, agg := range themes {
		if agg.Strategy == models.StrategyExperiment {
			analysis.ExperimentalThemes = append(analysis.ExperimentalThemes, agg.Theme)
		}
	}
	for _, label := range catalog {
		if _, observed := groups[label]; !observed {
			analysis.ExperimentalThemes = append(analysis.ExperimentalThemes, label)
		}
	}

	return analysis, nil
}

// ThemePriorityScore blends average views, engagement, and sample size into
// a single ordering key. Each term is capped before summing so that one
// runaway metric cannot dominate the ordering.
func ThemePriorityScore(avgViews, avgEngagement float64, videoCount int) float64 {
	viewsScore := math.Min(avgViews/1000, 10)
	engagementScore := math.Min(avgEngagement, 10)
	consistencyScore := math.Min(float64(videoCount), 5)
	return viewsScore + engagementScore + consistencyScore
}

func classifyThemeStrategy(avgViews, avgEngagement float64, videoCount int) models.ThemeStrategy {
	switch {
	case videoCount >= 2 && avgViews > 0:
		if avgViews >= 1000 && avgEngagement >= 3.0 {
			return models.StrategyPrioritize
		}
		if avgViews >= 500 || avgEngagement >= 2.0 {
			return models.StrategyOptimize
		}
		return models.StrategyExperiment
	case videoCount == 1:
		return models.StrategyValidate
	default:
		return models.StrategyNew
	}
}
