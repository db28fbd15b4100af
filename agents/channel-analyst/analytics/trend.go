package analytics

import (
	"fmt"
	"sort"

	"analyst-stack/internal/models"
)

// AnalyzeCohortTrend splits the collection into a recent and an older cohort
// by upload date and compares their average views and engagement. At least
// three records are required; the recent cohort is the newer of 3 or a
// quarter of the collection, and the remainder must be non-empty.
func AnalyzeCohortTrend(records []*models.PerformanceRecord) (*models.TrendCohortResult, error) {
	if len(records) < 3 {
		return nil, fmt.Errorf("cohort trend: need at least 3 records, have %d: %w", len(records), ErrInsufficientData)
	}

	sorted := append([]*models.PerformanceRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UploadDate.Before(sorted[j].UploadDate)
	})

	recentCount := len(sorted) / 4
	if recentCount < 3 {
		recentCount = 3
	}
	if recentCount >= len(sorted) {
		return nil, fmt.Errorf("cohort trend: no older cohort to compare against: %w", ErrInsufficientData)
	}

	recent := sorted[len(sorted)-recentCount:]
	older := sorted[:len(sorted)-recentCount]

	result := &models.TrendCohortResult{
		RecentCount:         len(recent),
		OlderCount:          len(older),
		RecentAvgViews:      avgViews(recent),
		OlderAvgViews:       avgViews(older),
		RecentAvgEngagement: avgEngagement(recent),
		OlderAvgEngagement:  avgEngagement(older),
	}

	if result.OlderAvgViews > 0 {
		result.ViewsTrendPct = (result.RecentAvgViews - result.OlderAvgViews) / result.OlderAvgViews * 100
	}
	// Delta in percentage points, not a ratio of ratios.
	result.EngagementTrendDelta = result.RecentAvgEngagement - result.OlderAvgEngagement
	result.Status = ClassifyTrend(result.ViewsTrendPct, result.EngagementTrendDelta)

	return result, nil
}

// ClassifyTrend maps a views trend percentage and an engagement delta onto a
// trend status. Thresholds are evaluated in order, first match wins.
func ClassifyTrend(viewsTrendPct, engagementDelta float64) models.TrendStatus {
	switch {
	case viewsTrendPct > 10 && engagementDelta > 0.5:
		return models.TrendRapidGrowth
	case viewsTrendPct > 0 && engagementDelta > 0:
		return models.TrendGrowing
	case viewsTrendPct > -10 && engagementDelta > -0.5:
		return models.TrendStable
	case viewsTrendPct > -25:
		return models.TrendDeclining
	default:
		return models.TrendNeedsAttention
	}
}

func avgViews(records []*models.PerformanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total int64
	for _, rec := range records {
		total += rec.ViewCount
	}
	return float64(total) / float64(len(records))
}

func avgEngagement(records []*models.PerformanceRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var total float64
	for _, rec := range records {
		total += EngagementRate(rec.ViewCount, rec.LikeCount, rec.CommentCount)
	}
	return total / float64(len(records))
}

// AnalyzeGrowth computes the per-record view growth between the recorded
// counters and the latest observation, for records that carry one. Only
// positive deltas produce entries, so every aggregate below - including the
// explanation-length correlation - covers the subset that already grew and
// says nothing about videos that stalled.
func AnalyzeGrowth(records []*models.PerformanceRecord) *models.GrowthAnalysis {
	var growing []models.GrowthEntry
	var themeOrder []string
	themeGroups := make(map[string]*models.ThemeGrowth)
	bestRate := make(map[string]float64)

	for _, rec := range records {
		if rec.LatestStats == nil {
			continue
		}
		delta := rec.LatestStats.Views - rec.ViewCount
		if delta <= 0 {
			continue
		}

		prev := rec.ViewCount
		if prev < 1 {
			prev = 1
		}
		entry := models.GrowthEntry{
			VideoID:              rec.VideoID,
			Title:                rec.Title,
			ViewDelta:            delta,
			GrowthRatePct:        float64(delta) / float64(prev) * 100,
			CurrentViews:         rec.LatestStats.Views,
			PreviousViews:        rec.ViewCount,
			AvgExplanationLength: AvgExplanationLength(rec),
		}
		growing = append(growing, entry)

		label := ExtractTheme(rec).Label
		group, ok := themeGroups[label]
		if !ok {
			group = &models.ThemeGrowth{Theme: label}
			themeGroups[label] = group
			themeOrder = append(themeOrder, label)
		}
		group.VideoCount++
		group.TotalGrowth += delta
		group.AvgExplanationLength += entry.AvgExplanationLength
		if entry.GrowthRatePct > bestRate[label] || group.BestTitle == "" {
			bestRate[label] = entry.GrowthRatePct
			group.BestTitle = rec.Title
		}
	}

	analysis := &models.GrowthAnalysis{GrowingCount: len(growing)}
	if len(growing) == 0 {
		return analysis
	}

	sort.SliceStable(growing, func(i, j int) bool {
		return growing[i].GrowthRatePct > growing[j].GrowthRatePct
	})

	top := growing
	if len(top) > 10 {
		top = top[:10]
	}
	analysis.TopGrowing = top

	var totalRate float64
	for _, entry := range growing {
		analysis.TotalViewGrowth += entry.ViewDelta
		totalRate += entry.GrowthRatePct
	}
	analysis.AvgGrowthRate = totalRate / float64(len(growing))

	for _, label := range themeOrder {
		group := themeGroups[label]
		group.AvgGrowth = float64(group.TotalGrowth) / float64(group.VideoCount)
		group.AvgExplanationLength /= float64(group.VideoCount)
		analysis.ThemeGrowth = append(analysis.ThemeGrowth, *group)
	}
	sort.SliceStable(analysis.ThemeGrowth, func(i, j int) bool {
		return analysis.ThemeGrowth[i].AvgGrowth > analysis.ThemeGrowth[j].AvgGrowth
	})
	analysis.MostTrendingTheme = analysis.ThemeGrowth[0].Theme

	analysis.Explanations = analyzeExplanationLengths(growing)

	return analysis
}

// Explanation length buckets, in characters.
const (
	shortExplanationMax  = 30
	mediumExplanationMax = 60
)

func analyzeExplanationLengths(growing []models.GrowthEntry) *models.ExplanationAnalysis {
	var short, medium, long []models.GrowthEntry
	for _, entry := range growing {
		switch {
		case entry.AvgExplanationLength <= shortExplanationMax:
			short = append(short, entry)
		case entry.AvgExplanationLength <= mediumExplanationMax:
			medium = append(medium, entry)
		default:
			long = append(long, entry)
		}
	}

	bucket := func(entries []models.GrowthEntry, lengthRange string) models.ExplanationBucket {
		b := models.ExplanationBucket{Count: len(entries), LengthRange: lengthRange}
		if len(entries) == 0 {
			return b
		}
		var total float64
		for _, entry := range entries {
			total += entry.GrowthRatePct
		}
		b.AvgGrowthRate = total / float64(len(entries))
		return b
	}

	analysis := &models.ExplanationAnalysis{
		Short:  bucket(short, "0-30 chars"),
		Medium: bucket(medium, "31-60 chars"),
		Long:   bucket(long, "61+ chars"),
	}
	analysis.Recommendation = explanationRecommendation(
		analysis.Short.AvgGrowthRate,
		analysis.Medium.AvgGrowthRate,
		analysis.Long.AvgGrowthRate,
	)
	return analysis
}

// explanationRecommendation names the best-growing bucket. Ties resolve
// toward the shorter bucket.
func explanationRecommendation(short, medium, long float64) string {
	max := short
	if medium > max {
		max = medium
	}
	if long > max {
		max = long
	}

	switch max {
	case short:
		return "Short explanations (0-30 chars) are performing best. Keep them concise and memorable."
	case medium:
		return "Medium explanations (31-60 chars) are performing best. Moderate detail suits the audience."
	default:
		return "Long explanations (61+ chars) are performing best. Detailed trivia is holding attention."
	}
}
