package analytics

import (
	"sort"

	"analyst-stack/internal/models"
)

// PercentileRank returns the share (0-100) of population values at or below
// value. A population below two elements carries no relative signal and
// ranks 50. A value at or below the population minimum ranks exactly 0 and
// one at or above the maximum exactly 100; these are explicit cases so that
// float rounding can never push the extremes off their bounds.
func PercentileRank(value float64, population []float64) float64 {
	if len(population) < 2 {
		return 50
	}

	sorted := append([]float64(nil), population...)
	sort.Float64s(sorted)

	if value <= sorted[0] {
		return 0
	}
	if value >= sorted[len(sorted)-1] {
		return 100
	}

	count := 0
	for _, v := range sorted {
		if v <= value {
			count++
		}
	}
	return float64(count) / float64(len(sorted)) * 100
}

// Metric extracts a comparable value from a record.
type Metric func(*models.PerformanceRecord) float64

// TopN returns the n highest records by metric, stable so that ties keep
// the collection's original order.
func TopN(records []*models.PerformanceRecord, n int, metric Metric) []models.RankedVideo {
	return rankedSlice(records, n, metric, true)
}

// BottomN returns the n lowest records by metric, ascending, stable on ties.
func BottomN(records []*models.PerformanceRecord, n int, metric Metric) []models.RankedVideo {
	return rankedSlice(records, n, metric, false)
}

func rankedSlice(records []*models.PerformanceRecord, n int, metric Metric, descending bool) []models.RankedVideo {
	sorted := append([]*models.PerformanceRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return metric(sorted[i]) > metric(sorted[j])
		}
		return metric(sorted[i]) < metric(sorted[j])
	})

	if n > len(sorted) {
		n = len(sorted)
	}

	ranked := make([]models.RankedVideo, 0, n)
	for _, rec := range sorted[:n] {
		ranked = append(ranked, models.RankedVideo{
			VideoID: rec.VideoID,
			Title:   rec.Title,
			Value:   metric(rec),
		})
	}
	return ranked
}

// BuildRankings produces the standard ranking table: top 10 by views,
// engagement rate, like rate, and comment count, plus the bottom 5 by views
// and engagement. Rate rankings only consider videos that have views.
func BuildRankings(records []*models.PerformanceRecord) *models.Rankings {
	viewed := make([]*models.PerformanceRecord, 0, len(records))
	for _, rec := range records {
		if rec.ViewCount > 0 {
			viewed = append(viewed, rec)
		}
	}

	views := func(r *models.PerformanceRecord) float64 { return float64(r.ViewCount) }
	comments := func(r *models.PerformanceRecord) float64 { return float64(r.CommentCount) }
	engagement := func(r *models.PerformanceRecord) float64 {
		return EngagementRate(r.ViewCount, r.LikeCount, r.CommentCount)
	}
	likeRate := func(r *models.PerformanceRecord) float64 {
		return LikeRate(r.ViewCount, r.LikeCount)
	}

	return &models.Rankings{
		ViewsTop:         TopN(records, 10, views),
		EngagementTop:    TopN(viewed, 10, engagement),
		LikeRateTop:      TopN(viewed, 10, likeRate),
		CommentsTop:      TopN(records, 10, comments),
		ViewsBottom:      BottomN(records, 5, views),
		EngagementBottom: BottomN(viewed, 5, engagement),
	}
}
