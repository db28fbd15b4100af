package analytics

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"analyst-stack/internal/models"
)

// ErrInsufficientData marks a sub-analysis that cannot run on the given
// collection. Callers check it with errors.Is and omit the report section;
// it is never fatal to the rest of the report.
var ErrInsufficientData = errors.New("insufficient data")

// EngagementRate is (likes+comments)/views as a percentage, 0 when the video
// has no views.
func EngagementRate(views, likes, comments int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(likes+comments) / float64(views) * 100
}

// LikeRate is likes/views as a percentage, 0 when the video has no views.
func LikeRate(views, likes int64) float64 {
	if views == 0 {
		return 0
	}
	return float64(likes) / float64(views) * 100
}

// Summarize computes distributional statistics over a sample. An empty
// sample yields the zero summary; a single element has StdDev 0.
func Summarize(samples []float64) models.MetricSummary {
	if len(samples) == 0 {
		return models.MetricSummary{}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	mean := sum / float64(len(sorted))

	return models.MetricSummary{
		Avg:    mean,
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: stdDev(sorted, mean),
	}
}

// median expects a sorted sample.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdDev is the sample standard deviation (n-1 denominator), 0 below two
// elements.
func stdDev(samples []float64, mean float64) float64 {
	if len(samples) < 2 {
		return 0
	}
	var ss float64
	for _, v := range samples {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(samples)-1))
}

// SummarizeQuartiles computes the quartile summary of a sample. Below four
// elements, q1 and q3 degrade to median*0.5 and median*1.5 - a deliberate
// small-sample approximation that downstream thresholds are tuned against,
// kept as is rather than replaced with a rigorous estimator.
func SummarizeQuartiles(samples []float64) models.Quartiles {
	if len(samples) == 0 {
		return models.Quartiles{}
	}

	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)
	med := median(sorted)

	if len(sorted) < 4 {
		return models.Quartiles{Q1: med * 0.5, Median: med, Q3: med * 1.5}
	}

	return models.Quartiles{
		Q1:     quantile(sorted, 1),
		Median: med,
		Q3:     quantile(sorted, 3),
	}
}

// quantile interpolates the k-th quartile (k in 1..3) of a sorted sample
// using the exclusive method: the h-th order statistic at h = (n+1)k/4.
func quantile(sorted []float64, k int) float64 {
	n := len(sorted)
	h := float64(n+1) * float64(k) / 4
	j := int(math.Floor(h))
	if j < 1 {
		return sorted[0]
	}
	if j >= n {
		return sorted[n-1]
	}
	return sorted[j-1] + (h-float64(j))*(sorted[j]-sorted[j-1])
}

// ComputeMetrics runs the statistical pass over raw and derived metrics.
// Views with zero counts are excluded from the views sample; engagement and
// like rates are only defined for videos that have views.
func ComputeMetrics(records []*models.PerformanceRecord) *models.PerformanceMetrics {
	var views, likes, comments, engagement, likeRates []float64

	for _, rec := range records {
		if rec.ViewCount > 0 {
			views = append(views, float64(rec.ViewCount))
			engagement = append(engagement, EngagementRate(rec.ViewCount, rec.LikeCount, rec.CommentCount))
			likeRates = append(likeRates, LikeRate(rec.ViewCount, rec.LikeCount))
		}
		likes = append(likes, float64(rec.LikeCount))
		comments = append(comments, float64(rec.CommentCount))
	}

	return &models.PerformanceMetrics{
		Views:          Summarize(views),
		Likes:          Summarize(likes),
		Comments:       Summarize(comments),
		EngagementRate: Summarize(engagement),
		LikeRate:       Summarize(likeRates),
	}
}

// ComputeDistribution segments the collection into view-count quartile
// buckets. Records without any views still land in a bucket; the quartile
// thresholds themselves come from the positive-view sample only.
func ComputeDistribution(records []*models.PerformanceRecord) (*models.Distribution, error) {
	var views []float64
	for _, rec := range records {
		if rec.ViewCount > 0 {
			views = append(views, float64(rec.ViewCount))
		}
	}
	if len(views) == 0 {
		return nil, fmt.Errorf("distribution: no videos with views: %w", ErrInsufficientData)
	}

	q := SummarizeQuartiles(views)
	dist := &models.Distribution{Quartiles: q}

	for _, rec := range records {
		v := float64(rec.ViewCount)
		switch {
		case v >= q.Q3:
			dist.HighPerformers++
		case v >= q.Median:
			dist.AboveAverage++
		case v >= q.Q1:
			dist.BelowAverage++
		default:
			dist.LowPerformers++
		}
	}

	return dist, nil
}
