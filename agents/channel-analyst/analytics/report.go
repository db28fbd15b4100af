package analytics

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"analyst-stack/internal/models"
)

// Analyzer runs the full channel report over an in-memory record collection.
// It holds only immutable configuration, so one Analyzer is safe to reuse
// across runs.
type Analyzer struct {
	scoring ScoringConfig
}

// NewAnalyzer returns an Analyzer using the given scoring tables.
func NewAnalyzer(scoring ScoringConfig) *Analyzer {
	return &Analyzer{scoring: scoring}
}

// Report computes the composite analysis report for one record collection.
// Fewer than two records carry no relative signal and fail the whole report
// with ErrInsufficientData. Individual sub-analyses that cannot run leave
// their section nil instead of failing; a partial report is always
// preferable to none.
func (a *Analyzer) Report(records []*models.PerformanceRecord, subscribers int64) (*models.AnalysisReport, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("report: need at least 2 records, have %d: %w", len(records), ErrInsufficientData)
	}

	report := &models.AnalysisReport{
		GeneratedAt: time.Now(),
		VideoCount:  len(records),
		Summary:     BuildChannelSummary(records),
		Metrics:     ComputeMetrics(records),
		Rankings:    BuildRankings(records),
		Growth:      AnalyzeGrowth(records),
	}

	themes, err := AggregateByTheme(records, a.scoring.ThemeCatalog)
	if err != nil {
		logSkippedSection("theme aggregation", err)
	} else {
		report.Themes = themes
	}

	dist, err := ComputeDistribution(records)
	if err != nil {
		logSkippedSection("distribution", err)
	} else {
		report.Distribution = dist
	}

	cohort, err := AnalyzeCohortTrend(records)
	if err != nil {
		logSkippedSection("cohort trend", err)
	} else {
		report.CohortTrend = cohort
	}

	for _, rec := range records {
		report.Videos = append(report.Videos, models.ScoredVideo{
			VideoID: rec.VideoID,
			Title:   rec.Title,
			Score:   a.scoring.Score(rec, records, subscribers),
		})
	}

	channel, err := a.ChannelScores(records, subscribers)
	if err != nil {
		logSkippedSection("channel scores", err)
	} else {
		report.Channel = channel
	}

	report.Suggestions = ChannelSuggestions(report.Metrics, report.Themes)

	return report, nil
}

// ChannelScores scores every record with at least one view and aggregates
// the results channel-wide.
func (a *Analyzer) ChannelScores(records []*models.PerformanceRecord, subscribers int64) (*models.ChannelScoreReport, error) {
	var scored []models.ScoredVideo
	var scores []float64
	var totalComments int64
	themeScores := make(map[string][]float64)
	var themeOrder []string

	for _, rec := range records {
		if rec.ViewCount < 1 {
			continue
		}
		breakdown := a.scoring.Score(rec, records, subscribers)
		scored = append(scored, models.ScoredVideo{VideoID: rec.VideoID, Title: rec.Title, Score: breakdown})
		scores = append(scores, breakdown.UnifiedScore)
		totalComments += rec.CommentCount

		label := ExtractTheme(rec).Label
		if _, ok := themeScores[label]; !ok {
			themeOrder = append(themeOrder, label)
		}
		themeScores[label] = append(themeScores[label], breakdown.UnifiedScore)
	}

	if len(scored) == 0 {
		return nil, fmt.Errorf("channel scores: no scorable videos: %w", ErrInsufficientData)
	}

	summary := Summarize(scores)
	result := &models.ChannelScoreReport{
		TotalScored:  len(scored),
		AverageScore: round1(summary.Avg),
		MedianScore:  round1(summary.Median),
		MaxScore:     summary.Max,
		MinScore:     summary.Min,
		ScoreStdDev:  round1(summary.StdDev),
		RankCounts:   make(map[models.PerformanceRank]int),
	}
	for _, v := range scored {
		result.RankCounts[v.Score.Rank]++
	}

	byScore := append([]models.ScoredVideo(nil), scored...)
	sort.SliceStable(byScore, func(i, j int) bool {
		return byScore[i].Score.UnifiedScore > byScore[j].Score.UnifiedScore
	})
	top := 3
	if top > len(byScore) {
		top = len(byScore)
	}
	result.TopPerformers = byScore[:top]
	worst := append([]models.ScoredVideo(nil), byScore[len(byScore)-top:]...)
	// Worst performers read best from the bottom up.
	sort.SliceStable(worst, func(i, j int) bool {
		return worst[i].Score.UnifiedScore < worst[j].Score.UnifiedScore
	})
	result.WorstPerformers = worst

	bestTheme := bestThemeByScore(themeScores, themeOrder)
	avgComments := float64(totalComments) / float64(len(scored))
	result.Recommendations = ChannelRecommendations(scored, bestTheme, len(themeScores), avgComments)

	return result, nil
}

// bestThemeByScore picks the theme with the highest average unified score,
// first-seen order breaking ties.
func bestThemeByScore(themeScores map[string][]float64, order []string) string {
	best := ""
	bestAvg := -1.0
	for _, label := range order {
		scores := themeScores[label]
		var sum float64
		for _, s := range scores {
			sum += s
		}
		avg := sum / float64(len(scores))
		if avg > bestAvg {
			bestAvg = avg
			best = label
		}
	}
	return best
}

// BuildChannelSummary builds the headline totals block.
func BuildChannelSummary(records []*models.PerformanceRecord) models.ChannelSummary {
	summary := models.ChannelSummary{TotalVideos: len(records)}
	if len(records) == 0 {
		return summary
	}

	var oldest, latest time.Time
	for _, rec := range records {
		summary.TotalViews += rec.ViewCount
		summary.TotalLikes += rec.LikeCount
		summary.TotalComments += rec.CommentCount
		if !rec.UploadDate.IsZero() {
			if oldest.IsZero() || rec.UploadDate.Before(oldest) {
				oldest = rec.UploadDate
			}
			if latest.IsZero() || rec.UploadDate.After(latest) {
				latest = rec.UploadDate
			}
		}
	}

	summary.AvgViewsPerVideo = float64(summary.TotalViews) / float64(len(records))
	if summary.TotalViews > 0 {
		summary.OverallEngagementRate = float64(summary.TotalLikes+summary.TotalComments) / float64(summary.TotalViews) * 100
	}
	if !oldest.IsZero() && !latest.IsZero() {
		days := int(latest.Sub(oldest).Hours() / 24)
		summary.ChannelAgeDays = days
		if days > 0 {
			summary.UploadsPerWeek = float64(len(records)) / (float64(days) / 7)
		}
	}

	return summary
}

func logSkippedSection(name string, err error) {
	if errors.Is(err, ErrInsufficientData) {
		log.Printf("Skipping %s section: %v", name, err)
		return
	}
	log.Printf("Warning: %s section failed: %v", name, err)
}
