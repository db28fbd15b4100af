package analytics

import (
	"errors"
	"testing"
	"time"

	"analyst-stack/internal/models"
)

func TestReportInsufficientRecords(t *testing.T) {
	analyzer := NewAnalyzer(DefaultScoringConfig())

	for _, records := range [][]*models.PerformanceRecord{
		nil,
		{themedRecord("only", "spring", 100, 5, 2)},
	} {
		if _, err := analyzer.Report(records, 50); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("Report(%d records) error = %v, want ErrInsufficientData", len(records), err)
		}
	}
}

func TestReportFullCollection(t *testing.T) {
	analyzer := NewAnalyzer(DefaultScoringConfig())

	var records []*models.PerformanceRecord
	themes := []string{"spring", "spring", "food", "food", "animals", "rare-kanji", "winter", "winter"}
	for i, theme := range themes {
		rec := themedRecord(theme+"-"+string(rune('a'+i)), theme, int64(100*(i+1)), int64(5*(i+1)), int64(i))
		rec.UploadDate = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i*7)
		records = append(records, rec)
	}

	report, err := analyzer.Report(records, 50)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if report.VideoCount != len(records) {
		t.Errorf("VideoCount = %d, want %d", report.VideoCount, len(records))
	}
	if report.Summary.TotalVideos != len(records) {
		t.Errorf("Summary.TotalVideos = %d, want %d", report.Summary.TotalVideos, len(records))
	}
	if report.Metrics == nil {
		t.Error("Metrics section missing")
	}
	if report.Rankings == nil {
		t.Error("Rankings section missing")
	}
	if report.Themes == nil {
		t.Error("Themes section missing")
	} else if report.Themes.TotalThemes != 5 {
		t.Errorf("Themes.TotalThemes = %d, want 5", report.Themes.TotalThemes)
	}
	if report.Distribution == nil {
		t.Error("Distribution section missing")
	}
	if report.CohortTrend == nil {
		t.Error("CohortTrend section missing")
	} else if report.CohortTrend.RecentCount != 3 {
		t.Errorf("CohortTrend.RecentCount = %d, want 3", report.CohortTrend.RecentCount)
	}
	if report.Channel == nil {
		t.Error("Channel section missing")
	}
	if len(report.Videos) != len(records) {
		t.Errorf("Videos has %d entries, want %d", len(report.Videos), len(records))
	}
	for _, v := range report.Videos {
		if v.Score.UnifiedScore < 0 || v.Score.UnifiedScore > 110 {
			t.Errorf("Videos[%s].UnifiedScore = %v, outside [0, 110]", v.VideoID, v.Score.UnifiedScore)
		}
	}
}

func TestReportSurvivesDegenerateSections(t *testing.T) {
	analyzer := NewAnalyzer(DefaultScoringConfig())

	// Two zero-view records: enough for the report to run, but the
	// view-dependent sections have nothing to work with.
	records := []*models.PerformanceRecord{
		themedRecord("a", "spring", 0, 0, 0),
		themedRecord("b", "food", 0, 0, 0),
	}

	report, err := analyzer.Report(records, 50)
	if err != nil {
		t.Fatalf("Report() error = %v", err)
	}

	if report.Distribution != nil {
		t.Error("Distribution should be skipped when no record has views")
	}
	if report.CohortTrend != nil {
		t.Error("CohortTrend should be skipped below 3 records")
	}
	if report.Channel != nil {
		t.Error("Channel scores should be skipped when nothing is scorable")
	}
	// Themes need no views; the section stays.
	if report.Themes == nil {
		t.Error("Themes section missing")
	}
	if len(report.Videos) != 2 {
		t.Errorf("Videos has %d entries, want 2", len(report.Videos))
	}
}

func TestChannelScores(t *testing.T) {
	analyzer := NewAnalyzer(DefaultScoringConfig())
	records := []*models.PerformanceRecord{
		themedRecord("hit", "rare-kanji", 5000, 200, 40),
		themedRecord("mid1", "spring", 150, 8, 3),
		themedRecord("mid2", "spring", 120, 6, 2),
		themedRecord("low", "food", 10, 0, 0),
		themedRecord("unseen", "winter", 0, 0, 0),
	}

	result, err := analyzer.ChannelScores(records, 50)
	if err != nil {
		t.Fatalf("ChannelScores() error = %v", err)
	}

	if result.TotalScored != 4 {
		t.Fatalf("TotalScored = %d, want 4 (zero-view record excluded)", result.TotalScored)
	}
	if len(result.TopPerformers) != 3 || result.TopPerformers[0].VideoID != "hit" {
		t.Errorf("TopPerformers = %v, want hit first of 3", result.TopPerformers)
	}
	if len(result.WorstPerformers) != 3 || result.WorstPerformers[0].VideoID != "low" {
		t.Errorf("WorstPerformers = %v, want low first of 3", result.WorstPerformers)
	}
	if result.MaxScore < result.MinScore {
		t.Errorf("MaxScore %v below MinScore %v", result.MaxScore, result.MinScore)
	}

	var rankTotal int
	for _, n := range result.RankCounts {
		rankTotal += n
	}
	if rankTotal != 4 {
		t.Errorf("RankCounts total = %d, want 4", rankTotal)
	}
}

func TestChannelScoresNothingScorable(t *testing.T) {
	analyzer := NewAnalyzer(DefaultScoringConfig())
	records := []*models.PerformanceRecord{
		themedRecord("a", "spring", 0, 0, 0),
		themedRecord("b", "food", 0, 0, 0),
	}

	if _, err := analyzer.ChannelScores(records, 50); !errors.Is(err, ErrInsufficientData) {
		t.Errorf("ChannelScores() error = %v, want ErrInsufficientData", err)
	}
}

func TestBuildChannelSummary(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	records := []*models.PerformanceRecord{
		{VideoID: "a", UploadDate: base, ViewCount: 100, LikeCount: 8, CommentCount: 2},
		{VideoID: "b", UploadDate: base.AddDate(0, 0, 7), ViewCount: 300, LikeCount: 12, CommentCount: 8},
		{VideoID: "c", UploadDate: base.AddDate(0, 0, 14), ViewCount: 200, LikeCount: 10, CommentCount: 5},
	}

	summary := BuildChannelSummary(records)

	if summary.TotalViews != 600 || summary.TotalLikes != 30 || summary.TotalComments != 15 {
		t.Errorf("totals = %d/%d/%d, want 600/30/15",
			summary.TotalViews, summary.TotalLikes, summary.TotalComments)
	}
	if summary.AvgViewsPerVideo != 200 {
		t.Errorf("AvgViewsPerVideo = %v, want 200", summary.AvgViewsPerVideo)
	}
	if !almostEqual(summary.OverallEngagementRate, 7.5) {
		t.Errorf("OverallEngagementRate = %v, want 7.5", summary.OverallEngagementRate)
	}
	if summary.ChannelAgeDays != 14 {
		t.Errorf("ChannelAgeDays = %d, want 14", summary.ChannelAgeDays)
	}
	if !almostEqual(summary.UploadsPerWeek, 1.5) {
		t.Errorf("UploadsPerWeek = %v, want 1.5", summary.UploadsPerWeek)
	}
}

func TestBuildChannelSummaryEmpty(t *testing.T) {
	summary := BuildChannelSummary(nil)
	if summary.TotalVideos != 0 || summary.TotalViews != 0 {
		t.Errorf("empty summary = %+v, want zeros", summary)
	}
}
