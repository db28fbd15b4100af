package analytics

import (
	"errors"
	"reflect"
	"testing"

	"analyst-stack/internal/models"
)

func themedRecord(id, theme string, views, likes, comments int64) *models.PerformanceRecord {
	return &models.PerformanceRecord{
		VideoID:      id,
		Title:        id,
		Script:       `{"theme":"` + theme + `"}`,
		ViewCount:    views,
		LikeCount:    likes,
		CommentCount: comments,
	}
}

func TestAggregateByThemeEmpty(t *testing.T) {
	_, err := AggregateByTheme(nil, nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("AggregateByTheme(nil) error = %v, want ErrInsufficientData", err)
	}
}

func TestAggregateByTheme(t *testing.T) {
	records := []*models.PerformanceRecord{
		themedRecord("s1", "spring", 2000, 50, 20),
		themedRecord("s2", "spring", 1000, 30, 10),
		themedRecord("f1", "food", 100, 1, 0),
		themedRecord("f2", "food", 200, 2, 1),
		themedRecord("a1", "animals", 600, 5, 2),
	}

	analysis, err := AggregateByTheme(records, []string{"spring", "food", "animals", "bug-kanji"})
	if err != nil {
		t.Fatalf("AggregateByTheme() error = %v", err)
	}

	if analysis.TotalThemes != 3 {
		t.Fatalf("TotalThemes = %d, want 3", analysis.TotalThemes)
	}
	if analysis.MostPopularTheme != "spring" {
		t.Errorf("MostPopularTheme = %s, want spring", analysis.MostPopularTheme)
	}

	spring := analysis.Themes[0]
	if spring.Theme != "spring" || spring.VideoCount != 2 {
		t.Fatalf("Themes[0] = %+v, want spring with 2 videos", spring)
	}
	if spring.AvgViews != 1500 {
		t.Errorf("spring AvgViews = %v, want 1500", spring.AvgViews)
	}
	// (80+30)/3000*100 ~ 3.67% engagement over 1500 avg views.
	if spring.Strategy != models.StrategyPrioritize {
		t.Errorf("spring Strategy = %s, want %s", spring.Strategy, models.StrategyPrioritize)
	}
	if spring.BestVideo == nil || spring.BestVideo.VideoID != "s1" {
		t.Errorf("spring BestVideo = %+v, want s1", spring.BestVideo)
	}

	// animals has one sample.
	for _, agg := range analysis.Themes {
		if agg.Theme == "animals" && agg.Strategy != models.StrategyValidate {
			t.Errorf("animals Strategy = %s, want %s", agg.Strategy, models.StrategyValidate)
		}
		if agg.Theme == "food" && agg.Strategy != models.StrategyExperiment {
			t.Errorf("food Strategy = %s, want %s", agg.Strategy, models.StrategyExperiment)
		}
	}

	// food is experimental; bug-kanji was never tried.
	wantExperimental := []string{"food", "bug-kanji"}
	if !reflect.DeepEqual(analysis.ExperimentalThemes, wantExperimental) {
		t.Errorf("ExperimentalThemes = %v, want %v", analysis.ExperimentalThemes, wantExperimental)
	}

	if len(analysis.FocusThemes) != 3 {
		t.Errorf("FocusThemes has %d entries, want 3", len(analysis.FocusThemes))
	}
	if analysis.FocusThemes[0] != "spring" {
		t.Errorf("FocusThemes[0] = %s, want spring", analysis.FocusThemes[0])
	}
}

func TestAggregateByThemeDeterministic(t *testing.T) {
	records := []*models.PerformanceRecord{
		themedRecord("a", "spring", 500, 5, 5),
		themedRecord("b", "food", 500, 5, 5),
		themedRecord("c", "winter", 500, 5, 5),
		themedRecord("d", "animals", 500, 5, 5),
	}
	catalog := []string{"spring", "summer", "food", "winter", "animals"}

	first, err := AggregateByTheme(records, catalog)
	if err != nil {
		t.Fatalf("AggregateByTheme() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := AggregateByTheme(records, catalog)
		if err != nil {
			t.Fatalf("AggregateByTheme() error = %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differed:\nfirst: %+v\nagain: %+v", i, first, again)
		}
	}
}

func TestThemePriorityScoreCaps(t *testing.T) {
	tests := []struct {
		name          string
		avgViews      float64
		avgEngagement float64
		videoCount    int
		want          float64
	}{
		{"All capped", 1e9, 99, 50, 25},
		{"Uncapped", 500, 1.5, 2, 0.5 + 1.5 + 2},
		{"Zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ThemePriorityScore(tt.avgViews, tt.avgEngagement, tt.videoCount); got != tt.want {
				t.Errorf("ThemePriorityScore() = %v, want %v", got, tt.want)
			}
		})
	}
}
