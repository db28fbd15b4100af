package analytics

import (
	"testing"

	"analyst-stack/internal/models"
)

func TestPercentileRank(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		population []float64
		want       float64
	}{
		{"Empty population", 10, nil, 50},
		{"Single element population", 10, []float64{10}, 50},
		{"Middle value", 300, []float64{100, 200, 300, 400, 1000}, 60},
		{"At minimum", 100, []float64{100, 200, 300, 400, 1000}, 0},
		{"Below minimum", 5, []float64{100, 200, 300, 400, 1000}, 0},
		{"At maximum", 1000, []float64{100, 200, 300, 400, 1000}, 100},
		{"Above maximum", 5000, []float64{100, 200, 300, 400, 1000}, 100},
		{"Between values", 250, []float64{100, 200, 300, 400}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentileRank(tt.value, tt.population); got != tt.want {
				t.Errorf("PercentileRank(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestPercentileRankBounds(t *testing.T) {
	// For any population of size >= 2 the extremes pin to exactly 0 and 100.
	populations := [][]float64{
		{1, 2},
		{5, 5, 5, 9},
		{0.1, 0.2, 0.3},
		{1000, 50, 3, 999999},
	}

	for _, pop := range populations {
		min, max := pop[0], pop[0]
		for _, v := range pop {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if got := PercentileRank(min, pop); got != 0 {
			t.Errorf("PercentileRank(min=%v, %v) = %v, want 0", min, pop, got)
		}
		if got := PercentileRank(max, pop); got != 100 {
			t.Errorf("PercentileRank(max=%v, %v) = %v, want 100", max, pop, got)
		}
	}
}

func TestTopNStableTies(t *testing.T) {
	records := []*models.PerformanceRecord{
		{VideoID: "first", ViewCount: 100},
		{VideoID: "second", ViewCount: 100},
		{VideoID: "third", ViewCount: 200},
	}
	views := func(r *models.PerformanceRecord) float64 { return float64(r.ViewCount) }

	top := TopN(records, 3, views)
	if len(top) != 3 {
		t.Fatalf("TopN returned %d entries, want 3", len(top))
	}
	if top[0].VideoID != "third" {
		t.Errorf("top[0] = %s, want third", top[0].VideoID)
	}
	// Tied records keep collection order.
	if top[1].VideoID != "first" || top[2].VideoID != "second" {
		t.Errorf("tie order = %s, %s, want first, second", top[1].VideoID, top[2].VideoID)
	}

	bottom := BottomN(records, 2, views)
	if bottom[0].VideoID != "first" || bottom[1].VideoID != "second" {
		t.Errorf("BottomN order = %s, %s, want first, second", bottom[0].VideoID, bottom[1].VideoID)
	}
}

func TestTopNShortCollection(t *testing.T) {
	records := []*models.PerformanceRecord{{VideoID: "only", ViewCount: 5}}
	views := func(r *models.PerformanceRecord) float64 { return float64(r.ViewCount) }

	if got := TopN(records, 10, views); len(got) != 1 {
		t.Errorf("TopN(n=10) on 1 record returned %d entries", len(got))
	}
}

func TestBuildRankings(t *testing.T) {
	records := []*models.PerformanceRecord{
		{VideoID: "a", ViewCount: 100, LikeCount: 10, CommentCount: 1},
		{VideoID: "b", ViewCount: 1000, LikeCount: 10, CommentCount: 9},
		{VideoID: "c", ViewCount: 0, LikeCount: 0, CommentCount: 4},
	}

	rankings := BuildRankings(records)

	if rankings.ViewsTop[0].VideoID != "b" {
		t.Errorf("ViewsTop[0] = %s, want b", rankings.ViewsTop[0].VideoID)
	}
	// Zero-view videos are excluded from rate rankings but not count ones.
	if len(rankings.EngagementTop) != 2 {
		t.Errorf("EngagementTop has %d entries, want 2", len(rankings.EngagementTop))
	}
	if len(rankings.CommentsTop) != 3 {
		t.Errorf("CommentsTop has %d entries, want 3", len(rankings.CommentsTop))
	}
	// a has 11% engagement, b has 1.9%.
	if rankings.EngagementTop[0].VideoID != "a" {
		t.Errorf("EngagementTop[0] = %s, want a", rankings.EngagementTop[0].VideoID)
	}
	if rankings.ViewsBottom[0].VideoID != "c" {
		t.Errorf("ViewsBottom[0] = %s, want c", rankings.ViewsBottom[0].VideoID)
	}
}
