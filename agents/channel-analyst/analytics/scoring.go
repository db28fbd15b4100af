package analytics

import (
	"math"

	"analyst-stack/internal/models"
)

// ScoreWeights is the blend of sub-scores in the unified score. The four
// weights are expected to sum to 1.
type ScoreWeights struct {
	Views           float64
	CommentsCount   float64
	CommentsQuality float64
	Likes           float64
}

// GrowthStage is one tier of absolute per-video targets, keyed by a
// subscriber-count bracket.
type GrowthStage struct {
	Name               string
	MinSubscribers     int64
	MaxSubscribers     int64
	TargetViews        float64
	TargetComments     float64
	TargetLikes        float64
	ExcellentThreshold float64
	GoodThreshold      float64
}

// ScoringConfig carries every table the unified score depends on: weights,
// growth-stage targets, and the theme-difficulty bonus. It is plain
// immutable data passed into each call, which also makes the engine easy to
// exercise with alternate tables in tests.
type ScoringConfig struct {
	Weights      ScoreWeights
	GrowthStages []GrowthStage
	ThemeBonus   map[string]float64
	// ThemeCatalog lists every theme the channel plans for, in a fixed
	// order. Aggregation uses it to surface themes never yet tried.
	ThemeCatalog []string
}

// DefaultScoringConfig returns the production tables. Views dominate the
// weighting; the comment-quality term is a coarse placeholder until real
// comment-content analysis exists.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights: ScoreWeights{
			Views:           0.60,
			CommentsCount:   0.25,
			CommentsQuality: 0.10,
			Likes:           0.05,
		},
		GrowthStages: []GrowthStage{
			{
				Name:               "micro",
				MinSubscribers:     0,
				MaxSubscribers:     100,
				TargetViews:        50,
				TargetComments:     2,
				TargetLikes:        3,
				ExcellentThreshold: 80,
				GoodThreshold:      60,
			},
			{
				Name:               "small",
				MinSubscribers:     100,
				MaxSubscribers:     1000,
				TargetViews:        200,
				TargetComments:     8,
				TargetLikes:        15,
				ExcellentThreshold: 85,
				GoodThreshold:      65,
			},
		},
		ThemeBonus: map[string]float64{
			"spring":     1.0,
			"summer":     1.0,
			"autumn":     1.0,
			"winter":     1.0,
			"food":       1.1,
			"animals":    1.1,
			"rare-kanji": 1.3,
			"fish-kanji": 1.2,
			"bug-kanji":  1.4,
			ThemeUnknown: 1.0,
		},
		ThemeCatalog: []string{
			"spring", "summer", "autumn", "winter",
			"food", "animals", "rare-kanji", "fish-kanji", "bug-kanji",
		},
	}
}

// StageFor selects the growth stage whose subscriber bracket contains the
// given count, falling back to the first (smallest) stage.
func (c ScoringConfig) StageFor(subscribers int64) GrowthStage {
	for _, stage := range c.GrowthStages {
		if subscribers >= stage.MinSubscribers && subscribers <= stage.MaxSubscribers {
			return stage
		}
	}
	return c.GrowthStages[0]
}

// ThemeBonusFor returns the difficulty multiplier for a record's extracted
// theme, 1.0 when the theme has no table entry.
func (c ScoringConfig) ThemeBonusFor(rec *models.PerformanceRecord) float64 {
	if bonus, ok := c.ThemeBonus[ExtractTheme(rec).Label]; ok {
		return bonus
	}
	return 1.0
}

// Score computes the unified 0-110 composite score of one record against the
// full population. Each metric sub-score blends the record's percentile rank
// within the population with its absolute target attainment 50/50; a
// population too small for relative signal degrades to a neutral 50 instead
// of failing. The function is pure and never returns an error.
func (c ScoringConfig) Score(rec *models.PerformanceRecord, population []*models.PerformanceRecord, subscribers int64) models.ScoreBreakdown {
	stage := c.StageFor(subscribers)

	var viewPop, commentPop, likePop []float64
	for _, p := range population {
		if p.ViewCount > 0 {
			viewPop = append(viewPop, float64(p.ViewCount))
		}
		commentPop = append(commentPop, float64(p.CommentCount))
		likePop = append(likePop, float64(p.LikeCount))
	}

	viewsScore := blend(
		PercentileRank(float64(rec.ViewCount), viewPop),
		targetAttainment(float64(rec.ViewCount), stage.TargetViews),
	)
	commentsCountScore := blend(
		PercentileRank(float64(rec.CommentCount), commentPop),
		targetAttainment(float64(rec.CommentCount), stage.TargetComments),
	)
	likesScore := blend(
		PercentileRank(float64(rec.LikeCount), likePop),
		targetAttainment(float64(rec.LikeCount), stage.TargetLikes),
	)
	qualityScore := CommentsQualityScore(rec.CommentCount)

	weighted := viewsScore*c.Weights.Views +
		commentsCountScore*c.Weights.CommentsCount +
		qualityScore*c.Weights.CommentsQuality +
		likesScore*c.Weights.Likes

	bonus := c.ThemeBonusFor(rec)
	final := math.Min(110, weighted*bonus)

	breakdown := models.ScoreBreakdown{
		UnifiedScore:         round1(final),
		Rank:                 rankFor(final, stage),
		GrowthStage:          stage.Name,
		ViewsScore:           round1(viewsScore),
		CommentsCountScore:   round1(commentsCountScore),
		CommentsQualityScore: round1(qualityScore),
		LikesScore:           round1(likesScore),
		ThemeBonus:           bonus,
	}
	breakdown.Recommendations = VideoRecommendations(breakdown, AvgExplanationLength(rec))
	return breakdown
}

// CommentsQualityScore is a step function of raw comment count, standing in
// for real comment-content analysis.
func CommentsQualityScore(comments int64) float64 {
	switch {
	case comments == 0:
		return 0
	case comments <= 2:
		return 50
	case comments <= 5:
		return 70
	default:
		return 90
	}
}

// blend combines a relative and an absolute sub-score 50/50.
func blend(relative, absolute float64) float64 {
	return relative*0.5 + absolute*0.5
}

// targetAttainment is the metric's share of its stage target, capped at 100.
func targetAttainment(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, value/target*100)
}

func rankFor(score float64, stage GrowthStage) models.PerformanceRank {
	switch {
	case score >= stage.ExcellentThreshold:
		return models.RankS
	case score >= stage.GoodThreshold:
		return models.RankA
	case score >= 40:
		return models.RankB
	case score >= 20:
		return models.RankC
	default:
		return models.RankD
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
