package models

import "time"

// MetricSummary holds distributional statistics over one numeric sample.
// Every field is 0 for an empty sample; StdDev is 0 below two elements.
type MetricSummary struct {
	Avg    float64 `json:"avg"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// Quartiles is the three-point quartile summary of a sample.
type Quartiles struct {
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
}

// PerformanceMetrics is the per-metric statistical pass over the collection.
type PerformanceMetrics struct {
	Views          MetricSummary `json:"views"`
	Likes          MetricSummary `json:"likes"`
	Comments       MetricSummary `json:"comments"`
	EngagementRate MetricSummary `json:"engagement_rate"`
	LikeRate       MetricSummary `json:"like_rate"`
}

// RankedVideo is one row of a top-N or bottom-N ordering.
type RankedVideo struct {
	VideoID string  `json:"video_id"`
	Title   string  `json:"title"`
	Value   float64 `json:"value"`
}

// Rankings holds the per-metric orderings of the collection.
type Rankings struct {
	ViewsTop         []RankedVideo `json:"views_top"`
	EngagementTop    []RankedVideo `json:"engagement_top"`
	LikeRateTop      []RankedVideo `json:"like_rate_top"`
	CommentsTop      []RankedVideo `json:"comments_top"`
	ViewsBottom      []RankedVideo `json:"views_bottom"`
	EngagementBottom []RankedVideo `json:"engagement_bottom"`
}

// ThemeStrategy is the action bucket assigned to an observed theme.
type ThemeStrategy string

const (
	StrategyPrioritize ThemeStrategy = "prioritize and expand"
	StrategyOptimize   ThemeStrategy = "optimize"
	StrategyExperiment ThemeStrategy = "revise/experiment"
	StrategyValidate   ThemeStrategy = "validate with one more"
	StrategyNew        ThemeStrategy = "new - not yet tried"
)

// BestVideoRef points at the strongest video within a theme.
type BestVideoRef struct {
	VideoID string `json:"video_id"`
	Title   string `json:"title"`
	Views   int64  `json:"views"`
}

// ThemeAggregate is the per-theme rollup for one report run.
type ThemeAggregate struct {
	Theme             string        `json:"theme"`
	VideoCount        int           `json:"video_count"`
	AvgViews          float64       `json:"avg_views"`
	AvgLikes          float64       `json:"avg_likes"`
	AvgComments       float64       `json:"avg_comments"`
	AvgEngagementRate float64       `json:"avg_engagement_rate"`
	TotalViews        int64         `json:"total_views"`
	BestVideo         *BestVideoRef `json:"best_video,omitempty"`
	PriorityScore     float64       `json:"priority_score"`
	Strategy          ThemeStrategy `json:"strategy"`
}

// ThemeAnalysis is the theme-level section of the report. Themes are sorted
// by average views descending; FocusThemes by priority score.
type ThemeAnalysis struct {
	Themes             []ThemeAggregate `json:"themes"`
	TotalThemes        int              `json:"total_themes"`
	MostPopularTheme   string           `json:"most_popular_theme"`
	DiversityScore     float64          `json:"diversity_score"`
	FocusThemes        []string         `json:"focus_themes"`
	ExperimentalThemes []string         `json:"experimental_themes"`
}

// Distribution segments the collection by view-count quartile.
type Distribution struct {
	Quartiles      Quartiles `json:"quartiles"`
	HighPerformers int       `json:"high_performers"`
	AboveAverage   int       `json:"above_average"`
	BelowAverage   int       `json:"below_average"`
	LowPerformers  int       `json:"low_performers"`
}

// TrendStatus classifies the recent-vs-older cohort comparison.
type TrendStatus string

const (
	TrendRapidGrowth    TrendStatus = "rapid growth"
	TrendGrowing        TrendStatus = "growing"
	TrendStable         TrendStatus = "stable"
	TrendDeclining      TrendStatus = "declining"
	TrendNeedsAttention TrendStatus = "needs attention"
)

// TrendCohortResult compares the newest slice of uploads against the rest.
type TrendCohortResult struct {
	RecentCount          int         `json:"recent_count"`
	OlderCount           int         `json:"older_count"`
	RecentAvgViews       float64     `json:"recent_avg_views"`
	OlderAvgViews        float64     `json:"older_avg_views"`
	RecentAvgEngagement  float64     `json:"recent_avg_engagement"`
	OlderAvgEngagement   float64     `json:"older_avg_engagement"`
	ViewsTrendPct        float64     `json:"views_trend_pct"`
	EngagementTrendDelta float64     `json:"engagement_trend_delta"`
	Status               TrendStatus `json:"status"`
}

// GrowthEntry is one video's view delta between the recorded counters and the
// latest observation. Only videos with a positive delta produce entries.
type GrowthEntry struct {
	VideoID              string  `json:"video_id"`
	Title                string  `json:"title"`
	ViewDelta            int64   `json:"view_delta"`
	GrowthRatePct        float64 `json:"growth_rate_pct"`
	CurrentViews         int64   `json:"current_views"`
	PreviousViews        int64   `json:"previous_views"`
	AvgExplanationLength float64 `json:"avg_explanation_length"`
}

// ThemeGrowth aggregates growth entries of one theme.
type ThemeGrowth struct {
	Theme                string  `json:"theme"`
	VideoCount           int     `json:"video_count"`
	TotalGrowth          int64   `json:"total_growth"`
	AvgGrowth            float64 `json:"avg_growth"`
	AvgExplanationLength float64 `json:"avg_explanation_length"`
	BestTitle            string  `json:"best_title"`
}

// ExplanationBucket groups growing videos by explanation length.
type ExplanationBucket struct {
	Count         int     `json:"count"`
	AvgGrowthRate float64 `json:"avg_growth_rate"`
	LengthRange   string  `json:"length_range"`
}

// ExplanationAnalysis correlates explanation length with growth rate. The
// sample is the positive-growth subset only, so the correlation carries
// survivorship bias; downstream consumers should treat it as a weak signal.
type ExplanationAnalysis struct {
	Short          ExplanationBucket `json:"short"`
	Medium         ExplanationBucket `json:"medium"`
	Long           ExplanationBucket `json:"long"`
	Recommendation string            `json:"recommendation"`
}

// GrowthAnalysis is the per-record growth section of the report.
type GrowthAnalysis struct {
	GrowingCount      int                  `json:"growing_count"`
	TopGrowing        []GrowthEntry        `json:"top_growing"`
	ThemeGrowth       []ThemeGrowth        `json:"theme_growth"`
	MostTrendingTheme string               `json:"most_trending_theme"`
	TotalViewGrowth   int64                `json:"total_view_growth"`
	AvgGrowthRate     float64              `json:"avg_growth_rate"`
	Explanations      *ExplanationAnalysis `json:"explanations,omitempty"`
}

// PerformanceRank is the discrete letter grade assigned to a unified score.
type PerformanceRank string

const (
	RankS PerformanceRank = "S"
	RankA PerformanceRank = "A"
	RankB PerformanceRank = "B"
	RankC PerformanceRank = "C"
	RankD PerformanceRank = "D"
)

// ScoreBreakdown is the composite quality score of one record, computed
// relative to the population passed into the scoring call.
type ScoreBreakdown struct {
	UnifiedScore         float64         `json:"unified_score"`
	Rank                 PerformanceRank `json:"rank"`
	GrowthStage          string          `json:"growth_stage"`
	ViewsScore           float64         `json:"views_score"`
	CommentsCountScore   float64         `json:"comments_count_score"`
	CommentsQualityScore float64         `json:"comments_quality_score"`
	LikesScore           float64         `json:"likes_score"`
	ThemeBonus           float64         `json:"theme_bonus"`
	Recommendations      []string        `json:"recommendations"`
}

// ScoredVideo pairs a record's identity with its score.
type ScoredVideo struct {
	VideoID string         `json:"video_id"`
	Title   string         `json:"title"`
	Score   ScoreBreakdown `json:"score"`
}

// ChannelScoreReport aggregates unified scores across the channel.
type ChannelScoreReport struct {
	TotalScored     int                     `json:"total_scored"`
	AverageScore    float64                 `json:"average_score"`
	MedianScore     float64                 `json:"median_score"`
	MaxScore        float64                 `json:"max_score"`
	MinScore        float64                 `json:"min_score"`
	ScoreStdDev     float64                 `json:"score_std_dev"`
	RankCounts      map[PerformanceRank]int `json:"rank_counts"`
	TopPerformers   []ScoredVideo           `json:"top_performers"`
	WorstPerformers []ScoredVideo           `json:"worst_performers"`
	Recommendations []string                `json:"recommendations"`
}

// ChannelSummary is the headline totals block of the report.
type ChannelSummary struct {
	TotalVideos           int     `json:"total_videos"`
	TotalViews            int64   `json:"total_views"`
	TotalLikes            int64   `json:"total_likes"`
	TotalComments         int64   `json:"total_comments"`
	AvgViewsPerVideo      float64 `json:"avg_views_per_video"`
	OverallEngagementRate float64 `json:"overall_engagement_rate"`
	ChannelAgeDays        int     `json:"channel_age_days"`
	UploadsPerWeek        float64 `json:"uploads_per_week"`
}

// AnalysisReport is the composite output of one report run. Sections whose
// sub-analysis had insufficient data are nil rather than zero-valued.
type AnalysisReport struct {
	GeneratedAt  time.Time           `json:"generated_at"`
	VideoCount   int                 `json:"video_count"`
	Summary      ChannelSummary      `json:"summary"`
	Metrics      *PerformanceMetrics `json:"metrics,omitempty"`
	Rankings     *Rankings           `json:"rankings,omitempty"`
	Themes       *ThemeAnalysis      `json:"themes,omitempty"`
	Distribution *Distribution       `json:"distribution,omitempty"`
	CohortTrend  *TrendCohortResult  `json:"cohort_trend,omitempty"`
	Growth       *GrowthAnalysis     `json:"growth,omitempty"`
	Channel      *ChannelScoreReport `json:"channel,omitempty"`
	Videos       []ScoredVideo       `json:"videos"`
	Suggestions  []string            `json:"suggestions"`
	Insight      *ChannelInsight     `json:"insight,omitempty"`
}

// ChannelInsight is the optional AI commentary generated from a report.
type ChannelInsight struct {
	Analysis string `json:"analysis"`
	Plan     string `json:"plan"`
	Tokens   int    `json:"tokens"`
}
