package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"analyst-stack/internal/models"
)

// Discord posts report summaries to a webhook URL.
type Discord struct {
	webhookURL string
	client     *http.Client
}

func NewDiscord(webhookURL string) *Discord {
	return &Discord{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 15 * time.Second},
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Discord caps message content at 2000 characters.
const maxMessageLength = 2000

// SendReport renders the report into a Discord message and posts it.
func (d *Discord) SendReport(ctx context.Context, report *models.AnalysisReport) error {
	if report == nil {
		return fmt.Errorf("report cannot be nil")
	}
	return d.send(ctx, FormatReport(report))
}

func (d *Discord) send(ctx context.Context, content string) error {
	if len(content) > maxMessageLength {
		content = truncateMessage(content, maxMessageLength)
	}

	body, err := json.Marshal(webhookPayload{Content: content})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post to Discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Discord webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// truncateMessage cuts content to at most limit bytes ending in "...",
// backing up to a rune boundary so a multi-byte emoji is never split.
func truncateMessage(content string, limit int) string {
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}

var rankEmoji = map[models.PerformanceRank]string{
	models.RankS: "🏆",
	models.RankA: "🥇",
	models.RankB: "🥈",
	models.RankC: "🥉",
	models.RankD: "📉",
}

var trendEmoji = map[models.TrendStatus]string{
	models.TrendRapidGrowth:    "🚀",
	models.TrendGrowing:        "📈",
	models.TrendStable:         "➡️",
	models.TrendDeclining:      "📉",
	models.TrendNeedsAttention: "🚨",
}

// FormatReport renders the report as a Discord-flavored markdown message.
func FormatReport(report *models.AnalysisReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**📊 Channel Performance Report** (%s)\n", report.GeneratedAt.Format("Jan 2"))
	fmt.Fprintf(&b, "Videos: %d | Views: %d | Engagement: %.1f%%\n",
		report.Summary.TotalVideos, report.Summary.TotalViews, report.Summary.OverallEngagementRate)

	if report.CohortTrend != nil {
		fmt.Fprintf(&b, "%s Trend: **%s** (views %+.1f%%)\n",
			trendEmoji[report.CohortTrend.Status], report.CohortTrend.Status, report.CohortTrend.ViewsTrendPct)
	}

	if report.Channel != nil {
		fmt.Fprintf(&b, "\nAverage score: **%.1f** (median %.1f)\n",
			report.Channel.AverageScore, report.Channel.MedianScore)
		if len(report.Channel.TopPerformers) > 0 {
			b.WriteString("Top videos:\n")
			for _, v := range report.Channel.TopPerformers {
				fmt.Fprintf(&b, "%s `%s` %.1f - %s\n",
					rankEmoji[v.Score.Rank], v.Score.Rank, v.Score.UnifiedScore, v.Title)
			}
		}
	}

	if report.Themes != nil && len(report.Themes.FocusThemes) > 0 {
		fmt.Fprintf(&b, "\nFocus themes: %s\n", strings.Join(report.Themes.FocusThemes, ", "))
	}

	if len(report.Suggestions) > 0 {
		b.WriteString("\n**Suggestions**\n")
		for _, s := range report.Suggestions {
			fmt.Fprintf(&b, "• %s\n", s)
		}
	}

	return b.String()
}
