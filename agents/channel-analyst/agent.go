package channelanalyst

import (
	"context"
	"fmt"
	"log"
	"time"

	"analyst-stack/agents/channel-analyst/analytics"
	"analyst-stack/agents/channel-analyst/sheets"
	"analyst-stack/agents/channel-analyst/youtube"
	"analyst-stack/shared/ai"
	"analyst-stack/shared/config"
	"analyst-stack/shared/email"
	"analyst-stack/shared/notify"
	"analyst-stack/shared/scheduler"
	"analyst-stack/shared/storage"
)

// AnalystMetrics represents the metrics collected during an analysis run
type AnalystMetrics struct {
	RecordsFetched   int    `json:"records_fetched"`
	StatsRefreshed   int    `json:"stats_refreshed"`
	VideosScored     int    `json:"videos_scored"`
	InsightGenerated bool   `json:"insight_generated"`
	EmailSent        bool   `json:"email_sent"`
	DiscordSent      bool   `json:"discord_sent"`
	ReportPath       string `json:"report_path"`
}

// GetSummary implements the scheduler.Metrics interface
func (m AnalystMetrics) GetSummary() string {
	sinks := "no report sent"
	switch {
	case m.EmailSent && m.DiscordSent:
		sinks = "report sent via email and Discord"
	case m.EmailSent:
		sinks = "report sent via email"
	case m.DiscordSent:
		sinks = "report sent via Discord"
	}
	return fmt.Sprintf("analyzed %d videos (%d stats refreshed), %s",
		m.VideosScored, m.StatsRefreshed, sinks)
}

// ChannelAnalystAgent implements the scheduler.Agent interface
type ChannelAnalystAgent struct {
	config        *config.Config
	sheetsClient  *sheets.Client
	youtubeClient *youtube.Client
	analyzer      *analytics.Analyzer
	insights      *ai.InsightGenerator
	emailSender   *email.Sender
	discord       *notify.Discord
	archive       *storage.ReportArchive
}

func NewChannelAnalystAgent(cfg *config.Config) *ChannelAnalystAgent {
	return &ChannelAnalystAgent{
		config:   cfg,
		analyzer: analytics.NewAnalyzer(analytics.DefaultScoringConfig()),
	}
}

func (a *ChannelAnalystAgent) Name() string {
	return "Channel Analyst"
}

func (a *ChannelAnalystAgent) Initialize() error {
	log.Printf("Initializing %s...", a.Name())

	if a.sheetsClient == nil {
		client, err := sheets.NewClient(&a.config.Sheets)
		if err != nil {
			return fmt.Errorf("failed to create Sheets client: %w", err)
		}
		a.sheetsClient = client
		log.Println("Sheets client initialized")
	}

	if a.youtubeClient == nil {
		client, err := youtube.NewClient(&a.config.YouTube)
		if err != nil {
			return fmt.Errorf("failed to create YouTube client: %w", err)
		}
		a.youtubeClient = client
		log.Println("YouTube client initialized")
	}

	if a.insights == nil && a.config.AI.Enabled {
		insights, err := ai.NewInsightGenerator(a.config)
		if err != nil {
			return fmt.Errorf("failed to create insight generator: %w", err)
		}
		a.insights = insights
		log.Println("Insight generator initialized")
	}

	if a.emailSender == nil && a.config.Email.Username != "" {
		a.emailSender = email.NewSender(&a.config.Email)
		log.Println("Email sender initialized")
	}

	if a.discord == nil && a.config.Discord.WebhookURL != "" {
		a.discord = notify.NewDiscord(a.config.Discord.WebhookURL)
		log.Println("Discord notifier initialized")
	}

	if a.archive == nil {
		retention := time.Duration(a.config.Storage.RetentionDays) * 24 * time.Hour
		archive, err := storage.NewReportArchive(a.config.Storage.DataDir, retention)
		if err != nil {
			return fmt.Errorf("failed to create report archive: %w", err)
		}
		a.archive = archive
		log.Println("Report archive initialized")
	}

	return nil
}

func (a *ChannelAnalystAgent) RunOnce(ctx context.Context, events *scheduler.AgentEvents) error {
	startTime := time.Now()
	metrics := AnalystMetrics{}

	partial := func(err error) {
		if events != nil && events.OnPartialFailure != nil {
			events.OnPartialFailure(err, time.Since(startTime))
		}
	}

	if err := a.youtubeClient.RefreshToken(); err != nil {
		log.Printf("Warning: Token refresh failed, continuing with current token: %v", err)
	}

	log.Println("Fetching records from the tracking sheet...")
	records, err := a.sheetsClient.FetchRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch records: %w", err)
	}
	metrics.RecordsFetched = len(records)

	// Attach the current API counters. The report still works from the
	// sheet's stored counters when this fails, so it's a partial failure.
	var videoIDs []string
	for _, rec := range records {
		videoIDs = append(videoIDs, rec.VideoID)
	}
	stats, err := a.youtubeClient.FetchLatestStats(ctx, videoIDs)
	if err != nil {
		partial(fmt.Errorf("failed to fetch latest stats: %w", err))
		log.Printf("Warning: Failed to fetch latest stats: %v", err)
	} else {
		for _, rec := range records {
			if s, ok := stats[rec.VideoID]; ok {
				rec.LatestStats = s
			}
		}
		metrics.StatsRefreshed = len(stats)
	}

	subscribers := a.config.Channel.Subscribers
	if subscribers == 0 {
		subscribers, err = a.youtubeClient.ChannelSubscribers(ctx)
		if err != nil {
			partial(fmt.Errorf("failed to fetch subscriber count: %w", err))
			log.Printf("Warning: Failed to fetch subscriber count, using smallest growth stage: %v", err)
			subscribers = 0
		}
	}

	log.Printf("Analyzing %d records (subscribers: %d)...", len(records), subscribers)
	report, err := a.analyzer.Report(records, subscribers)
	if err != nil {
		return fmt.Errorf("failed to build analysis report: %w", err)
	}
	metrics.VideosScored = len(report.Videos)

	if a.insights != nil {
		insight, err := a.insights.GenerateInsight(ctx, report)
		if err != nil {
			partial(fmt.Errorf("failed to generate insight: %w", err))
			log.Printf("Warning: Insight generation failed: %v", err)
		} else {
			report.Insight = insight
			metrics.InsightGenerated = true
			log.Printf("Insight generated (%d tokens)", insight.Tokens)
		}
	}

	path, err := a.archive.Save(report)
	if err != nil {
		partial(fmt.Errorf("failed to archive report: %w", err))
		log.Printf("Warning: Failed to archive report: %v", err)
	} else {
		metrics.ReportPath = path
		log.Printf("Report archived to %s", path)
	}

	if a.config.Sheets.WriteBack {
		if err := a.sheetsClient.UpdateStats(ctx, records); err != nil {
			partial(fmt.Errorf("failed to write stats back: %w", err))
			log.Printf("Warning: Failed to write stats back to the sheet: %v", err)
		}
	}

	if a.emailSender != nil {
		if err := a.emailSender.SendReport(report); err != nil {
			partial(fmt.Errorf("failed to send email report: %w", err))
			log.Printf("Warning: Failed to send email report: %v", err)
		} else {
			metrics.EmailSent = true
			log.Println("Email report sent")
		}
	}

	if a.discord != nil {
		if err := a.discord.SendReport(ctx, report); err != nil {
			partial(fmt.Errorf("failed to send Discord report: %w", err))
			log.Printf("Warning: Failed to send Discord report: %v", err)
		} else {
			metrics.DiscordSent = true
			log.Println("Discord report sent")
		}
	}

	duration := time.Since(startTime)
	if events != nil && events.OnSuccess != nil {
		events.OnSuccess(metrics, duration)
	}

	log.Printf("Run complete: %s (took %v)", metrics.GetSummary(), duration)
	return nil
}

var _ scheduler.Agent = (*ChannelAnalystAgent)(nil)
var _ scheduler.Metrics = AnalystMetrics{}
