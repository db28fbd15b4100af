package channelanalyst

import (
	"strings"
	"testing"

	"analyst-stack/shared/config"
)

func TestAnalystMetricsGetSummary(t *testing.T) {
	tests := []struct {
		name     string
		metrics  AnalystMetrics
		expected string
	}{
		{
			name: "Both sinks",
			metrics: AnalystMetrics{
				VideosScored:   24,
				StatsRefreshed: 20,
				EmailSent:      true,
				DiscordSent:    true,
			},
			expected: "analyzed 24 videos (20 stats refreshed), report sent via email and Discord",
		},
		{
			name: "Discord only",
			metrics: AnalystMetrics{
				VideosScored:   10,
				StatsRefreshed: 10,
				DiscordSent:    true,
			},
			expected: "analyzed 10 videos (10 stats refreshed), report sent via Discord",
		},
		{
			name: "No sink reached",
			metrics: AnalystMetrics{
				VideosScored: 5,
			},
			expected: "analyzed 5 videos (0 stats refreshed), no report sent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.metrics.GetSummary()
			if result != tt.expected {
				t.Errorf("Expected summary '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestNewChannelAnalystAgent(t *testing.T) {
	cfg := &config.Config{}
	agent := NewChannelAnalystAgent(cfg)

	if agent.config != cfg {
		t.Error("Agent config not set correctly")
	}
	if agent.analyzer == nil {
		t.Error("Analyzer should be constructed eagerly")
	}
	if agent.Name() != "Channel Analyst" {
		t.Errorf("Expected agent name 'Channel Analyst', got '%s'", agent.Name())
	}
}

func TestInitializeSkipsOptionalCollaborators(t *testing.T) {
	// Sheets setup fails fast with a missing credentials file, so this only
	// checks the optional collaborators stay nil when unconfigured.
	cfg := &config.Config{}
	agent := NewChannelAnalystAgent(cfg)

	err := agent.Initialize()
	if err == nil {
		t.Fatal("Initialize() = nil, want error without credentials")
	}
	if !strings.Contains(err.Error(), "Sheets client") {
		t.Errorf("Initialize() error = %v, want Sheets client failure first", err)
	}
	if agent.insights != nil || agent.emailSender != nil || agent.discord != nil {
		t.Error("optional collaborators should stay nil when not configured")
	}
}
