package config

import (
	"strings"
	"testing"
)

const minimalYAML = `
sheets:
  spreadsheet_id: sheet-123
youtube:
  client_id: client-id
  client_secret: client-secret
discord:
  webhook_url: https://discord.com/api/webhooks/1/x
`

func TestParseAppliesDefaults(t *testing.T) {
	cfg, err := parse([]byte(minimalYAML))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if cfg.Sheets.ReadRange != "videos!A2:M" {
		t.Errorf("ReadRange = %s, want default videos!A2:M", cfg.Sheets.ReadRange)
	}
	if cfg.YouTube.TokenFile != "youtube_token.json" {
		t.Errorf("TokenFile = %s, want default youtube_token.json", cfg.YouTube.TokenFile)
	}
	if cfg.AI.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %s, want default gemini-2.5-flash", cfg.AI.Model)
	}
	if cfg.Storage.RetentionDays != 90 {
		t.Errorf("RetentionDays = %d, want 90", cfg.Storage.RetentionDays)
	}
	if cfg.Monitoring.HealthPort != 8080 {
		t.Errorf("HealthPort = %d, want 8080", cfg.Monitoring.HealthPort)
	}
	if cfg.Schedule == "" {
		t.Error("Schedule default missing")
	}
}

func TestParseEnvFallback(t *testing.T) {
	t.Setenv("SHEETS_SPREADSHEET_ID", "env-sheet")
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg, err := parse([]byte(`
youtube:
  client_id: id
  client_secret: secret
discord:
  webhook_url: https://discord.com/api/webhooks/1/x
`))
	if err != nil {
		t.Fatalf("parse() error = %v", err)
	}

	if cfg.Sheets.SpreadsheetID != "env-sheet" {
		t.Errorf("SpreadsheetID = %s, want env fallback env-sheet", cfg.Sheets.SpreadsheetID)
	}
	if cfg.AI.GeminiAPIKey != "env-key" {
		t.Errorf("GeminiAPIKey = %s, want env fallback env-key", cfg.AI.GeminiAPIKey)
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "Missing spreadsheet",
			mutate:  func(c *Config) { c.Sheets.SpreadsheetID = "" },
			wantErr: "spreadsheet ID",
		},
		{
			name:    "Missing client secret",
			mutate:  func(c *Config) { c.YouTube.ClientSecret = "" },
			wantErr: "client secret",
		},
		{
			name: "AI enabled without key",
			mutate: func(c *Config) {
				c.AI.Enabled = true
				c.AI.GeminiAPIKey = ""
			},
			wantErr: "Gemini API key",
		},
		{
			name: "Email without password",
			mutate: func(c *Config) {
				c.Email.Username = "bot@example.com"
				c.Email.Password = ""
			},
			wantErr: "Email password",
		},
		{
			name:    "No sink at all",
			mutate:  func(c *Config) { c.Discord.WebhookURL = "" },
			wantErr: "report sink",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parse([]byte(minimalYAML))
			if err != nil {
				t.Fatalf("parse() error = %v", err)
			}
			tt.mutate(cfg)

			err = cfg.validate()
			if err == nil {
				t.Fatal("validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}
