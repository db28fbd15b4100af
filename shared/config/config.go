package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Sheets     SheetsConfig     `yaml:"sheets"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Channel    ChannelConfig    `yaml:"channel"`
	AI         AIConfig         `yaml:"ai"`
	Email      EmailConfig      `yaml:"email"`
	Discord    DiscordConfig    `yaml:"discord"`
	Storage    StorageConfig    `yaml:"storage"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Schedule   string           `yaml:"schedule"`
}

type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"SHEETS_SPREADSHEET_ID"`
	CredentialsFile string `yaml:"credentials_file"`
	ReadRange       string `yaml:"read_range"`
	WriteBack       bool   `yaml:"write_back"`
}

type YouTubeConfig struct {
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type ChannelConfig struct {
	// Subscribers pins the subscriber count used for growth-stage targets.
	// Zero means fetch the live count from the YouTube API each run.
	Subscribers int64 `yaml:"subscribers"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
	Enabled      bool   `yaml:"enabled"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

type DiscordConfig struct {
	WebhookURL string `yaml:"webhook_url" env:"DISCORD_WEBHOOK_URL"`
}

type StorageConfig struct {
	DataDir       string `yaml:"data_dir"`
	RetentionDays int    `yaml:"retention_days"`
}

type MonitoringConfig struct {
	HealthPort int `yaml:"health_port"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyEnvFallbacks()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyEnvFallbacks() {
	if c.Sheets.SpreadsheetID == "" {
		c.Sheets.SpreadsheetID = os.Getenv("SHEETS_SPREADSHEET_ID")
	}
	if c.YouTube.ClientID == "" {
		c.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if c.YouTube.ClientSecret == "" {
		c.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
	if c.Discord.WebhookURL == "" {
		c.Discord.WebhookURL = os.Getenv("DISCORD_WEBHOOK_URL")
	}
}

func (c *Config) applyDefaults() {
	if c.Sheets.CredentialsFile == "" {
		c.Sheets.CredentialsFile = "service_account.json"
	}
	if c.Sheets.ReadRange == "" {
		c.Sheets.ReadRange = "videos!A2:M"
	}
	if c.YouTube.TokenFile == "" {
		c.YouTube.TokenFile = "youtube_token.json"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Storage.DataDir == "" {
		c.Storage.DataDir = "data"
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = 90
	}
	if c.Monitoring.HealthPort == 0 {
		c.Monitoring.HealthPort = 8080
	}
	if c.Schedule == "" {
		c.Schedule = "0 0 21 * * *" // Daily at 9 PM
	}
}

func (c *Config) validate() error {
	if c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("Sheets spreadsheet ID is required (set SHEETS_SPREADSHEET_ID or sheets.spreadsheet_id)")
	}
	if c.YouTube.ClientID == "" {
		return fmt.Errorf("YouTube client ID is required (set GOOGLE_CLIENT_ID or youtube.client_id)")
	}
	if c.YouTube.ClientSecret == "" {
		return fmt.Errorf("YouTube client secret is required (set GOOGLE_CLIENT_SECRET or youtube.client_secret)")
	}
	if c.AI.Enabled && c.AI.GeminiAPIKey == "" {
		return fmt.Errorf("Gemini API key is required when ai.enabled is set (set GEMINI_API_KEY or ai.gemini_api_key)")
	}
	if c.Email.Username != "" && c.Email.Password == "" {
		return fmt.Errorf("Email password is required when email.username is set (set EMAIL_PASSWORD or email.password)")
	}
	if c.Email.Username == "" && c.Discord.WebhookURL == "" {
		return fmt.Errorf("At least one report sink is required (email.username or discord.webhook_url)")
	}
	return nil
}
