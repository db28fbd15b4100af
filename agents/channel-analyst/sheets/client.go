package sheets

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"analyst-stack/internal/models"
	"analyst-stack/shared/config"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Column layout of the tracking sheet, zero-based within the read range.
// A date, B url, C video id, D title, E script payload, F executed plan,
// G views, H likes, I comments, J analysis, K plan, L tokens, M cost.
const (
	colDate = iota
	colURL
	colVideoID
	colTitle
	colScript
	colPlan
	colViews
	colLikes
	colComments
)

// firstDataRow is the sheet row of the first record, below the header.
const firstDataRow = 2

type Client struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
}

func NewClient(cfg *config.SheetsConfig) (*Client, error) {
	ctx := context.Background()

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		readRange:     cfg.ReadRange,
	}, nil
}

// FetchRecords reads the tracking sheet and converts each row into a
// performance record. Rows without a video ID are skipped, matching how the
// sheet accumulates planned-but-unpublished rows at the bottom.
func (c *Client) FetchRecords(ctx context.Context) ([]*models.PerformanceRecord, error) {
	response, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, c.readRange).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", c.readRange, err)
	}

	records := parseRows(response.Values)
	log.Printf("Fetched %d records from %d sheet rows", len(records), len(response.Values))
	return records, nil
}

// UpdateStats writes the refreshed view/like/comment counters back to the
// sheet in one batch, one G:I range per record that carries latest stats.
func (c *Client) UpdateStats(ctx context.Context, records []*models.PerformanceRecord) error {
	var data []*sheets.ValueRange
	for _, rec := range records {
		if rec.LatestStats == nil || rec.Row < firstDataRow {
			continue
		}
		data = append(data, &sheets.ValueRange{
			Range: fmt.Sprintf("%s!G%d:I%d", sheetName(c.readRange), rec.Row, rec.Row),
			Values: [][]interface{}{{
				rec.LatestStats.Views,
				rec.LatestStats.Likes,
				rec.LatestStats.Comments,
			}},
		})
	}
	if len(data) == 0 {
		return nil
	}

	request := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := c.service.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, request).
		Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to write stats back to sheet: %w", err)
	}

	log.Printf("Wrote refreshed counters for %d rows back to the sheet", len(data))
	return nil
}

// parseRows converts raw sheet values into records, skipping rows without a
// video ID.
func parseRows(rows [][]interface{}) []*models.PerformanceRecord {
	var records []*models.PerformanceRecord
	for i, row := range rows {
		videoID := cellString(row, colVideoID)
		if videoID == "" {
			continue
		}

		records = append(records, &models.PerformanceRecord{
			Row:          i + firstDataRow,
			VideoID:      videoID,
			Title:        cellString(row, colTitle),
			UploadDate:   parseDate(cellString(row, colDate)),
			Script:       cellString(row, colScript),
			ViewCount:    cellInt(row, colViews),
			LikeCount:    cellInt(row, colLikes),
			CommentCount: cellInt(row, colComments),
		})
	}
	return records
}

func cellString(row []interface{}, col int) string {
	if col >= len(row) {
		return ""
	}
	s, _ := row[col].(string)
	return strings.TrimSpace(s)
}

// cellInt parses a counter cell. The sheet formats big numbers with comma
// separators, so those are stripped first. Unparseable cells count as 0.
func cellInt(row []interface{}, col int) int64 {
	raw := cellString(row, col)
	if raw == "" {
		return 0
	}
	raw = strings.ReplaceAll(raw, ",", "")
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

var dateLayouts = []string{
	"2006/01/02 15:04",
	"2006/01/02",
}

func parseDate(raw string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

// sheetName extracts the tab name from an A1 range like "videos!A2:M".
func sheetName(readRange string) string {
	if idx := strings.Index(readRange, "!"); idx != -1 {
		return readRange[:idx]
	}
	return readRange
}
