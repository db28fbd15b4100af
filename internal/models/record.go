package models

import "time"

// VideoStats is one observation of a video's public counters.
type VideoStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// PerformanceRecord is one video's performance and content data as read from
// the tracking sheet. Counters are the values recorded at the previous run;
// LatestStats, when present, is a fresh observation fetched just before the
// report and is only used for growth analysis. The analytics core never
// mutates a record - derived values go into report structures.
type PerformanceRecord struct {
	Row          int         `json:"row"` // sheet row, used by the write-back collaborator
	VideoID      string      `json:"video_id"`
	Title        string      `json:"title"`
	UploadDate   time.Time   `json:"upload_date"`
	Script       string      `json:"script"` // raw content payload JSON; may be empty or malformed
	ViewCount    int64       `json:"view_count"`
	LikeCount    int64       `json:"like_count"`
	CommentCount int64       `json:"comment_count"`
	LatestStats  *VideoStats `json:"latest_stats,omitempty"`
}

// ContentPayload is the structured script document attached to a record.
// Parsing is best effort; a malformed payload degrades to title inference.
type ContentPayload struct {
	Theme string     `json:"theme"`
	Items []QuizItem `json:"quiz_data"`
}

// QuizItem is one question of a quiz video's script.
type QuizItem struct {
	Question    string `json:"question"`
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}
