package api

import (
	"encoding/json"
	"time"
)

// User is the authenticated user identity returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Admin is the authenticated operator identity returned by /admin/me.
type Admin struct {
	Username string `json:"username"`
}

// Topic is a trending subject that seeds news retrieval. Immutable,
// backend-supplied.
type Topic struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
}

// NewsItem is a single candidate text unit for sentiment analysis.
type NewsItem struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

// Sentiment holds the three percentage scores as computed by the backend.
// The client renders them as-is and never renormalizes.
type Sentiment struct {
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
}

// Dominant returns the label with the highest score. Ties are broken in a
// fixed preference order: positive, then negative, then neutral.
func (s Sentiment) Dominant() string {
	if s.Positive >= s.Neutral && s.Positive >= s.Negative {
		return "positive"
	}
	if s.Negative >= s.Neutral && s.Negative >= s.Positive {
		return "negative"
	}
	return "neutral"
}

// KeyWords are the sentiment-bearing words the model flagged.
type KeyWords struct {
	Positive []string `json:"positive"`
	Negative []string `json:"negative"`
}

// AnalysisResult is the scoring and explanation for one analyzed news item.
type AnalysisResult struct {
	NewsText       string    `json:"news_text"`
	FullText       string    `json:"full_text"`
	Topic          string    `json:"topic"`
	Sentiment      Sentiment `json:"sentiment"`
	Classification string    `json:"classification"`
	Confidence     float64   `json:"confidence"`
	Explanation    string    `json:"explanation"`
	KeyWords       KeyWords  `json:"key_words"`
}

// SearchRecord is one row of a user's analysis history.
type SearchRecord struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"` // only populated on the admin surface
	Keyword    string  `json:"keyword"`
	TweetCount int     `json:"tweet_count"`
	Positive   float64 `json:"positive"`
	Neutral    float64 `json:"neutral"`
	Negative   float64 `json:"negative"`
	CreatedAt  string  `json:"created_at"`
}

// Dominant returns the row's dominant sentiment label, same tie order as
// Sentiment.Dominant.
func (r SearchRecord) Dominant() string {
	return Sentiment{Positive: r.Positive, Neutral: r.Neutral, Negative: r.Negative}.Dominant()
}

// HistoryStats are the aggregates the backend computes over a user's searches.
type HistoryStats struct {
	TotalSearches       int       `json:"total_searches"`
	TotalTweetsAnalyzed int       `json:"total_tweets_analyzed"`
	AverageSentiment    Sentiment `json:"average_sentiment"`
}

// History is the /history response: per-user searches plus aggregates.
type History struct {
	Searches   []SearchRecord `json:"searches"`
	Statistics HistoryStats   `json:"statistics"`
}

// FetchNewsResult is the /fetch-news response. Message carries the backend's
// explanation when no items were found.
type FetchNewsResult struct {
	NewsItems []NewsItem `json:"news_items"`
	Count     int        `json:"count"`
	Message   string     `json:"message"`
}

// AdminUser is one row of the admin user table. IsAdmin is an int because the
// backend serializes the SQLite column as 0/1.
type AdminUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	IsAdmin   int    `json:"is_admin"`
	CreatedAt string `json:"created_at"`
}

// Statistics are the admin overview counters.
type Statistics struct {
	TotalUsers      int `json:"total_users"`
	TotalSearches   int `json:"total_searches"`
	TotalActivities int `json:"total_activities"`
}

// ActivityRecord is one row of the append-only activity log. Payload is kept
// raw because the backend stores either a JSON string or an object.
type ActivityRecord struct {
	ID        int64           `json:"id"`
	Action    string          `json:"action"`
	ActorType string          `json:"actor_type"`
	UserID    *int64          `json:"user_id"`
	Payload   json.RawMessage `json:"payload"`
	IPAddress string          `json:"ip_address"`
	UserAgent string          `json:"user_agent"`
	CreatedAt string          `json:"created_at"`
}

// PayloadText renders the payload for display: strings unquoted, objects as
// compact JSON, absent payloads as empty.
func (a ActivityRecord) PayloadText() string {
	if len(a.Payload) == 0 || string(a.Payload) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(a.Payload, &s); err == nil {
		return s
	}
	return string(a.Payload)
}

// ActivityPage is one page of the activity log with the server-reported total.
type ActivityPage struct {
	Activities []ActivityRecord `json:"activities"`
	Total      int              `json:"total"`
	Limit      int              `json:"limit"`
	Offset     int              `json:"offset"`
}

// ExportBundle is the full data export: every table the backend owns.
type ExportBundle struct {
	Users       []AdminUser      `json:"users"`
	Searches    []SearchRecord   `json:"searches"`
	ActivityLog []ActivityRecord `json:"activity_log"`
}

// timestampLayouts are the formats the backend emits for created_at columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// FormatTimestamp parses a backend timestamp and reformats it for display.
// Unparseable values are shown verbatim.
func FormatTimestamp(s string) string {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006 15:04")
		}
	}
	return s
}
