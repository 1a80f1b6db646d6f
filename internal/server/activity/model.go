package activity

import (
	"encoding/json"
	"time"
)

// Entry is one ingested activity record. The ID, timestamp and payload are
// client-assigned; the server only stamps ReceivedAt. Data stays opaque.
type Entry struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Timestamp  int64           `json:"timestamp"`
	Title      string          `json:"title"`
	UserPhone  string          `json:"userPhone"`
	Data       json.RawMessage `json:"data"`
	Language   string          `json:"language,omitempty"`
	ReceivedAt time.Time       `json:"-"`
}
