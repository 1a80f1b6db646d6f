// Package activity keeps the append-only record of user actions in two
// durable projections: the personal log (this store's account activity) and
// the global log (all accounts, all time). Both are maintained newest-first.
package activity

import "encoding/json"

// Type classifies an activity entry.
type Type string

const (
	TypeLogin                Type = "login"
	TypeImageAnalysis        Type = "image-analysis"
	TypePrescriptionAnalysis Type = "prescription-analysis"
	TypeMentalHealth         Type = "mental-health"
	TypeSymptomChecker       Type = "symptom-checker"
)

// Entry is one logged user action. Data is an opaque payload produced by the
// feature page that completed the action; this package never interprets it.
// Timestamp is Unix milliseconds.
type Entry struct {
	ID        string          `json:"id"`
	Type      Type            `json:"type"`
	Timestamp int64           `json:"timestamp"`
	Title     string          `json:"title"`
	UserPhone string          `json:"userPhone"`
	Data      json.RawMessage `json:"data"`
	Language  string          `json:"language,omitempty"`
}

// NewEntry is the caller-supplied part of an entry. ID, timestamp and
// userPhone are filled in by the log on append.
type NewEntry struct {
	Type     Type
	Title    string
	Data     json.RawMessage
	Language string
}
