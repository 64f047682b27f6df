// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// MatchQueueName is the durable queue match events are published to.
const MatchQueueName = "match.recorded"

// MatchRecordedEvent is published after a match is stored, either from the
// entry form or a CSV import.  It carries enough for a consumer to log the
// activity without reading the store.
type MatchRecordedEvent struct {
	MatchID    string `json:"match_id"`
	UserEmail  string `json:"user_email"`
	Date       string `json:"date"`
	Opponent   string `json:"opponent,omitempty"`
	Outcome    string `json:"outcome,omitempty"`
	Source     string `json:"source"` // "form" or "import"
	RecordedAt string `json:"recorded_at"`
}

// Event sources.
const (
	SourceForm   = "form"
	SourceImport = "import"
)
