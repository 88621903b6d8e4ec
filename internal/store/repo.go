package store

import (
	"context"
	"time"
)

// Document names.
const (
	DocProgress = "progress"
	DocSettings = "settings"
	DocCards    = "cards"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	Before int64     // sequence < Before, for paging to older results
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures one quiz session lifecycle event.
type SessionEventData struct {
	SessionID       string
	Action          string
	Mode            string
	Direction       string
	Category        string
	Review          bool
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// SessionSummaryRecord is one finished session as shown in history.
type SessionSummaryRecord struct {
	Sequence        int64
	SessionID       string
	Timestamp       time.Time
	Mode            string
	Direction       string
	Category        string
	Review          bool
	QuestionsServed int
	CorrectAnswers  int
	DurationSecs    int
}

// Accuracy returns the rounded accuracy percentage of the session.
func (r SessionSummaryRecord) Accuracy() int {
	if r.QuestionsServed == 0 {
		return 0
	}
	return (r.CorrectAnswers*100 + r.QuestionsServed/2) / r.QuestionsServed
}

// SessionRepo provides append and query access to session history.
type SessionRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionSummaries returns ended sessions, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// Clear deletes all session history.
	Clear(ctx context.Context) error
}
