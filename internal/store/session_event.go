package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo over the session_events table.
type sessionRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

type sessionEventRow struct {
	Sequence        int64  `sql:"sequence"`
	Timestamp       int64  `sql:"timestamp"`
	SessionID       string `sql:"session_id"`
	Mode            string `sql:"mode"`
	Direction       string `sql:"direction"`
	Category        string `sql:"category"`
	Review          bool   `sql:"review"`
	QuestionsServed int    `sql:"questions_served"`
	CorrectAnswers  int    `sql:"correct_answers"`
	DurationSecs    int    `sql:"duration_secs"`
}

func (r *sessionRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "action", "mode", "direction",
			"category", "review", "questions_served", "correct_answers", "duration_secs").
		Values(seqNum, r.now().UnixMilli(), data.SessionID, data.Action, data.Mode, data.Direction,
			data.Category, data.Review, data.QuestionsServed, data.CorrectAnswers, data.DurationSecs).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *sessionRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "mode", "direction", "category",
			"review", "questions_served", "correct_answers", "duration_secs").
		From(entsql.Table("session_events")).
		Where(entsql.EQ("action", ActionEnd)).
		OrderBy(entsql.Desc("sequence"))

	if opts.Before > 0 {
		sel = sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE("timestamp", opts.From.UnixMilli()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE("timestamp", opts.To.UnixMilli()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var events []sessionEventRow
	if err := entsql.ScanSlice(rows, &events); err != nil {
		return nil, fmt.Errorf("scan session summaries: %w", err)
	}

	records := make([]SessionSummaryRecord, len(events))
	for i, e := range events {
		records[i] = SessionSummaryRecord{
			Sequence:        e.Sequence,
			SessionID:       e.SessionID,
			Timestamp:       time.UnixMilli(e.Timestamp),
			Mode:            e.Mode,
			Direction:       e.Direction,
			Category:        e.Category,
			Review:          e.Review,
			QuestionsServed: e.QuestionsServed,
			CorrectAnswers:  e.CorrectAnswers,
			DurationSecs:    e.DurationSecs,
		}
	}
	return records, nil
}

func (r *sessionRepo) Clear(ctx context.Context) error {
	query, args := entsql.Dialect(dialect.SQLite).Delete("session_events").Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("clear session events: %w", err)
	}
	return nil
}
