package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "student", "action",
			"level", "correct", "attempted", "duration_secs").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Student, data.Action,
			data.Level, data.Correct, data.Attempted, data.DurationSecs).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, student string, opts QueryOpts) ([]SessionRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "student", "level",
			"correct", "attempted", "duration_secs").
		From(entsql.Table("session_events")).
		Where(entsql.And(
			entsql.EQ("student", student),
			entsql.EQ("action", ActionEnd),
		)).
		OrderBy(entsql.Desc("sequence"))
	applyTimeRange(sel, opts)

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec SessionRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Student, &rec.Level,
			&rec.Correct, &rec.Attempted, &rec.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) Students(ctx context.Context) ([]string, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("student").
		Distinct().
		From(entsql.Table("session_events")).
		OrderBy("student").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) DeleteStudent(ctx context.Context, student string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	for _, table := range []string{"answer_events", "session_events", "snapshots"} {
		query, args := entsql.Dialect(dialect.SQLite).
			Delete(table).
			Where(entsql.EQ("student", student)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("delete from %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
