package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "student", "topic",
			"problem_id", "question", "answer", "correct", "time_ms").
		Values(seqNum, time.Now().UnixMilli(), data.SessionID, data.Student, data.Topic,
			data.ProblemID, data.Question, data.Answer, boolToInt(data.Correct), data.TimeTaken.Milliseconds()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("sequence", "timestamp", "session_id", "topic", "problem_id",
			"question", "answer", "correct", "time_ms").
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerRecord
	for rows.Next() {
		var (
			rec     AnswerRecord
			ts      int64
			correct int
			timeMs  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Topic, &rec.ProblemID,
			&rec.Question, &rec.Answer, &correct, &timeMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Correct = correct != 0
		rec.TimeTaken = time.Duration(timeMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) TopicStats(ctx context.Context, student string) ([]TopicStat, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("topic",
			entsql.As(entsql.Count("*"), "attempted"),
			entsql.As(entsql.Sum("correct"), "correct")).
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("student", student)).
		GroupBy("topic").
		OrderBy("topic").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query topic stats: %w", err)
	}
	defer rows.Close()

	var out []TopicStat
	for rows.Next() {
		var (
			st      TopicStat
			correct sql.NullInt64
		)
		if err := rows.Scan(&st.Topic, &st.Attempted, &correct); err != nil {
			return nil, fmt.Errorf("scan topic stat: %w", err)
		}
		st.Correct = int(correct.Int64)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *eventRepo) Totals(ctx context.Context, student string) (StudentTotals, error) {
	var totals StudentTotals

	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*"), entsql.Sum("correct"), entsql.Avg("time_ms")).
		From(entsql.Table("answer_events")).
		Where(entsql.EQ("student", student)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return totals, fmt.Errorf("query answer totals: %w", err)
	}
	var (
		correct sql.NullInt64
		avgMs   sql.NullFloat64
	)
	if rows.Next() {
		if err := rows.Scan(&totals.Attempted, &correct, &avgMs); err != nil {
			rows.Close()
			return totals, fmt.Errorf("scan answer totals: %w", err)
		}
	}
	rows.Close()
	totals.Correct = int(correct.Int64)
	totals.AvgTimeTaken = time.Duration(avgMs.Float64 * float64(time.Millisecond))

	query, args = entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table("session_events")).
		Where(entsql.And(
			entsql.EQ("student", student),
			entsql.EQ("action", ActionEnd),
		)).
		Query()

	rows = &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return totals, fmt.Errorf("query session count: %w", err)
	}
	defer rows.Close()
	if rows.Next() {
		if err := rows.Scan(&totals.Sessions); err != nil {
			return totals, fmt.Errorf("scan session count: %w", err)
		}
	}
	return totals, rows.Err()
}
