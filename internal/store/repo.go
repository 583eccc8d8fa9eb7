package store

import (
	"context"
	"time"
)

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // timestamp >= From
	To    time.Time // timestamp <= To
}

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Student      string
	Action       string
	Level        string
	Correct      int
	Attempted    int
	DurationSecs int
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID string
	Student   string
	Topic     string
	ProblemID string
	Question  string
	Answer    string
	Correct   bool
	TimeTaken time.Duration
}

// SessionRecord is a finished session read back from the store.
type SessionRecord struct {
	Sequence     int64
	Timestamp    time.Time
	SessionID    string
	Student      string
	Level        string
	Correct      int
	Attempted    int
	DurationSecs int
}

// AnswerRecord is a graded answer read back from the store.
type AnswerRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionID string
	Topic     string
	ProblemID string
	Question  string
	Answer    string
	Correct   bool
	TimeTaken time.Duration
}

// TopicStat aggregates all answers of a student in one topic.
type TopicStat struct {
	Topic     string
	Attempted int
	Correct   int
}

// Accuracy returns Correct/Attempted, or 0 with no attempts.
func (t TopicStat) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

// StudentTotals aggregates everything recorded for a student.
type StudentTotals struct {
	Sessions     int
	Attempted    int
	Correct      int
	AvgTimeTaken time.Duration
}

// Accuracy returns Correct/Attempted, or 0 with no attempts.
func (t StudentTotals) Accuracy() float64 {
	if t.Attempted == 0 {
		return 0
	}
	return float64(t.Correct) / float64(t.Attempted)
}

// EventRepo provides append and query access to tutoring events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAnswerEvent records a graded answer.
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error

	// QuerySessions returns finished sessions of student, newest first.
	QuerySessions(ctx context.Context, student string, opts QueryOpts) ([]SessionRecord, error)

	// QueryAnswers returns the answers given in a session, oldest first.
	QueryAnswers(ctx context.Context, sessionID string) ([]AnswerRecord, error)

	// TopicStats aggregates answers of student per topic, sorted by topic.
	TopicStats(ctx context.Context, student string) ([]TopicStat, error)

	// Totals aggregates everything recorded for student.
	Totals(ctx context.Context, student string) (StudentTotals, error)

	// Students lists every student with at least one session.
	Students(ctx context.Context) ([]string, error)

	// DeleteStudent removes all events and snapshots of student.
	DeleteStudent(ctx context.Context, student string) error
}

// SnapshotData captures adaptive learner state between sessions.
type SnapshotData struct {
	Version    int     `json:"version"`
	Difficulty float64 `json:"difficulty"`
	Level      string  `json:"level,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Student   string
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot of student, or nil if none exist.
	Latest(ctx context.Context, student string) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots of student.
	Prune(ctx context.Context, student string, keep int) error
}
