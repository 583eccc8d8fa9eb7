// Package stats persists tutoring sessions and turns the recorded history
// into summaries and study recommendations.
package stats

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/korepetytor/internal/adaptive"
	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/store"
)

// snapshotsKept is how many adaptive snapshots are retained per student.
const snapshotsKept = 10

// RecorderOptions configures a Recorder.
type RecorderOptions struct {
	Events store.EventRepo

	// Snapshots and Tracker are optional. When both are set the tracker
	// difficulty is restored at session start and saved at session end.
	Snapshots store.SnapshotRepo
	Tracker   *adaptive.Tracker

	Logger *zap.Logger
}

// Recorder is a dialog.Observer that writes session and answer events to
// the store. Store failures are logged and never surface to the dialog.
type Recorder struct {
	events  store.EventRepo
	snaps   store.SnapshotRepo
	tracker *adaptive.Tracker
	log     *zap.Logger

	mu        sync.Mutex
	sessionID string
	student   string
}

var _ dialog.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder from opts.
func NewRecorder(opts RecorderOptions) *Recorder {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		events:  opts.Events,
		snaps:   opts.Snapshots,
		tracker: opts.Tracker,
		log:     log,
	}
}

// StudentKey is the identity under which a learner's history is stored.
func StudentKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SessionID returns the ID of the session in progress, or "".
func (r *Recorder) SessionID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionID
}

func (r *Recorder) SessionStarted(e dialog.SessionStart) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessionID = uuid.NewString()
	r.student = StudentKey(e.UserName)
	ctx := context.Background()

	if err := r.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID: r.sessionID,
		Student:   r.student,
		Action:    store.ActionStart,
	}); err != nil {
		r.log.Warn("record session start", zap.Error(err))
	}

	if r.snaps == nil || r.tracker == nil {
		return
	}
	snap, err := r.snaps.Latest(ctx, r.student)
	if err != nil {
		r.log.Warn("load snapshot", zap.String("student", r.student), zap.Error(err))
		return
	}
	if snap != nil {
		r.tracker.SetDifficulty(snap.Data.Difficulty)
		r.log.Debug("difficulty restored",
			zap.String("student", r.student),
			zap.Float64("difficulty", r.tracker.Difficulty()),
		)
	}
}

func (r *Recorder) ProblemIssued(e dialog.Issue) {
	if e.Reset {
		r.log.Debug("problem pool recycled", zap.String("topic", e.Topic.String()))
	}
}

func (r *Recorder) AnswerGraded(e dialog.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionID == "" {
		return
	}

	if err := r.events.AppendAnswerEvent(context.Background(), store.AnswerEventData{
		SessionID: r.sessionID,
		Student:   r.student,
		Topic:     e.Topic.String(),
		ProblemID: e.ProblemID,
		Question:  e.Prompt,
		Answer:    e.Answer,
		Correct:   e.Correct,
		TimeTaken: e.Elapsed,
	}); err != nil {
		r.log.Warn("record answer", zap.Error(err))
	}
}

func (r *Recorder) SessionEnded(e dialog.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessionID == "" {
		return
	}
	ctx := context.Background()

	if err := r.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    r.sessionID,
		Student:      r.student,
		Action:       store.ActionEnd,
		Level:        string(e.Level),
		Correct:      e.CorrectCount,
		Attempted:    e.Attempted,
		DurationSecs: int(e.Duration() / time.Second),
	}); err != nil {
		r.log.Warn("record session end", zap.Error(err))
	}

	if r.snaps != nil && e.Difficulty > 0 {
		snap := &store.Snapshot{
			Student: r.student,
			Data: store.SnapshotData{
				Version:    1,
				Difficulty: e.Difficulty,
				Level:      string(e.Level),
			},
		}
		if err := r.snaps.Save(ctx, snap); err != nil {
			r.log.Warn("save snapshot", zap.Error(err))
		} else if err := r.snaps.Prune(ctx, r.student, snapshotsKept); err != nil {
			r.log.Warn("prune snapshots", zap.Error(err))
		}
	}

	r.log.Info("session recorded",
		zap.String("session_id", r.sessionID),
		zap.Int("correct", e.CorrectCount),
		zap.Int("attempted", e.Attempted),
	)
	r.sessionID = ""
	r.student = ""
}
