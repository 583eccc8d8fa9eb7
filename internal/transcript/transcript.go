// Package transcript writes a human-readable log and a JSON dump of every
// conversation.
package transcript

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/korepetytor/internal/dialog"
)

// Senders used in transcript lines.
const (
	SenderTutor   = "Korepetytor"
	SenderLearner = "Uczeń"
)

var rule = strings.Repeat("=", 60)

// Message is one logged utterance.
type Message struct {
	Timestamp time.Time         `json:"timestamp"`
	Sender    string            `json:"sender"`
	Message   string            `json:"message"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// FinalStats is attached to the JSON dump when a session summary arrived.
type FinalStats struct {
	Student string                 `json:"student"`
	Level   string                 `json:"level,omitempty"`
	Correct int                    `json:"correct"`
	Total   int                    `json:"total"`
	Topics  map[string]TopicResult `json:"topics,omitempty"`
}

// TopicResult mirrors dialog.TopicResult for serialization.
type TopicResult struct {
	Attempted int `json:"attempted"`
	Correct   int `json:"correct"`
}

type document struct {
	SessionID  string      `json:"session_id"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Messages   []Message   `json:"messages"`
	Statistics *FinalStats `json:"statistics,omitempty"`
}

// Log records one conversation. It also observes the dialog so the final
// statistics land in the dump. Safe for concurrent use.
type Log struct {
	dialog.NopObserver

	mu       sync.Mutex
	now      func() time.Time
	file     *os.File
	jsonPath string
	doc      document
	closed   bool
}

// Open creates session_<id>.log in dir and writes its header. The JSON
// dump is written next to it by Close.
func Open(dir string, now func() time.Time) (*Log, error) {
	if now == nil {
		now = time.Now
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create transcript dir: %w", err)
	}

	start := now()
	id := start.Format("20060102_150405")
	f, err := os.Create(filepath.Join(dir, "session_"+id+".log"))
	if err != nil {
		return nil, fmt.Errorf("create transcript: %w", err)
	}

	l := &Log{
		now:      now,
		file:     f,
		jsonPath: filepath.Join(dir, "session_"+id+".json"),
		doc:      document{SessionID: id, StartTime: start, Messages: []Message{}},
	}
	fmt.Fprintf(f, "%s\nSESJA KOREPETYCJI MATEMATYCZNYCH\nData: %s\nID sesji: %s\n%s\n\n",
		rule, start.Format("2006-01-02 15:04:05"), id, rule)
	return l, nil
}

// Path returns the text log path.
func (l *Log) Path() string {
	return l.file.Name()
}

// JSONPath returns the path the JSON dump is written to on Close.
func (l *Log) JSONPath() string {
	return l.jsonPath
}

// Record appends an utterance to both the text log and the JSON document.
func (l *Log) Record(sender, message string, extra map[string]string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}

	ts := l.now()
	l.doc.Messages = append(l.doc.Messages, Message{
		Timestamp: ts,
		Sender:    sender,
		Message:   message,
		Extra:     extra,
	})
	if _, err := fmt.Fprintf(l.file, "[%s] %s: %s\n", ts.Format("15:04:05"), sender, message); err != nil {
		return fmt.Errorf("write transcript: %w", err)
	}
	return nil
}

// Tutor records a tutor reply.
func (l *Log) Tutor(message string) error {
	return l.Record(SenderTutor, message, nil)
}

// Learner records a learner utterance.
func (l *Log) Learner(message string) error {
	return l.Record(SenderLearner, message, nil)
}

// AnswerGraded tags the latest learner line with the grading result.
func (l *Log) AnswerGraded(e dialog.Outcome) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.doc.Messages) - 1; i >= 0; i-- {
		m := &l.doc.Messages[i]
		if m.Sender != SenderLearner {
			continue
		}
		m.Extra = map[string]string{
			"topic":      e.Topic.String(),
			"problem_id": e.ProblemID,
			"math_input": e.MathInput,
			"correct":    fmt.Sprint(e.Correct),
		}
		return
	}
}

// SessionEnded stores the final statistics for the dump.
func (l *Log) SessionEnded(e dialog.Summary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fs := &FinalStats{
		Student: e.UserName,
		Level:   string(e.Level),
		Correct: e.CorrectCount,
		Total:   e.Attempted,
		Topics:  make(map[string]TopicResult, len(e.Topics)),
	}
	for t, r := range e.Topics {
		fs.Topics[t.String()] = TopicResult{Attempted: r.Attempted, Correct: r.Correct}
	}
	l.doc.Statistics = fs
}

// Close writes the footer and the JSON dump. Calling Close twice is a
// no-op.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true

	end := l.now()
	l.doc.EndTime = end

	fmt.Fprintf(l.file, "\n%s\nKONIEC SESJI: %s\n", rule, end.Format("15:04:05"))
	if s := l.doc.Statistics; s != nil {
		fmt.Fprintf(l.file, "Poprawnych odpowiedzi: %d/%d\n", s.Correct, s.Total)
	}
	fmt.Fprintf(l.file, "%s\n", rule)
	if err := l.file.Close(); err != nil {
		return fmt.Errorf("close transcript: %w", err)
	}

	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}
	if err := os.WriteFile(l.jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("write transcript json: %w", err)
	}
	return nil
}
