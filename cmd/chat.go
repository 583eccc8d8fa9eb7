package cmd

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/korepetytor/internal/adaptive"
	"github.com/abhisek/korepetytor/internal/app"
	"github.com/abhisek/korepetytor/internal/dialog"
	"github.com/abhisek/korepetytor/internal/screens/chat"
	"github.com/abhisek/korepetytor/internal/stats"
	"github.com/abhisek/korepetytor/internal/transcript"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a tutoring conversation",
	Long: `Start a tutoring conversation in the terminal UI.

With --plain the conversation runs line by line on stdin/stdout, which
suits piped input such as speech-to-text output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return runChat(cmd, plain)
	},
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, chatCmd} {
		c.Flags().Bool("adaptive", false, "Adapt problem difficulty to recent answers (overrides KOREPETYTOR_ADAPTIVE)")
		c.Flags().String("transcripts", "", "Directory for session transcripts (overrides KOREPETYTOR_TRANSCRIPTS)")
	}
	chatCmd.Flags().Bool("plain", false, "Line-based conversation on stdin/stdout instead of the TUI")
}

// conversation holds the per-run wiring of a dialog session.
type conversation struct {
	opts       dialog.Options
	recorder   *stats.Recorder
	transcript *transcript.Log
}

// newConversation wires the statistics recorder, the optional adaptive
// tracker, and the optional transcript into dialog options.
func newConversation(e *env) (*conversation, error) {
	var tracker *adaptive.Tracker
	if e.cfg.Adaptive {
		tracker = adaptive.NewTracker()
	}

	rec := stats.NewRecorder(stats.RecorderOptions{
		Events:    e.store.EventRepo(),
		Snapshots: e.store.SnapshotRepo(),
		Tracker:   tracker,
		Logger:    e.log,
	})
	observers := dialog.Observers{rec}

	c := &conversation{recorder: rec}
	if e.cfg.TranscriptsDir != "" {
		tl, err := transcript.Open(e.cfg.TranscriptsDir, nil)
		if err != nil {
			return nil, err
		}
		c.transcript = tl
		observers = append(observers, tl)
		e.log.Info("transcript started", zap.String("path", tl.Path()))
	}

	c.opts = dialog.Options{
		Logger:   e.log,
		Observer: observers,
		Adaptive: tracker,
	}
	return c, nil
}

func (c *conversation) Close(log *zap.Logger) {
	if c.transcript == nil {
		return
	}
	if err := c.transcript.Close(); err != nil {
		log.Warn("close transcript", zap.Error(err))
	}
}

func runChat(cmd *cobra.Command, plain bool) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	conv, err := newConversation(e)
	if err != nil {
		return err
	}
	defer conv.Close(e.log)

	if plain {
		return runPlain(cmd.InOrStdin(), cmd.OutOrStdout(), conv)
	}
	return app.Run(chat.Deps{
		Options:    conv.opts,
		Transcript: conv.transcript,
		Logger:     e.log,
	})
}

// runPlain runs the conversation one line per turn. When the input ends
// while a session is open, the session is closed with a farewell so its
// statistics are kept.
func runPlain(in io.Reader, out io.Writer, conv *conversation) error {
	say := func(msg string) {
		fmt.Fprintf(out, "Korepetytor: %s\n\n", msg)
		if conv.transcript != nil {
			_ = conv.transcript.Tutor(msg)
		}
	}
	m := dialog.NewManager(conv.opts, say)
	m.Start()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if conv.transcript != nil {
			_ = conv.transcript.Learner(line)
		}
		m.HandleTurn(line)
	}
	fmt.Fprintln(out)

	if conv.recorder != nil && conv.recorder.SessionID() != "" {
		m.HandleTurn("do widzenia")
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}
