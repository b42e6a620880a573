// Package logger holds the process-wide diagnostic logger.
// Player-facing messages go through state.Game.AddMessage instead.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared diagnostic logger. It writes warnings and above to stderr
// until Configure is called.
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	})
	return l
}

// Configure sets the level (e.g. "debug", "info") and output of Log.
// A nil out keeps the current output.
func Configure(level string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("configure logger: %w", err)
	}
	Log.SetLevel(lvl)
	if out != nil {
		Log.SetOutput(out)
	}
	return nil
}

// Discard silences Log, used by tests that exercise noisy paths
func Discard() {
	Log.SetOutput(io.Discard)
}
