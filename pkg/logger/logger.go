package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/limbo/exercise-tracker/pkg/cleanup"
)

// Setup installs a JSON slog logger as default. With a non-empty file
// records are also written to a rotating log file.
func Setup(level, file string) *slog.Logger {
	var out io.Writer = os.Stdout
	if file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
			Compress:   true,
		}
		cleanup.Register(&cleanup.Job{
			Name: "closing log file",
			F:    rotating.Close,
		})
		out = io.MultiWriter(os.Stdout, rotating)
	}
	l := New(out, level)
	slog.SetDefault(l)
	return l
}

func New(out io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
}

// ParseLevel understands debug, info, warn and error. Anything else is info.
func ParseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
