package logsvc

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aliakseitokarev/rsschool-app/core"
)

// NewZerolog builds the local sink of the app loggers: a console writer on stderr
// and, when conf.LogDir is set, a rotating file named after component.
func NewZerolog(conf *core.Config, component string) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	fd := os.Stderr.Fd()
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)),
	}

	writers := []io.Writer{console}
	if conf.LogDir != "" {
		if err := os.MkdirAll(conf.LogDir, 0o755); err != nil {
			return zerolog.Nop(), errors.Wrapf(err, "creating log directory %q", conf.LogDir)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(conf.LogDir, strings.ToLower(component)+".log"),
			MaxSize:    16, // megabytes
			MaxBackups: 32,
			MaxAge:     90, // days
			Compress:   true,
		})
	}

	return zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		With().
		Timestamp().
		Str("component", component).
		Str("env", conf.Env).
		Logger(), nil
}
