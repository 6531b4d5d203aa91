/*
Package logger wraps zerolog with the small, leveled call surface the
rest of this module uses: a handful of named levels, optional output
to a log file in addition to the console, and per-component child
loggers so that a log line from the transport can be told apart from
one out of the session layer without every call site passing a field.
*/
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type LogLevel uint8

const (
	Trace LogLevel = iota
	Debug
	Info
	Warn
	Error
)

func (l LogLevel) String() string {
	switch l {
	case Trace:
		return "trace"
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ToLogLevel parses a level name, defaulting to Info on an unrecognized value.
func ToLogLevel(s string) LogLevel {
	switch s {
	case "trace":
		return Trace
	case "debug":
		return Debug
	case "warn":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func (l LogLevel) toZerolog() zerolog.Level {
	switch l {
	case Trace:
		return zerolog.TraceLevel
	case Debug:
		return zerolog.DebugLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config configures a Logger. FilePath is optional; when empty, only
// ConsoleWriters (if any) receive output.
type Config struct {
	ConsoleWriters []io.Writer
	FilePath       string
	LogLevel       LogLevel
}

type Logger struct {
	logger    zerolog.Logger
	logFile   *os.File
	component string
}

func New(config *Config) (*Logger, error) {
	writers := make([]io.Writer, 0, len(config.ConsoleWriters)+1)
	for _, w := range config.ConsoleWriters {
		writers = append(writers, zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"})
	}

	var logFile *os.File
	if config.FilePath != "" {
		f, err := os.OpenFile(config.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("could not open log file %s: %w", config.FilePath, err)
		}
		logFile = f
		writers = append(writers, f)
	}

	multi := zerolog.MultiLevelWriter(writers...)
	zl := zerolog.New(multi).With().Timestamp().Logger().Level(config.LogLevel.toZerolog())

	return &Logger{logger: zl, logFile: logFile}, nil
}

// GetComponentLogger returns a child logger that tags every line with the given component name.
func (l *Logger) GetComponentLogger(name string) *Logger {
	return &Logger{
		logger:    l.logger.With().Str("component", name).Logger(),
		logFile:   l.logFile,
		component: name,
	}
}

func (l *Logger) AddClientVersion(version string) {
	l.logger = l.logger.With().Str("clientVersion", version).Logger()
}

func (l *Logger) Close() error {
	if l.logFile != nil {
		return l.logFile.Close()
	}
	return nil
}

func (l *Logger) Trace(msg string)  { l.logger.Trace().Msg(msg) }
func (l *Logger) Debug(msg string)  { l.logger.Debug().Msg(msg) }
func (l *Logger) Info(msg string)   { l.logger.Info().Msg(msg) }
func (l *Logger) Warn(msg string)   { l.logger.Warn().Msg(msg) }
func (l *Logger) Error(err error)   { l.logger.Error().Msg(err.Error()) }

func (l *Logger) Tracef(format string, args ...interface{}) { l.logger.Trace().Msgf(format, args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.logger.Debug().Msgf(format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logger.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logger.Warn().Msgf(format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logger.Error().Msgf(format, args...) }

// WithError returns a logger that will attach err's message to every subsequent line.
func (l *Logger) WithError(err error) *Logger {
	return &Logger{
		logger:    l.logger.With().Err(err).Logger(),
		logFile:   l.logFile,
		component: l.component,
	}
}
