package logger

import (
	"io"
)

// MockLogger builds a Logger that writes to writer instead of stdout, for
// the session and wstransport suites to route through GinkgoWriter so log
// lines interleave with the rest of a spec's failure output. LogLevel is
// pinned to Debug so a failing spec's Debugf trail (frame dispatch,
// phase transitions) shows up without every test setting it explicitly.
func MockLogger(writer io.Writer) *Logger {
	config := &Config{
		ConsoleWriters: []io.Writer{writer},
		LogLevel:       Debug,
	}

	if logger, err := New(config); err == nil {
		return logger
	}
	return nil
}
