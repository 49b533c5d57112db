package adapter

import (
	"context"
	"log/slog"
)

// Level classifies a collected log entry
type Level string

const (
	LevelDetail  Level = "detail"
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// productionLevels are kept by CollectedLogs in production
var productionLevels = map[Level]bool{
	LevelInfo:    true,
	LevelSuccess: true,
	LevelWarning: true,
	LevelError:   true,
}

// Entry is one collected log line. Adapter names the adapter that logged it.
type Entry struct {
	Adapter string `json:"adapter,omitempty"`
	Message string `json:"message"`
	Level   Level  `json:"level"`
}

// Sink receives log entries forwarded out of an adapter
type Sink interface {
	Log(requestID string, entry Entry)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(requestID string, entry Entry)

// Log calls f.
func (f SinkFunc) Log(requestID string, entry Entry) { f(requestID, entry) }

// MultiSink fans an entry out to several sinks
type MultiSink []Sink

// Log forwards the entry to every sink.
func (m MultiSink) Log(requestID string, entry Entry) {
	for _, s := range m {
		if s != nil {
			s.Log(requestID, entry)
		}
	}
}

// SlogSink forwards entries into a slog logger
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink writing to logger
func NewSlogSink(logger *slog.Logger) *SlogSink {
	return &SlogSink{logger: logger}
}

// Log writes the entry to the logger at its level.
func (s *SlogSink) Log(requestID string, entry Entry) {
	lvl := slog.LevelInfo
	switch entry.Level {
	case LevelDetail:
		lvl = slog.LevelDebug
	case LevelWarning:
		lvl = slog.LevelWarn
	case LevelError:
		lvl = slog.LevelError
	}
	s.logger.Log(context.Background(), lvl, entry.Message,
		"request_id", requestID,
		"adapter", entry.Adapter,
		"level", string(entry.Level),
	)
}
