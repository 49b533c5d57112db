package llm

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/ibeckermayer/syndicate/internal/config"
)

// Exchange represents a prompt/response pair kept for debugging
type Exchange struct {
	Timestamp time.Time `json:"timestamp"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	Response  string    `json:"response"`
	Error     string    `json:"error,omitempty"`
}

// Recorder writes exchanges to timestamped files. A nil Recorder records nothing.
type Recorder struct {
	dir    string
	logger *slog.Logger
}

// NewRecorder records into dir
func NewRecorder(dir string, logger *slog.Logger) *Recorder {
	return &Recorder{dir: dir, logger: logger}
}

// DefaultRecordDir returns the cache directory for LLM exchanges
func DefaultRecordDir() (string, error) {
	cacheDir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "llm"), nil
}

// Record saves ex, logging rather than returning failures
func (r *Recorder) Record(ex Exchange) {
	if r == nil {
		return
	}
	path, err := r.save(ex)
	if err != nil {
		r.logger.Warn("failed to record LLM exchange", "error", err)
		return
	}
	r.logger.Debug("recorded LLM exchange", "path", path)
}

func (r *Recorder) save(ex Exchange) (string, error) {
	if ex.Timestamp.IsZero() {
		ex.Timestamp = time.Now()
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return "", err
	}

	// Dashes instead of colons for filesystem compatibility; the suffix keeps
	// exchanges from the same second apart.
	filename := fmt.Sprintf("%s-%s.json", ex.Timestamp.Format("2006-01-02T15-04-05"), uuid.NewString()[:8])
	path := filepath.Join(r.dir, filename)

	data, err := json.MarshalIndent(ex, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
