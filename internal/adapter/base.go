package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// uploadTimeout bounds screenshot uploads made after the publish context is done
const uploadTimeout = 30 * time.Second

// Base carries the identity and logging shared by all adapters. Site adapters
// embed *Base and override Publish.
type Base struct {
	RequestID string
	Website   Website
	Content   Content
	Job       Job
	Category  string

	name string
	deps Deps

	mu   sync.Mutex
	logs []Entry
}

// NewBase creates the shared adapter state. name prefixes every log message.
func NewBase(name string, p Params) *Base {
	requestID := p.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return &Base{
		RequestID: requestID,
		Website:   p.Website,
		Content:   p.Content,
		Job:       p.Job,
		Category:  p.Website.Category,
		name:      name,
		deps:      p.Deps,
	}
}

// Name returns the adapter name used as log prefix
func (b *Base) Name() string {
	return b.name
}

// Log buffers message and forwards it to the sink when productionLog is set or
// when not running in production. The job hook always receives it.
func (b *Base) Log(message string, level Level, productionLog bool) {
	if level == "" {
		level = LevelDetail
	}
	entry := Entry{Adapter: b.name, Message: fmt.Sprintf("[%s] %s", b.name, message), Level: level}

	b.mu.Lock()
	b.logs = append(b.logs, entry)
	b.mu.Unlock()

	if b.deps.Sink != nil && (productionLog || !b.deps.Production) {
		b.deps.Sink.Log(b.RequestID, entry)
	}
	if b.Job != nil {
		b.Job.Log(entry.Message)
	}
}

// Logf logs a formatted, non-production message
func (b *Base) Logf(level Level, format string, args ...any) {
	b.Log(fmt.Sprintf(format, args...), level, false)
}

// CollectedLogs returns the buffer; production drops detail entries
func (b *Base) CollectedLogs() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Entry, 0, len(b.logs))
	for _, e := range b.logs {
		if b.deps.Production && !productionLevels[e.Level] {
			continue
		}
		out = append(out, e)
	}
	return out
}

// LogPublicationSuccess records the URL of a published post.
func (b *Base) LogPublicationSuccess(url string) {
	b.Log("Publication successful: "+url, LevelSuccess, true)
}

// LogScreenshotUploaded records the URL of a success screenshot.
func (b *Base) LogScreenshotUploaded(url string) {
	b.Log("Screenshot uploaded: "+url, LevelInfo, true)
}

// LogErrorScreenshotUploaded records the URL of a failure screenshot.
func (b *Base) LogErrorScreenshotUploaded(url string) {
	b.Log("Error screenshot uploaded: "+url, LevelWarning, true)
}

// Publish must be overridden by site adapters
func (b *Base) Publish(ctx context.Context) Result {
	return Err{Kind: KindNotImplemented, Message: ErrNotImplementedMessage}
}

// Succeed logs the success and builds the result
func (b *Base) Succeed(postURL, screenshotURL string) Result {
	b.LogPublicationSuccess(postURL)
	return Ok{PostURL: postURL, ScreenshotURL: screenshotURL}
}

// HandleError logs err, takes one best-effort screenshot of page, closes browser
// and returns err unchanged. page and browser may be nil.
func (b *Base) HandleError(ctx context.Context, err error, page Page, browser Browser) error {
	b.Log(fmt.Sprintf("Error: %v", err), LevelError, true)

	if page != nil {
		url, shotErr := b.capture(ctx, page, "error")
		switch {
		case shotErr != nil:
			b.Logf(LevelWarning, "Could not capture error screenshot: %v", shotErr)
		case url != "":
			b.LogErrorScreenshotUploaded(url)
		}
	}

	if browser != nil {
		if closeErr := browser.Close(); closeErr != nil {
			b.Logf(LevelWarning, "Could not close browser: %v", closeErr)
		}
	}

	return err
}

// Fail runs HandleError and turns the error into an Err result
func (b *Base) Fail(ctx context.Context, kind ErrorKind, err error, page Page, browser Browser) Result {
	err = b.HandleError(ctx, err, page, browser)
	return Err{Kind: kind, Message: err.Error()}
}

// Reject records a failure that has no page to capture
func (b *Base) Reject(kind ErrorKind, err error) Result {
	b.Log(fmt.Sprintf("Error: %v", err), LevelError, true)
	return Err{Kind: kind, Message: err.Error()}
}

// CaptureAndUpload screenshots page and uploads it, returning the public URL
func (b *Base) CaptureAndUpload(ctx context.Context, page Page) (string, error) {
	url, err := b.capture(ctx, page, "result")
	if err != nil {
		return "", err
	}
	if url != "" {
		b.LogScreenshotUploaded(url)
	}
	return url, nil
}

func (b *Base) capture(ctx context.Context, page Page, kind string) (string, error) {
	dir := b.deps.ScreenshotDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s-%s-%s.png",
		strings.ToLower(b.name), kind, b.RequestID))

	// The publish context may already be cancelled; cleanup still gets a window.
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), uploadTimeout)
	defer cancel()

	if err := page.Screenshot(cleanupCtx, path); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	if b.deps.Uploader == nil {
		b.Logf(LevelDetail, "Screenshot saved locally: %s", path)
		return path, nil
	}

	url, err := b.deps.Uploader.Upload(cleanupCtx, path)
	if err != nil {
		return "", fmt.Errorf("failed to upload screenshot: %w", err)
	}
	return url, nil
}
