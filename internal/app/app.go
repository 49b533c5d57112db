// Package app wires configuration into the publishing pipeline shared by the
// CLI commands and the HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/browser"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/auth"
	browsercfg "github.com/ibeckermayer/syndicate/internal/browser"
	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/linkedin"
	"github.com/ibeckermayer/syndicate/internal/llm"
	"github.com/ibeckermayer/syndicate/internal/logsink"
	"github.com/ibeckermayer/syndicate/internal/notifier"
	"github.com/ibeckermayer/syndicate/internal/report"
	"github.com/ibeckermayer/syndicate/internal/runner"
	"github.com/ibeckermayer/syndicate/internal/screenshot"
	"github.com/ibeckermayer/syndicate/internal/session"
	"github.com/ibeckermayer/syndicate/internal/sites"
	"github.com/ibeckermayer/syndicate/internal/sites/linkedincomment"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
	"github.com/ibeckermayer/syndicate/internal/store"
)

// App holds the application state.
type App struct {
	mu          sync.RWMutex
	authManager *auth.Manager // immutable after creation
	cookies     *auth.CookieStore
	sessions    *session.FileStore
	linkedIn    *linkedin.Client
	logger      *slog.Logger

	// Mutable fields - use getSnapshot() for concurrent access.
	config   *config.Config
	runner   *runner.Runner
	notifier *notifier.Notifier
	closers  []func(context.Context) error
}

// snapshot holds fields that may be replaced by ReloadConfig.
type snapshot struct {
	config   *config.Config
	runner   *runner.Runner
	notifier *notifier.Notifier
}

func (a *App) getSnapshot() snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return snapshot{
		config:   a.config,
		runner:   a.runner,
		notifier: a.notifier,
	}
}

// New builds the App from cfg. Close releases the store and broker connections.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	cookieDir, err := auth.DefaultCookieDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get cookie dir: %w", err)
	}
	cookies := auth.NewCookieStore(cookieDir)

	sessionPath := cfg.Server.SessionFile
	if sessionPath == "" {
		if sessionPath, err = session.DefaultPath(); err != nil {
			return nil, err
		}
	}
	sessions, err := session.Open(sessionPath, cfg.Server.WriteThrough)
	if err != nil {
		return nil, err
	}

	a := &App{
		authManager: auth.NewManager(cookies, browserConfig(cfg)),
		cookies:     cookies,
		sessions:    sessions,
		linkedIn:    linkedin.NewClient(cfg.LinkedIn, logger),
		logger:      logger.With("component", "app"),
	}
	if err := a.configure(ctx, cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// configure (re)builds everything derived from cfg
func (a *App) configure(ctx context.Context, cfg *config.Config) error {
	var closers []func(context.Context) error
	fail := func(err error) error {
		for _, c := range closers {
			c(context.Background())
		}
		return err
	}

	var sink adapter.Sink = adapter.NewSlogSink(a.logger)
	if cfg.RabbitMQ.Enabled {
		rabbit, err := logsink.NewRabbitMQ(logsink.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, a.logger)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func(context.Context) error { return rabbit.Close() })
		sink = adapter.MultiSink{sink, rabbit}
	}

	var uploader adapter.Uploader
	if cfg.Cloudinary.CloudName != "" {
		c, err := screenshot.NewCloudinary(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey,
			cfg.Cloudinary.APISecret, cfg.Cloudinary.Folder, a.logger)
		if err != nil {
			return fail(err)
		}
		uploader = c
	}

	repo, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return fail(fmt.Errorf("failed to open store: %w", err))
	}
	closers = append(closers, repo.Close)

	recordDir, err := llm.DefaultRecordDir()
	if err != nil {
		return fail(err)
	}
	recorder := llm.NewRecorder(recordDir, a.logger)
	categoryLLM, err := llm.New(cfg.LLM, "", recorder, a.logger)
	if err != nil {
		return fail(err)
	}
	commentLLM, err := llm.New(cfg.LLM, cfg.LLM.CommentBaseURL, recorder, a.logger)
	if err != nil {
		return fail(err)
	}

	httpOpts := web.HTTPOptions{UserAgent: cfg.Browser.UserAgent}
	launch := web.ChromeLauncher(browserConfig(cfg))

	env := sites.Env{
		Deps: adapter.Deps{
			Sink:          sink,
			Uploader:      uploader,
			Production:    cfg.IsProduction(),
			ScreenshotDir: cfg.Browser.ScreenshotDir,
		},
		Launch:   launch,
		Cookies:  a.cookies,
		HTTP:     httpOpts,
		BaseURLs: cfg.Publish.BaseURLs,
		Comment: linkedincomment.Services{
			CategoryLLM:     categoryLLM,
			CommentLLM:      commentLLM,
			Repo:            repo,
			LinkedIn:        a.linkedIn,
			Sessions:        a.sessions,
			BusinessContext: cfg.LLM.BusinessContext,
		},
	}
	if rl := linkedincomment.NewRelatedLinkClient(cfg.RelatedLinks, httpOpts); rl != nil {
		env.Comment.RelatedLinks = rl
	}
	if cfg.Publish.Screenshots {
		env.Capture = launch
	}

	var n *notifier.Notifier
	if cfg.Report.Enabled {
		if n, err = notifier.NewFromConfig(cfg.Email); err != nil {
			return fail(err)
		}
	}

	a.mu.Lock()
	old := a.closers
	a.config = cfg
	a.runner = runner.New(env, cfg.Publish.Concurrency, a.logger)
	a.notifier = n
	a.closers = closers
	a.mu.Unlock()

	for _, c := range old {
		if err := c(ctx); err != nil {
			a.logger.Warn("failed to close previous connection", "error", err)
		}
	}
	return nil
}

func browserConfig(cfg *config.Config) browsercfg.Config {
	return browsercfg.Config{
		Headless:      cfg.Browser.Headless,
		UserAgent:     cfg.Browser.UserAgent,
		ExtensionPath: cfg.Browser.ExtensionPath,
		Timeout:       cfg.BrowserTimeout(),
	}
}

// Config returns the current configuration
func (a *App) Config() *config.Config {
	return a.getSnapshot().config
}

// Sessions returns the LinkedIn session store
func (a *App) Sessions() *session.FileStore {
	return a.sessions
}

// LinkedIn returns the LinkedIn API client
func (a *App) LinkedIn() *linkedin.Client {
	return a.linkedIn
}

// Run is the result of publishing one content item
type Run struct {
	RequestID  string
	Outcomes   []runner.Outcome
	Report     *report.Report
	ReportPath string
}

// Publish sends content to every website, saves the run report and e-mails
// it when reporting is enabled. Per-site failures are in the outcomes; the
// error is only set when no run happened.
func (a *App) Publish(ctx context.Context, content adapter.Content, websites []adapter.Website, job adapter.Job) (*Run, error) {
	if len(websites) == 0 {
		return nil, errors.New("no websites to publish to")
	}
	s := a.getSnapshot()

	run := &Run{RequestID: uuid.NewString()}
	a.logger.Info("publish started", "request_id", run.RequestID, "websites", len(websites))
	run.Outcomes = s.runner.Run(ctx, run.RequestID, content, websites, job)

	ok, failed := runner.Counts(run.Outcomes)
	a.logger.Info("publish finished", "request_id", run.RequestID, "published", ok, "failed", failed)

	builder, err := report.New()
	if err != nil {
		return run, err
	}
	rep, err := builder.Build(run.RequestID, content, run.Outcomes)
	if err != nil {
		return run, err
	}
	run.Report = rep

	if path, err := saveReport(s.config, run.RequestID, rep); err != nil {
		a.logger.Warn("failed to save report", "error", err)
	} else {
		run.ReportPath = path
	}

	if s.notifier != nil {
		if err := s.notifier.SendReport(rep, s.config.Report.ToAddr); err != nil {
			a.logger.Warn("failed to send report", "error", err)
		} else {
			a.logger.Info("report sent", "to", s.config.Report.ToAddr)
		}
	}

	return run, nil
}

// ReportDir returns where run reports are written
func ReportDir(cfg *config.Config) (string, error) {
	if cfg.Report.Dir != "" {
		return cfg.Report.Dir, nil
	}
	dir, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reports"), nil
}

func saveReport(cfg *config.Config, requestID string, rep *report.Report) (string, error) {
	dir, err := ReportDir(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	name := fmt.Sprintf("report-%s-%s.html", rep.CreatedAt.Format("20060102-150405"), requestID[:8])
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(rep.HTMLBody), 0600)
}

// LatestReport returns the newest report in dir
func LatestReport(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "report-") && strings.HasSuffix(e.Name(), ".html") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no reports in %s", dir)
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

// ViewLastReport opens the most recent report file.
func (a *App) ViewLastReport() error {
	dir, err := ReportDir(a.getSnapshot().config)
	if err != nil {
		return err
	}
	path, err := LatestReport(dir)
	if err != nil {
		return err
	}
	a.logger.Info("opening report", "path", path)
	return browser.OpenFile(path)
}

// IsAuthenticated reports whether site has a stored browser session
func (a *App) IsAuthenticated(site string) bool {
	return a.authManager.IsAuthenticated(site)
}

// Login runs the interactive browser login for site and stores its cookies.
func (a *App) Login(ctx context.Context, site string) error {
	info, ok := sites.Lookup(site)
	if !ok {
		return fmt.Errorf("%w: %s", sites.ErrUnknownSite, site)
	}
	if info.LoginURL == "" {
		return fmt.Errorf("%s does not use a browser login", info.Key)
	}

	a.logger.Info("login started, finish signing in in the browser window", "site", info.Key)
	if err := a.authManager.Login(ctx, info.Key, info.LoginURL, info.LoginDone); err != nil {
		return err
	}
	a.logger.Info("login successful, cookies saved", "site", info.Key)
	return nil
}

// Logout clears the stored browser session for site
func (a *App) Logout(site string) error {
	return a.authManager.Logout(strings.ToLower(site))
}

// ReloadConfig reloads the configuration from path.
func (a *App) ReloadConfig(ctx context.Context, path string) error {
	cfg, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	if err := a.configure(ctx, cfg); err != nil {
		return err
	}
	a.logger.Info("configuration reloaded")
	return nil
}

// Close flushes sessions and closes connections
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	closers := a.closers
	a.closers = nil
	a.mu.Unlock()

	errs := []error{a.sessions.Flush()}
	for _, c := range closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}
