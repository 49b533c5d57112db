// Package runner publishes one content item to many websites.
package runner

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites"
)

// Outcome is the result of publishing to one website
type Outcome struct {
	Site     string
	Website  adapter.Website
	Result   adapter.Result
	Logs     []adapter.Entry
	Duration time.Duration
}

// Builder creates the adapter for a website; sites.New in production
type Builder func(p adapter.Params, env sites.Env) (adapter.Publisher, error)

// Runner fans a publish out over websites with bounded parallelism
type Runner struct {
	env         sites.Env
	concurrency int
	build       Builder
	logger      *slog.Logger
}

// New creates a Runner. concurrency below 1 means one website at a time.
func New(env sites.Env, concurrency int, logger *slog.Logger) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		env:         env,
		concurrency: concurrency,
		build:       sites.New,
		logger:      logger.With("component", "runner"),
	}
}

// WithBuilder replaces the adapter factory
func (r *Runner) WithBuilder(b Builder) *Runner {
	r.build = b
	return r
}

// Run publishes content to every website. Outcomes are in websites order;
// one failing website never stops the others.
func (r *Runner) Run(ctx context.Context, requestID string, content adapter.Content, websites []adapter.Website, job adapter.Job) []Outcome {
	outcomes := make([]Outcome, len(websites))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, w := range websites {
		g.Go(func() error {
			outcomes[i] = r.publish(ctx, requestID, content, w, job)
			return nil
		})
	}
	g.Wait()

	return outcomes
}

func (r *Runner) publish(ctx context.Context, requestID string, content adapter.Content, w adapter.Website, job adapter.Job) Outcome {
	start := time.Now()
	out := Outcome{Site: w.Site, Website: w}

	p, err := r.build(adapter.Params{
		RequestID: requestID,
		Website:   w,
		Content:   content,
		Job:       job,
	}, r.env)
	if err != nil {
		kind := adapter.KindValidation
		if errors.Is(err, sites.ErrUnknownSite) {
			kind = adapter.KindUnknownSite
		}
		r.logger.Warn("skipping website", "site", w.Site, "error", err)
		out.Result = adapter.Err{Kind: kind, Message: err.Error()}
		out.Duration = time.Since(start)
		return out
	}

	r.logger.Info("publishing", "site", w.Site, "request_id", requestID)
	out.Result = p.Publish(ctx)
	out.Logs = p.CollectedLogs()
	out.Duration = time.Since(start)

	if adapter.Succeeded(out.Result) {
		r.logger.Info("published", "site", w.Site, "url", out.Result.(adapter.Ok).PostURL, "duration", out.Duration)
	} else {
		r.logger.Warn("publish failed", "site", w.Site, "error", out.Result.(adapter.Err).Message)
	}
	return out
}

// Counts returns how many outcomes succeeded and failed
func Counts(outcomes []Outcome) (ok, failed int) {
	for _, o := range outcomes {
		if adapter.Succeeded(o.Result) {
			ok++
		} else {
			failed++
		}
	}
	return ok, failed
}
