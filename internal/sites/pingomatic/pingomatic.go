// Package pingomatic notifies update services of new content through Ping-o-Matic.
package pingomatic

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name       = "Pingomatic"
	DefaultURL = "https://pingomatic.com/"

	resultTimeout = 90 * time.Second
)

// Adapter publishes content to Ping-O-Matic.
type Adapter struct {
	*adapter.Base
	launch web.Launcher
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, launch web.Launcher) *Adapter {
	return &Adapter{
		Base:   adapter.NewBase(Name, p),
		launch: launch,
	}
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	blogURL := a.Content.URL
	if blogURL == "" {
		return a.Reject(adapter.KindValidation, errors.New("content url is required"))
	}

	page, failed := web.Open(ctx, a.Base, a.launch)
	if failed != nil {
		return failed
	}

	err := a.ping(page, blogURL)
	return web.Finish(ctx, a.Base, page, blogURL, err)
}

func (a *Adapter) ping(page web.Page, blogURL string) error {
	formURL := a.Website.URL
	if formURL == "" {
		formURL = DefaultURL
	}

	a.Log("Opening ping form", adapter.LevelDetail, false)
	if err := page.Navigate(formURL); err != nil {
		return web.Step(adapter.KindNavigation, err)
	}

	title := a.Content.Title
	if title == "" {
		title = blogURL
	}
	if err := page.Fill(selTitle, title); err != nil {
		return web.Step(adapter.KindSubmission, err)
	}
	if err := page.Fill(selBlogURL, blogURL); err != nil {
		return web.Step(adapter.KindSubmission, err)
	}
	if rss := a.Content.Extra["rss_url"]; rss != "" {
		if err := page.Fill(selRSSURL, rss); err != nil {
			return web.Step(adapter.KindSubmission, err)
		}
	}

	checked := 0
	for _, sel := range services {
		if ok, _ := page.Exists(sel); !ok {
			continue
		}
		if err := page.Click(sel); err != nil {
			a.Logf(adapter.LevelDetail, "Could not check %s: %v", sel, err)
			continue
		}
		checked++
	}
	a.Logf(adapter.LevelDetail, "Checked %d services", checked)

	a.Log("Submitting ping", adapter.LevelInfo, true)
	if err := page.Click(selSubmit); err != nil {
		return web.Step(adapter.KindSubmission, err)
	}

	if _, err := page.WaitAny(resultTimeout, selResults, selError); err != nil {
		return web.Step(adapter.KindVerification, err)
	}

	html, err := page.HTML()
	if err != nil {
		return web.Step(adapter.KindVerification, err)
	}
	if !web.ContainsAny(html, successPhrases...) {
		msg := web.Text(html, selError)
		if msg == "" {
			msg = "no confirmation on result page"
		}
		return web.Step(adapter.KindVerification, fmt.Errorf("ping not confirmed: %s", msg))
	}
	return nil
}
