// Package reddit submits link or text posts to a subreddit through old.reddit.com.
package reddit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/auth"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name = "Reddit"

	submitTimeout = 45 * time.Second
)

// Adapter publishes content to Reddit.
type Adapter struct {
	*adapter.Base
	launch  web.Launcher
	cookies *auth.CookieStore
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, launch web.Launcher, cookies *auth.CookieStore) *Adapter {
	return &Adapter{
		Base:    adapter.NewBase(Name, p),
		launch:  launch,
		cookies: cookies,
	}
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if err := a.Website.RequireCredentials("subreddit"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	if a.Content.Title == "" {
		return a.Reject(adapter.KindValidation, errors.New("title is required"))
	}
	if a.Content.URL == "" && a.Content.Body == "" {
		return a.Reject(adapter.KindValidation, errors.New("url or body is required"))
	}

	page, failed := web.Open(ctx, a.Base, a.launch)
	if failed != nil {
		return failed
	}

	postURL, err := a.submit(page)
	return web.Finish(ctx, a.Base, page, postURL, err)
}

func (a *Adapter) base() string {
	if a.Website.URL != "" {
		return strings.TrimRight(a.Website.URL, "/")
	}
	return DefaultBaseURL
}

// Subreddit strips an r/ prefix from the configured name
func Subreddit(name string) string {
	name = strings.Trim(strings.TrimSpace(name), "/")
	name = strings.TrimPrefix(name, "r/")
	return name
}

func (a *Adapter) submit(page web.Page) (string, error) {
	injected, err := web.InjectStored(page, a.cookies, a.Website.Site)
	if err != nil {
		return "", web.Step(adapter.KindAuth, err)
	}
	if !injected {
		return "", web.Step(adapter.KindAuth, fmt.Errorf("no stored session for %s, run `syndicate login %s`", a.Website.Site, a.Website.Site))
	}

	sub := Subreddit(a.Website.Credential("subreddit"))
	a.Logf(adapter.LevelDetail, "Opening submit form for r/%s", sub)
	if err := page.Navigate(a.base() + "/r/" + sub + "/submit"); err != nil {
		return "", web.Step(adapter.KindNavigation, err)
	}
	if ok, _ := page.Exists(selLoggedIn); !ok {
		return "", web.Step(adapter.KindAuth, errors.New("stored session expired, log in again"))
	}

	if a.Content.URL != "" {
		if err := page.Click(selLinkTab); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
		if err := page.Fill(selURL, a.Content.URL); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
	} else {
		if err := page.Click(selTextTab); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
		if err := page.SetValue(selText, a.Content.MarkdownBody()); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
	}
	if err := page.Fill(selTitle, a.Content.Title); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	a.Log("Submitting post", adapter.LevelInfo, true)
	if err := page.Click(selSubmit); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	sel, err := page.WaitAny(submitTimeout, selPosted, selError)
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if sel == selError {
		html, _ := page.HTML()
		return "", web.Step(adapter.KindSubmission, fmt.Errorf("reddit rejected post: %s", web.Text(html, selError)))
	}

	loc, err := page.Location()
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if !strings.Contains(loc, "/comments/") {
		return "", web.Step(adapter.KindVerification, fmt.Errorf("unexpected page after submit: %s", loc))
	}
	return loc, nil
}
