// Package phpbb starts topics on phpBB forums.
package phpbb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name = "PhpBB"

	loginTimeout  = 30 * time.Second
	postTimeout   = 60 * time.Second
	redirectDelay = 3 * time.Second
)

// Adapter publishes content to phpBB forums.
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
	if a.Website.URL == "" {
		return a.Reject(adapter.KindValidation, errors.New("forum url is required"))
	}
	if err := a.Website.RequireCredentials("username", "password", "forum_id"); err != nil {
		return a.Reject(adapter.KindValidation, err)
	}
	if a.Content.Title == "" {
		return a.Reject(adapter.KindValidation, errors.New("title is required"))
	}

	page, failed := web.Open(ctx, a.Base, a.launch)
	if failed != nil {
		return failed
	}

	postURL, err := a.post(page)
	return web.Finish(ctx, a.Base, page, postURL, err)
}

func (a *Adapter) base() string {
	return strings.TrimRight(a.Website.URL, "/")
}

func (a *Adapter) post(page web.Page) (string, error) {
	if err := a.login(page); err != nil {
		return "", err
	}

	a.Log("Opening new topic form", adapter.LevelDetail, false)
	if err := page.Navigate(a.base() + postingPath + a.Website.Credential("forum_id")); err != nil {
		return "", web.Step(adapter.KindNavigation, err)
	}
	if err := page.Fill(selSubject, a.Content.Title); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}
	if err := page.SetValue(selMessage, Message(a.Content)); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	a.Log("Submitting topic", adapter.LevelInfo, true)
	if err := page.Click(selSubmit); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	sel, err := page.WaitAny(postTimeout, selPosted, selPostError)
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if sel == selPostError && !web.ContainsAny(html, postedPhrases...) {
		return "", web.Step(adapter.KindSubmission, fmt.Errorf("forum rejected topic: %s", web.Text(html, selPostError)))
	}

	// phpBB shows an interstitial before redirecting to the topic
	if web.ContainsAny(html, postedPhrases...) {
		page.Sleep(redirectDelay)
		if h, err := page.HTML(); err == nil {
			html = h
		}
	}

	loc, err := page.Location()
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if strings.Contains(loc, "viewtopic.php") {
		return loc, nil
	}
	if href := web.Attr(html, selPermalink, "href"); href != "" {
		return web.Resolve(loc, href), nil
	}
	return "", web.Step(adapter.KindVerification, errors.New("could not find topic url after posting"))
}

func (a *Adapter) login(page web.Page) error {
	a.Log("Logging in", adapter.LevelDetail, false)
	if err := page.Navigate(a.base() + loginPath); err != nil {
		return web.Step(adapter.KindNavigation, err)
	}
	if err := page.Fill(selUsername, a.Website.Credential("username")); err != nil {
		return web.Step(adapter.KindAuth, err)
	}
	if err := page.Fill(selPassword, a.Website.Credential("password")); err != nil {
		return web.Step(adapter.KindAuth, err)
	}
	if err := page.Click(selLogin); err != nil {
		return web.Step(adapter.KindAuth, err)
	}

	sel, err := page.WaitAny(loginTimeout, selLoggedIn, selLoginErr)
	if err != nil {
		return web.Step(adapter.KindAuth, fmt.Errorf("login did not complete: %w", err))
	}
	if sel != selLoggedIn {
		html, _ := page.HTML()
		return web.Step(adapter.KindAuth, fmt.Errorf("login rejected: %s", web.Text(html, selLoginErr)))
	}
	a.Log("Logged in", adapter.LevelDetail, false)
	return nil
}

// Message is the topic body: the plain body, or markdown, followed by the source link
func Message(c adapter.Content) string {
	body := c.Body
	if body == "" {
		body = c.MarkdownBody()
	}
	if c.URL != "" {
		body = strings.TrimRight(body, "\n") + "\n\n[url=" + c.URL + "]" + c.URL + "[/url]"
	}
	return body
}
