// Package diigo saves a public bookmark to Diigo with a session captured by
// `syndicate login diigo`.
package diigo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/auth"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
)

const (
	Name = "Diigo"

	saveTimeout = 30 * time.Second
)

// Adapter publishes content to Diigo.
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
	if a.Content.URL == "" {
		return a.Reject(adapter.KindValidation, errors.New("content url is required"))
	}
	if a.cookies == nil || len(a.cookies.Cookies(a.Website.Site)) == 0 {
		return a.Reject(adapter.KindAuth, fmt.Errorf("no stored session for %s, run `syndicate login %s`", a.Website.Site, a.Website.Site))
	}

	page, failed := web.Open(ctx, a.Base, a.launch)
	if failed != nil {
		return failed
	}

	postURL, err := a.save(page)
	return web.Finish(ctx, a.Base, page, postURL, err)
}

func (a *Adapter) base() string {
	if a.Website.URL != "" {
		return strings.TrimRight(a.Website.URL, "/")
	}
	return DefaultBaseURL
}

func (a *Adapter) save(page web.Page) (string, error) {
	if _, err := web.InjectStored(page, a.cookies, a.Website.Site); err != nil {
		return "", web.Step(adapter.KindAuth, err)
	}

	a.Log("Opening bookmark form", adapter.LevelDetail, false)
	if err := page.Navigate(a.base() + "/post?url=" + url.QueryEscape(a.Content.URL)); err != nil {
		return "", web.Step(adapter.KindNavigation, err)
	}
	if ok, _ := page.Exists(selSignIn); ok {
		return "", web.Step(adapter.KindAuth, errors.New("stored session expired, log in again"))
	}

	if err := page.Fill(selTitle, a.Content.Title); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}
	if err := page.SetValue(selDescription, a.Content.Summary()); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}
	if tags := Tags(a.Content.Tags); tags != "" {
		if err := page.Fill(selTags, tags); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
	}
	if ok, _ := page.Exists(selPublic); ok {
		if err := page.Click(selPublic); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
	}

	a.Log("Saving bookmark", adapter.LevelInfo, true)
	if err := page.Click(selSave); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	sel, err := page.WaitAny(saveTimeout, selSaved, selSaveError)
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if sel == selSaveError {
		html, _ := page.HTML()
		return "", web.Step(adapter.KindSubmission, fmt.Errorf("diigo rejected bookmark: %s", web.Text(html, selSaveError)))
	}

	if user := a.Website.Credential("username"); user != "" {
		return a.base() + "/user/" + user, nil
	}
	return a.Content.URL, nil
}

// Tags joins tags the way Diigo expects: space separated, multi-word tags quoted
func Tags(tags []string) string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if strings.ContainsRune(t, ' ') {
			t = `"` + t + `"`
		}
		out = append(out, t)
	}
	return strings.Join(out, " ")
}
