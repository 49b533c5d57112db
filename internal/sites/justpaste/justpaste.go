// Package justpaste publishes anonymous articles on justpaste.it.
package justpaste

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
	Name = "JustPaste"

	publishTimeout = 45 * time.Second
)

// Adapter publishes content to JustPaste.it.
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
	if strings.TrimSpace(a.Content.Body) == "" {
		return a.Reject(adapter.KindValidation, errors.New("body is required"))
	}

	page, failed := web.Open(ctx, a.Base, a.launch)
	if failed != nil {
		return failed
	}

	postURL, err := a.paste(page)
	return web.Finish(ctx, a.Base, page, postURL, err)
}

func (a *Adapter) editorURL() string {
	if a.Website.URL != "" {
		return a.Website.URL
	}
	return DefaultURL
}

func (a *Adapter) paste(page web.Page) (string, error) {
	start := a.editorURL()
	if err := page.Navigate(start); err != nil {
		return "", web.Step(adapter.KindNavigation, err)
	}

	if a.Content.Title != "" {
		if err := page.Fill(selTitle, a.Content.Title); err != nil {
			return "", web.Step(adapter.KindSubmission, err)
		}
	}
	a.Log("Typing article", adapter.LevelDetail, false)
	if err := page.Type(selEditor, Body(a.Content)); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	a.Log("Publishing article", adapter.LevelInfo, true)
	if err := page.Click(selPublish); err != nil {
		return "", web.Step(adapter.KindSubmission, err)
	}

	sel, err := page.WaitAny(publishTimeout, selPublished, selError, selCaptcha)
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	switch sel {
	case selCaptcha:
		return "", web.Step(adapter.KindSubmission, errors.New("captcha required"))
	case selError:
		html, _ := page.HTML()
		return "", web.Step(adapter.KindSubmission, fmt.Errorf("justpaste rejected article: %s", web.Text(html, selError)))
	}

	loc, err := page.Location()
	if err != nil {
		return "", web.Step(adapter.KindVerification, err)
	}
	if strings.TrimRight(loc, "/") == strings.TrimRight(start, "/") {
		return "", web.Step(adapter.KindVerification, errors.New("article url not assigned"))
	}
	return loc, nil
}

// Body is the typed article text with the source link appended
func Body(c adapter.Content) string {
	body := strings.TrimSpace(c.Body)
	if c.URL != "" && !strings.Contains(body, c.URL) {
		body += "\n\n" + c.URL
	}
	return body
}
