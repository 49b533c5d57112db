package web

import (
	"context"
	"errors"

	"github.com/ibeckermayer/syndicate/internal/adapter"
)

// StepError tags a failed browser step with the ErrorKind it is reported as
type StepError struct {
	Kind adapter.ErrorKind
	Err  error
}

func (e *StepError) Error() string { return e.Err.Error() }
func (e *StepError) Unwrap() error { return e.Err }

// Step wraps err with kind; nil stays nil
func Step(kind adapter.ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &StepError{Kind: kind, Err: err}
}

// Open launches a page for b, rejecting the publish when the browser cannot start
func Open(ctx context.Context, b *adapter.Base, launch Launcher) (Page, adapter.Result) {
	if launch == nil {
		return nil, b.Reject(adapter.KindBrowser, errors.New("no browser configured"))
	}
	page, err := launch(ctx)
	if err != nil {
		return nil, b.Reject(adapter.KindBrowser, err)
	}
	return page, nil
}

// Finish ends a browser flow. A failed flow goes through Base.Fail with the
// step's kind (error screenshot, browser closed). A successful one captures
// the result page, closes the browser and returns Ok.
func Finish(ctx context.Context, b *adapter.Base, page Page, postURL string, err error) adapter.Result {
	if err != nil {
		kind := adapter.KindSubmission
		var se *StepError
		if errors.As(err, &se) {
			kind = se.Kind
		}
		return b.Fail(ctx, kind, err, page, page)
	}

	shot, shotErr := b.CaptureAndUpload(ctx, page)
	if shotErr != nil {
		b.Logf(adapter.LevelWarning, "Could not capture result screenshot: %v", shotErr)
	}
	if closeErr := page.Close(); closeErr != nil {
		b.Logf(adapter.LevelDetail, "Could not close browser: %v", closeErr)
	}
	return b.Succeed(postURL, shot)
}
