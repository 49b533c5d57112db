package justpaste

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
	"github.com/ibeckermayer/syndicate/internal/sites/web/mocks"
)

func newAdapter(t *testing.T, page *mocks.MockPage) *Adapter {
	return New(adapter.Params{
		Website: adapter.Website{Site: "justpaste"},
		Content: adapter.Content{Title: "Notes", Body: "Some text", URL: "https://blog.example.com/p"},
		Deps:    adapter.Deps{ScreenshotDir: t.TempDir()},
	}, func(context.Context) (web.Page, error) { return page, nil })
}

func TestPaste(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	gomock.InOrder(
		page.EXPECT().Navigate(DefaultURL).Return(nil),
		page.EXPECT().Fill(selTitle, "Notes").Return(nil),
		page.EXPECT().Type(selEditor, "Some text\n\nhttps://blog.example.com/p").Return(nil),
		page.EXPECT().Click(selPublish).Return(nil),
		page.EXPECT().WaitAny(publishTimeout, selPublished, selError, selCaptcha).Return(selPublished, nil),
		page.EXPECT().Location().Return("https://justpaste.it/abc12", nil),
		page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(nil),
		page.EXPECT().Close().Return(nil),
	)

	res := newAdapter(t, page).Publish(context.Background())
	require.IsType(t, adapter.Ok{}, res)
	assert.Equal(t, "https://justpaste.it/abc12", res.(adapter.Ok).PostURL)
}

func TestPasteStaysOnEditor(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	page.EXPECT().Navigate(gomock.Any()).Return(nil)
	page.EXPECT().Fill(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Type(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Click(selPublish).Return(nil)
	page.EXPECT().WaitAny(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(selPublished, nil)
	page.EXPECT().Location().Return("https://justpaste.it", nil)
	page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Close().Return(nil)

	res := newAdapter(t, page).Publish(context.Background())
	assert.Equal(t, adapter.Err{Kind: adapter.KindVerification, Message: "article url not assigned"}, res)
}

func TestCaptcha(t *testing.T) {
	ctrl := gomock.NewController(t)
	page := mocks.NewMockPage(ctrl)

	page.EXPECT().Navigate(gomock.Any()).Return(nil)
	page.EXPECT().Fill(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Type(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Click(selPublish).Return(nil)
	page.EXPECT().WaitAny(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(selCaptcha, nil)
	page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(nil)
	page.EXPECT().Close().Return(nil)

	res := newAdapter(t, page).Publish(context.Background())
	assert.Equal(t, adapter.Err{Kind: adapter.KindSubmission, Message: "captcha required"}, res)
}

func TestBodyDoesNotRepeatLink(t *testing.T) {
	c := adapter.Content{Body: "see https://x.dev", URL: "https://x.dev"}
	assert.Equal(t, "see https://x.dev", Body(c))
}
