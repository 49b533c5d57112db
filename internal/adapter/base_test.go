package adapter_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/adapter/mocks"
)

type recordingSink struct {
	entries []adapter.Entry
	ids     []string
}

func (r *recordingSink) Log(requestID string, e adapter.Entry) {
	r.ids = append(r.ids, requestID)
	r.entries = append(r.entries, e)
}

type BaseTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	page     *mocks.MockPage
	browser  *mocks.MockBrowser
	uploader *mocks.MockUploader
	job      *mocks.MockJob
	sink     *recordingSink
}

func (s *BaseTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.page = mocks.NewMockPage(s.ctrl)
	s.browser = mocks.NewMockBrowser(s.ctrl)
	s.uploader = mocks.NewMockUploader(s.ctrl)
	s.job = mocks.NewMockJob(s.ctrl)
	s.sink = &recordingSink{}
}

func (s *BaseTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestBaseTestSuite(t *testing.T) {
	suite.Run(t, new(BaseTestSuite))
}

func (s *BaseTestSuite) newBase(production bool) *adapter.Base {
	return adapter.NewBase("DevToAdapter", adapter.Params{
		RequestID: "req-1",
		Website:   adapter.Website{URL: "https://dev.to", Category: "Technology"},
		Deps: adapter.Deps{
			Sink:          s.sink,
			Uploader:      s.uploader,
			Production:    production,
			ScreenshotDir: s.T().TempDir(),
		},
	})
}

func (s *BaseTestSuite) TestNewBaseDerivesCategoryAndRequestID() {
	b := s.newBase(false)
	s.Equal("Technology", b.Category)
	s.Equal("req-1", b.RequestID)

	anon := adapter.NewBase("X", adapter.Params{})
	s.NotEmpty(anon.RequestID)
}

func (s *BaseTestSuite) TestLogPrefixesAndBuffersEveryCall() {
	b := adapter.NewBase("PasteAdapter", adapter.Params{})

	b.Log("starting", adapter.LevelInfo, false)
	b.Log("filled form", "", false)

	logs := b.CollectedLogs()
	s.Require().Len(logs, 2)
	s.Equal(adapter.Entry{Adapter: "PasteAdapter", Message: "[PasteAdapter] starting", Level: adapter.LevelInfo}, logs[0])
	s.Equal(adapter.Entry{Adapter: "PasteAdapter", Message: "[PasteAdapter] filled form", Level: adapter.LevelDetail}, logs[1])
}

func (s *BaseTestSuite) TestSinkForwardingOutsideProduction() {
	b := s.newBase(false)

	b.Log("detail line", adapter.LevelDetail, false)
	b.Log("prod line", adapter.LevelInfo, true)

	s.Len(s.sink.entries, 2)
	s.Equal([]string{"req-1", "req-1"}, s.sink.ids)
	s.Equal("DevToAdapter", s.sink.entries[0].Adapter)
}

func (s *BaseTestSuite) TestSinkForwardingInProductionOnlyForProductionLogs() {
	b := s.newBase(true)

	b.Log("detail line", adapter.LevelDetail, false)
	b.Log("info line", adapter.LevelInfo, false)
	b.Log("prod line", adapter.LevelInfo, true)

	s.Require().Len(s.sink.entries, 1)
	s.Equal("[DevToAdapter] prod line", s.sink.entries[0].Message)
	s.Len(b.CollectedLogs(), 2)
}

func (s *BaseTestSuite) TestJobReceivesEveryMessage() {
	b := adapter.NewBase("TumblrAdapter", adapter.Params{Job: s.job, Deps: adapter.Deps{Production: true}})

	s.job.EXPECT().Log("[TumblrAdapter] one")
	s.job.EXPECT().Log("[TumblrAdapter] two")

	b.Log("one", adapter.LevelDetail, false)
	b.Log("two", adapter.LevelError, false)
}

func (s *BaseTestSuite) TestCollectedLogsFiltering() {
	levels := []adapter.Level{
		adapter.LevelDetail, adapter.LevelInfo, adapter.LevelDetail,
		adapter.LevelSuccess, adapter.LevelWarning, adapter.LevelError,
	}

	dev := s.newBase(false)
	prod := s.newBase(true)
	for _, l := range levels {
		dev.Log(string(l), l, false)
		prod.Log(string(l), l, false)
	}

	s.Len(dev.CollectedLogs(), len(levels))
	for i, e := range dev.CollectedLogs() {
		s.Equal(levels[i], e.Level)
	}

	var got []adapter.Level
	for _, e := range prod.CollectedLogs() {
		got = append(got, e.Level)
	}
	s.Equal([]adapter.Level{adapter.LevelInfo, adapter.LevelSuccess, adapter.LevelWarning, adapter.LevelError}, got)
}

func (s *BaseTestSuite) TestFixedLevelWrappers() {
	b := s.newBase(false)
	b.LogPublicationSuccess("https://dev.to/a")
	b.LogScreenshotUploaded("https://img/a.png")
	b.LogErrorScreenshotUploaded("https://img/e.png")

	logs := b.CollectedLogs()
	s.Require().Len(logs, 3)
	s.Equal(adapter.LevelSuccess, logs[0].Level)
	s.Contains(logs[0].Message, "https://dev.to/a")
	s.Equal(adapter.LevelInfo, logs[1].Level)
	s.Equal(adapter.LevelWarning, logs[2].Level)
}

func (s *BaseTestSuite) TestHandleErrorScreenshotsUploadsClosesAndReturnsOriginal() {
	b := s.newBase(false)
	orig := errors.New("submit button missing")

	gomock.InOrder(
		s.page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, path string) error {
				return os.WriteFile(path, []byte("png"), 0600)
			}).Times(1),
		s.uploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://res.cloudinary.com/e.png", nil),
		s.browser.EXPECT().Close().Return(nil),
	)

	err := b.HandleError(context.Background(), orig, s.page, s.browser)
	s.Same(orig, err)

	var messages []string
	for _, e := range b.CollectedLogs() {
		messages = append(messages, e.Message)
	}
	s.Contains(messages, "[DevToAdapter] Error screenshot uploaded: https://res.cloudinary.com/e.png")
}

func (s *BaseTestSuite) TestHandleErrorSurvivesScreenshotAndCloseFailures() {
	b := s.newBase(false)
	orig := errors.New("timeout")

	s.page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).Return(errors.New("target closed")).Times(1)
	s.browser.EXPECT().Close().Return(errors.New("already closed"))

	err := b.HandleError(context.Background(), orig, s.page, s.browser)
	s.Same(orig, err)
}

func (s *BaseTestSuite) TestHandleErrorRunsAfterContextCancelled() {
	b := s.newBase(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, path string) error {
			s.NoError(ctx.Err())
			return os.WriteFile(path, []byte("png"), 0600)
		})
	s.uploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://img/e.png", nil)

	err := b.HandleError(ctx, context.Canceled, s.page, nil)
	s.ErrorIs(err, context.Canceled)
}

func (s *BaseTestSuite) TestHandleErrorWithoutPageOrBrowser() {
	b := s.newBase(false)
	orig := errors.New("missing credentials")

	s.Same(orig, b.HandleError(context.Background(), orig, nil, nil))
}

func (s *BaseTestSuite) TestFailBuildsErrResult() {
	b := s.newBase(false)
	res := b.Fail(context.Background(), adapter.KindSubmission, errors.New("form rejected"), nil, nil)

	s.Equal(adapter.Err{Kind: adapter.KindSubmission, Message: "form rejected"}, res)
	s.False(adapter.Succeeded(res))
}

func (s *BaseTestSuite) TestCaptureAndUpload() {
	b := s.newBase(false)

	s.page.EXPECT().Screenshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, path string) error {
			return os.WriteFile(path, []byte("png"), 0600)
		})
	s.uploader.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://img/ok.png", nil)

	url, err := b.CaptureAndUpload(context.Background(), s.page)
	s.Require().NoError(err)
	s.Equal("https://img/ok.png", url)
}

func (s *BaseTestSuite) TestBasePublishIsNotImplemented() {
	b := s.newBase(false)
	res := b.Publish(context.Background())

	s.Equal(adapter.Err{Kind: adapter.KindNotImplemented, Message: "Publish method not implemented!"}, res)
}

func (s *BaseTestSuite) TestSucceed() {
	b := s.newBase(false)
	res := b.Succeed("https://dev.to/post", "https://img/p.png")

	s.True(adapter.Succeeded(res))
	s.Equal(adapter.Summary{Success: true, PostURL: "https://dev.to/post", ScreenshotURL: "https://img/p.png"}, res.Summary())
}
