package linkedincomment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/config"
	"github.com/ibeckermayer/syndicate/internal/linkedin"
	linkedinmocks "github.com/ibeckermayer/syndicate/internal/linkedin/mocks"
	"github.com/ibeckermayer/syndicate/internal/llm"
	"github.com/ibeckermayer/syndicate/internal/session"
	"github.com/ibeckermayer/syndicate/internal/sites/web"
	"github.com/ibeckermayer/syndicate/internal/store"
	storemocks "github.com/ibeckermayer/syndicate/internal/store/mocks"
	"github.com/ibeckermayer/syndicate/internal/types"
)

const (
	userURN = "urn:li:person:abc"
	token   = "tok"
)

type fakeLLM struct {
	reply string
	err   error
	calls []llm.ChatRequest
}

func (f *fakeLLM) Complete(_ context.Context, req llm.ChatRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.reply, f.err
}

type fakeLinks struct{ link string }

func (f fakeLinks) Find(context.Context, types.Category, string) (string, error) {
	return f.link, nil
}

type CommentTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	repo       *storemocks.MockRepository
	api        *linkedinmocks.MockAPI
	sessions   *session.FileStore
	categories *fakeLLM
	comments   *fakeLLM
}

func (s *CommentTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = storemocks.NewMockRepository(s.ctrl)
	s.api = linkedinmocks.NewMockAPI(s.ctrl)

	sessions, err := session.Open(filepath.Join(s.T().TempDir(), "sessions.json"), true)
	s.Require().NoError(err)
	s.Require().NoError(sessions.Set("sess-1", session.Session{AccessToken: token, UserURN: userURN}))
	s.sessions = sessions

	s.categories = &fakeLLM{reply: `["Technology", "Business"]<|eot_id|>`}
	s.comments = &fakeLLM{reply: `Comment: "Great point about tooling."`}
}

func TestCommentTestSuite(t *testing.T) {
	suite.Run(t, new(CommentTestSuite))
}

func (s *CommentTestSuite) newAdapter(website adapter.Website) *Adapter {
	return New(adapter.Params{
		Website: website,
		Content: adapter.Content{Title: "Shipping Go services", Description: "Notes on deployment"},
	}, Services{
		CategoryLLM:     s.categories,
		CommentLLM:      s.comments,
		Repo:            s.repo,
		LinkedIn:        s.api,
		Sessions:        s.sessions,
		RelatedLinks:    fakeLinks{link: "https://blog.example.com/deploy"},
		BusinessContext: "A developer tools company",
	})
}

func (s *CommentTestSuite) website() adapter.Website {
	return adapter.Website{Site: "linkedin-comment", Credentials: map[string]string{"session_id": "sess-1"}}
}

func posts(urns ...string) []types.LinkedInPost {
	out := make([]types.LinkedInPost, len(urns))
	for i, u := range urns {
		out[i] = types.LinkedInPost{BackendURN: u, AuthorName: "Grace", PostText: "We moved to Go", Category: types.CategoryTechnology}
	}
	return out
}

func (s *CommentTestSuite) TestPublishComment() {
	ctx := context.Background()
	gomock.InOrder(
		s.repo.EXPECT().CandidatePosts(gomock.Any(), types.CategoryTechnology, candidateLimit).
			Return(posts("urn:li:ugcPost:1", "urn:li:ugcPost:2"), nil),
		s.repo.EXPECT().HasUserCommented(gomock.Any(), userURN, "urn:li:ugcPost:1").Return(true, nil),
		s.repo.EXPECT().HasUserCommented(gomock.Any(), userURN, "urn:li:ugcPost:2").Return(false, nil),
		s.api.EXPECT().CreateComment(gomock.Any(), token, userURN, "urn:li:ugcPost:2", "Great point about tooling.").
			Return(&linkedin.Comment{ID: "7001"}, nil),
		s.repo.EXPECT().SaveComment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, c *types.LinkedInComment) error {
				s.Equal("7001", c.CommentID)
				s.Equal(userURN, c.UserID)
				s.Equal("urn:li:ugcPost:2", c.PostID)
				s.Equal(types.CategoryTechnology, c.Category)
				s.Equal("https://www.linkedin.com/feed/update/urn:li:ugcPost:2", c.PostedURL)
				return nil
			}),
	)

	res := s.newAdapter(s.website()).Publish(ctx)
	s.Require().IsType(adapter.Ok{}, res)
	s.Equal("https://www.linkedin.com/feed/update/urn:li:ugcPost:2", res.(adapter.Ok).PostURL)

	s.Require().Len(s.comments.calls, 1)
	prompt := s.comments.calls[0].Messages[1].Content
	s.Contains(prompt, "We moved to Go")
	s.Contains(prompt, "https://blog.example.com/deploy")
	s.Contains(prompt, "A developer tools company")
}

func (s *CommentTestSuite) TestRetriesOnCorrectThread() {
	mismatch := &linkedin.APIError{
		Status: http.StatusBadRequest,
		Body:   []byte(`{"message":"Invalid thread. actual threadUrn: urn:li:ugcPost:42"}`),
	}

	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:activity:9"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	gomock.InOrder(
		s.api.EXPECT().CreateComment(gomock.Any(), token, userURN, "urn:li:activity:9", gomock.Any()).Return(nil, mismatch),
		s.api.EXPECT().CreateComment(gomock.Any(), token, userURN, "urn:li:ugcPost:42", gomock.Any()).Return(&linkedin.Comment{ID: "8"}, nil),
	)
	s.repo.EXPECT().SaveComment(gomock.Any(), gomock.Any()).Return(nil)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Require().IsType(adapter.Ok{}, res)
	s.Equal("https://www.linkedin.com/feed/update/urn:li:ugcPost:42", res.(adapter.Ok).PostURL)
}

func (s *CommentTestSuite) TestRetriesOnlyOnce() {
	mismatch := &linkedin.APIError{
		Status: http.StatusBadRequest,
		Body:   []byte(`{"message":"actual threadUrn: urn:li:ugcPost:42"}`),
	}

	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:activity:9"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	s.api.EXPECT().CreateComment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, mismatch).Times(2)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Require().IsType(adapter.Err{}, res)
	s.Equal(adapter.KindAPI, res.(adapter.Err).Kind)
}

func (s *CommentTestSuite) TestNonRetryableError() {
	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:ugcPost:1"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	s.api.EXPECT().CreateComment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &linkedin.APIError{Status: http.StatusForbidden, Body: []byte(`{"message":"Not enough permissions"}`)})

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Equal(adapter.Err{
		Kind:    adapter.KindAPI,
		Message: "failed to post comment: linkedin returned 403: Not enough permissions",
	}, res)
}

func (s *CommentTestSuite) TestNoCandidate() {
	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:ugcPost:1"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Require().IsType(adapter.Err{}, res)
	s.Equal(adapter.KindNoCandidate, res.(adapter.Err).Kind)
	s.Empty(s.comments.calls)
}

func (s *CommentTestSuite) TestWebsiteCategorySkipsClassifier() {
	website := s.website()
	website.Category = "finance"
	s.repo.EXPECT().CandidatePosts(gomock.Any(), types.CategoryFinance, gomock.Any()).Return(nil, nil)

	res := s.newAdapter(website).Publish(context.Background())
	s.Equal(adapter.KindNoCandidate, res.(adapter.Err).Kind)
	s.Empty(s.categories.calls)
}

func (s *CommentTestSuite) TestClassifierFailureUsesDefault() {
	s.categories.err = errors.New("connection refused")
	s.repo.EXPECT().CandidatePosts(gomock.Any(), types.DefaultCategory, gomock.Any()).Return(nil, nil)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Equal(adapter.KindNoCandidate, res.(adapter.Err).Kind)
}

func (s *CommentTestSuite) TestEmptyCommentIsLLMError() {
	s.comments.reply = "<|eot_id|>"
	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:ugcPost:1"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Equal(adapter.Err{Kind: adapter.KindLLM, Message: "generated comment is empty"}, res)
}

func (s *CommentTestSuite) TestUnrecordedComment() {
	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:ugcPost:1"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	s.api.EXPECT().CreateComment(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(&linkedin.Comment{ID: "1"}, nil)
	s.repo.EXPECT().SaveComment(gomock.Any(), gomock.Any()).Return(store.ErrDuplicate)

	res := s.newAdapter(s.website()).Publish(context.Background())
	s.Require().IsType(adapter.Err{}, res)
	s.Equal(adapter.KindStore, res.(adapter.Err).Kind)
	s.ErrorContains(res.(adapter.Err), "not recorded")
}

func (s *CommentTestSuite) TestUnknownSession() {
	website := adapter.Website{Credentials: map[string]string{"session_id": "nope"}}
	res := s.newAdapter(website).Publish(context.Background())
	s.Equal(adapter.KindAuth, res.(adapter.Err).Kind)
}

func (s *CommentTestSuite) TestExplicitToken() {
	website := adapter.Website{Credentials: map[string]string{"access_token": "t2", "user_urn": "urn:li:person:x"}}
	s.repo.EXPECT().CandidatePosts(gomock.Any(), gomock.Any(), gomock.Any()).Return(posts("urn:li:ugcPost:1"), nil)
	s.repo.EXPECT().HasUserCommented(gomock.Any(), "urn:li:person:x", "urn:li:ugcPost:1").Return(false, nil)
	s.api.EXPECT().CreateComment(gomock.Any(), "t2", "urn:li:person:x", "urn:li:ugcPost:1", gomock.Any()).Return(&linkedin.Comment{ID: "5"}, nil)
	s.repo.EXPECT().SaveComment(gomock.Any(), gomock.Any()).Return(nil)

	res := s.newAdapter(website).Publish(context.Background())
	s.IsType(adapter.Ok{}, res)
}

func (s *CommentTestSuite) TestMissingCredentials() {
	res := s.newAdapter(adapter.Website{}).Publish(context.Background())
	s.Equal(adapter.Err{Kind: adapter.KindAuth, Message: "session_id or missing credentials: access_token, user_urn"}, res)
}

func TestRelatedLinkClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Technology", r.URL.Query().Get("category"))
		assert.Equal(t, "go tooling", r.URL.Query().Get("q"))
		assert.Equal(t, "key", r.Header.Get("x-api-key"))
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(`{"links":[{"url":""},{"url":"https://example.com/a","title":"A"}]}`))
	}))
	defer srv.Close()

	c := NewRelatedLinkClient(config.RelatedLinksConfig{Endpoint: srv.URL, APIKey: "key"}, web.HTTPOptions{})
	require.NotNil(t, c)

	link, err := c.Find(context.Background(), types.CategoryTechnology, "go tooling")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", link)
}

func TestRelatedLinkClientDisabled(t *testing.T) {
	assert.Nil(t, NewRelatedLinkClient(config.RelatedLinksConfig{}, web.HTTPOptions{}))
}
