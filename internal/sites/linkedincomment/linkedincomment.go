// Package linkedincomment answers a stored LinkedIn post in the content's
// category with an LLM-written comment.
package linkedincomment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ibeckermayer/syndicate/internal/adapter"
	"github.com/ibeckermayer/syndicate/internal/linkedin"
	"github.com/ibeckermayer/syndicate/internal/llm"
	"github.com/ibeckermayer/syndicate/internal/session"
	"github.com/ibeckermayer/syndicate/internal/store"
	"github.com/ibeckermayer/syndicate/internal/types"
)

const (
	Name = "LinkedInComment"

	FeedURL = "https://www.linkedin.com/feed/update/"

	candidateLimit  = 20
	relatedQueryLen = 200
)

// Commenter posts comments. *linkedin.Client implements it.
type Commenter interface {
	CreateComment(ctx context.Context, accessToken, actor, threadURN, text string) (*linkedin.Comment, error)
}

// Services are the collaborators the adapter needs beyond adapter.Deps
type Services struct {
	CategoryLLM     llm.Provider
	CommentLLM      llm.Provider
	Repo            store.Repository
	LinkedIn        Commenter
	Sessions        session.Store
	RelatedLinks    RelatedLinks
	BusinessContext string
}

// Adapter publishes content to LinkedIn posts as a comment.
type Adapter struct {
	*adapter.Base
	svc Services
}

// New builds an Adapter from the shared publishing params.
func New(p adapter.Params, svc Services) *Adapter {
	if svc.CommentLLM == nil {
		svc.CommentLLM = svc.CategoryLLM
	}
	return &Adapter{
		Base: adapter.NewBase(Name, p),
		svc:  svc,
	}
}

// Publish posts the content and returns the resulting URL or a classified error.
func (a *Adapter) Publish(ctx context.Context) adapter.Result {
	if a.svc.Repo == nil || a.svc.LinkedIn == nil || a.svc.CommentLLM == nil {
		return a.Reject(adapter.KindValidation, errors.New("linkedin comment adapter is not configured"))
	}

	sess, err := a.session()
	if err != nil {
		return a.Reject(adapter.KindAuth, err)
	}

	category := a.category(ctx)
	a.Logf(adapter.LevelInfo, "Using category %s", category)

	post, err := a.candidate(ctx, category, sess.UserURN)
	if err != nil {
		if errors.Is(err, errNoCandidate) {
			return a.Reject(adapter.KindNoCandidate, err)
		}
		return a.Reject(adapter.KindStore, err)
	}
	a.Logf(adapter.LevelDetail, "Selected post %s by %s", post.BackendURN, post.AuthorName)

	text, err := a.comment(ctx, post, category)
	if err != nil {
		return a.Reject(adapter.KindLLM, err)
	}

	thread, posted, err := a.postComment(ctx, sess, post.BackendURN, text)
	if err != nil {
		return a.Reject(adapter.KindAPI, err)
	}
	postedURL := FeedURL + thread

	commentID := posted.ID
	if commentID == "" {
		commentID = uuid.NewString()
	}
	record := &types.LinkedInComment{
		CommentID:   commentID,
		UserID:      sess.UserURN,
		PostID:      post.BackendURN,
		CommentText: text,
		Category:    category,
		PostedURL:   postedURL,
	}
	if err := a.svc.Repo.SaveComment(ctx, record); err != nil {
		return a.Reject(adapter.KindStore, fmt.Errorf("comment posted at %s but not recorded: %w", postedURL, err))
	}

	return a.Succeed(postedURL, "")
}

// session resolves the member to comment as: a stored OAuth session named by
// session_id, or an explicit access_token and user_urn.
func (a *Adapter) session() (session.Session, error) {
	if id := a.Website.Credential("session_id"); id != "" {
		if a.svc.Sessions == nil {
			return session.Session{}, errors.New("no session store configured")
		}
		sess, ok := a.svc.Sessions.Get(id)
		if !ok {
			return session.Session{}, fmt.Errorf("unknown session %s, sign in through /auth first", id)
		}
		return sess, nil
	}

	if err := a.Website.RequireCredentials("access_token", "user_urn"); err != nil {
		return session.Session{}, fmt.Errorf("session_id or %w", err)
	}
	return session.Session{
		AccessToken: a.Website.Credential("access_token"),
		UserURN:     a.Website.Credential("user_urn"),
	}, nil
}

// category classifies the content. A configured website category wins; a
// classifier failure falls back to the default category.
func (a *Adapter) category(ctx context.Context) types.Category {
	if c, ok := types.ParseCategory(a.Category); ok {
		return c
	}
	if a.svc.CategoryLLM == nil {
		return types.DefaultCategory
	}

	a.Log("Classifying content", adapter.LevelDetail, false)
	raw, err := a.svc.CategoryLLM.Complete(ctx, llm.ChatRequest{
		Messages: llm.CategoryPrompt(llm.CategoryInput{
			BusinessContext: a.svc.BusinessContext,
			WebsiteURL:      a.Website.URL,
			Title:           a.Content.Title,
			Description:     a.Content.Summary(),
			Tags:            a.Content.Tags,
		}, types.CategoryNames()),
	})
	if err != nil {
		a.Logf(adapter.LevelWarning, "Category classification failed, using %s: %v", types.DefaultCategory, err)
		return types.DefaultCategory
	}
	return llm.ResolveCategory(raw)
}

var errNoCandidate = errors.New("no uncommented post available")

// candidate returns the highest priority post in category userURN has not commented on
func (a *Adapter) candidate(ctx context.Context, category types.Category, userURN string) (*types.LinkedInPost, error) {
	posts, err := a.svc.Repo.CandidatePosts(ctx, category, candidateLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate posts: %w", err)
	}

	for i := range posts {
		done, err := a.svc.Repo.HasUserCommented(ctx, userURN, posts[i].BackendURN)
		if err != nil {
			return nil, fmt.Errorf("failed to check previous comments: %w", err)
		}
		if done {
			a.Logf(adapter.LevelDetail, "Already commented on %s, skipping", posts[i].BackendURN)
			continue
		}
		return &posts[i], nil
	}
	return nil, fmt.Errorf("%w in %s", errNoCandidate, category)
}

func (a *Adapter) comment(ctx context.Context, post *types.LinkedInPost, category types.Category) (string, error) {
	in := llm.CommentInput{
		AuthorName:      post.AuthorName,
		PostText:        post.PostText,
		Category:        string(category),
		BusinessContext: a.svc.BusinessContext,
		RelatedLink:     a.relatedLink(ctx, category, post.PostText),
	}

	a.Log("Generating comment", adapter.LevelInfo, true)
	raw, err := a.svc.CommentLLM.Complete(ctx, llm.ChatRequest{Messages: llm.CommentPrompt(in)})
	if err != nil {
		return "", fmt.Errorf("failed to generate comment: %w", err)
	}
	text := llm.CleanCompletion(raw)
	if text == "" {
		return "", errors.New("generated comment is empty")
	}
	return text, nil
}

// relatedLink is optional; failures are logged and yield ""
func (a *Adapter) relatedLink(ctx context.Context, category types.Category, postText string) string {
	if a.svc.RelatedLinks == nil {
		return ""
	}
	query := []rune(strings.TrimSpace(postText))
	if len(query) > relatedQueryLen {
		query = query[:relatedQueryLen]
	}
	link, err := a.svc.RelatedLinks.Find(ctx, category, string(query))
	if err != nil {
		a.Logf(adapter.LevelWarning, "Related link lookup failed: %v", err)
		return ""
	}
	if link != "" {
		a.Logf(adapter.LevelDetail, "Related link: %s", link)
	}
	return link
}

// postComment posts text on thread, retrying once on the thread LinkedIn names
// when the stored URN is not the comment thread. It returns the thread used.
func (a *Adapter) postComment(ctx context.Context, sess session.Session, thread, text string) (string, *linkedin.Comment, error) {
	a.Log("Posting comment", adapter.LevelInfo, true)
	c, err := a.svc.LinkedIn.CreateComment(ctx, sess.AccessToken, sess.UserURN, thread, text)
	if err == nil {
		return thread, c, nil
	}

	ce := linkedin.ClassifyCommentError(err)
	if !ce.Retryable {
		return "", nil, ce
	}

	a.Logf(adapter.LevelWarning, "Retrying comment on %s", ce.CorrectURN)
	c, err = a.svc.LinkedIn.CreateComment(ctx, sess.AccessToken, sess.UserURN, ce.CorrectURN, text)
	if err != nil {
		return "", nil, linkedin.ClassifyCommentError(err)
	}
	return ce.CorrectURN, c, nil
}
