package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/mazen160/go-random"

	"github.com/ibeckermayer/syndicate/internal/session"
)

// SessionHeader carries the caller's session id
const SessionHeader = "X-Session-ID"

const (
	sessionIDLength = 32
	stateLength     = 32

	// pending OAuth states
	maxPendingStates = 4096
	stateTTL         = 10 * time.Minute
)

// commentURN matches urn:li:comment:(<thread urn>,<comment id>)
var commentURN = regexp.MustCompile(`^urn:li:comment:\((urn:li:[A-Za-z]+:\d+),(\d+)\)$`)

//go:generate mockgen -source=handlers.go -destination=mocks/mocks.go -package=mocks

// API is the subset of Client the handlers use
type API interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*Token, error)
	UserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
	CreatePost(ctx context.Context, accessToken, author, text string) (string, error)
	GetPost(ctx context.Context, accessToken, postURN string) ([]byte, error)
	DeletePost(ctx context.Context, accessToken, postURN string) error
	UpdatePost(ctx context.Context, accessToken, postURN, text string) error
	CreateComment(ctx context.Context, accessToken, actor, threadURN, text string) (*Comment, error)
	GetComments(ctx context.Context, accessToken, threadURN string) ([]byte, error)
	DeleteComment(ctx context.Context, accessToken, actor, threadURN, commentID string) error
}

var _ API = (*Client)(nil)

// Handler serves the LinkedIn façade
type Handler struct {
	api      API
	sessions session.Store
	logger   *slog.Logger

	stateMu sync.Mutex
	states  *expirable.LRU[string, struct{}]
}

// NewHandler creates a Handler
func NewHandler(api API, sessions session.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		api:      api,
		sessions: sessions,
		logger:   logger.With("component", "linkedin-http"),
		states:   expirable.NewLRU[string, struct{}](maxPendingStates, nil, stateTTL),
	}
}

// Register adds the façade routes to mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /auth", h.RedirectToAuth)
	mux.HandleFunc("GET /auth/callback", h.HandleCallback)
	mux.HandleFunc("POST /posts", h.HandleCreatePost)
	mux.HandleFunc("GET /posts/{postId}", h.HandleGetPost)
	mux.HandleFunc("DELETE /posts/{postId}", h.HandleDeletePost)
	mux.HandleFunc("PATCH /posts/{postId}", h.HandleUpdatePost)
	mux.HandleFunc("POST /posts/{postId}/comments", h.HandleCreateComment)
	mux.HandleFunc("GET /posts/{postId}/comments", h.HandleGetComments)
	mux.HandleFunc("DELETE /comments/{commentId}", h.HandleDeleteComment)
}

// RedirectToAuth sends the member to LinkedIn's consent page with a one-time
// state issued here. The session id is only created once the callback succeeds.
func (h *Handler) RedirectToAuth(w http.ResponseWriter, r *http.Request) {
	state, err := random.String(stateLength)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create oauth state")
		return
	}
	h.states.Add(state, struct{}{})

	http.Redirect(w, r, h.api.AuthURL(state), http.StatusFound)
}

// consumeState reports whether state was issued by RedirectToAuth and has not
// expired or been used
func (h *Handler) consumeState(state string) bool {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	if _, ok := h.states.Get(state); !ok {
		return false
	}
	h.states.Remove(state)
	return true
}

// HandleCallback completes the OAuth flow and stores the member under a new session id
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %s", e, q.Get("error_description")))
		return
	}

	code, state := q.Get("code"), q.Get("state")
	if code == "" || state == "" {
		writeError(w, http.StatusBadRequest, "code and state are required")
		return
	}
	if !h.consumeState(state) {
		writeError(w, http.StatusBadRequest, "unknown or expired state")
		return
	}

	token, err := h.api.ExchangeCode(r.Context(), code)
	if err != nil {
		h.writeLinkedInError(w, "exchange code", err)
		return
	}

	info, err := h.api.UserInfo(r.Context(), token.AccessToken)
	if err != nil {
		h.writeLinkedInError(w, "load userinfo", err)
		return
	}

	id, err := random.String(sessionIDLength)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session id")
		return
	}

	sess := session.Session{AccessToken: token.AccessToken, UserURN: info.URN()}
	if err := h.sessions.Set(id, sess); err != nil {
		h.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	h.logger.Info("member authenticated", "user", sess.UserURN)
	writeJSON(w, http.StatusOK, map[string]string{
		"sessionId": id,
		"userUrn":   sess.UserURN,
	})
}

type textBody struct {
	Text string `json:"text"`
}

// HandleCreatePost publishes a text share as the session's member
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	body, ok := readText(w, r)
	if !ok {
		return
	}

	id, err := h.api.CreatePost(r.Context(), sess.AccessToken, sess.UserURN, body.Text)
	if err != nil {
		h.writeLinkedInError(w, "create post", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// HandleGetPost returns LinkedIn's post JSON
func (h *Handler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	raw, err := h.api.GetPost(r.Context(), sess.AccessToken, r.PathValue("postId"))
	if err != nil {
		h.writeLinkedInError(w, "get post", err)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

// HandleDeletePost deletes a post
func (h *Handler) HandleDeletePost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	if err := h.api.DeletePost(r.Context(), sess.AccessToken, r.PathValue("postId")); err != nil {
		h.writeLinkedInError(w, "delete post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdatePost replaces a post's text
func (h *Handler) HandleUpdatePost(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	body, ok := readText(w, r)
	if !ok {
		return
	}

	if err := h.api.UpdatePost(r.Context(), sess.AccessToken, r.PathValue("postId"), body.Text); err != nil {
		h.writeLinkedInError(w, "update post", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateComment comments on a post as the session's member
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	body, ok := readText(w, r)
	if !ok {
		return
	}

	c, err := h.api.CreateComment(r.Context(), sess.AccessToken, sess.UserURN, r.PathValue("postId"), body.Text)
	if err != nil {
		h.writeLinkedInError(w, "create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

// HandleGetComments returns LinkedIn's comment collection for a post
func (h *Handler) HandleGetComments(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	raw, err := h.api.GetComments(r.Context(), sess.AccessToken, r.PathValue("postId"))
	if err != nil {
		h.writeLinkedInError(w, "get comments", err)
		return
	}
	writeRaw(w, http.StatusOK, raw)
}

// HandleDeleteComment deletes a comment. commentId is either a comment URN, which
// names its thread, or a bare id with the thread in the postId query parameter.
func (h *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	thread, id := SplitCommentURN(r.PathValue("commentId"))
	if thread == "" {
		thread = r.URL.Query().Get("postId")
	}
	if thread == "" {
		writeError(w, http.StatusBadRequest, "postId query parameter is required for a bare comment id")
		return
	}

	if err := h.api.DeleteComment(r.Context(), sess.AccessToken, sess.UserURN, thread, id); err != nil {
		h.writeLinkedInError(w, "delete comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SplitCommentURN returns the thread URN and comment id of a comment URN. For a
// bare id the thread is empty.
func SplitCommentURN(s string) (thread, id string) {
	if m := commentURN.FindStringSubmatch(s); m != nil {
		return m[1], m[2]
	}
	return "", s
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		writeError(w, http.StatusUnauthorized, "missing "+SessionHeader+" header")
		return session.Session{}, false
	}
	sess, ok := h.sessions.Get(id)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unknown session")
		return session.Session{}, false
	}
	return sess, true
}

func readText(w http.ResponseWriter, r *http.Request) (textBody, bool) {
	var body textBody
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return body, false
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return body, false
	}
	return body, true
}

// writeLinkedInError passes LinkedIn's body through: 401 stays 401, everything else is 500
func (h *Handler) writeLinkedInError(w http.ResponseWriter, op string, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status := http.StatusInternalServerError
		if apiErr.Unauthorized() {
			status = http.StatusUnauthorized
		}
		h.logger.Warn("linkedin request rejected", "op", op, "status", apiErr.Status)
		writeRaw(w, status, apiErr.Body)
		return
	}

	h.logger.Error("linkedin request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
