package linkedin

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// APIError is a non-2xx response from LinkedIn. Body is passed through verbatim.
type APIError struct {
	Status int
	Body   []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin returned %d: %s", e.Status, e.Message())
}

// Message returns LinkedIn's "message" field, or the raw body
func (e *APIError) Message() string {
	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(e.Body, &body) == nil && body.Message != "" {
		return body.Message
	}
	return string(e.Body)
}

// Unauthorized reports whether the member token was rejected
func (e *APIError) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized
}

// threadURNMismatch matches LinkedIn's complaint when a comment targets the
// activity URN instead of the share or group post it belongs to.
var threadURNMismatch = regexp.MustCompile(`actual threadUrn: (urn:li:(?:ugcPost|groupPost):\d+)`)

// CommentError is returned when posting a comment fails. When Retryable is set,
// CorrectURN is the thread the comment should be posted to instead.
type CommentError struct {
	Err        error
	Retryable  bool
	CorrectURN string
}

func (e *CommentError) Error() string {
	if e.Retryable {
		return fmt.Sprintf("failed to post comment (retry on %s): %v", e.CorrectURN, e.Err)
	}
	return fmt.Sprintf("failed to post comment: %v", e.Err)
}

func (e *CommentError) Unwrap() error {
	return e.Err
}

// ClassifyCommentError wraps err, marking it retryable when LinkedIn names the
// correct thread URN. A nil err yields nil.
func ClassifyCommentError(err error) *CommentError {
	if err == nil {
		return nil
	}

	ce := &CommentError{Err: err}

	msg := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message() + " " + string(apiErr.Body)
	}

	if m := threadURNMismatch.FindStringSubmatch(msg); m != nil {
		ce.Retryable = true
		ce.CorrectURN = m[1]
	}
	return ce
}
