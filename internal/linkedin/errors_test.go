package linkedin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyCommentError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		retryable  bool
		correctURN string
	}{
		{
			name:       "ugcPost mismatch in api body",
			err:        &APIError{Status: 400, Body: []byte(`{"message":"Comment thread mismatch, actual threadUrn: urn:li:ugcPost:7123456789","status":400}`)},
			retryable:  true,
			correctURN: "urn:li:ugcPost:7123456789",
		},
		{
			name:       "groupPost mismatch in plain error",
			err:        errors.New("bad request: actual threadUrn: urn:li:groupPost:55"),
			retryable:  true,
			correctURN: "urn:li:groupPost:55",
		},
		{
			name: "other thread type is not retried",
			err:  errors.New("actual threadUrn: urn:li:activity:1"),
		},
		{
			name: "unrelated error",
			err:  &APIError{Status: 500, Body: []byte(`{"message":"Internal error"}`)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := ClassifyCommentError(tt.err)
			require.NotNil(t, ce)
			assert.Equal(t, tt.retryable, ce.Retryable)
			assert.Equal(t, tt.correctURN, ce.CorrectURN)
			assert.ErrorIs(t, ce, tt.err)
		})
	}
}

func TestClassifyCommentErrorNil(t *testing.T) {
	assert.Nil(t, ClassifyCommentError(nil))
}

func TestAPIErrorMessageFallsBackToBody(t *testing.T) {
	e := &APIError{Status: 502, Body: []byte("upstream down")}
	assert.Equal(t, "upstream down", e.Message())
	assert.Equal(t, "linkedin returned 502: upstream down", e.Error())
	assert.False(t, e.Unauthorized())
}
