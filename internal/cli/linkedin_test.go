package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServerURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":3000", "http://localhost:3000"},
		{"0.0.0.0:8080", "http://localhost:8080"},
		{"example.com:80", "http://example.com:80"},
		{"https://api.example.com/", "https://api.example.com"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, serverURL(tt.addr), tt.addr)
	}
}
