package redact_test

import (
	"testing"

	"github.com/careerkit/profilescout/pkg/pipeline/redact"
	"github.com/stretchr/testify/assert"
)

func TestSecrets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{
			name: "bearer token",
			in:   "request failed: Bearer eyJhbGciOiJIUzI1NiJ9.payload.sig rejected",
			want: "request failed: Bearer <redacted> rejected",
		},
		{
			name: "gemini key kv",
			in:   "config error: gemini_api_key=AIzaSyFake123",
			want: "config error: <redacted_kv>",
		},
		{
			name: "tavily key kv",
			in:   "search failed: tavily-api-key: tvly-fake-key",
			want: "search failed: <redacted_kv>",
		},
		{
			name: "plain message untouched",
			in:   `query "Engineer at Acme" timed out`,
			want: `query "Engineer at Acme" timed out`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, redact.Secrets(tt.in))
		})
	}
}
