package auth

import (
	"net/http/httptest"
	"testing"
)

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header string
		url    string
		want   string
	}{
		{"bearer header", "Bearer abc.def.ghi", "/api/drawings", "abc.def.ghi"},
		{"malformed header", "abc.def.ghi", "/api/drawings", ""},
		{"wrong scheme", "Basic dXNlcjpwYXNz", "/api/drawings", ""},
		{"query fallback", "", "/ws/drawing/draw_1?token=abc.def.ghi", "abc.def.ghi"},
		{"header wins over query", "Bearer from-header", "/x?token=from-query", "from-header"},
		{"nothing", "", "/api/drawings", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			if got := TokenFromRequest(r); got != tt.want {
				t.Errorf("TokenFromRequest = %q, want %q", got, tt.want)
			}
		})
	}
}
