package answerai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/"})
}

func TestSurprise(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAuth = r.URL.Path, r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"type":"joke","content":{"setup":"s","punchline":"p"},"timestamp":"2025-11-02T00:00:00Z"}`))
	})

	s, err := c.Surprise(context.Background(), "tok", KindJoke)
	require.NoError(t, err)
	assert.Equal(t, "/api/v1/surprises/joke", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "joke", s.Type)
	assert.Equal(t, "s", s.Content["setup"])
	assert.False(t, s.IsDaily())
}

func TestDaily(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/surprises/daily", r.URL.Path)
		w.Write([]byte(`{"type":"daily_fact","content":{"fact":"f","daily":true},"timestamp":"t"}`))
	})

	s, err := c.Daily(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "daily_fact", s.Type)
	assert.True(t, s.IsDaily())
}

func TestSurprise_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		code     string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"code":"token_expired","message":"x"}}`, ErrUnauthorized, "token_expired"},
		{"unverified", http.StatusForbidden, `{"error":{"code":"email_not_verified","message":"x"}}`, ErrEmailNotVerified, "email_not_verified"},
		{"plain text", http.StatusBadGateway, `upstream down`, nil, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Random(context.Background(), "tok")
			require.Error(t, err)

			apiErr, ok := IsAPIError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.code, apiErr.Code)
			if tt.sentinel != nil {
				assert.True(t, errors.Is(err, tt.sentinel))
			}
		})
	}
}

func TestSurprise_NoToken(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:0"})
	_, err := c.Random(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestVerification(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/v1/auth/verify/request":
			w.WriteHeader(http.StatusAccepted)
			w.Write([]byte(`{"message":"Verification email sent"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/auth/verify":
			assert.Equal(t, "a b", r.URL.Query().Get("token"))
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Write([]byte(`{"message":"Email verified successfully","emailVerified":true}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	resp, err := c.RequestVerification(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "Verification email sent", resp.Message)

	resp, err = c.VerifyEmail(context.Background(), "a b")
	require.NoError(t, err)
	assert.True(t, resp.EmailVerified)
}
