package ai

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medicgrow/backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(baseURL string, keys []string) *GeminiClient {
	return &GeminiClient{
		keys:       keys,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		model:      "gemini-flash-latest",
		rng:        rand.New(rand.NewSource(1)),
	}
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

const okBody = `{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}`

func TestKeyPoolOrderAndDedupe(t *testing.T) {
	cfg := &config.Config{
		GeminiAPIKey:     "base",
		GeminiGameAPIKey: "game",
		GameAPIKeys:      []string{" k1 ", "k2", "game", "", "k1"},
	}

	keys := KeyPool(cfg)
	assert.Equal(t, []string{"game", "k1", "k2", "base"}, keys)
}

func TestKeyPoolEmpty(t *testing.T) {
	assert.Empty(t, KeyPool(&config.Config{}))
}

func TestGenerateSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-a", r.URL.Query().Get("key"))
		writeJSON(w, http.StatusOK, okBody)
	}))
	defer srv.Close()

	c := testClient(srv.URL, []string{"key-a"})
	text, err := c.Generate(context.Background(), "say hello", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestGenerateRotatesOnQuotaErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Query().Get("key") == "good" {
			writeJSON(w, http.StatusOK, okBody)
			return
		}
		writeJSON(w, http.StatusTooManyRequests, `{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota)."}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, []string{"exhausted-1", "exhausted-2", "good"})
	text, err := c.Generate(context.Background(), "prompt", GenerateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
	assert.LessOrEqual(t, calls, 3)
}

func TestGenerateExhaustsAllKeys(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusForbidden, `{"error":{"code":403,"message":"API key suspended"}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, []string{"k1", "k2", "k3", "k4"})
	_, err := c.Generate(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, 4, calls)

	var ge *GeminiError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, http.StatusForbidden, ge.Status)
}

func TestGenerateFatalErrorDoesNotRotate(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		writeJSON(w, http.StatusBadRequest, `{"error":{"code":400,"message":"invalid request"}}`)
	}))
	defer srv.Close()

	c := testClient(srv.URL, []string{"k1", "k2", "k3"})
	_, err := c.Generate(context.Background(), "prompt", GenerateOptions{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGenerateNoKeys(t *testing.T) {
	c := testClient("http://unused", nil)
	_, err := c.Generate(context.Background(), "prompt", GenerateOptions{})
	assert.ErrorIs(t, err, ErrNoAPIKeys)
}

func TestChatSendsHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, okBody)
	}))
	defer srv.Close()

	c := testClient(srv.URL, []string{"k"})
	history := []ChatMessage{
		{Role: "user", Text: "what is tachycardia?"},
		{Role: "model", Text: "a fast heart rate"},
	}
	text, err := c.Chat(context.Background(), history, "and bradycardia?", GenerateOptions{MaxOutputTokens: 1000})
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestRetryableClassification(t *testing.T) {
	assert.True(t, retryable(&GeminiError{Status: 429, Message: "quota"}))
	assert.True(t, retryable(&GeminiError{Status: 403, Message: "suspended"}))
	assert.True(t, retryable(errors.New("upstream said 429")))
	assert.True(t, retryable(errors.New("quota exceeded")))
	assert.True(t, retryable(errors.New("key suspended by provider")))
	assert.False(t, retryable(&GeminiError{Status: 500, Message: "internal"}))
	assert.False(t, retryable(errors.New("connection refused")))
}
