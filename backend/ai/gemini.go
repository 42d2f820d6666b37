package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"medicgrow/backend/config"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// ErrNoAPIKeys is returned when no Gemini credential is configured.
var ErrNoAPIKeys = errors.New("no Gemini API keys configured")

// GeminiError carries the HTTP status of a failed provider call so the
// rotation logic can classify it.
type GeminiError struct {
	Status  int
	Message string
}

func (e *GeminiError) Error() string {
	return fmt.Sprintf("gemini: %d %s", e.Status, e.Message)
}

// GeminiClient calls the Gemini REST API with an ordered pool of API
// keys. Each request shuffles the pool and walks it until a key
// succeeds; quota and suspension failures rotate, anything else
// propagates immediately.
type GeminiClient struct {
	keys       []string
	httpClient *http.Client
	baseURL    string
	model      string

	mu  sync.Mutex
	rng *rand.Rand
}

// KeyPool collects the game key, the numbered keys and the base key in
// first-seen order, trimmed and de-duplicated.
func KeyPool(cfg *config.Config) []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(key string) {
		key = strings.TrimSpace(key)
		if key != "" && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	add(cfg.GeminiGameAPIKey)
	for _, k := range cfg.GameAPIKeys {
		add(k)
	}
	add(cfg.GeminiAPIKey)
	return keys
}

// NewGeminiClient takes an explicit key pool so callers (and tests)
// control the credentials. A client with an empty pool returns
// ErrNoAPIKeys on every call.
func NewGeminiClient(keys []string, model string) *GeminiClient {
	return &GeminiClient{
		keys:       keys,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    defaultGeminiBaseURL,
		model:      model,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateOptions configure one generation call.
type GenerateOptions struct {
	Model            string // defaults to the client's model
	ResponseMIMEType string // e.g. "application/json"
	MaxOutputTokens  int
}

// ChatMessage is one turn of replayed history. Role is "user" or
// "model".
type ChatMessage struct {
	Role string
	Text string
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMIMEType string `json:"responseMimeType,omitempty"`
	MaxOutputTokens  int    `json:"maxOutputTokens,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Generate runs a one-shot content generation call.
func (c *GeminiClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	contents := []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}
	return c.withRetry(ctx, contents, opts)
}

// Chat replays the given history window and sends a new user message.
func (c *GeminiClient) Chat(ctx context.Context, history []ChatMessage, message string, opts GenerateOptions) (string, error) {
	contents := make([]geminiContent, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, geminiContent{Role: m.Role, Parts: []geminiPart{{Text: m.Text}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: message}}})
	return c.withRetry(ctx, contents, opts)
}

// withRetry tries every key in a freshly shuffled pool order until one
// succeeds. Only quota and suspension errors rotate to the next key.
func (c *GeminiClient) withRetry(ctx context.Context, contents []geminiContent, opts GenerateOptions) (string, error) {
	if len(c.keys) == 0 {
		return "", ErrNoAPIKeys
	}

	keys := make([]string, len(c.keys))
	copy(keys, c.keys)
	c.mu.Lock()
	c.rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	c.mu.Unlock()

	var lastErr error
	for i, key := range keys {
		text, err := c.call(ctx, key, contents, opts)
		if err == nil {
			return text, nil
		}
		if !retryable(err) {
			return "", err
		}
		lastErr = err
		log.Printf("Gemini API key %d/%d failed, rotating...", i+1, len(keys))
	}

	if lastErr == nil {
		lastErr = errors.New("all Gemini API keys failed")
	}
	return "", lastErr
}

func (c *GeminiClient) call(ctx context.Context, key string, contents []geminiContent, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}

	reqBody := geminiRequest{Contents: contents}
	if opts.ResponseMIMEType != "" || opts.MaxOutputTokens > 0 {
		reqBody.GenerationConfig = &geminiGenerationConfig{
			ResponseMIMEType: opts.ResponseMIMEType,
			MaxOutputTokens:  opts.MaxOutputTokens,
		}
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &GeminiError{Status: resp.StatusCode, Message: string(body)}
		}
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &GeminiError{Status: resp.StatusCode, Message: msg}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &GeminiError{Status: resp.StatusCode, Message: "empty response from model"}
	}

	var sb strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// retryable reports whether an error justifies rotating to the next
// key: quota exhaustion (429) or key suspension (403). Anything else,
// including network failures, surfaces immediately.
func retryable(err error) bool {
	var ge *GeminiError
	if errors.As(err, &ge) && (ge.Status == http.StatusTooManyRequests || ge.Status == http.StatusForbidden) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") ||
		strings.Contains(msg, "403") || strings.Contains(msg, "suspended")
}
