// Package coach proxies chat messages to an OpenAI-compatible
// chat-completion API — the "ask the coach" feature.
//
// The upstream is an opaque HTTP service to us: one message in, one text
// reply out, or an error. No conversation state is kept on our side and no
// retry policy is layered on top of the HTTP client's.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ekaraca/vspecs/internal/apperror"
)

// systemPrompt pins the assistant's persona for every request.
const systemPrompt = "You are a Valorant coach. You help players improve their aim, " +
	"crosshair, sensitivity and agent picks. Answer briefly and concretely."

// Client calls the chat-completion endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// New creates a coach client. An empty apiKey is allowed at construction —
// the server must still start without the coach feature — but every Chat
// call will then fail with an upstream error.
func New(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Request/response shapes for the chat-completions wire format. Only the
// fields we use — the upstream returns far more.

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Chat sends one user message and returns the reply text.
//
// Every failure mode — missing key, transport error, non-200, malformed or
// empty reply — surfaces as apperror.ErrUpstream with a client-safe message;
// the underlying cause stays in the error chain for the log.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is not configured", nil))
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("coach: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("coach: creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is unavailable", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Read a little of the body for the log; never forward it to the client.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is unavailable",
			fmt.Errorf("upstream status %d: %s", resp.StatusCode, snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is unavailable",
			fmt.Errorf("decoding response: %w", err)))
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is unavailable",
			fmt.Errorf("upstream error: %s", parsed.Error.Message)))
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("coach: %w", apperror.Upstream("coach is unavailable",
			fmt.Errorf("upstream returned no reply")))
	}

	return parsed.Choices[0].Message.Content, nil
}
