// Package imagehost uploads images to an external hosting service and
// returns the public URL. The host is an opaque collaborator: file in,
// URL out, or an error.
package imagehost

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/ekaraca/vspecs/internal/apperror"
)

// Client talks to an imgbb-style upload API: multipart POST with an "image"
// file field and the API key as a query parameter, JSON response carrying
// the hosted URL.
type Client struct {
	uploadURL  string
	apiKey     string
	httpClient *http.Client
}

// New creates an image host client. Like the coach client, an empty apiKey
// is allowed at construction and fails per-call instead.
func New(uploadURL, apiKey string) *Client {
	return &Client{
		uploadURL:  uploadURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type uploadResponse struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
	Success bool `json:"success"`
}

// Upload streams the file to the host and returns its public URL.
func (c *Client) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("imagehost: %w", apperror.Upstream("image uploads are not configured", nil))
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return "", fmt.Errorf("imagehost: creating form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("imagehost: reading upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("imagehost: finalizing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.uploadURL+"?key="+c.apiKey, &body)
	if err != nil {
		return "", fmt.Errorf("imagehost: creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagehost: %w", apperror.Upstream("image upload failed", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("imagehost: %w", apperror.Upstream("image upload failed",
			fmt.Errorf("upstream status %d: %s", resp.StatusCode, snippet)))
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("imagehost: %w", apperror.Upstream("image upload failed",
			fmt.Errorf("decoding response: %w", err)))
	}

	if !parsed.Success || parsed.Data.URL == "" {
		return "", fmt.Errorf("imagehost: %w", apperror.Upstream("image upload failed",
			fmt.Errorf("upstream returned no URL")))
	}

	return parsed.Data.URL, nil
}
