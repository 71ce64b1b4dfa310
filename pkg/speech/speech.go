// Package speech converts text to spoken audio and recorded audio back to
// text through the OpenAI audio endpoints.
//
// This package provides:
// - Text-to-speech synthesis with a closed set of voices (MP3 output)
// - Audio transcription with optional language and context hints
//
// Key Types:
// - Client: authenticated HTTP client for the audio endpoints
// - SpeechRequest: one synthesis call (text and voice)
// - TranscribeRequest: one transcription call (audio, filename, hints)
//
// Main Functions:
// - NewClient: creates a client for a base URL and API key
// - Client.Synthesize: SpeechRequest → MP3 bytes
// - Client.Transcribe: TranscribeRequest → transcript text
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultBaseURL is the OpenAI API root used when no other URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Client calls the OpenAI audio endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a speech client. An empty baseURL selects the public
// OpenAI endpoint; a nil httpClient selects http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// sendRequest sends an HTTP request to the specified endpoint with bearer
// authentication and the given content type.
func (c *Client) sendRequest(ctx context.Context, method, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading http response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return respBody, fmt.Errorf("received non-OK status %d from %s: %s", resp.StatusCode, url, string(respBody))
	}
	return respBody, nil
}
