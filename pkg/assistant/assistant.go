// Package assistant manages short-lived document conversations through the
// OpenAI Assistants v2 endpoints. A session grounds one uploaded document
// in a vector store and answers questions about it over a thread.
//
// This package provides:
// - Session creation (assistant, file upload, vector store, thread)
// - Question answering over a thread with run polling
// - Best-effort teardown of session resources
//
// Key Types:
// - Client: authenticated HTTP client for the Assistants v2 endpoints
// - Document: the content a session is grounded on
// - Session: identifiers of the OpenAI resources behind one conversation
//
// Main Functions:
// - NewClient: creates a client for a base URL and API key
// - Client.Create: Document → Session
// - Client.SendMessage: user message → assistant reply
// - Client.Delete: removes a Session's resources
package assistant

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
)

// DefaultBaseURL is the OpenAI API root used when no other URL is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Session identifies the OpenAI resources backing one document conversation.
type Session struct {
	AssistantID   string `json:"assistant_id"`
	ThreadID      string `json:"thread_id"`
	VectorStoreID string `json:"vector_store_id"`
	FileID        string `json:"file_id"`
}

// Document is the content a session is grounded on. Name is required.
// Data is uploaded verbatim under Name; when Data is empty, Text is
// uploaded as a UTF-8 text file named after Name.
type Document struct {
	Name string
	Text string
	Data []byte
}

// Client calls the OpenAI Assistants v2 endpoints.
type Client struct {
	baseURL      string
	apiKey       string
	httpClient   *http.Client
	pollInterval time.Duration
}

// NewClient creates an assistant client. An empty baseURL selects the
// public OpenAI endpoint; a nil httpClient selects http.DefaultClient.
func NewClient(baseURL, apiKey string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		httpClient:   httpClient,
		pollInterval: 500 * time.Millisecond,
	}
}

// sendRequest sends an HTTP request to the specified endpoint with bearer
// authentication and the Assistants v2 opt-in header.
func (c *Client) sendRequest(ctx context.Context, method, url, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
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

// postForID posts a JSON payload and returns the id of the object the
// endpoint reports back.
func (c *Client) postForID(ctx context.Context, endpoint string, payload any) (string, error) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshalling request: %w", err)
	}
	respBody, err := c.sendRequest(ctx, http.MethodPost, endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(respBody, &created); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}
	return created.ID, nil
}
