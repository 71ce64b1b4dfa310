package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Delete removes the OpenAI resources behind a session. The assistant
// removal must succeed; vector store and file removal are best-effort.
func (c *Client) Delete(ctx context.Context, s Session) error {
	if s.AssistantID == "" {
		return errors.New("missing assistant id")
	}

	assistantURL, _ := url.JoinPath(c.baseURL, "assistants", s.AssistantID)
	if _, err := c.sendRequest(ctx, http.MethodDelete, assistantURL, "", nil); err != nil {
		return fmt.Errorf("deleting assistant: %w", err)
	}

	if s.VectorStoreID != "" {
		storeURL, _ := url.JoinPath(c.baseURL, "vector_stores", s.VectorStoreID)
		_, _ = c.sendRequest(ctx, http.MethodDelete, storeURL, "", nil)
	}
	if s.FileID != "" {
		fileURL, _ := url.JoinPath(c.baseURL, "files", s.FileID)
		_, _ = c.sendRequest(ctx, http.MethodDelete, fileURL, "", nil)
	}
	return nil
}
