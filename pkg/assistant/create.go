package assistant

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
)

const (
	assistantName  = "Yusr Document Assistant"
	assistantModel = "gpt-4o-mini"
)

// assistantInstructions grounds every session's behavior.
const assistantInstructions = "You are a helpful reading assistant for the Yusr app. " +
	"Your role is to help users understand and discuss the document they are reading. " +
	"Answer questions accurately based on the provided document content. " +
	"Be concise, friendly, and educational in your responses."

// Create builds a conversation session around a document: it creates an
// assistant with the file_search tool, uploads the document, indexes it in
// a vector store bound to the assistant, and opens a thread. Resources
// created before a failing step are not rolled back; the caller can retry
// or clean up with Delete.
func (c *Client) Create(ctx context.Context, doc Document) (*Session, error) {
	if doc.Name == "" {
		return nil, errors.New("document has no name")
	}
	if doc.Text == "" && len(doc.Data) == 0 {
		return nil, errors.New("document has no content")
	}

	assistantsURL, _ := url.JoinPath(c.baseURL, "assistants")
	assistantID, err := c.postForID(ctx, assistantsURL, map[string]any{
		"name":         assistantName,
		"instructions": assistantInstructions,
		"model":        assistantModel,
		"tools":        []map[string]string{{"type": "file_search"}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating assistant: %w", err)
	}

	fileID, err := c.uploadDocument(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("uploading document: %w", err)
	}

	// The vector store is labelled with the bare document name, while the
	// upload keeps the extension so the file type is recognized.
	storeName := strings.TrimSuffix(doc.Name, filepath.Ext(doc.Name))
	storesURL, _ := url.JoinPath(c.baseURL, "vector_stores")
	vectorStoreID, err := c.postForID(ctx, storesURL, map[string]string{
		"name": "Yusr Document - " + storeName,
	})
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	attachURL, _ := url.JoinPath(c.baseURL, "vector_stores", vectorStoreID, "files")
	if _, err := c.postForID(ctx, attachURL, map[string]string{"file_id": fileID}); err != nil {
		return nil, fmt.Errorf("attaching file to vector store: %w", err)
	}

	updateURL, _ := url.JoinPath(c.baseURL, "assistants", assistantID)
	if _, err := c.postForID(ctx, updateURL, map[string]any{
		"tool_resources": map[string]any{
			"file_search": map[string]any{
				"vector_store_ids": []string{vectorStoreID},
			},
		},
	}); err != nil {
		return nil, fmt.Errorf("binding vector store to assistant: %w", err)
	}

	threadsURL, _ := url.JoinPath(c.baseURL, "threads")
	threadID, err := c.postForID(ctx, threadsURL, map[string]any{})
	if err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	return &Session{
		AssistantID:   assistantID,
		ThreadID:      threadID,
		VectorStoreID: vectorStoreID,
		FileID:        fileID,
	}, nil
}

// uploadDocument uploads the document content for assistant retrieval and
// returns the file id.
func (c *Client) uploadDocument(ctx context.Context, doc Document) (string, error) {
	name := doc.Name
	data := doc.Data
	if len(data) == 0 {
		if !strings.HasSuffix(strings.ToLower(name), ".txt") {
			name += ".txt"
		}
		data = []byte(doc.Text)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("purpose", "assistants"); err != nil {
		return "", fmt.Errorf("writing purpose field: %w", err)
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("writing file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	filesURL, _ := url.JoinPath(c.baseURL, "files")
	respBody, err := c.sendRequest(ctx, http.MethodPost, filesURL, mw.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	var uploaded struct {
		ID string `json:"id"`
	}
	if err := sonic.Unmarshal(respBody, &uploaded); err != nil {
		return "", fmt.Errorf("parsing upload response: %w", err)
	}
	return uploaded.ID, nil
}
