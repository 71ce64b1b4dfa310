package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// noReply is returned when a completed run produced no text content.
const noReply = "I couldn't generate a response. Please try again."

type run struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

// SendMessage posts a user message on the thread, runs the assistant and
// returns its reply. It polls the run until it reaches a terminal status;
// cancelling the context stops the wait.
func (c *Client) SendMessage(ctx context.Context, threadID, assistantID, message string) (string, error) {
	if threadID == "" || assistantID == "" {
		return "", errors.New("thread and assistant ids are required")
	}
	if strings.TrimSpace(message) == "" {
		return "", errors.New("empty message")
	}

	messagesURL, _ := url.JoinPath(c.baseURL, "threads", threadID, "messages")
	if _, err := c.postForID(ctx, messagesURL, map[string]string{
		"role":    "user",
		"content": message,
	}); err != nil {
		return "", fmt.Errorf("posting message: %w", err)
	}

	runsURL, _ := url.JoinPath(c.baseURL, "threads", threadID, "runs")
	runID, err := c.postForID(ctx, runsURL, map[string]string{"assistant_id": assistantID})
	if err != nil {
		return "", fmt.Errorf("starting run: %w", err)
	}

	finished, err := c.waitForRun(ctx, threadID, runID)
	if err != nil {
		return "", err
	}
	if finished.Status != "completed" {
		if finished.LastError != nil {
			return "", fmt.Errorf("run ended with status %s: %s: %s",
				finished.Status, finished.LastError.Code, finished.LastError.Message)
		}
		return "", fmt.Errorf("run ended with status %s", finished.Status)
	}

	return c.latestReply(ctx, threadID)
}

// waitForRun polls the run until its status is neither queued nor
// in_progress.
func (c *Client) waitForRun(ctx context.Context, threadID, runID string) (*run, error) {
	runURL, _ := url.JoinPath(c.baseURL, "threads", threadID, "runs", runID)
	for {
		respBody, err := c.sendRequest(ctx, http.MethodGet, runURL, "", nil)
		if err != nil {
			return nil, fmt.Errorf("checking run: %w", err)
		}
		var r run
		if err := sonic.Unmarshal(respBody, &r); err != nil {
			return nil, fmt.Errorf("parsing run: %w", err)
		}
		if r.Status != "queued" && r.Status != "in_progress" {
			return &r, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}
}

// latestReply fetches the newest thread message and returns its first text
// block.
func (c *Client) latestReply(ctx context.Context, threadID string) (string, error) {
	messagesURL, _ := url.JoinPath(c.baseURL, "threads", threadID, "messages")
	respBody, err := c.sendRequest(ctx, http.MethodGet, messagesURL+"?order=desc&limit=1", "", nil)
	if err != nil {
		return "", fmt.Errorf("listing messages: %w", err)
	}

	var list struct {
		Data []struct {
			Content []struct {
				Type string `json:"type"`
				Text struct {
					Value string `json:"value"`
				} `json:"text"`
			} `json:"content"`
		} `json:"data"`
	}
	if err := sonic.Unmarshal(respBody, &list); err != nil {
		return "", fmt.Errorf("parsing messages: %w", err)
	}

	for _, msg := range list.Data {
		for _, block := range msg.Content {
			if block.Type == "text" {
				return block.Text.Value, nil
			}
		}
	}
	return noReply, nil
}
