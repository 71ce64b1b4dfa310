// Package ocr recovers text from scanned PDFs through Google Document AI.
// It is the fallback for documents without an extractable text layer.
//
// This package provides:
// - A long-lived Document AI processor client
// - Per-page text recovery from layout text anchors
// - Detected reading languages ordered by confidence
//
// Key Types:
// - Config: project, location and processor of a Document AI OCR processor
// - Client: wraps the Document AI processor client
// - Result: recovered text, per-page texts and detected languages
//
// Main Functions:
// - New: connects a Client for a Config
// - Client.Process: PDF bytes → Result
//
// Usage Requirements:
// - Google Cloud project with the Document AI API enabled
// - Document AI processor configured for OCR
// - Authentication via GOOGLE_APPLICATION_CREDENTIALS environment variable
package ocr

import (
	"context"
	"errors"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Config identifies a Document AI OCR processor.
type Config struct {
	ProjectID   string
	Location    string
	ProcessorID string
}

// Enabled reports whether the config names a complete processor.
func (c Config) Enabled() bool {
	return c.ProjectID != "" && c.Location != "" && c.ProcessorID != ""
}

// Client sends documents to a Document AI OCR processor.
type Client struct {
	processor string
	client    *documentai.DocumentProcessorClient
}

// New connects a client to the processor named by cfg. Credentials come
// from GOOGLE_APPLICATION_CREDENTIALS when set, otherwise from the
// ambient Google Cloud environment.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if !cfg.Enabled() {
		return nil, errors.New("incomplete processor config: project, location and processor id are required")
	}

	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)
	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if creds := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); creds != "" {
		opts = append(opts, option.WithCredentialsFile(creds))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating Document AI client: %w", err)
	}

	return &Client{
		processor: fmt.Sprintf("projects/%s/locations/%s/processors/%s",
			cfg.ProjectID, cfg.Location, cfg.ProcessorID),
		client: client,
	}, nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Process runs OCR over a PDF and returns the recovered text.
func (c *Client) Process(ctx context.Context, pdfBytes []byte) (*Result, error) {
	req := &documentaipb.ProcessRequest{
		Name: c.processor,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		SkipHumanReview: true,
	}

	resp, err := c.client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("processing document: %w", err)
	}
	return resultFromProto(resp.Document), nil
}
