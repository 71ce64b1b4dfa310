// Yusrd serves the Yusr reading accessibility API over HTTP.
//
// It exposes dyslexia-friendly text formatting, document text
// extraction with an OCR fallback for scanned PDFs, speech synthesis,
// audio transcription and the reading assistant as JSON endpoints,
// plus Prometheus metrics and health probes.
//
// Usage:
//
//	yusrd [options]
//
// Options:
//
//	-config string
//		Path to a YAML config file
//	-addr string
//		Listen address, overriding the config file and PORT
//
// Environment:
//
//	OPENAI_API_KEY
//		API key for the speech and assistant endpoints
//	GOOGLE_APPLICATION_CREDENTIALS
//		Service account key file for the Document AI OCR fallback
//	PORT
//		Listen port, used when -addr is not given
//	CORS_ORIGINS
//		Comma-separated list of allowed browser origins
//
// Config file:
//
//	addr: ":5000"
//	cors_origins:
//	  - "http://localhost:5173"
//	max_upload_mib: 50
//	log:
//	  style: json
//	  level: info
//	openai:
//	  base_url: ""
//	documentai:
//	  project_id: my-project
//	  location: eu
//	  processor_id: abc123
//
// Examples:
//
//	yusrd
//	yusrd -config /etc/yusr/yusrd.yaml
//	PORT=8080 yusrd
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Durar3Ali/Yusr/pkg/assistant"
	"github.com/Durar3Ali/Yusr/pkg/logging"
	"github.com/Durar3Ali/Yusr/pkg/ocr"
	"github.com/Durar3Ali/Yusr/pkg/speech"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	addr := flag.String("addr", "", "Listen address, overriding the config file and PORT")
	flag.Parse()

	cfg := defaultConfig()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	applyEnv(&cfg)
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := logging.NewLogger(&cfg.Log)
	defer logger.Sync()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; speech and assistant endpoints will fail")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var processor ocrProcessor
	if cfg.DocumentAI.Enabled() {
		client, err := ocr.New(ctx, cfg.DocumentAI)
		if err != nil {
			logger.Fatal("connecting to Document AI", zap.Error(err))
		}
		defer client.Close()
		processor = client
		logger.Info("OCR fallback enabled",
			zap.String("project", cfg.DocumentAI.ProjectID),
			zap.String("location", cfg.DocumentAI.Location))
	}

	server := &Server{
		logger:    logger,
		speech:    speech.NewClient(cfg.OpenAIBaseURL, apiKey, nil),
		assistant: assistant.NewClient(cfg.OpenAIBaseURL, apiKey, nil),
		ocr:       processor,
		maxUpload: cfg.MaxUploadMiB << 20,
		cors:      cfg.CORSOrigins,
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.routes(),
		ReadHeaderTimeout: 40 * time.Second,
	}

	go func() {
		logger.Info("starting Yusr API server", zap.String("addr", cfg.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}
