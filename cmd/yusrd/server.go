package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Durar3Ali/Yusr/pkg/assistant"
	"github.com/Durar3Ali/Yusr/pkg/ocr"
	"github.com/Durar3Ali/Yusr/pkg/speech"
)

// documentsProcessed counts completed document operations by kind.
var documentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "yusr_documents_processed_total",
	Help: "Completed document operations, labelled by operation.",
}, []string{"operation"})

// ocrProcessor is the part of the Document AI client the scanned-PDF
// fallback needs. It is nil when no processor is configured.
type ocrProcessor interface {
	Process(ctx context.Context, pdfBytes []byte) (*ocr.Result, error)
}

// Server carries the shared state of the API handlers: the structured
// logger, the OpenAI-backed clients and the optional OCR processor.
type Server struct {
	logger    *zap.Logger
	speech    *speech.Client
	assistant *assistant.Client
	ocr       ocrProcessor
	maxUpload int64
	cors      []string
}

// routes builds the request handler: the API endpoints, the health
// probes and the metrics endpoint, wrapped in the body limit, CORS and
// request logging middleware.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/format", s.handleFormat)
	mux.HandleFunc("POST /api/extract", s.handleExtract)
	mux.HandleFunc("POST /api/tts", s.handleSynthesize)
	mux.HandleFunc("POST /api/transcribe", s.handleTranscribe)
	mux.HandleFunc("POST /api/assistant/create", s.handleAssistantCreate)
	mux.HandleFunc("DELETE /api/assistant/{id}", s.handleAssistantDelete)
	mux.HandleFunc("POST /api/chat/message", s.handleChatMessage)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ready"))
	})

	// Unmatched paths get the JSON error shape instead of the plain
	// text default.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	var handler http.Handler = mux
	handler = s.limitBody(handler)
	handler = s.allowCORS(handler)
	handler = s.logRequests(handler)
	return handler
}

// limitBody caps every request body at the configured upload limit.
func (s *Server) limitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
		}
		next.ServeHTTP(w, r)
	})
}

// allowCORS reflects allowed browser origins and answers preflight
// requests.
func (s *Server) allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cors {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// logRequests logs one line per request with the resolved status code.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"Internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads and unmarshals the request body into dst, answering
// the request itself when the body is over the upload limit or is not
// valid JSON.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.bodyError(w, err)
		return false
	}
	if err := sonic.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "Request body is not valid JSON")
		return false
	}
	return true
}

// bodyError answers a failed body read, distinguishing the upload
// limit from transport errors.
func (s *Server) bodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("File too large. Maximum size is %dMB", tooLarge.Limit>>20))
		return
	}
	writeError(w, http.StatusBadRequest, "Could not read request body")
}
