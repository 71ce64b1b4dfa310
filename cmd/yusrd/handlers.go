package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Durar3Ali/Yusr/pkg/assistant"
	"github.com/Durar3Ali/Yusr/pkg/extract"
	"github.com/Durar3Ali/Yusr/pkg/prefs"
	"github.com/Durar3Ali/Yusr/pkg/readfmt"
	"github.com/Durar3Ali/Yusr/pkg/speech"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Yusr backend is running",
	})
}

type formatRequest struct {
	Text        string            `json:"text"`
	Preferences prefs.Preferences `json:"preferences"`
}

type formatResponse struct {
	HTML        string            `json:"html"`
	Direction   string            `json:"direction"`
	Preferences prefs.Preferences `json:"preferences"`
}

// handleFormat renders text into accessible reading HTML. The response
// echoes the preferences after coercion so clients can persist what was
// actually applied.
func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	req.Preferences.Normalize()
	opts := req.Preferences.RenderOptions()
	html, err := readfmt.Format(req.Text, opts)
	if err != nil {
		s.logger.Error("formatting failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Formatting failed")
		return
	}

	documentsProcessed.WithLabelValues("format").Inc()
	writeJSON(w, http.StatusOK, formatResponse{
		HTML:        html,
		Direction:   readfmt.DirectionFor(req.Text, opts.Lang).String(),
		Preferences: req.Preferences,
	})
}

// documentExtensions lists the upload types the extract endpoint
// accepts.
var documentExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".md":       true,
	".markdown": true,
}

// handleExtract pulls the plain text out of an uploaded document.
// Scanned PDFs without a text layer fall back to OCR when a processor
// is configured.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.bodyError(w, err)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" || !documentExtensions[strings.ToLower(filepath.Ext(header.Filename))] {
		writeError(w, http.StatusBadRequest, "Only PDF, TXT, HTML or Markdown files are accepted")
		return
	}
	content, err := io.ReadAll(file)
	if err != nil {
		s.bodyError(w, err)
		return
	}

	// Multipart clients often label every part application/octet-stream;
	// an empty type makes extraction detect it from the filename instead.
	contentType := header.Header.Get("Content-Type")
	if strings.Contains(contentType, "application/octet-stream") {
		contentType = ""
	}

	text, err := extract.Text(header.Filename, contentType, content)
	resp := map[string]string{}
	switch {
	case errors.Is(err, extract.ErrNoTextLayer):
		if s.ocr == nil {
			writeError(w, http.StatusUnprocessableEntity,
				"This PDF has no text layer and OCR is not configured")
			return
		}
		result, ocrErr := s.ocr.Process(r.Context(), content)
		if ocrErr != nil {
			s.logger.Error("ocr fallback failed", zap.Error(ocrErr))
			writeError(w, http.StatusBadGateway, "OCR processing failed")
			return
		}
		text = extract.ReattachMarks(result.Text)
		if len(result.Languages) > 0 {
			resp["lang"] = prefs.ParseLanguage(result.Languages[0]).String()
		}
	case err != nil:
		writeError(w, http.StatusBadRequest, "Could not extract text: "+err.Error())
		return
	}

	documentsProcessed.WithLabelValues("extract").Inc()
	resp["text"] = text
	writeJSON(w, http.StatusOK, resp)
}

// handleSynthesize converts text to MP3 audio.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text  string `json:"text"`
		Voice string `json:"voice"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	if !speech.ValidVoice(req.Voice) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown voice %q", req.Voice))
		return
	}
	if utf8.RuneCountInString(req.Text) > speech.MaxSynthesisChars {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("text exceeds the %d character limit", speech.MaxSynthesisChars))
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), speech.SpeechRequest{Text: req.Text, Voice: req.Voice})
	if err != nil {
		s.logger.Error("speech synthesis failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Speech synthesis failed")
		return
	}

	documentsProcessed.WithLabelValues("tts").Inc()
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Write(audio)
}

// handleTranscribe converts an uploaded audio recording to text.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.bodyError(w, err)
		return
	}
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No audio file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" || !speech.SupportedAudio(header.Filename) {
		writeError(w, http.StatusBadRequest, "Invalid audio file format")
		return
	}
	audio, err := io.ReadAll(file)
	if err != nil {
		s.bodyError(w, err)
		return
	}

	text, err := s.speech.Transcribe(r.Context(), speech.TranscribeRequest{
		Audio:    audio,
		Filename: header.Filename,
		Language: r.FormValue("language"),
		Prompt:   r.FormValue("prompt"),
	})
	if err != nil {
		s.logger.Error("transcription failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Transcription failed")
		return
	}

	documentsProcessed.WithLabelValues("transcribe").Inc()
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleAssistantCreate opens a reading assistant session around an
// uploaded document or pasted text.
func (s *Server) handleAssistantCreate(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.assistantDocument(w, r)
	if !ok {
		return
	}
	session, err := s.assistant.Create(r.Context(), doc)
	if err != nil {
		s.logger.Error("assistant creation failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Assistant creation failed")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// assistantDocument reads the document for a new assistant session from
// either an uploaded PDF or TXT file or a text field. JSON bodies carry
// text only.
func (s *Server) assistantDocument(w http.ResponseWriter, r *http.Request) (assistant.Document, bool) {
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Text     string `json:"text"`
			FileName string `json:"file_name"`
		}
		if !s.decodeJSON(w, r, &req) {
			return assistant.Document{}, false
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "Either text or a PDF file must be provided")
			return assistant.Document{}, false
		}
		return assistant.Document{Name: documentName(req.FileName), Text: req.Text}, true
	}

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.bodyError(w, err)
		return assistant.Document{}, false
	}
	file, header, err := r.FormFile("pdf")
	switch {
	case err == nil:
		defer file.Close()
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if ext != ".pdf" && ext != ".txt" {
			writeError(w, http.StatusBadRequest, "Only PDF or TXT files are accepted")
			return assistant.Document{}, false
		}
		content, readErr := io.ReadAll(file)
		if readErr != nil {
			s.bodyError(w, readErr)
			return assistant.Document{}, false
		}
		name := header.Filename
		if name == ext {
			name = "document" + ext
		}
		return assistant.Document{Name: name, Data: content}, true
	case errors.Is(err, http.ErrMissingFile):
		if text := r.FormValue("text"); strings.TrimSpace(text) != "" {
			return assistant.Document{Name: documentName(r.FormValue("file_name")), Text: text}, true
		}
		writeError(w, http.StatusBadRequest, "Either text or a PDF file must be provided")
		return assistant.Document{}, false
	default:
		writeError(w, http.StatusBadRequest, "Invalid file upload")
		return assistant.Document{}, false
	}
}

func documentName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "document"
	}
	return name
}

// handleAssistantDelete tears down an assistant session. The vector
// store and file ids arrive as query parameters and are removed on a
// best-effort basis.
func (s *Server) handleAssistantDelete(w http.ResponseWriter, r *http.Request) {
	session := assistant.Session{
		AssistantID:   r.PathValue("id"),
		VectorStoreID: r.URL.Query().Get("vector_store_id"),
		FileID:        r.URL.Query().Get("file_id"),
	}
	if err := s.assistant.Delete(r.Context(), session); err != nil {
		s.logger.Error("assistant deletion failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Assistant deletion failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Assistant deleted successfully"})
}

// handleChatMessage relays one user message to an assistant session and
// returns the reply.
func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThreadID    string `json:"thread_id"`
		AssistantID string `json:"assistant_id"`
		Message     string `json:"message"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.ThreadID == "" || req.AssistantID == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "thread_id, assistant_id, and message are required")
		return
	}

	reply, err := s.assistant.SendMessage(r.Context(), req.ThreadID, req.AssistantID, req.Message)
	if err != nil {
		s.logger.Error("chat message failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "Chat message failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}
