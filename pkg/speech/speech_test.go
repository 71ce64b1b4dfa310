package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
)

func TestSynthesize(t *testing.T) {
	var gotAuth, gotPath string
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		if err := sonic.Unmarshal(body, &gotPayload); err != nil {
			t.Errorf("request body is not JSON: %v", err)
		}
		w.Write([]byte("mp3-bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	audio, err := client.Synthesize(context.Background(), SpeechRequest{Text: "  مرحبا بالعالم  ", Voice: "nova"})
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got, want := string(audio), "mp3-bytes"; got != want {
		t.Errorf("audio = %q, want %q", got, want)
	}
	if got, want := gotAuth, "Bearer test-key"; got != want {
		t.Errorf("Authorization = %q, want %q", got, want)
	}
	if got, want := gotPath, "/audio/speech"; got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	want := map[string]string{"model": "tts-1", "input": "مرحبا بالعالم", "voice": "nova"}
	for k, v := range want {
		if gotPayload[k] != v {
			t.Errorf("payload[%q] = %q, want %q", k, gotPayload[k], v)
		}
	}
}

func TestSynthesizeDefaultVoice(t *testing.T) {
	var gotPayload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sonic.Unmarshal(body, &gotPayload)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	if _, err := client.Synthesize(context.Background(), SpeechRequest{Text: "hello"}); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if got, want := gotPayload["voice"], DefaultVoice; got != want {
		t.Errorf("voice = %q, want %q", got, want)
	}
}

func TestSynthesizeValidation(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()
	client := NewClient(server.URL, "test-key", nil)

	tests := []struct {
		name string
		req  SpeechRequest
	}{
		{"empty text", SpeechRequest{}},
		{"whitespace only text", SpeechRequest{Text: "  \n\t "}},
		{"unknown voice", SpeechRequest{Text: "hello", Voice: "baritone"}},
		{"uppercase voice", SpeechRequest{Text: "hello", Voice: "NOVA"}},
		{"text over limit", SpeechRequest{Text: strings.Repeat("a", MaxSynthesisChars+1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.Synthesize(context.Background(), tt.req); err == nil {
				t.Error("Synthesize() error = nil, want error")
			}
		})
	}
	if hits != 0 {
		t.Errorf("server was hit %d times, want 0", hits)
	}
}

func TestSynthesizeAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()
	client := NewClient(server.URL, "test-key", nil)

	// 4096 Arabic characters are more than 4096 bytes; the limit counts
	// characters.
	text := strings.Repeat("م", MaxSynthesisChars)
	if _, err := client.Synthesize(context.Background(), SpeechRequest{Text: text}); err != nil {
		t.Errorf("Synthesize() at limit error = %v", err)
	}
}

func TestSynthesizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	_, err := client.Synthesize(context.Background(), SpeechRequest{Text: "hello"})
	if err == nil {
		t.Fatal("Synthesize() error = nil, want error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not carry the upstream status", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error %q does not carry the upstream body", err)
	}
}

func TestTranscribe(t *testing.T) {
	var gotFilename, gotModel, gotLanguage, gotPrompt string
	var gotAudio []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %q, want /audio/transcriptions", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file part: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotAudio, _ = io.ReadAll(file)
		gotModel = r.FormValue("model")
		gotLanguage = r.FormValue("language")
		gotPrompt = r.FormValue("prompt")
		w.Write([]byte(`{"text":"مرحبا بالعالم"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	text, err := client.Transcribe(context.Background(), TranscribeRequest{
		Audio:    []byte("fake-webm"),
		Filename: "recording.webm",
		Language: "ar",
		Prompt:   "وثيقة عن القراءة",
	})
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if got, want := text, "مرحبا بالعالم"; got != want {
		t.Errorf("text = %q, want %q", got, want)
	}
	if got, want := gotFilename, "recording.webm"; got != want {
		t.Errorf("filename = %q, want %q", got, want)
	}
	if got, want := string(gotAudio), "fake-webm"; got != want {
		t.Errorf("audio = %q, want %q", got, want)
	}
	if got, want := gotModel, "gpt-4o-mini-transcribe"; got != want {
		t.Errorf("model = %q, want %q", got, want)
	}
	if got, want := gotLanguage, "ar"; got != want {
		t.Errorf("language = %q, want %q", got, want)
	}
	if got, want := gotPrompt, "وثيقة عن القراءة"; got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestTranscribeOmitsEmptyHints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		if _, ok := r.MultipartForm.Value["language"]; ok {
			t.Error("language field present, want omitted")
		}
		if _, ok := r.MultipartForm.Value["prompt"]; ok {
			t.Error("prompt field present, want omitted")
		}
		w.Write([]byte(`{"text":"hi"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", nil)
	if _, err := client.Transcribe(context.Background(), TranscribeRequest{
		Audio:    []byte("audio"),
		Filename: "note.mp3",
	}); err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
}

func TestTranscribeValidation(t *testing.T) {
	client := NewClient("http://unused.invalid", "test-key", nil)
	tests := []struct {
		name string
		req  TranscribeRequest
	}{
		{"empty audio", TranscribeRequest{Filename: "a.mp3"}},
		{"no extension", TranscribeRequest{Audio: []byte("x"), Filename: "audio"}},
		{"unsupported extension", TranscribeRequest{Audio: []byte("x"), Filename: "a.aiff"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := client.Transcribe(context.Background(), tt.req); err == nil {
				t.Error("Transcribe() error = nil, want error")
			}
		})
	}
}

func TestSupportedAudio(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"a.webm", true},
		{"a.wav", true},
		{"a.mp3", true},
		{"a.ogg", true},
		{"a.mp4", true},
		{"a.m4a", true},
		{"A.MP3", true},
		{"a.flac", false},
		{"a.txt", false},
		{"noext", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := SupportedAudio(tt.filename); got != tt.want {
				t.Errorf("SupportedAudio(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}
