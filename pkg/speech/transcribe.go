package speech

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

const transcriptionModel = "gpt-4o-mini-transcribe"

// audioExtensions lists the container formats the transcription endpoint
// accepts.
var audioExtensions = map[string]bool{
	".webm": true,
	".wav":  true,
	".mp3":  true,
	".ogg":  true,
	".mp4":  true,
	".m4a":  true,
}

// SupportedAudio reports whether the filename carries an extension the
// transcription endpoint can decode.
func SupportedAudio(filename string) bool {
	return audioExtensions[strings.ToLower(filepath.Ext(filename))]
}

// TranscribeRequest describes one transcription call.
type TranscribeRequest struct {
	// Audio is the recorded audio. Required.
	Audio []byte
	// Filename names the upload; its extension tells the endpoint how to
	// decode the audio (webm, wav, mp3, ogg, mp4 or m4a).
	Filename string
	// Language is an optional BCP-47 hint such as "ar" or "en".
	Language string
	// Prompt optionally seeds the transcription with context or vocabulary.
	Prompt string
}

// Transcribe converts recorded audio to text.
func (c *Client) Transcribe(ctx context.Context, req TranscribeRequest) (string, error) {
	if len(req.Audio) == 0 {
		return "", errors.New("empty audio")
	}
	if !SupportedAudio(req.Filename) {
		return "", fmt.Errorf("unsupported audio format %q", filepath.Ext(req.Filename))
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", req.Filename)
	if err != nil {
		return "", fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(req.Audio); err != nil {
		return "", fmt.Errorf("writing audio: %w", err)
	}
	if err := mw.WriteField("model", transcriptionModel); err != nil {
		return "", fmt.Errorf("writing model field: %w", err)
	}
	if req.Language != "" {
		if err := mw.WriteField("language", req.Language); err != nil {
			return "", fmt.Errorf("writing language field: %w", err)
		}
	}
	if req.Prompt != "" {
		if err := mw.WriteField("prompt", req.Prompt); err != nil {
			return "", fmt.Errorf("writing prompt field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("closing multipart body: %w", err)
	}

	transcribeURL, _ := url.JoinPath(c.baseURL, "audio", "transcriptions")
	respBody, err := c.sendRequest(ctx, http.MethodPost, transcribeURL, mw.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}

	var result struct {
		Text string `json:"text"`
	}
	if err := sonic.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("parsing transcription response: %w", err)
	}
	return result.Text, nil
}
