package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/bytedance/sonic"
)

const synthesisModel = "tts-1"

// MaxSynthesisChars is the input limit of the speech endpoint.
const MaxSynthesisChars = 4096

// DefaultVoice is used when a SpeechRequest names no voice.
const DefaultVoice = "alloy"

// voices lists the voices the speech endpoint accepts.
var voices = map[string]bool{
	"alloy":   true,
	"echo":    true,
	"fable":   true,
	"onyx":    true,
	"nova":    true,
	"shimmer": true,
}

// ValidVoice reports whether name is a voice the speech endpoint
// accepts. The empty string is valid and selects DefaultVoice.
func ValidVoice(name string) bool {
	return name == "" || voices[name]
}

// SpeechRequest describes one synthesis call.
type SpeechRequest struct {
	// Text is the content to speak. Required, at most 4096 characters.
	Text string
	// Voice selects the speaking voice. Empty selects DefaultVoice.
	Voice string
}

// Synthesize converts text to MP3 audio.
func (c *Client) Synthesize(ctx context.Context, req SpeechRequest) ([]byte, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, errors.New("empty text")
	}
	if n := utf8.RuneCountInString(text); n > MaxSynthesisChars {
		return nil, fmt.Errorf("text is %d characters, the speech endpoint accepts at most %d", n, MaxSynthesisChars)
	}
	voice := req.Voice
	if voice == "" {
		voice = DefaultVoice
	}
	if !voices[voice] {
		return nil, fmt.Errorf("unknown voice %q", voice)
	}

	payload, err := sonic.Marshal(map[string]string{
		"model": synthesisModel,
		"input": text,
		"voice": voice,
	})
	if err != nil {
		return nil, fmt.Errorf("marshalling speech request: %w", err)
	}

	speechURL, _ := url.JoinPath(c.baseURL, "audio", "speech")
	audio, err := c.sendRequest(ctx, http.MethodPost, speechURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("speech request failed: %w", err)
	}
	return audio, nil
}
