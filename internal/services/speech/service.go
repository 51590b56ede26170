// Package speech converts finalized text chunks to audio through the Deepgram
// speak API. Failures here are chunk-local: the caller keeps streaming text.
package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/graceway/shepherd/internal/infrastructure/deepgram"
	"github.com/rs/zerolog/log"
)

const (
	FormatMP3 = "mp3"
	FormatWAV = "wav"
)

// SynthesisError reports a failed synthesis call for a single chunk.
// Recoverable: the orchestrator skips the chunk's audio and continues.
type SynthesisError struct {
	StatusCode int
	Message    string
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("speech synthesis failed (status %d): %s", e.StatusCode, e.Message)
}

type speakRequest struct {
	Text string `json:"text"`
}

// Service performs one-shot text to speech conversion. No retries at this
// layer.
type Service struct {
	deepgram *deepgram.Service
}

func NewService(deepgramService *deepgram.Service) *Service {
	if deepgramService == nil {
		return nil
	}
	return &Service{deepgram: deepgramService}
}

// Synthesize converts text to audio bytes, returning the payload and its MIME
// type.
func (s *Service) Synthesize(ctx context.Context, text, voiceModel, format string, sampleRate int) ([]byte, string, error) {
	if text == "" {
		return nil, "", fmt.Errorf("synthesis text must not be empty")
	}

	body, err := json.Marshal(speakRequest{Text: text})
	if err != nil {
		return nil, "", fmt.Errorf("encode speak request: %w", err)
	}

	query := url.Values{}
	query.Set("model", voiceModel)
	switch format {
	case FormatWAV:
		query.Set("encoding", "linear16")
		query.Set("container", "wav")
		query.Set("sample_rate", strconv.Itoa(sampleRate))
	default:
		query.Set("encoding", "mp3")
	}

	resp, err := s.deepgram.MakeRequest(ctx, http.MethodPost, "/v1/speak?"+query.Encode(), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, "", &SynthesisError{StatusCode: 0, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Warn().
			Int("status", resp.StatusCode).
			Str("model", voiceModel).
			Msg("Deepgram speak request rejected")
		return nil, "", &SynthesisError{StatusCode: resp.StatusCode, Message: string(detail)}
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &SynthesisError{StatusCode: resp.StatusCode, Message: "reading audio payload: " + err.Error()}
	}

	return audio, mimeType(format), nil
}

func mimeType(format string) string {
	if format == FormatWAV {
		return "audio/wav"
	}
	return "audio/mpeg"
}
