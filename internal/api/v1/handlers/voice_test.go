package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/graceway/shepherd/internal/services/voice"
	"github.com/graceway/shepherd/pkg/sse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedStream struct {
	tokens []completion.StreamToken
	pos    int
}

func (s *scriptedStream) Recv() (completion.StreamToken, error) {
	if s.pos >= len(s.tokens) {
		return completion.StreamToken{}, io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

func (s *scriptedStream) Close() error { return nil }

type scriptedStreamer struct {
	reply string
}

func (s *scriptedStreamer) StreamCompletion(ctx context.Context, messages []completion.ChatMessage) (completion.TokenStream, error) {
	var tokens []completion.StreamToken
	for _, word := range strings.SplitAfter(s.reply, " ") {
		tokens = append(tokens, completion.StreamToken{Content: word})
	}
	tokens = append(tokens, completion.StreamToken{Usage: &completion.TokenUsage{TotalTokens: 42}})
	return &scriptedStream{tokens: tokens}, nil
}

type stubSynth struct{}

func (stubSynth) Synthesize(ctx context.Context, text, voiceModel, format string, sampleRate int) ([]byte, string, error) {
	return []byte("mp3-bytes"), "audio/mpeg", nil
}

func newVoiceRequest(t *testing.T, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/v1/voice/stream", bytes.NewReader(raw))
}

func collectEvents(t *testing.T, body *bytes.Buffer) []sse.Event {
	t.Helper()
	reader := sse.NewReader(body)
	var events []sse.Event
	for {
		ev, err := reader.Next()
		if err == io.EOF {
			return events
		}
		require.NoError(t, err)
		events = append(events, ev)
	}
}

func TestHandleVoiceStreamHappyPath(t *testing.T) {
	orch := voice.NewOrchestrator(&scriptedStreamer{reply: "Peace be with you today and always."}, stubSynth{}, "gpt-4o-mini")

	rec := httptest.NewRecorder()
	req := newVoiceRequest(t, map[string]any{"prompt": "I need comfort.", "category": "grief"})

	HandleVoiceStream(orch, nil, nil, rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := collectEvents(t, rec.Body)
	require.NotEmpty(t, events)
	assert.Equal(t, "start", events[0].Name)
	assert.Equal(t, "done", events[len(events)-1].Name)

	var start struct {
		SelectedCategory string `json:"selectedCategory"`
		Model            string `json:"model"`
	}
	require.NoError(t, json.Unmarshal([]byte(events[0].Data), &start))
	assert.Equal(t, "grief", start.SelectedCategory)
	assert.Equal(t, "gpt-4o-mini", start.Model)

	var sawText, sawAudio bool
	for _, ev := range events {
		switch ev.Name {
		case "text":
			sawText = true
		case "audio":
			sawAudio = true
		}
	}
	assert.True(t, sawText)
	assert.True(t, sawAudio)
}

func TestHandleVoiceStreamRejectsMissingPrompt(t *testing.T) {
	orch := voice.NewOrchestrator(&scriptedStreamer{reply: "unused"}, stubSynth{}, "gpt-4o-mini")

	rec := httptest.NewRecorder()
	req := newVoiceRequest(t, map[string]any{"category": "prayer"})

	HandleVoiceStream(orch, nil, nil, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestHandleVoiceStreamRejectsWhitespacePrompt(t *testing.T) {
	orch := voice.NewOrchestrator(&scriptedStreamer{reply: "unused"}, stubSynth{}, "gpt-4o-mini")

	rec := httptest.NewRecorder()
	req := newVoiceRequest(t, map[string]any{"prompt": "   "})

	HandleVoiceStream(orch, nil, nil, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Prompt must not be blank")
}

func TestHandleVoiceStreamRejectsMalformedBody(t *testing.T) {
	orch := voice.NewOrchestrator(&scriptedStreamer{reply: "unused"}, stubSynth{}, "gpt-4o-mini")

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/voice/stream", strings.NewReader("{not json"))

	HandleVoiceStream(orch, nil, nil, rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleVoiceStreamTextOnlyWithoutSynthesizer(t *testing.T) {
	orch := voice.NewOrchestrator(&scriptedStreamer{reply: "Grace and peace to you."}, nil, "gpt-4o-mini")

	rec := httptest.NewRecorder()
	req := newVoiceRequest(t, map[string]any{"prompt": "Hello"})

	HandleVoiceStream(orch, nil, nil, rec, req)

	events := collectEvents(t, rec.Body)
	for _, ev := range events {
		assert.NotEqual(t, "audio", ev.Name)
		assert.NotEqual(t, "audio-error", ev.Name)
	}
	assert.Equal(t, "done", events[len(events)-1].Name)
}
