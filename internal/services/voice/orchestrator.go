// Package voice drives the streaming voice pipeline: it consumes an
// incremental completion stream, re-segments the text into speech-sized
// chunks, synthesizes each chunk, and multiplexes text and audio events onto
// a single outbound channel in strict FIFO order.
package voice

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/graceway/shepherd/internal/services/completion"
	"github.com/graceway/shepherd/internal/services/segment"
	"github.com/rs/zerolog/log"
)

// ErrChannelClosed signals that the consumer disconnected. Treated as a
// cancellation, not a failure: upstream work is torn down and no further
// events are written.
var ErrChannelClosed = errors.New("event channel closed by consumer")

// msPerWord approximates conversational speech at around 150 words a minute,
// used for the estimatedDuration hint on audio events.
const msPerWord = 400.0

// EventWriter is the outbound channel. Writes must be atomic relative to one
// another and flushed eagerly.
type EventWriter interface {
	WriteEvent(event string, payload any) error
}

// Streamer opens incremental completion streams.
type Streamer interface {
	StreamCompletion(ctx context.Context, messages []completion.ChatMessage) (completion.TokenStream, error)
}

// Synthesizer converts one finalized text chunk to audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceModel, format string, sampleRate int) ([]byte, string, error)
}

// Request is one validated voice streaming exchange.
type Request struct {
	Prompt   string
	Context  string
	Category string
	History  []completion.ChatMessage
	Settings Settings
}

// Result summarizes a completed stream for persistence by the caller.
type Result struct {
	Reply       string
	Category    string
	TotalTokens int
	TotalChunks int
}

// Orchestrator ties the completion stream, segmenter and synthesizer
// together. It holds only injected collaborators and is safe for concurrent
// use; all per-request state lives inside Run.
type Orchestrator struct {
	completions Streamer
	speech      Synthesizer // nil degrades the voice leg to text-only
	chatModel   string
}

func NewOrchestrator(completions Streamer, synthesizer Synthesizer, chatModel string) *Orchestrator {
	return &Orchestrator{
		completions: completions,
		speech:      synthesizer,
		chatModel:   chatModel,
	}
}

// run-scoped mutable state. Owned by a single goroutine for the lifetime of
// one request; no locking needed.
type runState struct {
	settings    resolved
	buffer      string // suffix of generated text not yet cut into a chunk
	full        strings.Builder
	chunkIndex  int
	totalTokens int
	chunkTime   time.Duration
	startedAt   time.Time
	firstAudio  time.Time
	voiceDown   bool
}

// Run executes the INIT -> STREAMING -> FLUSHING -> DONE state machine for
// one request, writing every event onto out. The returned error is nil on a
// completed stream, ErrChannelClosed when the consumer went away, and the
// underlying fatal error otherwise (after an error event has been written).
func (o *Orchestrator) Run(ctx context.Context, req Request, out EventWriter) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	category := completion.NormalizeCategory(req.Category)
	st := &runState{
		settings:  req.Settings.resolve(),
		startedAt: time.Now(),
		voiceDown: o.speech == nil,
	}

	if st.voiceDown {
		// Reported once; no audio-error events follow.
		log.Warn().Msg("Speech synthesis not configured - degrading stream to text-only")
	}

	if err := out.WriteEvent(EventStart, StartPayload{
		SelectedCategory: category,
		Model:            o.chatModel,
		VoiceModel:       st.settings.Model,
		VoiceSettings:    st.settings.echo(),
		Timestamp:        now(),
	}); err != nil {
		return nil, ErrChannelClosed
	}

	messages := make([]completion.ChatMessage, 0, len(req.History)+2)
	messages = append(messages, completion.GuidancePrompt(category, req.Context))
	messages = append(messages, req.History...)
	messages = append(messages, completion.ChatMessage{Role: completion.RoleUser, Content: req.Prompt})

	stream, err := o.completions.StreamCompletion(ctx, messages)
	if err != nil {
		o.fail(out, err)
		return nil, err
	}
	defer stream.Close()

	if err := o.consume(ctx, stream, st, out); err != nil {
		if !errors.Is(err, ErrChannelClosed) {
			o.fail(out, err)
		}
		return nil, err
	}

	// FLUSHING: residual text becomes one final chunk, minChunkSize ignored.
	if strings.TrimSpace(st.buffer) != "" {
		chunk := st.buffer
		st.buffer = ""
		if err := o.processChunk(ctx, st, out, chunk); err != nil {
			return nil, err
		}
	}

	if err := o.finish(st, out); err != nil {
		return nil, err
	}

	return &Result{
		Reply:       st.full.String(),
		Category:    category,
		TotalTokens: st.totalTokens,
		TotalChunks: st.chunkIndex,
	}, nil
}

// consume runs the STREAMING state: token in, text event out, chunks cut and
// synthesized inline so ordering and memory stay bounded.
func (o *Orchestrator) consume(ctx context.Context, stream completion.TokenStream, st *runState, out EventWriter) error {
	for {
		select {
		case <-ctx.Done():
			// Plain cancellation means the consumer went away; expiry of a
			// configured stream timeout is a real failure.
			if errors.Is(ctx.Err(), context.Canceled) {
				return ErrChannelClosed
			}
			return ctx.Err()
		default:
		}

		tok, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if tok.Usage != nil {
			st.totalTokens = tok.Usage.TotalTokens
		}
		if tok.Content == "" {
			continue
		}

		st.buffer += tok.Content
		st.full.WriteString(tok.Content)

		if err := out.WriteEvent(EventText, TextPayload{Content: tok.Content, Timestamp: now()}); err != nil {
			return ErrChannelClosed
		}

		for {
			chunk, rest, ready := nextChunk(st.buffer, st.settings)
			if !ready {
				break
			}
			st.buffer = rest
			if err := o.processChunk(ctx, st, out, chunk); err != nil {
				return err
			}
		}
	}
}

// nextChunk implements the chunk-ready predicate. Natural breaks are
// consulted once minChunkSize words have accumulated; past chunkSize the text
// is cut by word count alone.
func nextChunk(buffer string, s resolved) (chunk, rest string, ready bool) {
	w := segment.WordCount(buffer)
	if w == 0 {
		return "", "", false
	}

	if s.NaturalBreaks && w >= s.MinChunkSize {
		if off := segment.FindBreakPoint(buffer, s.ChunkSize); off != segment.NoBreak {
			return buffer[:off], buffer[off:], true
		}
	}

	if w >= s.ChunkSize || w >= s.MaxChunkSize {
		n := w
		if s.ChunkSize < n {
			n = s.ChunkSize
		}
		off := segment.WordSliceOffset(buffer, n)
		if off >= len(buffer) {
			// The final word may still be arriving; leave it for the next
			// delta or the flush.
			return "", "", false
		}
		return buffer[:off], buffer[off:], true
	}

	return "", "", false
}

// processChunk synthesizes one chunk and writes its audio or audio-error
// event. Synthesis failures are chunk-local and never abort the stream; a
// write failure surfaces as ErrChannelClosed.
func (o *Orchestrator) processChunk(ctx context.Context, st *runState, out EventWriter, chunk string) error {
	if st.voiceDown {
		return nil
	}

	index := st.chunkIndex
	st.chunkIndex++

	started := time.Now()
	audio, mime, err := o.speech.Synthesize(ctx, strings.TrimSpace(chunk), st.settings.Model, st.settings.AudioFormat, st.settings.SampleRate)
	elapsed := time.Since(started)
	st.chunkTime += elapsed

	if err != nil {
		log.Warn().
			Err(err).
			Int("chunk_index", index).
			Msg("Chunk synthesis failed - continuing text-only for this chunk")

		if werr := out.WriteEvent(EventAudioError, AudioErrorPayload{
			ChunkIndex: index,
			Text:       chunk,
			Error:      err.Error(),
			Timestamp:  now(),
		}); werr != nil {
			return ErrChannelClosed
		}
		return nil
	}

	if st.firstAudio.IsZero() {
		st.firstAudio = time.Now()
	}

	words := segment.WordCount(chunk)
	if werr := out.WriteEvent(EventAudio, AudioPayload{
		ChunkIndex:        index,
		Audio:             base64.StdEncoding.EncodeToString(audio),
		Text:              chunk,
		MimeType:          mime,
		EstimatedDuration: float64(words) * msPerWord,
		ActualSize:        len(audio),
		StreamingLatency:  elapsed.Milliseconds(),
		Timestamp:         now(),
		WordCount:         words,
	}); werr != nil {
		return ErrChannelClosed
	}

	return nil
}

// finish writes the terminal done event with aggregate timing.
func (o *Orchestrator) finish(st *runState, out EventWriter) error {
	total := time.Since(st.startedAt)

	firstAudioMs := int64(-1)
	if !st.firstAudio.IsZero() {
		firstAudioMs = st.firstAudio.Sub(st.startedAt).Milliseconds()
	}

	avgChunkMs := 0.0
	if st.chunkIndex > 0 {
		avgChunkMs = float64(st.chunkTime.Milliseconds()) / float64(st.chunkIndex)
	}

	tokensPerSecond := 0.0
	if secs := total.Seconds(); secs > 0 && st.totalTokens > 0 {
		tokensPerSecond = float64(st.totalTokens) / secs
	}

	if err := out.WriteEvent(EventDone, DonePayload{
		TotalTokens: st.totalTokens,
		TotalChunks: st.chunkIndex,
		Timing: TimingPayload{
			TotalMs:          total.Milliseconds(),
			TimeToFirstAudio: firstAudioMs,
		},
		Performance: PerformancePayload{
			AvgChunkProcessingMs: avgChunkMs,
			TokensPerSecond:      tokensPerSecond,
		},
		Timestamp: now(),
	}); err != nil {
		return ErrChannelClosed
	}

	return nil
}

// fail writes a terminal error event, best effort.
func (o *Orchestrator) fail(out EventWriter, cause error) {
	message := "The guidance stream could not be completed"

	var upstream *completion.UpstreamError
	if errors.As(cause, &upstream) {
		message = upstream.Message
	}

	_ = out.WriteEvent(EventError, ErrorPayload{
		Error:     "stream_failed",
		Message:   message,
		Timestamp: now(),
	})
}

func now() int64 {
	return time.Now().UnixMilli()
}
