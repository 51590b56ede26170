package sse

import (
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterFraming(t *testing.T) {
	rec := httptest.NewRecorder()

	w, err := NewWriter(rec)
	require.NoError(t, err)

	require.NoError(t, w.WriteEvent("text", map[string]string{"content": "hello"}))
	require.NoError(t, w.WriteEvent("done", map[string]int{"totalChunks": 2}))

	body := rec.Body.String()
	assert.Equal(t,
		"event: text\ndata: {\"content\":\"hello\"}\n\n"+
			"event: done\ndata: {\"totalChunks\":2}\n\n",
		body)

	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.True(t, rec.Flushed)
}

func TestWriterRejectsUnmarshalablePayload(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	err = w.WriteEvent("bad", func() {})
	assert.Error(t, err)
	assert.Empty(t, rec.Body.String(), "failed marshal must write nothing")
}

func TestWriterConcurrentWritesDoNotInterleave(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = w.WriteEvent("text", map[string]string{"content": strings.Repeat("x", 64)})
		}()
	}
	wg.Wait()

	r := NewReader(strings.NewReader(rec.Body.String()))
	count := 0
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, "text", ev.Name)
		count++
	}
	assert.Equal(t, 20, count)
}

func TestReaderParsesStream(t *testing.T) {
	stream := "event: start\ndata: {\"model\":\"gpt-4o-mini\"}\n\n" +
		": keepalive comment\n" +
		"event: text\ndata: {\"content\":\"hi\"}\n\n" +
		"event: done\ndata: {}\n\n"

	r := NewReader(strings.NewReader(stream))

	var events []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		events = append(events, ev)
	}

	require.Len(t, events, 3)
	assert.Equal(t, Event{Name: "start", Data: `{"model":"gpt-4o-mini"}`}, events[0])
	assert.Equal(t, Event{Name: "text", Data: `{"content":"hi"}`}, events[1])
	assert.Equal(t, Event{Name: "done", Data: `{}`}, events[2])
}

func TestReaderMultiLineData(t *testing.T) {
	stream := "event: note\ndata: first\ndata: second\n\n"

	r := NewReader(strings.NewReader(stream))
	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", ev.Data)
}

func TestReaderUnterminatedTrailingEvent(t *testing.T) {
	stream := "event: text\ndata: {\"content\":\"cut off\"}"

	r := NewReader(strings.NewReader(stream))
	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "text", ev.Name)
	assert.Equal(t, `{"content":"cut off"}`, ev.Data)

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReaderCRLFLines(t *testing.T) {
	stream := "event: text\r\ndata: hello\r\n\r\n"

	r := NewReader(strings.NewReader(stream))
	ev, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, Event{Name: "text", Data: "hello"}, ev)
}
