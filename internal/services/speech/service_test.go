package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/graceway/shepherd/internal/infrastructure/deepgram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(handler http.HandlerFunc) (*Service, *httptest.Server) {
	server := httptest.NewServer(handler)

	dg := &deepgram.Service{
		Client:  server.Client(),
		Headers: http.Header{},
	}
	dg.SetRestURL(server.URL)

	return NewService(dg), server
}

func TestSynthesize(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	var gotBody string

	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.Write([]byte("fake-mp3-bytes"))
	})
	defer server.Close()

	audio, mime, err := svc.Synthesize(context.Background(), "Peace be with you.", "aura-asteria-en", FormatMP3, 0)
	require.NoError(t, err)

	assert.Equal(t, []byte("fake-mp3-bytes"), audio)
	assert.Equal(t, "audio/mpeg", mime)
	assert.Equal(t, "/v1/speak", gotPath)
	assert.Equal(t, []string{"aura-asteria-en"}, gotQuery["model"])
	assert.Equal(t, []string{"mp3"}, gotQuery["encoding"])
	assert.JSONEq(t, `{"text":"Peace be with you."}`, gotBody)
}

func TestSynthesizeWAVEncoding(t *testing.T) {
	var gotQuery map[string][]string

	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte("RIFF"))
	})
	defer server.Close()

	_, mime, err := svc.Synthesize(context.Background(), "hello", "aura-asteria-en", FormatWAV, 24000)
	require.NoError(t, err)

	assert.Equal(t, "audio/wav", mime)
	assert.Equal(t, []string{"linear16"}, gotQuery["encoding"])
	assert.Equal(t, []string{"wav"}, gotQuery["container"])
	assert.Equal(t, []string{"24000"}, gotQuery["sample_rate"])
}

func TestSynthesizeUpstreamRejection(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad voice model", http.StatusBadRequest)
	})
	defer server.Close()

	_, _, err := svc.Synthesize(context.Background(), "hello", "no-such-voice", FormatMP3, 0)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, http.StatusBadRequest, synthErr.StatusCode)
	assert.Contains(t, synthErr.Message, "bad voice model")
}

func TestSynthesizeNetworkFailure(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	_, _, err := svc.Synthesize(context.Background(), "hello", "aura-asteria-en", FormatMP3, 0)

	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
	assert.Zero(t, synthErr.StatusCode)
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	svc, server := newTestService(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for empty text")
	})
	defer server.Close()

	_, _, err := svc.Synthesize(context.Background(), "", "aura-asteria-en", FormatMP3, 0)
	assert.Error(t, err)
}

func TestNewServiceNilInfrastructure(t *testing.T) {
	assert.Nil(t, NewService(nil))
}
