package voice

import (
	"testing"

	"github.com/graceway/shepherd/internal/services/speech"
	"github.com/stretchr/testify/assert"
)

func TestResolveAppliesDefaults(t *testing.T) {
	r := Settings{}.resolve()

	assert.Equal(t, "aura-asteria-en", r.Model)
	assert.Equal(t, 30, r.ChunkSize)
	assert.Equal(t, 15, r.MinChunkSize)
	assert.Equal(t, 60, r.MaxChunkSize)
	assert.Equal(t, speech.FormatMP3, r.AudioFormat)
	assert.Equal(t, 24000, r.SampleRate)
	assert.True(t, r.NaturalBreaks)
}

func TestResolveClampsInvertedBounds(t *testing.T) {
	r := Settings{ChunkSize: 10, MinChunkSize: 20, MaxChunkSize: 5}.resolve()

	assert.Equal(t, 10, r.ChunkSize)
	assert.Equal(t, 10, r.MinChunkSize)
	assert.Equal(t, 10, r.MaxChunkSize)
}

func TestResolveNaturalBreaksExplicitFalse(t *testing.T) {
	off := false
	r := Settings{NaturalBreaks: &off}.resolve()
	assert.False(t, r.NaturalBreaks)
}

func TestResolveUnknownAudioFormatFallsBackToMP3(t *testing.T) {
	r := Settings{AudioFormat: "ogg"}.resolve()
	assert.Equal(t, speech.FormatMP3, r.AudioFormat)
}

func TestEchoRoundTrip(t *testing.T) {
	r := Settings{ChunkSize: 12}.resolve()
	s := r.echo()

	assert.Equal(t, r.ChunkSize, s.ChunkSize)
	assert.Equal(t, r.Model, s.Model)
	if assert.NotNil(t, s.NaturalBreaks) {
		assert.True(t, *s.NaturalBreaks)
	}
}
