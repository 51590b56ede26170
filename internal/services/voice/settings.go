package voice

import (
	"github.com/graceway/shepherd/internal/config"
	"github.com/graceway/shepherd/internal/services/speech"
)

// Settings carries the per-request voice options. Zero values mean "use the
// configured default"; NaturalBreaks is a pointer so an explicit false can be
// told apart from absent.
type Settings struct {
	Model         string `json:"model,omitempty"`
	ChunkSize     int    `json:"chunkSize,omitempty"`
	MinChunkSize  int    `json:"minChunkSize,omitempty"`
	MaxChunkSize  int    `json:"maxChunkSize,omitempty"`
	AudioFormat   string `json:"audioFormat,omitempty"`
	SampleRate    int    `json:"sampleRate,omitempty"`
	NaturalBreaks *bool  `json:"naturalBreaks,omitempty"`
}

// resolved is a Settings with every default applied and NaturalBreaks
// flattened to a concrete bool.
type resolved struct {
	Model         string
	ChunkSize     int
	MinChunkSize  int
	MaxChunkSize  int
	AudioFormat   string
	SampleRate    int
	NaturalBreaks bool
}

func (s Settings) resolve() resolved {
	r := resolved{
		Model:         s.Model,
		ChunkSize:     s.ChunkSize,
		MinChunkSize:  s.MinChunkSize,
		MaxChunkSize:  s.MaxChunkSize,
		AudioFormat:   s.AudioFormat,
		SampleRate:    s.SampleRate,
		NaturalBreaks: true,
	}

	if r.Model == "" {
		r.Model = config.GetDefaultVoiceModel()
	}
	if r.ChunkSize <= 0 {
		r.ChunkSize = config.GetDefaultChunkSize()
	}
	if r.MinChunkSize <= 0 {
		r.MinChunkSize = config.GetDefaultMinChunkSize()
	}
	if r.MaxChunkSize <= 0 {
		r.MaxChunkSize = config.GetDefaultMaxChunkSize()
	}
	if r.MinChunkSize > r.ChunkSize {
		r.MinChunkSize = r.ChunkSize
	}
	if r.MaxChunkSize < r.ChunkSize {
		r.MaxChunkSize = r.ChunkSize
	}
	if r.AudioFormat != speech.FormatWAV {
		r.AudioFormat = speech.FormatMP3
	}
	if r.SampleRate <= 0 {
		r.SampleRate = 24000
	}
	if s.NaturalBreaks != nil {
		r.NaturalBreaks = *s.NaturalBreaks
	}

	return r
}

// echo converts resolved settings back to the wire form for the start event.
func (r resolved) echo() Settings {
	nb := r.NaturalBreaks
	return Settings{
		Model:         r.Model,
		ChunkSize:     r.ChunkSize,
		MinChunkSize:  r.MinChunkSize,
		MaxChunkSize:  r.MaxChunkSize,
		AudioFormat:   r.AudioFormat,
		SampleRate:    r.SampleRate,
		NaturalBreaks: &nb,
	}
}
