package voice

// Event names written to the outbound channel.
const (
	EventStart      = "start"
	EventText       = "text"
	EventAudio      = "audio"
	EventAudioError = "audio-error"
	EventDone       = "done"
	EventError      = "error"
)

// StartPayload opens every stream, echoing the resolved settings so clients
// can configure playback before the first chunk arrives.
type StartPayload struct {
	SelectedCategory string   `json:"selectedCategory"`
	Model            string   `json:"model"`
	VoiceModel       string   `json:"voiceModel"`
	VoiceSettings    Settings `json:"voiceSettings"`
	Timestamp        int64    `json:"timestamp"`
}

// TextPayload is a verbatim passthrough of one model delta, decoupled from
// audio chunk cadence.
type TextPayload struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
}

// AudioPayload carries one synthesized chunk.
type AudioPayload struct {
	ChunkIndex        int     `json:"chunkIndex"`
	Audio             string  `json:"audio"` // base64
	Text              string  `json:"text"`
	MimeType          string  `json:"mimeType"`
	EstimatedDuration float64 `json:"estimatedDuration"` // ms
	ActualSize        int     `json:"actualSize"`
	StreamingLatency  int64   `json:"streamingLatency"` // ms
	Timestamp         int64   `json:"timestamp"`
	WordCount         int     `json:"wordCount"`
}

// AudioErrorPayload reports a chunk whose synthesis failed; text streaming
// continues.
type AudioErrorPayload struct {
	ChunkIndex int    `json:"chunkIndex"`
	Text       string `json:"text"`
	Error      string `json:"error"`
	Timestamp  int64  `json:"timestamp"`
}

type TimingPayload struct {
	TotalMs          int64 `json:"totalMs"`
	TimeToFirstAudio int64 `json:"timeToFirstAudioMs"` // -1 when no audio was produced
}

type PerformancePayload struct {
	AvgChunkProcessingMs float64 `json:"avgChunkProcessingMs"`
	TokensPerSecond      float64 `json:"tokensPerSecond"`
}

// DonePayload terminates a successful stream.
type DonePayload struct {
	TotalTokens int                `json:"totalTokens"`
	TotalChunks int                `json:"totalChunks"`
	Timing      TimingPayload      `json:"timing"`
	Performance PerformancePayload `json:"performance"`
	Timestamp   int64              `json:"timestamp"`
}

// ErrorPayload terminates a failed stream.
type ErrorPayload struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}
