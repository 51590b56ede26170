package completion

import "fmt"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn of a conversation. Immutable once constructed;
// requests are ordered slices with system messages first.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// TokenUsage mirrors the aggregate usage counters reported by the model API.
type TokenUsage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// StreamToken is a single delta fragment of an incremental completion.
// Usage is non-nil only on the final accounting frame.
type StreamToken struct {
	Content string
	Usage   *TokenUsage
}

// ChatResponse is the unary (non-streaming) completion result.
type ChatResponse struct {
	ID      string     `json:"id"`
	Created int64      `json:"created"`
	Reply   string     `json:"reply"`
	Usage   TokenUsage `json:"usage"`
}

// UpstreamError reports a chat completion request rejected by the model API,
// or a stream that died mid-flight. Always fatal to the request.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream completion error (status %d): %s", e.StatusCode, e.Message)
}
