package completion

import (
	"errors"
	"io"

	"github.com/sashabaranov/go-openai"
)

// TokenStream yields delta fragments of an incremental completion. Recv
// returns io.EOF when the upstream signals completion; any other error is
// terminal and the stream must not be read again.
type TokenStream interface {
	Recv() (StreamToken, error)
	Close() error
}

type openaiTokenStream struct {
	stream *openai.ChatCompletionStream
}

func (s *openaiTokenStream) Recv() (StreamToken, error) {
	resp, err := s.stream.Recv()
	if errors.Is(err, io.EOF) {
		return StreamToken{}, io.EOF
	}
	if err != nil {
		// Mid-stream failure: surfaced as terminal, never retried.
		return StreamToken{}, upstreamError(err)
	}

	tok := StreamToken{}
	if resp.Usage != nil {
		tok.Usage = &TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	if len(resp.Choices) > 0 {
		tok.Content = resp.Choices[0].Delta.Content
	}

	return tok, nil
}

func (s *openaiTokenStream) Close() error {
	return s.stream.Close()
}
