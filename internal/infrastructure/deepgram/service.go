package deepgram

import (
	"context"
	"io"
	"net/http"

	"github.com/graceway/shepherd/internal/config"
	"github.com/rs/zerolog/log"
)

// Service is a thin REST client for the Deepgram API. It holds only immutable
// configuration and is safe for concurrent reuse across requests.
type Service struct {
	Client  *http.Client
	RestURL string
	Headers http.Header
}

func NewService() *Service {
	token := config.GetDeepgramAPIKey()

	if token == "" {
		log.Warn().Msg("Deepgram service not configured - DEEPGRAM_API_KEY missing, voice synthesis unavailable")
		return nil
	}

	headers := http.Header{}
	headers.Add("Authorization", "token "+token)

	s := &Service{
		Client:  &http.Client{},
		RestURL: config.GetDeepgramBaseURL(),
		Headers: headers,
	}

	log.Info().Str("rest_url", s.RestURL).Msg("Deepgram service initialized")

	return s
}

// SetRestURL overrides the REST URL, used by tests pointing at a fake server
func (s *Service) SetRestURL(url string) *Service {
	s.RestURL = url
	return s
}

// MakeRequest makes a request to the Deepgram REST API
func (s *Service) MakeRequest(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, s.RestURL+path, body)
	if err != nil {
		return nil, err
	}

	req.Header = s.Headers.Clone()
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return s.Client.Do(req)
}
