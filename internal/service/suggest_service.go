package service

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/yervar/yervar-backend/internal/config"
	"github.com/yervar/yervar-backend/internal/domain"
)

// SuggestService calls the external route-suggestion endpoint. The call is
// advisory: it runs under a bounded deadline, holds no domain lock, and its
// failure degrades to "no suggestion available" rather than failing the
// surrounding request.
type SuggestService struct {
	cfg    *config.Config
	client *http.Client
}

func NewSuggestService(cfg *config.Config) *SuggestService {
	return &SuggestService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.SuggestTimeout},
	}
}

type suggestRequest struct {
	Origin string `json:"origin"`
}

type suggestResponse struct {
	Destination string `json:"destination"`
}

// SuggestDestination returns a suggested destination label for a trip
// starting at origin, or ErrUpstreamUnavailable when the upstream is
// unconfigured, unreachable, or out of time.
func (s *SuggestService) SuggestDestination(ctx context.Context, origin string) (string, error) {
	if s.cfg.SuggestAPIURL == "" {
		return "", domain.ErrUpstreamUnavailable
	}

	body, err := json.Marshal(suggestRequest{Origin: origin})
	if err != nil {
		return "", domain.ErrUpstreamUnavailable
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.SuggestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.SuggestAPIURL, bytes.NewReader(body))
	if err != nil {
		return "", domain.ErrUpstreamUnavailable
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("WARN [service.Suggest] upstream call failed: %v", err)
		return "", domain.ErrUpstreamUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("WARN [service.Suggest] upstream returned status %d", resp.StatusCode)
		return "", domain.ErrUpstreamUnavailable
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", domain.ErrUpstreamUnavailable
	}

	return out.Destination, nil
}
