package moderation

import (
	"context"
	"fmt"

	"moderation-controlplane/internal/config"

	"github.com/go-resty/resty/v2"
)

// Scorer is the external text classifier boundary. It returns a label to
// score mapping with scores in [0,1]. Unavailability is a hard failure; this
// core never retries.
type Scorer interface {
	Score(ctx context.Context, text string) (map[string]float64, error)
	Version() string
}

type scoreRequest struct {
	Text string `json:"text"`
}

type scoreResponse struct {
	Scores map[string]float64 `json:"scores"`
}

type httpScorer struct {
	client  *resty.Client
	version string
}

// NewHTTPScorer builds a Scorer that calls a remote classifier endpoint.
func NewHTTPScorer(cfg *config.Config) Scorer {
	client := resty.New().
		SetBaseURL(cfg.Scorer.URL).
		SetTimeout(cfg.Scorer.Timeout)

	return &httpScorer{
		client:  client,
		version: cfg.Scorer.ModelVersion,
	}
}

func (s *httpScorer) Score(ctx context.Context, text string) (map[string]float64, error) {
	var out scoreResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(scoreRequest{Text: text}).
		SetResult(&out).
		Post("/v1/score")
	if err != nil {
		return nil, fmt.Errorf("scorer call failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("scorer returned status %d", resp.StatusCode())
	}
	if out.Scores == nil {
		return nil, fmt.Errorf("scorer returned empty score mapping")
	}

	return out.Scores, nil
}

func (s *httpScorer) Version() string { return s.version }
