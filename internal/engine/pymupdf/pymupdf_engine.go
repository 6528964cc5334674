package pymupdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tierparse/internal/config"
	"tierparse/internal/domain"
	"tierparse/internal/engine"
	"tierparse/internal/port"
)

func init() {
	engine.RegisterBackend(domain.BackendFastCPU, func(cfg *config.TierConfig) port.Engine {
		return NewEngine(cfg)
	})
}

// Engine implements port.Engine against the PyMuPDF4LLM sidecar's
// blocking /parse endpoint.
type Engine struct {
	endpoint string
	client   *http.Client
}

// NewEngine creates a fast-tier engine client from a tier config.
func NewEngine(cfg *config.TierConfig) *Engine {
	return NewEngineWithEndpoint(cfg, cfg.EngineURL)
}

// NewEngineWithEndpoint creates a client pointing at a custom endpoint
// (for testing).
func NewEngineWithEndpoint(cfg *config.TierConfig, endpoint string) *Engine {
	timeout := cfg.EngineTimeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Engine{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Parse streams the spooled document to the fast engine and decodes
// its response. It blocks until the engine answers or ctx is done.
func (e *Engine) Parse(ctx context.Context, input port.EngineInput) (*port.EngineOutput, error) {
	resp, err := engine.PostDocument(ctx, e.client, e.endpoint, input, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading engine response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fast engine error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var parsed parseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling engine response: %w", err)
	}

	return &port.EngineOutput{
		Markdown: parsed.Markdown,
		Pages:    parsed.Metadata.Pages,
		Engine:   parsed.Metadata.Parser,
		Version:  parsed.Metadata.Version,
	}, nil
}

// parseResponse models the fast engine's /parse payload.
type parseResponse struct {
	Markdown string `json:"markdown"`
	Metadata struct {
		Pages   int    `json:"pages"`
		Parser  string `json:"parser"`
		Version string `json:"version"`
	} `json:"metadata"`
}
