package mineru

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tierparse/internal/config"
	"tierparse/internal/domain"
	"tierparse/internal/engine"
	"tierparse/internal/port"
)

const (
	deviceModeCUDA = "cuda"
	deviceModeCPU  = "cpu"

	// oomErrorCode is the error code the MinerU sidecar reports when
	// the accelerator runs out of memory mid-parse.
	oomErrorCode = "ACCELERATOR_OOM"
)

func init() {
	engine.RegisterBackend(domain.BackendMultimodalAccelerated, func(cfg *config.TierConfig) port.Engine {
		return NewEngine(cfg, deviceModeCUDA)
	})
	engine.RegisterBackend(domain.BackendMultimodalCPUFallback, func(cfg *config.TierConfig) port.Engine {
		return NewEngine(cfg, deviceModeCPU)
	})
}

// Engine implements port.Engine against the MinerU sidecar's blocking
// /parse endpoint. The device mode is fixed per backend variant at
// construction; it is never renegotiated per request.
type Engine struct {
	endpoint   string
	deviceMode string
	client     *http.Client
}

// NewEngine creates a multimodal engine client from a tier config.
func NewEngine(cfg *config.TierConfig, deviceMode string) *Engine {
	return NewEngineWithEndpoint(cfg, deviceMode, cfg.EngineURL)
}

// NewEngineWithEndpoint creates a client pointing at a custom endpoint
// (for testing).
func NewEngineWithEndpoint(cfg *config.TierConfig, deviceMode, endpoint string) *Engine {
	timeout := cfg.EngineTimeout
	if timeout == 0 {
		timeout = 12 * time.Minute
	}
	return &Engine{
		endpoint:   endpoint,
		deviceMode: deviceMode,
		client:     &http.Client{Timeout: timeout},
	}
}

// Parse streams the spooled document to the MinerU engine and decodes
// its multimodal response. Accelerator memory exhaustion is reported
// as *engine.ResourceExhaustedError; any other engine-side failure is
// a plain error.
func (e *Engine) Parse(ctx context.Context, input port.EngineInput) (*port.EngineOutput, error) {
	fields := map[string]string{"device_mode": e.deviceMode}
	resp, err := engine.PostDocument(ctx, e.client, e.endpoint, input, fields)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading engine response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		baseErr := fmt.Errorf("multimodal engine error (status %d): %s", resp.StatusCode, string(respBody))
		if isResourceExhausted(resp.StatusCode, respBody) {
			return nil, &engine.ResourceExhaustedError{Engine: "mineru", Err: baseErr}
		}
		return nil, baseErr
	}

	var parsed parseResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshaling engine response: %w", err)
	}

	out := &port.EngineOutput{
		Markdown: parsed.Markdown,
		Pages:    parsed.Metadata.Pages,
		Engine:   parsed.Metadata.Parser,
		Version:  parsed.Metadata.Version,
	}
	for _, img := range parsed.Images {
		out.Images = append(out.Images, port.EngineImage{
			ID: img.ImageID, Base64: img.ImageBase64, Page: img.Page, BBox: img.BBox,
		})
	}
	for _, tbl := range parsed.Tables {
		out.Tables = append(out.Tables, port.EngineTable{
			ID: tbl.TableID, Markdown: tbl.Markdown, Page: tbl.Page, BBox: tbl.BBox,
		})
	}
	for _, frm := range parsed.Formulas {
		out.Formulas = append(out.Formulas, port.EngineFormula{
			ID: frm.FormulaID, LaTeX: frm.LaTeX, Page: frm.Page, BBox: frm.BBox,
		})
	}
	return out, nil
}

// isResourceExhausted distinguishes accelerator OOM from generic
// engine failures: either the dedicated status code or the sidecar's
// error code in the body.
func isResourceExhausted(status int, body []byte) bool {
	if status == http.StatusInsufficientStorage {
		return true
	}
	var errResp struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Code == oomErrorCode {
		return true
	}
	return strings.Contains(string(body), oomErrorCode)
}

// parseResponse models the MinerU engine's /parse payload.
type parseResponse struct {
	Markdown string `json:"markdown"`
	Metadata struct {
		Pages   int    `json:"pages"`
		Parser  string `json:"parser"`
		Version string `json:"version"`
	} `json:"metadata"`
	Images []struct {
		ImageID     string    `json:"image_id"`
		ImageBase64 string    `json:"image_base64"`
		Page        int       `json:"page"`
		BBox        []float64 `json:"bbox"`
	} `json:"images"`
	Tables []struct {
		TableID  string    `json:"table_id"`
		Markdown string    `json:"markdown"`
		Page     int       `json:"page"`
		BBox     []float64 `json:"bbox"`
	} `json:"tables"`
	Formulas []struct {
		FormulaID string    `json:"formula_id"`
		LaTeX     string    `json:"latex"`
		Page      int       `json:"page"`
		BBox      []float64 `json:"bbox"`
	} `json:"formulas"`
}
