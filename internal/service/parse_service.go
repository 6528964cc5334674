package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"tierparse/internal/config"
	"tierparse/internal/domain"
	"tierparse/internal/engine"
	"tierparse/internal/pool"
	"tierparse/internal/port"
	"tierparse/internal/scratch"
)

// ParseService defines the document parsing contract: one synchronous
// call per document, bounded by the tier's pool and deadline.
type ParseService interface {
	Parse(ctx context.Context, tier domain.Tier, data []byte, filename string) (*domain.ParseResult, error)
}

// TierRuntime bundles everything one tier needs at request time. The
// backend and engine are fixed at startup and never swapped mid-run.
type TierRuntime struct {
	Config  *config.TierConfig
	Backend domain.Backend
	Engine  port.Engine
	Pool    *pool.Pool
}

type parseService struct {
	tiers map[domain.Tier]*TierRuntime
	store *scratch.Store
}

// NewParseService creates a ParseService over the given tier runtimes
// and scratch store.
func NewParseService(tiers map[domain.Tier]*TierRuntime, store *scratch.Store) ParseService {
	return &parseService{tiers: tiers, store: store}
}

// Parse validates the document, spools it into request-scoped scratch
// storage, dispatches the blocking engine call through the tier's
// worker pool, and normalizes the output.
//
// Scratch storage is released on every exit path. Timeout is
// best-effort result withholding: when the tier deadline elapses the
// caller gets domain.ErrTimeout, but an engine call already underway
// may run to completion on the engine side.
func (s *parseService) Parse(ctx context.Context, tier domain.Tier, data []byte, filename string) (*domain.ParseResult, error) {
	rt, ok := s.tiers[tier]
	if !ok {
		return nil, domain.ErrUnknownTier
	}

	// Validation comes before any slot or storage acquisition.
	if err := validateDocument(data, rt.Config.MaxFileSizeBytes()); err != nil {
		return nil, err
	}

	requestID := uuid.New().String()
	dir, err := s.store.Acquire(requestID)
	if err != nil {
		log.Printf("parseService.Parse: [%s] scratch acquire failed: %v", requestID, err)
		return nil, fmt.Errorf("allocating request storage: %w", err)
	}
	defer func() { _ = dir.Release() }()

	path, err := dir.WriteInput("input.pdf", data)
	if err != nil {
		log.Printf("parseService.Parse: [%s] spool failed: %v", requestID, err)
		return nil, fmt.Errorf("spooling request input: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, rt.Config.Timeout)
	defer cancel()

	input := port.EngineInput{Path: path, Filename: filename, Size: int64(len(data))}

	start := time.Now()
	var out *port.EngineOutput
	err = rt.Pool.Submit(ctx, func(ctx context.Context) error {
		o, perr := rt.Engine.Parse(ctx, input)
		if perr != nil {
			return perr
		}
		out = o
		return nil
	})
	elapsed := time.Since(start)

	if err != nil {
		return nil, s.mapEngineError(requestID, tier, filename, err)
	}

	log.Printf("parseService.Parse: [%s] tier=%s backend=%s file=%q pages=%d elapsed=%s",
		requestID, tier, rt.Backend, filename, out.Pages, elapsed)

	return normalize(out, rt.Backend, elapsed, filename), nil
}

// mapEngineError translates pool and engine failures into the public
// error taxonomy. Raw engine detail is logged, never returned.
func (s *parseService) mapEngineError(requestID string, tier domain.Tier, filename string, err error) error {
	switch {
	case errors.Is(err, domain.ErrPoolSaturated):
		log.Printf("parseService.Parse: [%s] tier=%s rejected, pool saturated", requestID, tier)
		return domain.ErrPoolSaturated
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		log.Printf("parseService.Parse: [%s] tier=%s file=%q deadline exceeded", requestID, tier, filename)
		return domain.ErrTimeout
	}

	var exhausted *engine.ResourceExhaustedError
	if errors.As(err, &exhausted) {
		log.Printf("parseService.Parse: [%s] tier=%s file=%q resource exhausted: %v",
			requestID, tier, filename, err)
		return domain.ErrResourceExhausted
	}

	log.Printf("parseService.Parse: [%s] tier=%s file=%q engine failure: %v",
		requestID, tier, filename, err)
	return domain.ErrEngineFailure
}

// validateDocument rejects empty, oversized, non-PDF and structurally
// broken payloads. It runs before any resource acquisition, so a
// rejected request never touches a pool slot or scratch storage.
func validateDocument(data []byte, maxBytes int64) error {
	if len(data) == 0 {
		return domain.ErrEmptyFile
	}
	if int64(len(data)) > maxBytes {
		return domain.ErrFileTooLarge
	}

	head := data
	if len(head) > 512 {
		head = head[:512]
	}
	if http.DetectContentType(head) != "application/pdf" {
		return domain.ErrUnsupportedFileType
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if _, err := api.PageCount(bytes.NewReader(data), conf); err != nil {
		return domain.ErrMalformedDocument
	}
	return nil
}
