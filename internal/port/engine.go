package port

import "context"

// EngineInput carries one spooled document into an engine call. Path
// points into the request's scratch directory and is only valid for
// the duration of the request.
type EngineInput struct {
	Path     string
	Filename string
	Size     int64
}

// EngineOutput is the raw, engine-shaped result before normalization.
// The fast engine populates only Markdown and Pages; the multimodal
// engine may additionally return images, tables and formulas.
type EngineOutput struct {
	Markdown string
	Pages    int
	Engine   string
	Version  string
	Images   []EngineImage
	Tables   []EngineTable
	Formulas []EngineFormula
}

// EngineImage is an extracted image as reported by the engine.
type EngineImage struct {
	ID     string
	Base64 string
	Page   int
	BBox   []float64
}

// EngineTable is an extracted table as reported by the engine.
type EngineTable struct {
	ID       string
	Markdown string
	Page     int
	BBox     []float64
}

// EngineFormula is an extracted formula as reported by the engine.
type EngineFormula struct {
	ID    string
	LaTeX string
	Page  int
	BBox  []float64
}

// Engine abstracts one blocking parsing engine. Implementations are
// thin pass-throughs: argument marshaling and error translation only.
// Concurrency limits and deadlines are enforced by the layers above.
type Engine interface {
	Parse(ctx context.Context, input EngineInput) (*EngineOutput, error)
}
