package domain

// HardwareProfile is the immutable snapshot of compute capability
// detected once at process startup. It is passed by value and never
// mutated after detection; a hardware change during the process
// lifetime is deliberately not observed.
type HardwareProfile struct {
	AcceleratorPresent  bool   `json:"accelerator_present"`
	AcceleratorMemoryMB int64  `json:"accelerator_memory_mb,omitempty"`
	AcceleratorName     string `json:"accelerator_name,omitempty"`
	Cores               int    `json:"cores"`
}

// ImageData is an image extracted by the multimodal engine.
type ImageData struct {
	ImageID     string    `json:"image_id"`
	ImageBase64 string    `json:"image_base64"`
	Page        int       `json:"page"`
	BBox        []float64 `json:"bbox,omitempty"`
}

// TableData is a table extracted by the multimodal engine, rendered
// as markdown.
type TableData struct {
	TableID  string    `json:"table_id"`
	Markdown string    `json:"markdown"`
	Page     int       `json:"page"`
	BBox     []float64 `json:"bbox,omitempty"`
}

// FormulaData is a formula extracted by the multimodal engine,
// rendered as LaTeX.
type FormulaData struct {
	FormulaID string    `json:"formula_id"`
	LaTeX     string    `json:"latex"`
	Page      int       `json:"page"`
	BBox      []float64 `json:"bbox,omitempty"`
}

// ResultMetadata describes how a parse result was produced.
type ResultMetadata struct {
	Pages            int          `json:"pages"`
	ProcessingTimeMS int64        `json:"processing_time_ms"`
	Backend          Backend      `json:"backend"`
	AccuracyTier     AccuracyTier `json:"accuracy_tier"`
	Engine           string       `json:"engine"`
	EngineVersion    string       `json:"engine_version,omitempty"`
	Filename         string       `json:"filename"`
}

// ParseResult is the normalized output of either tier. Images, tables
// and formulas are always present as sequences; the fast tier returns
// them empty, never null.
type ParseResult struct {
	Markdown string         `json:"markdown"`
	Images   []ImageData    `json:"images"`
	Tables   []TableData    `json:"tables"`
	Formulas []FormulaData  `json:"formulas"`
	Metadata ResultMetadata `json:"metadata"`
}

// PoolStats is a point-in-time view of one tier's worker pool.
type PoolStats struct {
	Size     int `json:"size"`
	InFlight int `json:"in_flight"`
	Waiting  int `json:"waiting"`
}

// HealthSnapshot is the read-only status exposed to orchestration.
type HealthSnapshot struct {
	Status        string             `json:"status"`
	Hardware      HardwareProfile    `json:"hardware"`
	Backends      map[Tier]Backend   `json:"backends"`
	Pools         map[Tier]PoolStats `json:"pools"`
	ScratchActive int64              `json:"scratch_active"`
}
