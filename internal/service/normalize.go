package service

import (
	"time"

	"tierparse/internal/domain"
	"tierparse/internal/port"
)

// normalize maps an engine-shaped output into the uniform result
// schema. Absent multimodal fields become empty sequences, never nil,
// and every result is stamped with the backend that produced it and
// the accuracy tier derived from it.
func normalize(out *port.EngineOutput, backend domain.Backend, elapsed time.Duration, filename string) *domain.ParseResult {
	images := make([]domain.ImageData, 0, len(out.Images))
	for _, img := range out.Images {
		images = append(images, domain.ImageData{
			ImageID:     img.ID,
			ImageBase64: img.Base64,
			Page:        img.Page,
			BBox:        img.BBox,
		})
	}

	tables := make([]domain.TableData, 0, len(out.Tables))
	for _, tbl := range out.Tables {
		tables = append(tables, domain.TableData{
			TableID:  tbl.ID,
			Markdown: tbl.Markdown,
			Page:     tbl.Page,
			BBox:     tbl.BBox,
		})
	}

	formulas := make([]domain.FormulaData, 0, len(out.Formulas))
	for _, frm := range out.Formulas {
		formulas = append(formulas, domain.FormulaData{
			FormulaID: frm.ID,
			LaTeX:     frm.LaTeX,
			Page:      frm.Page,
			BBox:      frm.BBox,
		})
	}

	return &domain.ParseResult{
		Markdown: out.Markdown,
		Images:   images,
		Tables:   tables,
		Formulas: formulas,
		Metadata: domain.ResultMetadata{
			Pages:            out.Pages,
			ProcessingTimeMS: elapsed.Milliseconds(),
			Backend:          backend,
			AccuracyTier:     domain.AccuracyFor(backend),
			Engine:           out.Engine,
			EngineVersion:    out.Version,
			Filename:         filename,
		},
	}
}
