package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"tierparse/internal/domain"
	"tierparse/internal/service"
)

// ParseHandler handles synchronous document parsing endpoints.
type ParseHandler struct {
	parseService service.ParseService
	maxBytes     map[domain.Tier]int64
}

// NewParseHandler creates a new ParseHandler. maxBytes caps the
// multipart read per tier so an oversized upload is cut off early.
func NewParseHandler(parseService service.ParseService, maxBytes map[domain.Tier]int64) *ParseHandler {
	return &ParseHandler{parseService: parseService, maxBytes: maxBytes}
}

// ParseFast handles POST /api/v1/parse/fast
// @Summary Parse a PDF with the fast text extractor
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} APIResponse "Normalized parse result"
// @Failure 400 {object} APIResponse "Invalid input"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 429 {object} APIResponse "Pool saturated"
// @Failure 504 {object} APIResponse "Deadline exceeded"
// @Router /parse/fast [post]
func (h *ParseHandler) ParseFast(c *gin.Context) {
	h.parse(c, domain.TierFast)
}

// ParseAccurate handles POST /api/v1/parse/accurate
// @Summary Parse a PDF with the multimodal extractor
// @Tags parse
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF document"
// @Success 200 {object} APIResponse "Normalized parse result"
// @Failure 400 {object} APIResponse "Invalid input"
// @Failure 413 {object} APIResponse "File too large"
// @Failure 429 {object} APIResponse "Pool saturated"
// @Failure 507 {object} APIResponse "Accelerator memory exhausted"
// @Failure 504 {object} APIResponse "Deadline exceeded"
// @Router /parse/accurate [post]
func (h *ParseHandler) ParseAccurate(c *gin.Context) {
	h.parse(c, domain.TierAccurate)
}

func (h *ParseHandler) parse(c *gin.Context, tier domain.Tier) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	// Read at most one byte past the tier cap; the service rejects the
	// overflow as too large without holding the rest of the body.
	reader := io.Reader(file)
	if maxBytes, ok := h.maxBytes[tier]; ok {
		reader = io.LimitReader(file, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "failed to read uploaded file")
		return
	}

	result, err := h.parseService.Parse(c.Request.Context(), tier, data, header.Filename)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
