package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tierparse/internal/domain"
	"tierparse/internal/handler"
	"tierparse/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartBody(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	part, err := mw.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func newParseRouter(svc *mocks.MockParseService) *gin.Engine {
	h := handler.NewParseHandler(svc, map[domain.Tier]int64{
		domain.TierFast:     10 * 1024 * 1024,
		domain.TierAccurate: 10 * 1024 * 1024,
	})
	r := gin.New()
	r.POST("/api/v1/parse/fast", h.ParseFast)
	r.POST("/api/v1/parse/accurate", h.ParseAccurate)
	return r
}

func TestParseHandler_FastSuccess(t *testing.T) {
	svc := new(mocks.MockParseService)
	svc.On("Parse", mock.Anything, domain.TierFast, []byte("%PDF-1.4 content"), "doc.pdf").
		Return(&domain.ParseResult{
			Markdown: "# Doc",
			Images:   []domain.ImageData{},
			Tables:   []domain.TableData{},
			Formulas: []domain.FormulaData{},
			Metadata: domain.ResultMetadata{
				Pages:        1,
				Backend:      domain.BackendFastCPU,
				AccuracyTier: domain.AccuracyStandard,
				Filename:     "doc.pdf",
			},
		}, nil).Once()

	body, contentType := multipartBody(t, "file", "doc.pdf", []byte("%PDF-1.4 content"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/fast", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	newParseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Markdown string          `json:"markdown"`
			Images   json.RawMessage `json:"images"`
			Metadata struct {
				Pages        int    `json:"pages"`
				Backend      string `json:"backend"`
				AccuracyTier string `json:"accuracy_tier"`
			} `json:"metadata"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "# Doc", resp.Data.Markdown)
	assert.Equal(t, 1, resp.Data.Metadata.Pages)
	assert.Equal(t, "fast-cpu", resp.Data.Metadata.Backend)
	// Empty sequences serialize as [], never null.
	assert.Equal(t, "[]", string(resp.Data.Images))

	svc.AssertExpectations(t)
}

func TestParseHandler_MissingFileField(t *testing.T) {
	svc := new(mocks.MockParseService)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/fast", bytes.NewBufferString("no file"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	w := httptest.NewRecorder()

	newParseRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestParseHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty file", domain.ErrEmptyFile, http.StatusBadRequest, "EMPTY_FILE"},
		{"unsupported type", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"malformed", domain.ErrMalformedDocument, http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT"},
		{"saturated", domain.ErrPoolSaturated, http.StatusTooManyRequests, "POOL_SATURATED"},
		{"exhausted", domain.ErrResourceExhausted, http.StatusInsufficientStorage, "RESOURCE_EXHAUSTED"},
		{"timeout", domain.ErrTimeout, http.StatusGatewayTimeout, "TIMEOUT"},
		{"engine failure", domain.ErrEngineFailure, http.StatusInternalServerError, "ENGINE_FAILURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.MockParseService)
			svc.On("Parse", mock.Anything, domain.TierAccurate, mock.Anything, mock.Anything).
				Return(nil, tt.err).Once()

			body, contentType := multipartBody(t, "file", "doc.pdf", []byte("%PDF-1.4"))
			req := httptest.NewRequest(http.MethodPost, "/api/v1/parse/accurate", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			newParseRouter(svc).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp struct {
				Success bool `json:"success"`
				Error   struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.NotEmpty(t, resp.Error.Message)
		})
	}
}
