package engine

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"tierparse/internal/port"
)

// PostDocument streams a spooled document to an engine sidecar as a
// multipart upload and returns the raw response. Extra form fields may
// be passed via fields. Shared by the concrete engine clients.
func PostDocument(ctx context.Context, client *http.Client, endpoint string, input port.EngineInput, fields map[string]string) (*http.Response, error) {
	f, err := os.Open(input.Path)
	if err != nil {
		return nil, fmt.Errorf("opening spooled document: %w", err)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		defer func() { _ = f.Close() }()
		for k, v := range fields {
			if err := mw.WriteField(k, v); err != nil {
				_ = pw.CloseWithError(err)
				return
			}
		}
		part, err := mw.CreateFormFile("file", input.Filename)
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_ = pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, pr)
	if err != nil {
		_ = pr.Close()
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling engine: %w", err)
	}
	return resp, nil
}
