package api

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ledgerline/ledgerline-go/internal/errors"
)

// UploadsService handles multipart file uploads (logos, attachments).
type UploadsService struct {
	client *Client
}

type UploadResult struct {
	ID  string `json:"id,omitempty"`
	URL string `json:"url,omitempty"`
}

// UploadFile streams a file to the backend. The upload goes through the same
// adapter as everything else, so the 401 refresh path applies.
func (s *UploadsService) UploadFile(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, errors.Wrapf(err, "[uploads.UploadFile] create form file")
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, errors.Wrapf(err, "[uploads.UploadFile] copy content")
	}
	if err := writer.Close(); err != nil {
		return nil, errors.Wrapf(err, "[uploads.UploadFile] close writer")
	}

	resp, err := s.client.do(ctx, http.MethodPost, "/upload", nil, buf.Bytes(), writer.FormDataContentType())
	if err != nil {
		return nil, err
	}

	var payload struct {
		File *UploadResult `json:"file"`
	}
	if err := decodeInto(resp.status, resp.body, &payload); err != nil {
		return nil, err
	}
	return payload.File, nil
}
