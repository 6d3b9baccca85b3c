package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"

	"github.com/dmitrijs2005/recetario/internal/client/models"
)

// UploadImage sends an image as multipart field "file" and returns the URL the
// backend stored it under. The content type is derived from the file name.
func (c *Client) UploadImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", mime.FormatMediaType("form-data", map[string]string{
		"name":     "file",
		"filename": filepath.Base(filename),
	}))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	var out models.UploadedImage
	if err := c.do(ctx, http.MethodPost, c.endpoint("/upload", nil), &buf, mw.FormDataContentType(), &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
