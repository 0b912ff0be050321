package api

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/rpupo63/blogger-backend/errs"
)

const maxUploadSize = 10 << 20 // 10MB

// saveUploadedFile stores the multipart file from the named form field under
// the upload directory and returns the public /uploads/... path. A request
// with no file fails with a validation error.
func saveUploadedFile(r *http.Request, field, uploadDir string) (string, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return "", errs.NewBadRequestError("No file uploaded")
	}

	file, header, err := r.FormFile(field)
	if err != nil {
		return "", errs.NewBadRequestError("No file uploaded")
	}
	defer file.Close()

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	// Prefix with a timestamp so repeat uploads of the same filename
	// cannot clobber each other.
	filename := fmt.Sprintf("%d-%s", time.Now().UnixNano(), filepath.Base(header.Filename))
	destination := filepath.Join(uploadDir, filename)

	out, err := os.Create(destination)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return "/uploads/" + filename, nil
}
