package stamp

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Inspector reports a template's geometry and a short text preview so a
// caller can sanity-check a template before placing fields on it.
type Inspector struct {
	maxFileSize    int64
	maxPreviewSize int
}

// NewInspector creates a new template inspector with the specified constraints
func NewInspector(maxFileSize int64) *Inspector {
	return &Inspector{
		maxFileSize:    maxFileSize,
		maxPreviewSize: 512,
	}
}

// InfoFile loads a template file and describes it
func (i *Inspector) InfoFile(req TemplateInfoFileRequest) (*TemplateInfoFileResult, error) {
	if req.Path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(req.Path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", req.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", req.Path)
	}
	if fileInfo.Size() > i.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), i.maxFileSize)
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := i.InfoBytes(filepath.Base(req.Path), data)
	if err != nil {
		return nil, err
	}
	result.Path = req.Path
	return result, nil
}

// InfoBytes describes an in-memory template buffer
func (i *Inspector) InfoBytes(name string, data []byte) (*TemplateInfoFileResult, error) {
	pages, width, height, err := pageGeometry(data)
	if err != nil {
		return nil, err
	}

	return &TemplateInfoFileResult{
		Name:       name,
		Size:       int64(len(data)),
		Pages:      pages,
		PageWidth:  width,
		PageHeight: height,
		SinglePage: pages == 1,
		Preview:    i.textPreview(data),
	}, nil
}

// textPreview extracts the first page's text, trimmed to the preview
// limit. Extraction failures are not fatal; scanned or image-only
// templates simply have no preview.
func (i *Inspector) textPreview(data []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}

	page := reader.Page(1)
	if page.V.IsNull() {
		return ""
	}

	content, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}

	content = strings.TrimSpace(content)
	if len(content) > i.maxPreviewSize {
		content = content[:i.maxPreviewSize]
	}
	return content
}
