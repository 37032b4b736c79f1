package stamp

import (
	"errors"

	"github.com/docforge/mcp-pdf-stamper/internal/tabular"
)

// Precondition errors reported by Generate before any work happens.
var (
	ErrNoTemplate = errors.New("no template loaded")
	ErrNoFields   = errors.New("no fields placed on the template")
	ErrNoRows     = errors.New("no data rows loaded")
)

// ClickPosition is a pointer position in pixels relative to the rendered
// page's bounding box, top-left origin.
type ClickPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PageBox describes the rendered page's bounding box in pixels.
type PageBox struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TemplateField is a named anchor point on the template's first page.
// Coordinates are percentages of the rendered page size, so bindings are
// resolution-independent.
type TemplateField struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	FieldName string  `json:"field_name"`
}

// GeneratedDocument is one finished output document.
type GeneratedDocument struct {
	Name  string `json:"name"`
	Bytes []byte `json:"-"`
}

// Request Types

// GenerateRequest carries everything the stamper needs for one batch.
type GenerateRequest struct {
	Template []byte
	Fields   []TemplateField
	Table    *tabular.Table
}

// TemplateValidateFileRequest represents a request to validate a template file
type TemplateValidateFileRequest struct {
	Path string `json:"path"`
}

// TemplateInfoFileRequest represents a request for template file details
type TemplateInfoFileRequest struct {
	Path string `json:"path"`
}

// Response Types

// GenerateResult represents the outcome of a batch generation
type GenerateResult struct {
	Documents []GeneratedDocument `json:"documents"`
	RowCount  int                 `json:"row_count"`
}

// TemplateValidateFileResult represents the result of a template validation
type TemplateValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// TemplateInfoFileResult describes a template's geometry and content
type TemplateInfoFileResult struct {
	Path       string  `json:"path"`
	Name       string  `json:"name"`
	Size       int64   `json:"size"`
	Pages      int     `json:"pages"`
	PageWidth  float64 `json:"page_width"`  // first page, points
	PageHeight float64 `json:"page_height"` // first page, points
	SinglePage bool    `json:"single_page"`
	Preview    string  `json:"preview,omitempty"`
}
