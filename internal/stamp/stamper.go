package stamp

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

const (
	// DefaultFontName is the built-in font used for stamped values
	DefaultFontName = "Helvetica"
	// DefaultFontSize is the point size used for stamped values
	DefaultFontSize = 12

	outputPrefix    = "generated_"
	outputExtension = ".pdf"
)

// Stamper produces one stamped document per data row. It borrows the
// template bytes, fields and rows read-only and keeps no state between
// batches.
type Stamper struct {
	fontName string
	fontSize int
}

// NewStamper creates a stamper with the given font settings, falling back
// to the defaults when unset.
func NewStamper(fontName string, fontSize int) *Stamper {
	if fontName == "" {
		fontName = DefaultFontName
	}
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Stamper{
		fontName: fontName,
		fontSize: fontSize,
	}
}

// Generate runs the batch and collects every output document in order.
func (s *Stamper) Generate(req GenerateRequest) (*GenerateResult, error) {
	result := &GenerateResult{}
	err := s.GenerateEach(req, func(doc GeneratedDocument) error {
		result.Documents = append(result.Documents, doc)
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.RowCount = len(result.Documents)
	return result, nil
}

// GenerateEach stamps one document per row, in row order, and hands each
// finished (name, bytes) pair to emit as soon as it is serialized. The
// first failure aborts the whole batch; rows already emitted stay with
// the caller.
func (s *Stamper) GenerateEach(req GenerateRequest, emit func(GeneratedDocument) error) error {
	if len(req.Template) == 0 {
		return ErrNoTemplate
	}
	if len(req.Fields) == 0 {
		return ErrNoFields
	}
	if req.Table.Len() == 0 {
		return ErrNoRows
	}

	// The first page's size is resolved once; every row uses the same
	// template so the geometry cannot change mid-batch.
	_, width, height, err := pageGeometry(req.Template)
	if err != nil {
		return err
	}

	firstHeader := req.Table.FirstHeader()

	for i, row := range req.Table.Rows {
		doc, err := s.stampRow(req.Template, req.Fields, row, width, height)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}

		out := GeneratedDocument{
			Name:  OutputName(row.Value(firstHeader), i),
			Bytes: doc,
		}
		if err := emit(out); err != nil {
			return fmt.Errorf("row %d: failed to deliver document: %w", i+1, err)
		}
	}

	return nil
}

// stampRow instantiates a fresh document from the template bytes and draws
// every field value onto page 1. Reloading per row is the isolation
// invariant: values stamped for one row must never leak into the next.
func (s *Stamper) stampRow(template []byte, fields []TemplateField, row map[string]string, width, height float64) ([]byte, error) {
	watermarks := make([]*model.Watermark, 0, len(fields))
	for _, field := range fields {
		// Missing columns degrade to blank text, which draws nothing.
		value := row[field.FieldName]
		if value == "" {
			continue
		}

		wm, err := s.textWatermark(value, field, width, height)
		if err != nil {
			return nil, err
		}
		watermarks = append(watermarks, wm)
	}

	if len(watermarks) == 0 {
		// Every value was blank; the output is a plain copy of the template.
		out := make([]byte, len(template))
		copy(out, template)
		return out, nil
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var buf bytes.Buffer
	pageWatermarks := map[int][]*model.Watermark{1: watermarks}
	if err := api.AddWatermarksSliceMap(bytes.NewReader(template), &buf, pageWatermarks, conf); err != nil {
		return nil, fmt.Errorf("failed to stamp document: %w", err)
	}

	return buf.Bytes(), nil
}

// textWatermark builds a single text stamp anchored at the field's
// absolute position on the page.
func (s *Stamper) textWatermark(value string, field TemplateField, width, height float64) (*model.Watermark, error) {
	desc := fmt.Sprintf("font:%s, points:%d, scale:1 abs, rot:0, op:1, pos:bl", s.fontName, s.fontSize)
	wm, err := api.TextWatermark(value, desc, true, false, types.POINTS)
	if err != nil {
		return nil, fmt.Errorf("failed to create text stamp for field %q: %w", field.FieldName, err)
	}

	// Field coordinates are percentages with a top-left origin; the page's
	// drawing origin is bottom-left, hence the vertical flip.
	wm.Dx = field.X / 100 * width
	wm.Dy = height - field.Y/100*height

	return wm, nil
}

// OutputName derives the output filename for a row from its first-column
// value. Values are reduced to a filesystem-safe form; rows with a blank
// first column fall back to their 1-based row number.
func OutputName(firstColumnValue string, rowIndex int) string {
	slug := sanitizeFilename(firstColumnValue)
	if slug == "" {
		slug = fmt.Sprintf("row%d", rowIndex+1)
	}
	return outputPrefix + slug + outputExtension
}

// sanitizeFilename keeps letters, digits, dash, underscore and dot, and
// maps spaces to underscores. Everything else is dropped.
func sanitizeFilename(v string) string {
	mapped := make([]rune, 0, len(v))
	for _, r := range v {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			mapped = append(mapped, r)
		case r == '-' || r == '_' || r == '.':
			mapped = append(mapped, r)
		case r == ' ':
			mapped = append(mapped, '_')
		}
	}
	return string(mapped)
}
