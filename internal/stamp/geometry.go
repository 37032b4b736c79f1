package stamp

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pageGeometry resolves the page count and the first page's media box size
// in points from raw template bytes.
func pageGeometry(template []byte) (pages int, width, height float64, err error) {
	if len(template) == 0 {
		return 0, 0, 0, fmt.Errorf("template is empty")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(template), conf)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read template: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to resolve page count: %w", err)
	}
	if ctx.PageCount < 1 {
		return 0, 0, 0, fmt.Errorf("template has no pages")
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to resolve page dimensions: %w", err)
	}
	if len(dims) == 0 {
		return 0, 0, 0, fmt.Errorf("template has no page dimensions")
	}

	return ctx.PageCount, dims[0].Width, dims[0].Height, nil
}
