package stamp

import (
	"bytes"
	"testing"
	"time"

	"github.com/go-pdf/fpdf"
)

// singlePageTemplate builds a minimal one-page A4 template PDF in memory.
func singlePageTemplate(t *testing.T) []byte {
	t.Helper()
	return buildTemplate(t, 1)
}

// multiPageTemplate builds a template with the given number of pages.
func multiPageTemplate(t *testing.T, pages int) []byte {
	t.Helper()
	return buildTemplate(t, pages)
}

func buildTemplate(t *testing.T, pages int) []byte {
	t.Helper()

	doc := fpdf.New("P", "pt", "A4", "")
	// Pinned timestamps keep fixture bytes reproducible across builds
	doc.SetCreationDate(time.Unix(0, 0))
	doc.SetModificationDate(time.Unix(0, 0))
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(72, 72, "Certificate of Completion")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("failed to build template fixture: %v", err)
	}
	return buf.Bytes()
}
