package stamp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/docforge/mcp-pdf-stamper/internal/tabular"
)

func newTestService(t *testing.T) (*Service, string, string) {
	t.Helper()

	templateDir := t.TempDir()
	outputDir := t.TempDir()

	service, err := NewService(1024*1024, templateDir, outputDir, "", 0)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return service, templateDir, outputDir
}

func TestNewService(t *testing.T) {
	service, _, _ := newTestService(t)

	if service.validator == nil {
		t.Error("validator component should not be nil")
	}
	if service.inspector == nil {
		t.Error("inspector component should not be nil")
	}
	if service.stamper == nil {
		t.Error("stamper component should not be nil")
	}
	if service.pathGuard == nil {
		t.Error("path guard component should not be nil")
	}
}

func TestNewService_EmptyDirectories(t *testing.T) {
	if _, err := NewService(1024, "", "/tmp/out", "", 0); err == nil {
		t.Error("expected error for empty template directory")
	}
	if _, err := NewService(1024, "/tmp/in", "", "", 0); err == nil {
		t.Error("expected error for empty output directory")
	}
}

func TestService_ValidateConfiguration(t *testing.T) {
	tests := []struct {
		name          string
		maxFileSize   int64
		expectedError bool
	}{
		{"valid configuration", 1024 * 1024, false},
		{"zero max file size", 0, true},
		{"negative max file size", -1, true},
		{"max file size too large", 2 * 1024 * 1024 * 1024, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := NewService(tt.maxFileSize, t.TempDir(), t.TempDir(), "", 0)
			if err != nil {
				t.Fatalf("failed to create service: %v", err)
			}
			err = service.ValidateConfiguration()
			if tt.expectedError && err == nil {
				t.Error("expected error but got none")
			}
			if !tt.expectedError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestService_LoadTemplateFile(t *testing.T) {
	service, templateDir, _ := newTestService(t)

	template := singlePageTemplate(t)
	path := filepath.Join(templateDir, "template.pdf")
	if err := os.WriteFile(path, template, 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	data, err := service.LoadTemplateFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) != len(template) {
		t.Errorf("expected %d bytes, got %d", len(template), len(data))
	}
}

func TestService_LoadTemplateFileOutsideDirectory(t *testing.T) {
	service, _, _ := newTestService(t)

	outside := t.TempDir()
	path := filepath.Join(outside, "template.pdf")
	if err := os.WriteFile(path, singlePageTemplate(t), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	if _, err := service.LoadTemplateFile(path); err == nil {
		t.Error("expected security error for path outside the template directory")
	}
}

func TestService_LoadRowsFile(t *testing.T) {
	service, templateDir, _ := newTestService(t)

	path := filepath.Join(templateDir, "rows.csv")
	if err := os.WriteFile(path, []byte("name,email\nAlice,alice@example.com\n"), 0o644); err != nil {
		t.Fatalf("failed to write data file: %v", err)
	}

	table, err := service.LoadRowsFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table.Len() != 1 {
		t.Errorf("expected 1 row, got %d", table.Len())
	}
	if table.FirstHeader() != "name" {
		t.Errorf("expected first header 'name', got '%s'", table.FirstHeader())
	}
}

func TestService_LoadRowsFileErrors(t *testing.T) {
	service, templateDir, _ := newTestService(t)

	if _, err := service.LoadRowsFile(filepath.Join(templateDir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := service.LoadRowsFile(templateDir); err == nil {
		t.Error("expected error for directory path")
	}
}

func TestService_TemplateValidateFile(t *testing.T) {
	service, templateDir, _ := newTestService(t)

	path := filepath.Join(templateDir, "template.pdf")
	if err := os.WriteFile(path, singlePageTemplate(t), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	result, err := service.TemplateValidateFile(TemplateValidateFileRequest{Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected template to be valid, got message: %s", result.Message)
	}
}

func TestService_WriteDocument(t *testing.T) {
	service, _, outputDir := newTestService(t)

	doc := GeneratedDocument{Name: "generated_Alice.pdf", Bytes: []byte("%PDF-fake")}
	path, err := service.WriteDocument(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Dir(path) != outputDir {
		t.Errorf("expected document in %s, got %s", outputDir, path)
	}
	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written document: %v", err)
	}
	if string(written) != "%PDF-fake" {
		t.Error("written bytes do not match the document")
	}
}

func TestService_WriteDocumentRejectsEscapingName(t *testing.T) {
	service, _, _ := newTestService(t)

	doc := GeneratedDocument{Name: "../escape.pdf", Bytes: []byte("x")}
	if _, err := service.WriteDocument(doc); err == nil {
		t.Error("expected security error for escaping document name")
	}

	if _, err := service.WriteDocument(GeneratedDocument{}); err == nil {
		t.Error("expected error for empty document name")
	}
}

func TestService_EndToEnd(t *testing.T) {
	service, templateDir, outputDir := newTestService(t)

	templatePath := filepath.Join(templateDir, "certificate.pdf")
	if err := os.WriteFile(templatePath, singlePageTemplate(t), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}
	template, err := service.LoadTemplateFile(templatePath)
	if err != nil {
		t.Fatalf("failed to load template: %v", err)
	}

	table := &tabular.Table{
		Headers: []string{"name"},
		Rows:    []tabular.Row{{"name": "Alice"}, {"name": "Bob"}},
	}

	req := GenerateRequest{
		Template: template,
		Fields:   []TemplateField{{X: 10, Y: 10, FieldName: "name"}},
		Table:    table,
	}

	var paths []string
	err = service.Stamper().GenerateEach(req, func(doc GeneratedDocument) error {
		path, err := service.WriteDocument(doc)
		if err != nil {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if len(paths) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(paths))
	}
	if filepath.Base(paths[0]) != "generated_Alice.pdf" || filepath.Base(paths[1]) != "generated_Bob.pdf" {
		t.Errorf("unexpected output names: %v", paths)
	}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read %s: %v", path, err)
		}
		if _, _, _, err := pageGeometry(data); err != nil {
			t.Errorf("output %s is not a readable PDF: %v", path, err)
		}
		if filepath.Dir(path) != outputDir {
			t.Errorf("output %s written outside the output directory", path)
		}
	}
}
