package stamp

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Validator handles template file validation operations
type Validator struct {
	maxFileSize int64
}

// NewValidator creates a new template validator with the specified constraints
func NewValidator(maxFileSize int64) *Validator {
	return &Validator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs comprehensive validation on a template file
func (v *Validator) ValidateFile(req TemplateValidateFileRequest) (*TemplateValidateFileResult, error) {
	result := &TemplateValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	err := v.validateTemplateFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	result.Valid = true
	return result, nil
}

// validateTemplateFile performs detailed validation on a template file
func (v *Validator) validateTemplateFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), ".pdf") {
		return fmt.Errorf("file is not a PDF: %s", filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	// Try to open the PDF to validate it's a valid PDF file
	f, _, err := pdf.Open(filePath)
	if err != nil {
		return fmt.Errorf("invalid PDF file: %w", err)
	}
	defer f.Close()

	return nil
}

// ValidateBytes checks an in-memory template buffer before it is retained
// by a session.
func (v *Validator) ValidateBytes(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("template is empty")
	}

	if int64(len(data)) > v.maxFileSize {
		return fmt.Errorf("template too large: %d bytes (max: %d bytes)",
			len(data), v.maxFileSize)
	}

	if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
		return fmt.Errorf("invalid PDF template: %w", err)
	}

	return nil
}

// IsValidTemplate performs a quick check to see if a file is a usable template
func (v *Validator) IsValidTemplate(filePath string) bool {
	return v.validateTemplateFile(filePath) == nil
}
