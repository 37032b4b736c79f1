package stamp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docforge/mcp-pdf-stamper/internal/stamp/security"
	"github.com/docforge/mcp-pdf-stamper/internal/tabular"
)

// Service orchestrates template validation, inspection and batch stamping,
// and confines all file access to the configured directories.
type Service struct {
	maxFileSize int64
	validator   *Validator
	inspector   *Inspector
	stamper     *Stamper
	pathGuard   *security.PathGuard
}

// NewService creates a new stamping service with all components
func NewService(maxFileSize int64, templateDirectory, outputDirectory, fontName string, fontSize int) (*Service, error) {
	pathGuard, err := security.NewPathGuard(templateDirectory, outputDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path guard: %w", err)
	}

	return &Service{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
		inspector:   NewInspector(maxFileSize),
		stamper:     NewStamper(fontName, fontSize),
		pathGuard:   pathGuard,
	}, nil
}

// TemplateValidateFile performs validation on a template file
func (s *Service) TemplateValidateFile(req TemplateValidateFileRequest) (*TemplateValidateFileResult, error) {
	if err := s.pathGuard.ValidateReadPath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.validator.ValidateFile(req)
}

// TemplateInfoFile describes a template file's geometry and content
func (s *Service) TemplateInfoFile(req TemplateInfoFileRequest) (*TemplateInfoFileResult, error) {
	if err := s.pathGuard.ValidateReadPath(req.Path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.inspector.InfoFile(req)
}

// LoadTemplateFile reads and validates a template file, returning its bytes
// for the session to retain.
func (s *Service) LoadTemplateFile(path string) ([]byte, error) {
	if err := s.pathGuard.ValidateReadPath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	if err := s.validator.validateTemplateFile(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return data, nil
}

// LoadRowsFile reads and parses a delimited data file
func (s *Service) LoadRowsFile(path string) (*tabular.Table, error) {
	if err := s.pathGuard.ValidateReadPath(path); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if fileInfo.Size() > s.maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), s.maxFileSize)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	return tabular.ParseBytes(data)
}

// WriteDocument stores one generated document in the output directory and
// returns its full path.
func (s *Service) WriteDocument(doc GeneratedDocument) (string, error) {
	if doc.Name == "" {
		return "", fmt.Errorf("document name cannot be empty")
	}

	path := filepath.Join(s.pathGuard.OutputDirectory(), doc.Name)
	if err := s.pathGuard.ValidateWritePath(path); err != nil {
		return "", fmt.Errorf("security validation failed: %w", err)
	}

	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}
	return path, nil
}

// Stamper returns the configured batch stamper
func (s *Service) Stamper() *Stamper {
	return s.stamper
}

// ValidateTemplateBytes checks an uploaded template buffer
func (s *Service) ValidateTemplateBytes(data []byte) error {
	return s.validator.ValidateBytes(data)
}

// TemplateInfoBytes describes an in-memory template buffer
func (s *Service) TemplateInfoBytes(name string, data []byte) (*TemplateInfoFileResult, error) {
	return s.inspector.InfoBytes(name, data)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// TemplateDirectory returns the directory templates and data files are read from
func (s *Service) TemplateDirectory() string {
	return s.pathGuard.InputDirectory()
}

// OutputDirectory returns the directory generated documents are written to
func (s *Service) OutputDirectory() string {
	return s.pathGuard.OutputDirectory()
}

// ValidateConfiguration validates the service configuration
func (s *Service) ValidateConfiguration() error {
	if s.maxFileSize <= 0 {
		return fmt.Errorf("maxFileSize must be greater than 0")
	}

	if s.maxFileSize > 1024*1024*1024 { // 1GB limit
		return fmt.Errorf("maxFileSize cannot exceed 1GB")
	}

	return nil
}
