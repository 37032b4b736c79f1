// Package session holds the mutable state of one stamping session:
// template mode, the retained template, placed fields and loaded rows.
// The state is an explicit object rather than package globals so multiple
// sessions can coexist and tests can drive one directly.
package session

import (
	"errors"
	"sync"

	"github.com/docforge/mcp-pdf-stamper/internal/stamp"
	"github.com/docforge/mcp-pdf-stamper/internal/tabular"
)

// ErrBusy is returned when generation is requested while a batch is
// already in flight.
var ErrBusy = errors.New("generation already in progress")

// Session owns the field registry and template state exclusively; the
// stamper borrows them read-only for the duration of one batch.
type Session struct {
	mu           sync.Mutex
	templateMode bool
	templateName string
	template     []byte
	registry     *stamp.FieldRegistry
	table        *tabular.Table
	generating   bool
}

// State is a read-only snapshot of the session for display.
type State struct {
	TemplateMode bool
	TemplateName string
	TemplateSize int
	FieldCount   int
	RowCount     int
	Generating   bool
}

// New creates an empty session
func New() *Session {
	return &Session{
		registry: stamp.NewFieldRegistry(),
	}
}

// SetTemplateMode toggles template mode. While off, clicks and template
// uploads leave the session untouched.
func (s *Session) SetTemplateMode(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templateMode = enabled
}

// TemplateMode reports whether template mode is active
func (s *Session) TemplateMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.templateMode
}

// LoadTemplate retains the template bytes if template mode is active and
// reports whether they were retained. Loading a new template discards any
// previously placed fields, since their positions belong to the old page.
func (s *Session) LoadTemplate(name string, data []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.templateMode {
		return false
	}

	s.templateName = name
	s.template = data
	s.registry.Reset()
	return true
}

// AddField records a click as a field binding. Outside template mode the
// click is ignored and (nil, nil) is returned; same for a blank name.
func (s *Session) AddField(click stamp.ClickPosition, box stamp.PageBox, name string) (*stamp.TemplateField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.templateMode {
		return nil, nil
	}
	return s.registry.AddField(click, box, name)
}

// Fields returns the placed bindings in placement order
func (s *Session) Fields() []stamp.TemplateField {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry.Fields()
}

// LoadRows replaces the session's tabular data
func (s *Session) LoadRows(table *tabular.Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.table = table
}

// CanGenerate reports whether template bytes, at least one field and at
// least one row are all present.
func (s *Session) CanGenerate() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.canGenerateLocked()
}

func (s *Session) canGenerateLocked() bool {
	return len(s.template) > 0 && s.registry.Len() > 0 && s.table.Len() > 0
}

// Snapshot returns the current session state for display
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		TemplateMode: s.templateMode,
		TemplateName: s.templateName,
		TemplateSize: len(s.template),
		FieldCount:   s.registry.Len(),
		RowCount:     s.table.Len(),
		Generating:   s.generating,
	}
}

// Generate runs one batch with the session's current inputs, delivering
// each finished document through emit. Only one batch may run at a time;
// a second call while one is in flight fails with ErrBusy. The inputs are
// snapshotted up front, so session edits during the run do not affect it.
func (s *Session) Generate(stamper *stamp.Stamper, emit func(stamp.GeneratedDocument) error) error {
	s.mu.Lock()
	if s.generating {
		s.mu.Unlock()
		return ErrBusy
	}
	req := stamp.GenerateRequest{
		Template: s.template,
		Fields:   s.registry.Fields(),
		Table:    s.table,
	}
	s.generating = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.generating = false
		s.mu.Unlock()
	}()

	return stamper.GenerateEach(req, emit)
}
