package stamp

import (
	"fmt"
	"strings"
)

// FieldRegistry turns pointer clicks on the displayed template page into
// normalized field bindings and keeps them in placement order.
type FieldRegistry struct {
	fields []TemplateField
}

// NewFieldRegistry creates an empty field registry
func NewFieldRegistry() *FieldRegistry {
	return &FieldRegistry{}
}

// AddField records a click as a named field binding. Coordinates are
// normalized to percentages of the page box so they survive any later
// rendering size. A blank name skips the append and returns nil without
// an error; duplicate names are allowed and stamp independently.
func (r *FieldRegistry) AddField(click ClickPosition, box PageBox, name string) (*TemplateField, error) {
	if box.Width <= 0 || box.Height <= 0 {
		return nil, fmt.Errorf("page box must have positive dimensions, got %gx%g", box.Width, box.Height)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	field := TemplateField{
		X:         clampPercent(100 * (click.X - box.Left) / box.Width),
		Y:         clampPercent(100 * (click.Y - box.Top) / box.Height),
		FieldName: name,
	}
	r.fields = append(r.fields, field)

	return &field, nil
}

// Fields returns a snapshot of the bindings in placement order.
func (r *FieldRegistry) Fields() []TemplateField {
	snapshot := make([]TemplateField, len(r.fields))
	copy(snapshot, r.fields)
	return snapshot
}

// Len returns the number of placed fields
func (r *FieldRegistry) Len() int {
	return len(r.fields)
}

// Reset removes all field bindings
func (r *FieldRegistry) Reset() {
	r.fields = nil
}

// clampPercent keeps clicks reported slightly outside the box in range.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
