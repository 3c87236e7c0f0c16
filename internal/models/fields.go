package models

// FieldType is the closed set of input types a form field can take.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeDate     FieldType = "date"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeNumber   FieldType = "number"
)

// Valid reports whether t is one of the known field types.
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeDate, FieldTypeTextarea, FieldTypeNumber:
		return true
	}
	return false
}

// FieldDefinition describes one form field to extract or collect.
// ID doubles as the JSON key under which extracted values are returned.
type FieldDefinition struct {
	ID          string    `json:"id"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required,omitempty"`
}

// Schema is an ordered sequence of field definitions. Order is display
// order and must be preserved end to end.
type Schema []FieldDefinition

// DuplicateIDs returns the field ids that occur more than once, in
// first-occurrence order. An empty result means all ids are unique.
func (s Schema) DuplicateIDs() []string {
	seen := make(map[string]int, len(s))
	var dups []string
	for _, f := range s {
		seen[f.ID]++
		if seen[f.ID] == 2 {
			dups = append(dups, f.ID)
		}
	}
	return dups
}

// ExtractedRecord maps field id -> extracted value. Values are strings
// or numbers as returned by the model; a field the model could not find
// is present with an empty string, never omitted.
type ExtractedRecord map[string]any

// Template is a persisted, named schema. ID is generated at creation
// and immutable afterwards; Name is user-supplied and not unique.
type Template struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Schema Schema `json:"schema"`
}
