package models

// These structs define the JSON payloads exchanged between the CLI
// entrypoints and the workflow services, and the shapes the tools
// print on stdout.

// ParseRequest is the input for one extraction run.
type ParseRequest struct {
	Source     string `json:"source"`               // local path or gs:// URI
	TemplateID string `json:"templateId,omitempty"` // empty selects the built-in schema
}

// ParseResponse is the output of one extraction run.
type ParseResponse struct {
	Status     string          `json:"status"`
	TemplateID string          `json:"templateId,omitempty"`
	Record     ExtractedRecord `json:"record"`
}

// GenerateRequest is the input for one schema-generation run.
type GenerateRequest struct {
	Source string `json:"source"` // sample PDF, local path or gs:// URI
}

// GenerateResponse is the output of one schema-generation run. The
// schema is a preview only; it is not persisted until confirmed.
type GenerateResponse struct {
	Status string `json:"status"`
	Schema Schema `json:"schema"`
}
