// Package prompt renders field schemas into the user prompts sent to
// the model. Everything here is pure: the same schema always produces
// the same text, so outputs can be golden-tested.
package prompt

import (
	"strings"

	"github.com/Lllllllleong/docparseflow/internal/models"
)

// BuildExtractionPrompt renders one line per field, in schema order,
// followed by a fixed instruction asking for a JSON object keyed by
// field id.
func BuildExtractionPrompt(schema models.Schema) string {
	var b strings.Builder
	b.WriteString(`Based on the system instruction provided, extract the following fields from the document. Structure your response as a JSON object with keys corresponding to the "id" of each field:
Fields to extract:
`)
	for i, field := range schema {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`  - "`)
		b.WriteString(field.ID)
		b.WriteString(`": (`)
		b.WriteString(string(field.Type))
		b.WriteString(") ")
		b.WriteString(field.Label)
		if field.Placeholder != "" {
			b.WriteString(" (e.g., ")
			b.WriteString(field.Placeholder)
			b.WriteString(")")
		}
	}
	b.WriteString("\n\nYour JSON Output:")
	return b.String()
}
