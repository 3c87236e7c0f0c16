package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/docparseflow/internal/models"
)

func TestBuildExtractionPromptGolden(t *testing.T) {
	schema := models.Schema{
		{ID: "invoiceNumber", Label: "Invoice Number", Type: models.FieldTypeText, Placeholder: "e.g., 5465456"},
		{ID: "invoiceDate", Label: "Invoice Date", Type: models.FieldTypeDate},
	}

	want := `Based on the system instruction provided, extract the following fields from the document. Structure your response as a JSON object with keys corresponding to the "id" of each field:
Fields to extract:
  - "invoiceNumber": (text) Invoice Number (e.g., e.g., 5465456)
  - "invoiceDate": (date) Invoice Date

Your JSON Output:`

	assert.Equal(t, want, BuildExtractionPrompt(schema))
}

func TestBuildExtractionPromptDeterministic(t *testing.T) {
	schema := models.DefaultInvoiceSchema
	first := BuildExtractionPrompt(schema)
	for i := 0; i < 5; i++ {
		require.Equal(t, first, BuildExtractionPrompt(schema))
	}
}

func TestBuildExtractionPromptContainsEveryFieldOnceInOrder(t *testing.T) {
	schema := models.DefaultInvoiceSchema
	got := BuildExtractionPrompt(schema)

	lastIndex := -1
	for _, field := range schema {
		needle := `"` + field.ID + `"`
		assert.Equal(t, 1, strings.Count(got, needle), "field %s must appear exactly once", field.ID)
		idx := strings.Index(got, needle)
		assert.Greater(t, idx, lastIndex, "field %s out of schema order", field.ID)
		lastIndex = idx
	}
}

func TestBuildExtractionPromptEmptySchema(t *testing.T) {
	got := BuildExtractionPrompt(nil)
	assert.Contains(t, got, "Fields to extract:")
	assert.True(t, strings.HasSuffix(got, "Your JSON Output:"))
}
