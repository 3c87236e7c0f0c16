package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldTypeValid(t *testing.T) {
	for _, ft := range []FieldType{FieldTypeText, FieldTypeEmail, FieldTypeTel, FieldTypeDate, FieldTypeTextarea, FieldTypeNumber} {
		assert.True(t, ft.Valid(), "%s must be valid", ft)
	}
	assert.False(t, FieldType("checkbox").Valid())
	assert.False(t, FieldType("").Valid())
}

func TestSchemaDuplicateIDs(t *testing.T) {
	schema := Schema{
		{ID: "a", Label: "A", Type: FieldTypeText},
		{ID: "b", Label: "B", Type: FieldTypeText},
		{ID: "a", Label: "A again", Type: FieldTypeText},
		{ID: "a", Label: "A thrice", Type: FieldTypeText},
		{ID: "c", Label: "C", Type: FieldTypeText},
		{ID: "b", Label: "B again", Type: FieldTypeText},
	}
	assert.Equal(t, []string{"a", "b"}, schema.DuplicateIDs())
}

func TestSchemaDuplicateIDsEmptyWhenUnique(t *testing.T) {
	assert.Empty(t, Schema{{ID: "a"}, {ID: "b"}}.DuplicateIDs())
	assert.Empty(t, Schema{}.DuplicateIDs())
}

func TestDefaultInvoiceSchemaIsWellFormed(t *testing.T) {
	assert.Empty(t, DefaultInvoiceSchema.DuplicateIDs())
	for _, f := range DefaultInvoiceSchema {
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.Label)
		assert.True(t, f.Type.Valid(), "field %s has invalid type %q", f.ID, f.Type)
	}
}

func TestMIMETypeSets(t *testing.T) {
	for _, m := range ExtractionMIMETypes {
		assert.True(t, IsExtractionMIMEType(m))
	}
	assert.False(t, IsExtractionMIMEType("image/gif"))
	assert.False(t, IsExtractionMIMEType(""))

	assert.True(t, IsSchemaGenerationMIMEType(MimeTypePDF))
	assert.False(t, IsSchemaGenerationMIMEType(MimeTypeJPEG))
	assert.False(t, IsSchemaGenerationMIMEType(MimeTypeText))
}
