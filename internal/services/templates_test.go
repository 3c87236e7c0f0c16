package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lllllllleong/docparseflow/internal/document"
	"github.com/Lllllllleong/docparseflow/internal/models"
	"github.com/Lllllllleong/docparseflow/internal/store"
)

// stubSchemaGenerator returns a canned schema or error.
type stubSchemaGenerator struct {
	schema models.Schema
	err    error
	calls  int
}

func (s *stubSchemaGenerator) GenerateSchema(context.Context, []byte, string) (models.Schema, error) {
	s.calls++
	return s.schema, s.err
}

func pdfDoc() *document.Document {
	return &document.Document{Name: "sample.pdf", MIMEType: models.MimeTypePDF, Data: []byte("%PDF")}
}

func newManagerForTest(gen SchemaGenerator) *TemplateFunction {
	return NewTemplateManagerWith(gen, store.NewTemplateStore(store.NewMemKV(), nil), nil)
}

func TestGenerateHoldsPreviewWithoutPersisting(t *testing.T) {
	schema := models.Schema{{ID: "total", Label: "Total", Type: models.FieldTypeNumber}}
	f := newManagerForTest(&stubSchemaGenerator{schema: schema})

	got, err := f.Generate(context.Background(), pdfDoc())
	require.NoError(t, err)
	assert.Equal(t, schema, got)
	assert.Equal(t, schema, f.Preview())
	assert.Equal(t, StatusSucceeded, f.Status())
	assert.Empty(t, f.List(context.Background()), "preview must not be persisted")
}

func TestGenerateFailureClearsNothing(t *testing.T) {
	f := newManagerForTest(&stubSchemaGenerator{err: errors.New("model unavailable")})

	_, err := f.Generate(context.Background(), pdfDoc())
	require.Error(t, err)
	assert.Equal(t, StatusFailed, f.Status())
	assert.Nil(t, f.Preview())
}

func TestConfirmSavePersistsAndClearsPreview(t *testing.T) {
	ctx := context.Background()
	schema := models.Schema{{ID: "total", Label: "Total", Type: models.FieldTypeNumber}}
	f := newManagerForTest(&stubSchemaGenerator{schema: schema})

	_, err := f.Generate(ctx, pdfDoc())
	require.NoError(t, err)

	tpl, err := f.ConfirmSave(ctx, "Invoice A")
	require.NoError(t, err)
	assert.NotEmpty(t, tpl.ID)
	assert.Equal(t, "Invoice A", tpl.Name)
	assert.Nil(t, f.Preview(), "preview is consumed by a successful save")

	list := f.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, tpl, list[0])
}

func TestConfirmSaveWithoutPreview(t *testing.T) {
	f := newManagerForTest(&stubSchemaGenerator{})
	_, err := f.ConfirmSave(context.Background(), "Nothing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no generated schema")
}

func TestConfirmSaveRejectsDuplicateIDs(t *testing.T) {
	ctx := context.Background()
	f := newManagerForTest(&stubSchemaGenerator{schema: models.Schema{
		{ID: "total", Label: "Total", Type: models.FieldTypeNumber},
		{ID: "total", Label: "Grand Total", Type: models.FieldTypeNumber},
	}})

	_, err := f.Generate(ctx, pdfDoc())
	require.NoError(t, err)

	_, err = f.ConfirmSave(ctx, "Colliding")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate field ids")
	assert.Contains(t, err.Error(), "total")
	assert.NotNil(t, f.Preview(), "rejected preview stays editable")
	assert.Empty(t, f.List(ctx))
}

func TestSaveTemplateUpdatesByID(t *testing.T) {
	ctx := context.Background()
	f := newManagerForTest(&stubSchemaGenerator{})

	schema := models.Schema{{ID: "a", Label: "A", Type: models.FieldTypeText}}
	created, err := f.SaveTemplate(ctx, "First", schema, "")
	require.NoError(t, err)

	updated, err := f.SaveTemplate(ctx, "Renamed", schema, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	list := f.List(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "Renamed", list[0].Name)
}

func TestDeletePassthrough(t *testing.T) {
	ctx := context.Background()
	f := newManagerForTest(&stubSchemaGenerator{})

	created, err := f.SaveTemplate(ctx, "A", models.Schema{{ID: "a", Label: "A", Type: models.FieldTypeText}}, "")
	require.NoError(t, err)

	removed, err := f.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}
