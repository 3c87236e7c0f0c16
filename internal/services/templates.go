package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Lllllllleong/docparseflow/internal/document"
	"github.com/Lllllllleong/docparseflow/internal/models"
	"github.com/Lllllllleong/docparseflow/internal/store"
)

// SchemaGenerator is the slice of the model gateway the template
// workflow depends on.
type SchemaGenerator interface {
	GenerateSchema(ctx context.Context, data []byte, mimeType string) (models.Schema, error)
}

// TemplateFunction orchestrates schema generation and template
// persistence: generate a schema from a sample PDF, hold it as a
// preview, and persist it only on an explicit confirmation.
type TemplateFunction struct {
	generator SchemaGenerator
	store     *store.TemplateStore

	preview models.Schema
	status  Status

	log *slog.Logger
}

// NewTemplateManager creates a TemplateFunction from environment
// configuration.
func NewTemplateManager(ctx context.Context) (*TemplateFunction, error) {
	cfg := loadConfig()
	logger := slog.Default()

	gw, ts, err := newGatewayAndStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewTemplateManagerWith(gw, ts, logger), nil
}

// NewTemplateManagerWith wires a TemplateFunction from explicit
// dependencies.
func NewTemplateManagerWith(generator SchemaGenerator, ts *store.TemplateStore, logger *slog.Logger) *TemplateFunction {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateFunction{generator: generator, store: ts, log: logger}
}

// Status reports the state of the last generate action.
func (f *TemplateFunction) Status() Status { return f.status }

// Preview returns the schema produced by the last successful Generate,
// or nil when there is nothing pending.
func (f *TemplateFunction) Preview() models.Schema { return f.preview }

// Generate proposes a schema from a sample PDF and holds it as the
// pending preview. Nothing is persisted here. The document loader has
// already verified PDF well-formedness; the gateway still rejects any
// non-PDF sample before calling the model.
func (f *TemplateFunction) Generate(ctx context.Context, doc *document.Document) (models.Schema, error) {
	if f.status == StatusRequesting {
		return nil, fmt.Errorf("a generate operation is already in flight")
	}

	logCtx := f.log.With("document", doc.Name, "mimeType", doc.MIMEType)
	logCtx.Info("Starting schema generation.")
	f.status = StatusRequesting

	schema, err := f.generator.GenerateSchema(ctx, doc.Data, doc.MIMEType)
	if err != nil {
		f.status = StatusFailed
		logCtx.Error("Schema generation failed", "error", err)
		return nil, err
	}

	f.preview = schema
	f.status = StatusSucceeded
	logCtx.Info("Schema generation complete.", "fields", len(schema))
	return schema, nil
}

// ConfirmSave persists the pending preview under the given name and
// clears it. Generated ids are sanitized but not deduplicated by the
// gateway, so collisions are rejected here, before anything is stored.
func (f *TemplateFunction) ConfirmSave(ctx context.Context, name string) (models.Template, error) {
	if f.preview == nil {
		return models.Template{}, fmt.Errorf("no generated schema to save; run Generate first")
	}
	if dups := f.preview.DuplicateIDs(); len(dups) > 0 {
		return models.Template{}, fmt.Errorf("generated schema has duplicate field ids: %s", strings.Join(dups, ", "))
	}

	tpl, err := f.store.Save(ctx, name, f.preview, "")
	if err != nil {
		return models.Template{}, err
	}
	f.preview = nil
	f.log.Info("Template saved.", "templateId", tpl.ID, "name", tpl.Name, "fields", len(tpl.Schema))
	return tpl, nil
}

// SaveTemplate replaces an existing template (or creates a new one when
// id is empty) with the given name and schema. Duplicate field ids are
// rejected the same way ConfirmSave rejects them.
func (f *TemplateFunction) SaveTemplate(ctx context.Context, name string, schema models.Schema, id string) (models.Template, error) {
	if dups := schema.DuplicateIDs(); len(dups) > 0 {
		return models.Template{}, fmt.Errorf("schema has duplicate field ids: %s", strings.Join(dups, ", "))
	}
	return f.store.Save(ctx, name, schema, id)
}

// List returns all saved templates.
func (f *TemplateFunction) List(ctx context.Context) []models.Template {
	return f.store.List(ctx)
}

// Get looks a saved template up by id.
func (f *TemplateFunction) Get(ctx context.Context, id string) (models.Template, bool) {
	return f.store.GetByID(ctx, id)
}

// Delete removes a saved template by id.
func (f *TemplateFunction) Delete(ctx context.Context, id string) (bool, error) {
	return f.store.Delete(ctx, id)
}
