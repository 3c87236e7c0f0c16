package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Lllllllleong/docparseflow/internal/document"
	"github.com/Lllllllleong/docparseflow/internal/models"
	"github.com/Lllllllleong/docparseflow/internal/store"
)

// Extractor is the slice of the model gateway the parser workflow
// depends on.
type Extractor interface {
	Extract(ctx context.Context, data []byte, mimeType string, schema models.Schema) (models.ExtractedRecord, error)
}

// ParserFunction orchestrates one extraction at a time: it holds the
// active schema and an editable form state, calls the gateway per
// user-initiated parse action, and merges the returned record into the
// form. One instance serves sequential user actions only; overlapping
// calls are rejected, mirroring the disable-while-busy UI convention.
type ParserFunction struct {
	extractor Extractor
	store     *store.TemplateStore

	templateID string
	schema     models.Schema
	form       map[string]any
	status     Status

	log *slog.Logger
}

// NewParser creates a ParserFunction from environment configuration.
// The built-in invoice schema is active until UseTemplate is called.
func NewParser(ctx context.Context) (*ParserFunction, error) {
	cfg := loadConfig()
	logger := slog.Default()

	gw, ts, err := newGatewayAndStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewParserWith(gw, ts, logger), nil
}

// NewParserWith wires a ParserFunction from explicit dependencies.
func NewParserWith(extractor Extractor, ts *store.TemplateStore, logger *slog.Logger) *ParserFunction {
	if logger == nil {
		logger = slog.Default()
	}
	f := &ParserFunction{
		extractor: extractor,
		store:     ts,
		log:       logger,
	}
	f.useSchema(models.DefaultTemplateID, models.DefaultInvoiceSchema)
	return f
}

// UseTemplate activates a saved template (or the built-in schema for
// models.DefaultTemplateID) and resets the form state.
func (f *ParserFunction) UseTemplate(ctx context.Context, id string) error {
	if id == "" || id == models.DefaultTemplateID {
		f.useSchema(models.DefaultTemplateID, models.DefaultInvoiceSchema)
		return nil
	}
	tpl, ok := f.store.GetByID(ctx, id)
	if !ok {
		return fmt.Errorf("template %q not found", id)
	}
	f.useSchema(tpl.ID, tpl.Schema)
	return nil
}

func (f *ParserFunction) useSchema(id string, schema models.Schema) {
	f.templateID = id
	f.schema = schema
	f.form = make(map[string]any, len(schema))
	for _, field := range schema {
		f.form[field.ID] = ""
	}
	f.status = StatusIdle
}

// TemplateID returns the id of the active template.
func (f *ParserFunction) TemplateID() string { return f.templateID }

// ActiveSchema returns the schema extraction currently runs against.
func (f *ParserFunction) ActiveSchema() models.Schema { return f.schema }

// Status reports the state of the last parse action.
func (f *ParserFunction) Status() Status { return f.status }

// FormState returns a copy of the editable form values keyed by field id.
func (f *ParserFunction) FormState() map[string]any {
	out := make(map[string]any, len(f.form))
	for k, v := range f.form {
		out[k] = v
	}
	return out
}

// SetField records a manual edit to one form value.
func (f *ParserFunction) SetField(id string, value any) error {
	if _, ok := f.form[id]; !ok {
		return fmt.Errorf("field %q is not part of the active schema", id)
	}
	f.form[id] = value
	return nil
}

// Process runs one extraction against the active schema and merges the
// result into the form state. Model-returned values overwrite current
// form values for matching ids only; nothing is merged on failure.
func (f *ParserFunction) Process(ctx context.Context, doc *document.Document) (models.ExtractedRecord, error) {
	if f.status == StatusRequesting {
		return nil, fmt.Errorf("a parse operation is already in flight")
	}

	logCtx := f.log.With("document", doc.Name, "mimeType", doc.MIMEType, "templateId", f.templateID)
	logCtx.Info("Starting extraction.", "fields", len(f.schema))
	f.status = StatusRequesting

	record, err := f.extractor.Extract(ctx, doc.Data, doc.MIMEType, f.schema)
	if err != nil {
		f.status = StatusFailed
		logCtx.Error("Extraction failed", "error", err)
		return nil, err
	}

	for id, v := range record {
		f.form[id] = v
	}
	f.status = StatusSucceeded
	logCtx.Info("Extraction complete.", "fields", len(record))
	return record, nil
}
