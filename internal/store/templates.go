package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Lllllllleong/docparseflow/internal/models"
)

// TemplatesKey is the storage key the whole template collection lives
// under, serialized as one JSON array.
const TemplatesKey = "parserTemplates_v2"

// StorageError means a persistence read or write failed. The underlying
// cause's message is preserved.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("template storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// storedShape is the forgiving validation applied on read: the payload
// must be an array whose elements carry an id, a name and an array
// schema. Anything else is treated as "no templates".
var storedShape = jsonschema.MustCompileString("stored-templates.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "name", "schema"],
		"properties": {
			"id":     {"type": "string", "minLength": 1},
			"name":   {"type": "string"},
			"schema": {"type": "array"}
		}
	}
}`)

// TemplateStore owns the persisted template collection. No other
// component touches the underlying key directly.
type TemplateStore struct {
	kv  KV
	log *slog.Logger
}

func NewTemplateStore(kv KV, logger *slog.Logger) *TemplateStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TemplateStore{kv: kv, log: logger}
}

// List returns all saved templates in stored order. It fails soft: a
// missing, unparsable or shape-invalid payload yields an empty list
// rather than an error. This is the only silent-recovery point in the
// store.
func (s *TemplateStore) List(ctx context.Context) []models.Template {
	raw, found, err := s.kv.Get(ctx, TemplatesKey)
	if err != nil {
		s.log.Warn("Failed to read template collection; treating as empty", "error", err)
		return nil
	}
	if !found {
		return nil
	}
	return s.decode(raw)
}

// decode applies the forgiving read: any corrupt payload logs a warning
// and yields an empty collection.
func (s *TemplateStore) decode(raw []byte) []models.Template {
	var shape any
	if err := json.Unmarshal(raw, &shape); err != nil {
		s.log.Warn("Stored template collection is not valid JSON; treating as empty", "error", err)
		return nil
	}
	if err := storedShape.Validate(shape); err != nil {
		s.log.Warn("Stored template collection failed shape validation; treating as empty", "error", err)
		return nil
	}

	var templates []models.Template
	if err := json.Unmarshal(raw, &templates); err != nil {
		s.log.Warn("Stored template collection could not be decoded; treating as empty", "error", err)
		return nil
	}
	return templates
}

// load reads the collection ahead of a mutation. Unlike List it
// propagates backend failures: a transient Get error must not be
// mistaken for an empty collection, or the rewrite that follows would
// wipe every stored template. Corrupt payloads still decode as empty.
func (s *TemplateStore) load(ctx context.Context) ([]models.Template, error) {
	raw, found, err := s.kv.Get(ctx, TemplatesKey)
	if err != nil {
		return nil, &StorageError{Op: "read", Err: err}
	}
	if !found {
		return nil, nil
	}
	return s.decode(raw), nil
}

// Save persists a template. When id matches an existing record that
// record is replaced in place, keeping its position; otherwise (id
// empty or unknown) a new record with a fresh id is appended. The whole
// collection is rewritten on every save.
func (s *TemplateStore) Save(ctx context.Context, name string, schema models.Schema, id string) (models.Template, error) {
	if schema == nil {
		// A nil schema would serialize as JSON null and fail the shape
		// check on the next read.
		schema = models.Schema{}
	}
	templates, err := s.load(ctx)
	if err != nil {
		return models.Template{}, err
	}

	var saved models.Template
	replaced := false
	if id != "" {
		for i := range templates {
			if templates[i].ID == id {
				templates[i].Name = name
				templates[i].Schema = schema
				saved = templates[i]
				replaced = true
				break
			}
		}
	}
	if !replaced {
		saved = models.Template{ID: uuid.NewString(), Name: name, Schema: schema}
		templates = append(templates, saved)
	}

	if err := s.write(ctx, templates); err != nil {
		return models.Template{}, err
	}
	return saved, nil
}

// GetByID looks a template up by id.
func (s *TemplateStore) GetByID(ctx context.Context, id string) (models.Template, bool) {
	for _, t := range s.List(ctx) {
		if t.ID == id {
			return t, true
		}
	}
	return models.Template{}, false
}

// Delete removes the template with the given id and reports whether a
// removal occurred. An unknown id is not an error, and nothing is
// rewritten in that case.
func (s *TemplateStore) Delete(ctx context.Context, id string) (bool, error) {
	templates, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	kept := templates[:0]
	for _, t := range templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(templates) {
		return false, nil
	}
	if err := s.write(ctx, kept); err != nil {
		return false, err
	}
	return true, nil
}

func (s *TemplateStore) write(ctx context.Context, templates []models.Template) error {
	if templates == nil {
		templates = []models.Template{}
	}
	raw, err := json.Marshal(templates)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.kv.Set(ctx, TemplatesKey, raw); err != nil {
		return &StorageError{Op: "write", Err: err}
	}
	return nil
}
