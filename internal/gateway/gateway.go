// Package gateway wraps the two request shapes we issue against the
// hosted model: extracting field values from a document given a schema,
// and proposing a field schema from a sample document. It owns response
// cleanup (fence stripping), JSON parsing and result shaping; callers
// always get either a fully-shaped result or an error, never both.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"cloud.google.com/go/vertexai/genai"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Lllllllleong/docparseflow/internal/gcp"
	"github.com/Lllllllleong/docparseflow/internal/models"
	"github.com/Lllllllleong/docparseflow/internal/prompt"
)

const rawExcerptLimit = 200

// refusalPhrases signal the model declined to process the document.
// Matched case-insensitively against the raw response before parsing.
var refusalPhrases = []string{
	"i am unable to",
	"i cannot fulfill",
	"i cannot answer",
	"i cannot provide",
	"as a large language model",
}

func isRefusal(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range refusalPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// contentGenerator is the slice of the genai model surface the gateway
// needs. It exists so tests can substitute canned responses.
type contentGenerator interface {
	generate(ctx context.Context, parts ...genai.Part) (string, error)
}

// Gateway issues extraction and schema-generation requests. A Gateway
// built without a Vertex client is valid but fails every operation with
// a ConfigurationError instead of crashing.
type Gateway struct {
	extraction contentGenerator
	schemaGen  contentGenerator
	log        *slog.Logger
}

// New creates a Gateway over the given Vertex client. vc may be nil
// when no credential is configured.
func New(vc *gcp.VertexClient, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	g := &Gateway{log: logger}
	if vc != nil {
		g.extraction = &vertexGenerator{model: vc.ExtractionModel, log: logger}
		g.schemaGen = &vertexGenerator{model: vc.SchemaModel, log: logger}
	}
	return g
}

// Extract sends the document plus the schema-derived prompt to the
// model and shapes the parsed response so that every field id of the
// schema is present exactly once; ids the model omitted map to "".
func (g *Gateway) Extract(ctx context.Context, data []byte, mimeType string, schema models.Schema) (models.ExtractedRecord, error) {
	if g.extraction == nil {
		return nil, &ConfigurationError{Reason: "no model credential is configured"}
	}
	if !models.IsExtractionMIMEType(mimeType) {
		return nil, &UnsupportedMediaError{Operation: "extraction", MIMEType: mimeType}
	}

	var parts []genai.Part
	if mimeType == models.MimeTypeText {
		parts = append(parts, genai.Text(string(data)))
	} else {
		parts = append(parts, genai.Blob{MIMEType: mimeType, Data: data})
	}
	parts = append(parts, genai.Text(prompt.BuildExtractionPrompt(schema)))

	text, err := g.extraction.generate(ctx, parts...)
	if err != nil {
		return nil, &GatewayError{Operation: "extraction", Err: err}
	}
	if text == "" {
		return nil, &GatewayError{Operation: "extraction", Err: fmt.Errorf("model returned an empty response")}
	}
	if isRefusal(text) {
		g.log.Error("Model refused to process the document", "excerpt", excerpt(text))
		return nil, &GatewayError{Operation: "extraction", Err: fmt.Errorf("model response indicates refusal")}
	}

	cleaned := stripFence(text)
	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		g.log.Error("Failed to parse extraction response as JSON", "error", err, "excerpt", excerpt(cleaned))
		return nil, &ExtractionError{Excerpt: excerpt(cleaned), Err: err}
	}

	// Shape by iterating the input schema, not the parsed JSON, so the
	// result key set is exactly the schema's id set.
	record := make(models.ExtractedRecord, len(schema))
	for _, field := range schema {
		if v, ok := parsed[field.ID]; ok {
			record[field.ID] = v
		} else {
			record[field.ID] = ""
		}
	}
	return record, nil
}

// generatedSchemaShape validates the minimal contract of a generated
// schema array: every element carries a non-empty id, label and type.
var generatedSchemaShape = jsonschema.MustCompileString("generated-schema.json", `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "label", "type"],
		"properties": {
			"id":    {"type": "string", "minLength": 1},
			"label": {"type": "string", "minLength": 1},
			"type":  {"type": "string", "minLength": 1}
		}
	}
}`)

// GenerateSchema sends a sample PDF to the model and returns the field
// schema it proposes. Only application/pdf samples are accepted. The
// returned field ids are sanitized to identifier-safe tokens; id
// uniqueness is NOT enforced here — callers validate before persisting.
func (g *Gateway) GenerateSchema(ctx context.Context, data []byte, mimeType string) (models.Schema, error) {
	if g.schemaGen == nil {
		return nil, &ConfigurationError{Reason: "no model credential is configured"}
	}
	if !models.IsSchemaGenerationMIMEType(mimeType) {
		return nil, &UnsupportedMediaError{Operation: "schema generation", MIMEType: mimeType}
	}

	parts := []genai.Part{
		genai.Blob{MIMEType: mimeType, Data: data},
		genai.Text(gcp.SchemaGenerationUserPrompt),
	}

	text, err := g.schemaGen.generate(ctx, parts...)
	if err != nil {
		return nil, &GatewayError{Operation: "schema generation", Err: err}
	}
	if text == "" {
		return nil, &GatewayError{Operation: "schema generation", Err: fmt.Errorf("model returned an empty response")}
	}
	if isRefusal(text) {
		g.log.Error("Model refused to process the document", "excerpt", excerpt(text))
		return nil, &GatewayError{Operation: "schema generation", Err: fmt.Errorf("model response indicates refusal")}
	}

	cleaned := stripFence(text)
	var parsed any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		g.log.Error("Failed to parse schema response as JSON", "error", err, "excerpt", excerpt(cleaned))
		return nil, &SchemaGenerationError{Reason: "model did not return valid JSON", Excerpt: excerpt(cleaned), Err: err}
	}
	if err := generatedSchemaShape.Validate(parsed); err != nil {
		g.log.Error("Generated schema failed shape validation", "error", err)
		return nil, &SchemaGenerationError{Reason: "invalid schema structure", Err: err}
	}

	var schema models.Schema
	if err := json.Unmarshal([]byte(cleaned), &schema); err != nil {
		return nil, &SchemaGenerationError{Reason: "invalid schema structure", Err: err}
	}
	for i := range schema {
		schema[i].ID = SanitizeFieldID(schema[i].ID)
	}
	return schema, nil
}

// fenceRE matches a single enclosing code fence with an optional
// language tag on the opening line.
var fenceRE = regexp.MustCompile("(?s)^```(\\w*)\\s*\\n?(.*?)\\n?\\s*```$")

// stripFence removes one enclosing ``` fence, if present. Text without
// a fence passes through untouched.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRE.FindStringSubmatch(s); m != nil && m[2] != "" {
		return strings.TrimSpace(m[2])
	}
	return s
}

func excerpt(s string) string {
	if len(s) <= rawExcerptLimit {
		return s
	}
	// Back off to a rune boundary so the cut never leaves invalid UTF-8
	// in the error message.
	cut := rawExcerptLimit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// vertexGenerator adapts a pre-configured genai model to the
// contentGenerator interface.
type vertexGenerator struct {
	model *genai.GenerativeModel
	log   *slog.Logger
}

func (v *vertexGenerator) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := v.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}
	return v.collectText(resp), nil
}

// collectText robustly gets the raw text content from a model response.
func (v *vertexGenerator) collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return ""
	}

	var b strings.Builder
	var textPartsFound int
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
			textPartsFound++
		}
	}
	if textPartsFound > 1 {
		v.log.Warn("Model response contained multiple text parts; they have been concatenated.", "parts", textPartsFound)
	}
	return strings.TrimSpace(b.String())
}
