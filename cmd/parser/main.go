// Command parser extracts field values from a document using the
// active template's schema and prints the resulting record as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/joho/godotenv"

	"github.com/Lllllllleong/docparseflow/internal/document"
	"github.com/Lllllllleong/docparseflow/internal/models"
	"github.com/Lllllllleong/docparseflow/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	_ = godotenv.Load()

	input := flag.String("input", "", "document to parse (local path or gs:// URI)")
	templateID := flag.String("template", "", "saved template id; empty uses the built-in invoice schema")
	out := flag.String("out", "", "write the extracted record to this file instead of stdout")
	flag.Parse()

	if *input == "" {
		fmt.Fprintln(os.Stderr, "usage: parser -input <path|gs://uri> [-template <id>] [-out <file>]")
		os.Exit(2)
	}

	ctx := context.Background()

	parser, err := services.NewParser(ctx)
	if err != nil {
		logger.Error("Failed to initialize parser", "error", err)
		os.Exit(1)
	}
	if err := parser.UseTemplate(ctx, *templateID); err != nil {
		logger.Error("Failed to select template", "error", err)
		os.Exit(1)
	}

	doc, err := loadDocument(ctx, *input, logger)
	if err != nil {
		logger.Error("Failed to load document", "error", err)
		os.Exit(1)
	}

	record, err := parser.Process(ctx, doc)
	if err != nil {
		logger.Error("Extraction failed", "error", err)
		os.Exit(1)
	}

	resp := models.ParseResponse{
		Status:     parser.Status().String(),
		TemplateID: parser.TemplateID(),
		Record:     record,
	}
	if err := writeJSON(resp, *out); err != nil {
		logger.Error("Failed to write result", "error", err)
		os.Exit(1)
	}
}

// loadDocument builds a loader, attaching a GCS client only when the
// source actually needs one.
func loadDocument(ctx context.Context, source string, logger *slog.Logger) (*document.Document, error) {
	var gcs *storage.Client
	if strings.HasPrefix(source, "gs://") {
		var err error
		gcs, err = storage.NewClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}
	return document.NewLoader(gcs, logger).Load(ctx, source)
}

func writeJSON(v any, path string) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
