// Command template-generator proposes a field schema from a sample PDF
// and, on request, saves it as a named template.
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

	input := flag.String("input", "", "sample PDF (local path or gs:// URI)")
	save := flag.Bool("save", false, "persist the generated schema as a template")
	name := flag.String("name", "", "template name (required with -save)")
	flag.Parse()

	if *input == "" || (*save && *name == "") {
		fmt.Fprintln(os.Stderr, "usage: template-generator -input <sample.pdf> [-save -name <name>]")
		os.Exit(2)
	}

	ctx := context.Background()

	manager, err := services.NewTemplateManager(ctx)
	if err != nil {
		logger.Error("Failed to initialize template manager", "error", err)
		os.Exit(1)
	}

	doc, err := loadDocument(ctx, *input, logger)
	if err != nil {
		logger.Error("Failed to load sample document", "error", err)
		os.Exit(1)
	}

	schema, err := manager.Generate(ctx, doc)
	if err != nil {
		logger.Error("Schema generation failed", "error", err)
		os.Exit(1)
	}

	if !*save {
		printJSON(models.GenerateResponse{Status: manager.Status().String(), Schema: schema}, logger)
		return
	}

	tpl, err := manager.ConfirmSave(ctx, *name)
	if err != nil {
		logger.Error("Failed to save template", "error", err)
		os.Exit(1)
	}
	printJSON(tpl, logger)
}

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

func printJSON(v any, logger *slog.Logger) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("Failed to encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
