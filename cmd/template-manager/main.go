// Command template-manager lists, shows and deletes saved templates.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/Lllllllleong/docparseflow/internal/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	_ = godotenv.Load()
	flag.Parse()

	ctx := context.Background()

	manager, err := services.NewTemplateManager(ctx)
	if err != nil {
		logger.Error("Failed to initialize template manager", "error", err)
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "list":
		printJSON(manager.List(ctx), logger)
	case "get":
		id := flag.Arg(1)
		if id == "" {
			usage()
		}
		tpl, ok := manager.Get(ctx, id)
		if !ok {
			logger.Error("Template not found", "templateId", id)
			os.Exit(1)
		}
		printJSON(tpl, logger)
	case "delete":
		id := flag.Arg(1)
		if id == "" {
			usage()
		}
		removed, err := manager.Delete(ctx, id)
		if err != nil {
			logger.Error("Failed to delete template", "templateId", id, "error", err)
			os.Exit(1)
		}
		if !removed {
			logger.Warn("Template not found; nothing deleted", "templateId", id)
			return
		}
		logger.Info("Template deleted.", "templateId", id)
	default:
		usage()
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: template-manager <list | get <id> | delete <id>>")
	os.Exit(2)
}

func printJSON(v any, logger *slog.Logger) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logger.Error("Failed to encode output", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(b))
}
