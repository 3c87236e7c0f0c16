package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/docparseflow/internal/gateway"
	"github.com/Lllllllleong/docparseflow/internal/gcp"
	"github.com/Lllllllleong/docparseflow/internal/store"
)

// Config holds all configuration shared by the workflow services.
type Config struct {
	ProjectID           string
	VertexAIRegion      string
	StoreBackend        string // sqlite | file | firestore
	StorePath           string // sqlite db path, or directory for the file backend
	FirestoreCollection string
}

// loadConfig reads the environment. A missing PROJECT_ID is not an
// error here: it disables model operations (they fail with a
// configuration error) but local template management keeps working.
func loadConfig() *Config {
	return &Config{
		ProjectID:           gcp.GetEnv("PROJECT_ID", ""),
		VertexAIRegion:      gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		StoreBackend:        gcp.GetEnv("TEMPLATE_STORE_BACKEND", "sqlite"),
		StorePath:           gcp.GetEnv("TEMPLATE_STORE_PATH", defaultStorePath()),
		FirestoreCollection: gcp.GetEnv("FIRESTORE_COLLECTION", ""),
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".docparseflow", "templates.db")
	}
	return filepath.Join(home, ".docparseflow", "templates.db")
}

// newTemplateKV builds the key-value backend the template store runs on.
func newTemplateKV(ctx context.Context, cfg *Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(cfg.StorePath), 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
		return store.NewSQLiteKV(cfg.StorePath)
	case "file":
		return store.NewFileKV(cfg.StorePath)
	case "firestore":
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("firestore backend requires PROJECT_ID to be set")
		}
		client, err := gcp.NewFirestoreClient(ctx, cfg.ProjectID)
		if err != nil {
			return nil, err
		}
		return store.NewFirestoreKV(client, cfg.FirestoreCollection), nil
	}
	return nil, fmt.Errorf("unknown TEMPLATE_STORE_BACKEND %q", cfg.StoreBackend)
}

// newGatewayAndStore initializes the model gateway and the template
// store concurrently, since both may hit the network on startup.
func newGatewayAndStore(ctx context.Context, cfg *Config, logger *slog.Logger) (*gateway.Gateway, *store.TemplateStore, error) {
	var (
		vc *gcp.VertexClient
		kv store.KV
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if cfg.ProjectID == "" {
			logger.Warn("PROJECT_ID is not set; model operations are disabled")
			return nil
		}
		var err error
		vc, err = gcp.NewVertexClient(gctx, cfg.ProjectID, cfg.VertexAIRegion)
		if err != nil {
			return fmt.Errorf("failed to create vertex client: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		kv, err = newTemplateKV(gctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to create template backend: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return gateway.New(vc, logger), store.NewTemplateStore(kv, logger), nil
}
