package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/campus/internal/catalog"
	"github.com/mark3labs/campus/internal/config"
	"github.com/mark3labs/campus/internal/hooks"
	"github.com/mark3labs/campus/internal/logger"
	"github.com/mark3labs/campus/internal/nats"
	"github.com/mark3labs/campus/internal/school"
	"github.com/mark3labs/campus/internal/sqlstore"
	"github.com/mark3labs/campus/internal/upload"
	"github.com/mark3labs/campus/internal/wizard"
)

// backend bundles the school service with the resources backing it.
type backend struct {
	cfg     *config.Config
	service *hookedService
	bucket  upload.Bucket
	closers []func() error
}

// hookedService runs the post_create hooks after each created school.
type hookedService struct {
	*school.Service
	hooks   []*hooks.HookConfig
	workDir string
}

func (s *hookedService) Create(ctx context.Context, f school.FormData) (wizard.Result, error) {
	res, err := s.Service.Create(ctx, f)
	if err != nil || !res.Success || len(s.hooks) == 0 {
		return res, err
	}

	vars := hooks.Variables{
		ID:   res.ID,
		Name: f.Name,
		Slug: school.Slugify(f.Name),
		Path: wizard.SchoolPath(res.ID),
	}
	outputs, herr := hooks.ExecuteAll(ctx, s.hooks, s.workDir, vars)
	if herr != nil {
		logger.Warn("post_create hooks interrupted: %v", herr)
	}
	for i, out := range outputs {
		logger.Info("post_create hook %d: %s", i+1, out)
	}
	return res, nil
}

// loadConfig loads and validates configuration, then applies the logging
// settings to the default logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("failed to configure logger: %w", err)
	}
	return cfg, nil
}

// openBackend opens the configured store and upload bucket.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	b := &backend{cfg: cfg}

	var repo school.Repository
	switch cfg.Store {
	case config.StoreNATS:
		embedded, err := nats.Open(ctx, cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open event store: %w", err)
		}
		b.closers = append(b.closers, embedded.Close)
		repo = catalog.NewStore(embedded.JS, embedded.Stream)
	case config.StoreSQLite:
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlstore.Open(filepath.Join(cfg.DataDir, "campus.db"))
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		b.closers = append(b.closers, store.Close)
		repo = store
	default:
		repo = school.NewMemoryRepository()
	}
	logger.Info("Using %s store", cfg.Store)

	workDir, err := os.Getwd()
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	hookCfg, err := hooks.LoadConfig(workDir)
	if err != nil {
		_ = b.Close()
		return nil, err
	}

	b.service = &hookedService{Service: school.NewService(repo), workDir: workDir}
	if hookCfg != nil {
		b.service.hooks = hookCfg.Hooks.PostCreate
	}
	b.bucket = upload.NewDirBucket(cfg.UploadPath(), cfg.UploadBaseURL)
	return b, nil
}

// Close releases the store in reverse opening order.
func (b *backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}
