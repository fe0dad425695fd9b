// Package pipeline orchestrates one extraction request end to end: upload
// guard, model call, table reconciliation, and artifact rendering.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fintab/fintab/internal/config"
	"github.com/fintab/fintab/internal/extractor"
	"github.com/fintab/fintab/internal/history"
	"github.com/fintab/fintab/internal/home"
	"github.com/fintab/fintab/internal/render"
	"github.com/fintab/fintab/internal/tables"
)

// PDFMediaType is the only accepted upload media type. The declared type
// is trusted as-is; file contents are never sniffed.
const PDFMediaType = "application/pdf"

// PublicRoutePrefix is the URL prefix generated artifacts are served under.
const PublicRoutePrefix = "/public/"

// Upload is one incoming document.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Result is a completed extraction run.
type Result struct {
	Record         history.Record
	TablesHTML     []string
	SpreadsheetURL string // Empty when no artifact was written
}

// Service runs the extraction pipeline. It is safe for concurrent use;
// Reconfigure swaps the model client while in-flight runs keep the client
// they started with.
type Service struct {
	mu      sync.RWMutex
	client  *extractor.Client
	cfg     config.Config
	homeDir *home.Dir
	store   *history.Store
	logger  *slog.Logger
}

// New creates a Service from the given configuration.
func New(cfg config.Config, homeDir *home.Dir, store *history.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:  newExtractor(cfg, logger),
		cfg:     cfg,
		homeDir: homeDir,
		store:   store,
		logger:  logger,
	}
}

func newExtractor(cfg config.Config, logger *slog.Logger) *extractor.Client {
	return extractor.New(extractor.Config{
		APIKey:          cfg.Extractor.ResolvedAPIKey(),
		BaseURL:         cfg.Extractor.BaseURL,
		Model:           cfg.Extractor.Model,
		MaxOutputTokens: cfg.Extractor.MaxOutputTokens,
		Temperature:     cfg.Extractor.Temperature,
		TopP:            cfg.Extractor.TopP,
		Store:           cfg.Extractor.Store,
		Timeout:         cfg.Extractor.Timeout(),
	}, logger)
}

// Reconfigure rebuilds the model client from updated settings.
func (s *Service) Reconfigure(cfg config.Config) {
	client := newExtractor(cfg, s.logger)

	s.mu.Lock()
	s.cfg = cfg
	s.client = client
	s.mu.Unlock()

	s.logger.Info("pipeline.reconfigured", "model", cfg.Extractor.Model)
}

// Model returns the currently configured model name.
func (s *Service) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg.Extractor.Model
}

// Process runs one upload through the pipeline. The context covers the
// upstream model call; caller disconnects cancel it.
func (s *Service) Process(ctx context.Context, up Upload) (*Result, error) {
	if up.ContentType != PDFMediaType {
		s.logger.Warn("extract.rejected",
			"filename", up.Filename,
			"content_type", up.ContentType)
		return nil, ErrInvalidInputType
	}

	s.mu.RLock()
	client := s.client
	cfg := s.cfg
	s.mu.RUnlock()

	start := time.Now()
	rec := history.Record{
		Filename:  up.Filename,
		SizeBytes: int64(len(up.Data)),
		Model:     client.Model(),
	}

	// Page count is informational only; a probe failure never rejects.
	if pages, err := extractor.PageCount(up.Data); err != nil {
		s.logger.Warn("extract.page_count_failed",
			"filename", up.Filename,
			"error", err)
	} else {
		rec.PageCount = pages
	}

	s.logger.Info("extract.request",
		"filename", up.Filename,
		"size_bytes", len(up.Data),
		"pages", rec.PageCount)

	res, err := client.Extract(ctx, extractor.NewRequest(up.Filename, up.Data))
	if err != nil {
		return nil, s.fail(rec, start, err)
	}

	rec.Model = res.Model
	rec.InputTokens = res.InputTokens
	rec.OutputTokens = res.OutputTokens
	rec.TablesExtracted = len(res.Set.Tables)

	recon := tables.Reconcile(res.Set)
	for _, sk := range recon.Skipped {
		s.logger.Warn("reconcile.drop_table",
			"table", sk.Name,
			"reason", string(sk.Reason),
			"lengths", sk.Lengths)
	}
	for _, name := range recon.Overwrites {
		s.logger.Warn("reconcile.overwrite", "table", name)
	}
	rec.TablesReconciled = len(recon.Tables)
	rec.TablesSkipped = len(recon.Skipped)

	frags, err := render.Fragments(recon.Tables)
	if err != nil {
		return nil, s.fail(rec, start, fmt.Errorf("failed to render tables: %w", err))
	}

	var artifactURL string
	if len(recon.Tables) > 0 {
		book, err := render.Workbook(recon.Tables)
		if err != nil {
			return nil, s.fail(rec, start, fmt.Errorf("failed to build workbook: %w", err))
		}

		var artifactID string
		if cfg.Storage.UniqueNames {
			artifactID = uuid.NewString()[:8]
		}
		name := render.ArtifactName(up.Filename, artifactID)
		path := s.artifactPath(cfg, name)
		if err := s.writeArtifact(path, book); err != nil {
			return nil, s.fail(rec, start, err)
		}
		artifactURL = PublicRoutePrefix + name
		rec.SpreadsheetURL = artifactURL

		s.logger.Info("render.xlsx.ok",
			"path", path,
			"size_bytes", len(book),
			"tables", len(recon.Tables))
	}

	rec.Status = history.StatusCompleted
	rec.DurationMs = time.Since(start).Milliseconds()
	stored := s.store.Add(rec)

	s.logger.Info("extract.complete",
		"id", stored.ID,
		"filename", up.Filename,
		"tables", rec.TablesReconciled,
		"skipped", rec.TablesSkipped,
		"duration_ms", rec.DurationMs)

	return &Result{
		Record:         stored,
		TablesHTML:     frags,
		SpreadsheetURL: artifactURL,
	}, nil
}

// fail records a terminal failure and passes the error through unchanged.
func (s *Service) fail(rec history.Record, start time.Time, err error) error {
	rec.DurationMs = time.Since(start).Milliseconds()
	rec.Status = history.StatusFailed

	var refusal *extractor.RefusalError
	if errors.As(err, &refusal) {
		rec.Status = history.StatusRefused
	}
	rec.Error = err.Error()
	s.store.Add(rec)
	return err
}

// artifactPath resolves where an artifact lands: the configured public
// directory when set, the home public directory otherwise.
func (s *Service) artifactPath(cfg config.Config, name string) string {
	if cfg.Storage.PublicDir != "" {
		return filepath.Join(cfg.Storage.PublicDir, name)
	}
	return s.homeDir.ArtifactPath(name)
}

func (s *Service) writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageWriteError{Path: path, Err: err}
	}
	return nil
}
