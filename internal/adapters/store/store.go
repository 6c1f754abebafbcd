// Package store implements ports.QuoteRepository on a single JSON file.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/platform/logging"
)

// Name identifies the store in health checks and errors.
const Name = "quote-store"

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Config contains configuration for the file store.
type Config struct {
	// Path is the JSON file holding the quote book.
	Path string

	// Logger is the structured logger.
	Logger *slog.Logger
}

// FileStore keeps the whole quote book in one JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// New creates a file store.
// Panics if Path is empty. Defaults logger to slog.Default() if nil.
func New(cfg Config) *FileStore {
	if cfg.Path == "" {
		panic("store: Path is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &FileStore{
		path:   cfg.Path,
		logger: logger.With(slog.String("component", Name)),
	}
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the quote book. A missing file is an empty book.
// Implements ports.QuoteRepository.
func (s *FileStore) Load(ctx context.Context) (*domain.Collection, error) {
	s.logger.Log(ctx, logging.LevelTrace, "reading store", slog.String("path", s.path))

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.DebugContext(ctx, "store file does not exist, starting empty",
			slog.String("path", s.path))

		return &domain.Collection{}, nil
	}

	if err != nil {
		return nil, domain.NewUnavailableError(Name, err.Error())
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return &domain.Collection{}, nil
	}

	var rec databaseRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, domain.NewUnavailableError(Name, fmt.Sprintf("decoding %s: %v", s.path, err))
	}

	c, err := rec.toDomain()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	s.logger.DebugContext(ctx, "store loaded",
		slog.Int("quotes", len(c.Quotes)),
		slog.Int("people", len(c.People)),
	)

	return c, nil
}

// Save replaces the quote book. The file is written next to its final
// location and renamed into place, so readers never see a partial file.
// Implements ports.QuoteRepository.
func (s *FileStore) Save(ctx context.Context, c *domain.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(fromDomain(c), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding quote book: %w", err)
	}

	data = append(data, '\n')

	if err := s.writeAtomic(data); err != nil {
		return domain.NewUnavailableError(Name, err.Error())
	}

	s.logger.DebugContext(ctx, "store saved",
		slog.String("path", s.path),
		slog.Int("quotes", len(c.Quotes)),
	)

	return nil
}

func (s *FileStore) writeAtomic(data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing %s: %w", s.path, err)
	}

	return nil
}

// Name returns the health check name.
// Implements ports.HealthChecker.
func (s *FileStore) Name() string {
	return Name
}

// Check verifies the store can be read and decoded.
// Implements ports.HealthChecker.
func (s *FileStore) Check(ctx context.Context) error {
	c, err := s.Load(ctx)
	if err != nil {
		return err
	}

	return c.Validate()
}
