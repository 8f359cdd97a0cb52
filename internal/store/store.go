// Package store persists resolution runs and canonical entities behind a
// driver-switchable interface (sqlite for local use, postgres for shared
// deployments).
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/leadgrid/dealerxref/internal/model"
)

// Run records one resolution run and its headline counts.
type Run struct {
	ID        string    `json:"id"`
	Sources   int       `json:"sources"`
	Records   int       `json:"records"`
	Entities  int       `json:"entities"`
	CreatedAt time.Time `json:"created_at"`
}

// EntityFilter specifies criteria for listing entities.
type EntityFilter struct {
	RunID           string           `json:"run_id,omitempty"`
	Confidence      model.Confidence `json:"confidence,omitempty"`
	MultiSourceOnly bool             `json:"multi_source_only,omitempty"`
	Limit           int              `json:"limit,omitempty"`
	Offset          int              `json:"offset,omitempty"`
}

// Store defines the persistence interface for resolution output.
type Store interface {
	CreateRun(ctx context.Context, sources, records, entities int) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)

	SaveEntities(ctx context.Context, runID string, entities []model.CanonicalEntity) error
	ListEntities(ctx context.Context, filter EntityFilter) ([]model.CanonicalEntity, error)

	// SourceStats counts persisted entities per contributing source.
	SourceStats(ctx context.Context) (map[string]int, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Config selects and configures a store backend.
type Config struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// New opens the configured backend.
func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.SQLitePath
		if path == "" {
			path = "dealerxref.db"
		}
		return NewSQLite(path)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, eris.New("store: postgres driver requires database_url")
		}
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
