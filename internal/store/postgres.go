package store

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/leadgrid/dealerxref/internal/db"
	"github.com/leadgrid/dealerxref/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	cfg.MaxConns = 10
	cfg.MinConns = 2
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         UUID PRIMARY KEY,
	sources    INTEGER NOT NULL,
	records    INTEGER NOT NULL,
	entities   INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS entities (
	id           UUID PRIMARY KEY,
	run_id       UUID NOT NULL REFERENCES runs(id),
	name         TEXT NOT NULL,
	phone        TEXT NOT NULL DEFAULT '',
	domain       TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	street       TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	zip_code     TEXT NOT NULL DEFAULT '',
	rating       DOUBLE PRECISION NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	source_ids   JSONB NOT NULL,
	tiers        JSONB NOT NULL,
	confidence   TEXT NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_entities_run_id ON entities(run_id);
CREATE INDEX IF NOT EXISTS idx_entities_confidence ON entities(confidence);
CREATE INDEX IF NOT EXISTS idx_entities_domain ON entities(domain);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateRun(ctx context.Context, sources, records, entities int) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Sources:   sources,
		Records:   records,
		Entities:  entities,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, sources, records, entities, created_at) VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.Sources, run.Records, run.Entities, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: insert run")
	}
	return run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, sources, records, entities, created_at FROM runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Sources, &r.Records, &r.Entities, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

// entityColumns is the COPY column order for SaveEntities.
var entityColumns = []string{
	"id", "run_id", "name", "phone", "domain", "website", "street", "city",
	"state", "zip_code", "rating", "review_count", "source_ids", "tiers",
	"confidence", "created_at",
}

func (s *PostgresStore) SaveEntities(ctx context.Context, runID string, entities []model.CanonicalEntity) error {
	if len(entities) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, len(entities))
	for _, e := range entities {
		sourceIDs, err := json.Marshal(e.SourceIDs)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal source ids")
		}
		tiers, err := json.Marshal(e.Tiers)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal tiers")
		}
		rows = append(rows, []any{
			uuid.New().String(), runID, e.Name, e.Phone, e.Domain, e.Website,
			e.Street, e.City, e.State, e.ZipCode, e.Rating, e.ReviewCount,
			string(sourceIDs), string(tiers), string(e.Confidence), now,
		})
	}

	_, err := db.CopyEntities(ctx, s.pool, "entities", entityColumns, rows)
	return err
}

func (s *PostgresStore) ListEntities(ctx context.Context, filter EntityFilter) ([]model.CanonicalEntity, error) {
	query := `SELECT name, phone, domain, website, street, city, state, zip_code,
	                 rating, review_count, source_ids::TEXT, tiers::TEXT, confidence
	          FROM entities WHERE 1=1`
	var args []any

	if filter.RunID != "" {
		args = append(args, filter.RunID)
		query += ` AND run_id = $1`
	}
	if filter.Confidence != "" {
		args = append(args, string(filter.Confidence))
		query += ` AND confidence = $` + itoa(len(args))
	}
	if filter.MultiSourceOnly {
		query += ` AND jsonb_array_length(source_ids) >= 2`
	}
	query += ` ORDER BY name, phone`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + itoa(len(args))
		if filter.Offset > 0 {
			args = append(args, filter.Offset)
			query += ` OFFSET $` + itoa(len(args))
		}
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list entities")
	}
	defer rows.Close()

	var entities []model.CanonicalEntity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}
	return entities, eris.Wrap(rows.Err(), "postgres: iterate entities")
}

func (s *PostgresStore) SourceStats(ctx context.Context) (map[string]int, error) {
	rows, err := s.pool.Query(ctx, `
SELECT src, COUNT(*)
FROM entities, jsonb_array_elements_text(source_ids) AS src
GROUP BY src`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: source stats")
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var src string
		var n int
		if err := rows.Scan(&src, &n); err != nil {
			return nil, eris.Wrap(err, "postgres: scan source stat")
		}
		stats[src] = n
	}
	return stats, eris.Wrap(rows.Err(), "postgres: iterate source stats")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
