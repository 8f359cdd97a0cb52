package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/leadgrid/dealerxref/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	sources    INTEGER NOT NULL,
	records    INTEGER NOT NULL,
	entities   INTEGER NOT NULL,
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS entities (
	id           TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL REFERENCES runs(id),
	name         TEXT NOT NULL,
	phone        TEXT NOT NULL DEFAULT '',
	domain       TEXT NOT NULL DEFAULT '',
	website      TEXT NOT NULL DEFAULT '',
	street       TEXT NOT NULL DEFAULT '',
	city         TEXT NOT NULL DEFAULT '',
	state        TEXT NOT NULL DEFAULT '',
	zip_code     TEXT NOT NULL DEFAULT '',
	rating       REAL NOT NULL DEFAULT 0,
	review_count INTEGER NOT NULL DEFAULT 0,
	source_ids   TEXT NOT NULL,
	tiers        TEXT NOT NULL,
	confidence   TEXT NOT NULL,
	created_at   DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_entities_run_id ON entities(run_id);
CREATE INDEX IF NOT EXISTS idx_entities_confidence ON entities(confidence);
CREATE INDEX IF NOT EXISTS idx_entities_domain ON entities(domain);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateRun(ctx context.Context, sources, records, entities int) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Sources:   sources,
		Records:   records,
		Entities:  entities,
		CreatedAt: time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, sources, records, entities, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Sources, run.Records, run.Entities, run.CreatedAt,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: insert run")
	}
	return run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sources, records, entities, created_at FROM runs ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Sources, &r.Records, &r.Entities, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, r)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) SaveEntities(ctx context.Context, runID string, entities []model.CanonicalEntity) error {
	if len(entities) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin tx")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entities (id, run_id, name, phone, domain, website, street, city, state, zip_code,
                      rating, review_count, source_ids, tiers, confidence, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert entity")
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entities {
		sourceIDs, err := json.Marshal(e.SourceIDs)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal source ids")
		}
		tiers, err := json.Marshal(e.Tiers)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal tiers")
		}

		if _, err := stmt.ExecContext(ctx,
			uuid.New().String(), runID, e.Name, e.Phone, e.Domain, e.Website,
			e.Street, e.City, e.State, e.ZipCode, e.Rating, e.ReviewCount,
			string(sourceIDs), string(tiers), string(e.Confidence), now,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert entity %s", e.Name)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit entities")
}

func (s *SQLiteStore) ListEntities(ctx context.Context, filter EntityFilter) ([]model.CanonicalEntity, error) {
	query := `SELECT name, phone, domain, website, street, city, state, zip_code,
	                 rating, review_count, source_ids, tiers, confidence
	          FROM entities WHERE 1=1`
	var args []any

	if filter.RunID != "" {
		query += " AND run_id = ?"
		args = append(args, filter.RunID)
	}
	if filter.Confidence != "" {
		query += " AND confidence = ?"
		args = append(args, string(filter.Confidence))
	}
	query += " ORDER BY name, phone"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list entities")
	}
	defer rows.Close()

	var entities []model.CanonicalEntity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		if filter.MultiSourceOnly && !e.MultiSource() {
			continue
		}
		entities = append(entities, e)
	}
	return entities, eris.Wrap(rows.Err(), "sqlite: iterate entities")
}

func (s *SQLiteStore) SourceStats(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT source_ids FROM entities`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: source stats")
	}
	defer rows.Close()

	stats := make(map[string]int)
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan source ids")
		}
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal source ids")
		}
		for _, id := range ids {
			stats[id]++
		}
	}
	return stats, eris.Wrap(rows.Err(), "sqlite: iterate source stats")
}

// scanner abstracts sql.Rows for entity scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntity(row scanner) (model.CanonicalEntity, error) {
	var e model.CanonicalEntity
	var sourceIDs, tiers, confidence string

	err := row.Scan(&e.Name, &e.Phone, &e.Domain, &e.Website, &e.Street,
		&e.City, &e.State, &e.ZipCode, &e.Rating, &e.ReviewCount,
		&sourceIDs, &tiers, &confidence)
	if err != nil {
		return e, eris.Wrap(err, "store: scan entity")
	}

	if err := json.Unmarshal([]byte(sourceIDs), &e.SourceIDs); err != nil {
		return e, eris.Wrap(err, "store: unmarshal source ids")
	}
	if tiers != "" && tiers != "null" {
		if err := json.Unmarshal([]byte(tiers), &e.Tiers); err != nil {
			return e, eris.Wrap(err, "store: unmarshal tiers")
		}
	}
	e.Confidence = model.Confidence(confidence)
	return e, nil
}
