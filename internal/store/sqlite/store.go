// Package sqlite persists computed indicator results.
//
// One writer connection in WAL mode; batch upserts run inside a single
// transaction keyed (symbol, kind, ts) so re-running a calculation for
// the same instant is idempotent.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cedears-engine/internal/model"

	_ "github.com/mattn/go-sqlite3"
)

// Store reads and writes indicator results in SQLite.
type Store struct {
	db *sql.DB
}

// DB returns the underlying sql.DB for health checks.
func (s *Store) DB() *sql.DB { return s.db }

// New opens the database, enables WAL mode, and creates the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}

	// Single-writer pool
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := createSchema(db); err != nil {
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	log.Printf("[sqlite] opened database at %s", dbPath)
	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS indicators (
			symbol   TEXT    NOT NULL,
			kind     TEXT    NOT NULL,
			ts       INTEGER NOT NULL,
			value    REAL    NOT NULL,
			signal   TEXT    NOT NULL,
			strength REAL    NOT NULL,
			meta     TEXT,
			PRIMARY KEY (symbol, kind, ts)
		);

		CREATE INDEX IF NOT EXISTS idx_indicators_symbol_ts
			ON indicators (symbol, ts DESC);
	`)
	return err
}

// SaveIndicators upserts every result of the set in one transaction.
func (s *Store) SaveIndicators(ctx context.Context, set *model.CalculatedIndicatorSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite begin: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO indicators (symbol, kind, ts, value, signal, strength, meta)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("sqlite prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range set.All() {
		meta, _ := json.Marshal(r.Meta)
		if _, err := stmt.ExecContext(ctx, r.Symbol, string(r.Kind), r.TS.Unix(),
			r.Value, string(r.Signal), r.Strength, string(meta)); err != nil {
			tx.Rollback()
			return fmt.Errorf("sqlite upsert %s: %w", r.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite commit: %w", err)
	}
	return nil
}

// LatestIndicators returns the most recent result per kind for a symbol,
// ordered by kind. Returns an empty slice for an unknown symbol.
func (s *Store) LatestIndicators(ctx context.Context, symbol string) ([]model.IndicatorResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT i.symbol, i.kind, i.ts, i.value, i.signal, i.strength, i.meta
		FROM indicators i
		JOIN (
			SELECT kind, MAX(ts) AS max_ts
			FROM indicators
			WHERE symbol = ?
			GROUP BY kind
		) latest ON i.kind = latest.kind AND i.ts = latest.max_ts
		WHERE i.symbol = ?
		ORDER BY i.kind ASC
	`, symbol, symbol)
	if err != nil {
		return nil, fmt.Errorf("sqlite query latest: %w", err)
	}
	defer rows.Close()

	var results []model.IndicatorResult
	for rows.Next() {
		var r model.IndicatorResult
		var kind, signal, meta string
		var tsUnix int64
		if err := rows.Scan(&r.Symbol, &kind, &tsUnix, &r.Value, &signal, &r.Strength, &meta); err != nil {
			return nil, fmt.Errorf("sqlite scan latest: %w", err)
		}
		r.Kind = model.IndicatorKind(kind)
		r.Signal = model.Signal(signal)
		r.TS = time.Unix(tsUnix, 0).UTC()
		if meta != "" && meta != "null" {
			if err := json.Unmarshal([]byte(meta), &r.Meta); err != nil {
				log.Printf("[sqlite] bad meta for %s: %v", r.Key(), err)
			}
		}
		results = append(results, r)
	}
	return results, rows.Err()
}

// DeleteOlderThan removes results outside the retention window and
// returns the number of rows deleted.
func (s *Store) DeleteOlderThan(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM indicators WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("sqlite retention delete: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
