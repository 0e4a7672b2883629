// Package planstore keeps a journal of compiled execution plans in SQLite.
//
// Every time the node graph compiles a new plan, the app can record it here
// together with the audio block it first ran in. The journal is for offline
// inspection ("what did the dispatcher see at block 48000?"); nothing reads it
// back on the hot path.
package planstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/novagraph/internal/nodeid"
	"github.com/specialistvlad/novagraph/internal/queue"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// Plan is one recorded compile pass.
type Plan struct {
	ID        string
	Block     int64
	Items     int
	Runnable  int
	Edges     int
	CreatedAt string
}

// Item is one recorded queue item.
type Item struct {
	Seq             int
	NodeID          nodeid.ID
	ActivationLimit int
	Successors      []nodeid.ID
}

// Store is the SQLite-backed plan journal.
type Store struct {
	db *sql.DB
}

// Open opens or creates the journal at path and makes sure the schema exists.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("planstore: open database: %w", err)
	}
	// One connection keeps ":memory:" databases coherent.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			db.Close()
			return nil, fmt.Errorf("planstore: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("planstore: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS plans (
			id         TEXT    PRIMARY KEY,
			block      INTEGER NOT NULL,
			items      INTEGER NOT NULL,
			runnable   INTEGER NOT NULL,
			edges      INTEGER NOT NULL,
			created_at TEXT    NOT NULL DEFAULT (datetime('now'))
		);

		CREATE TABLE IF NOT EXISTS plan_items (
			plan_id          TEXT    NOT NULL,
			seq              INTEGER NOT NULL,
			node_id          INTEGER NOT NULL,
			activation_limit INTEGER NOT NULL,
			successors       TEXT    NOT NULL,
			PRIMARY KEY (plan_id, seq),
			FOREIGN KEY (plan_id) REFERENCES plans(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_plans_block ON plans(block);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Record stores q as first used at block. Recording the same plan twice is a
// no-op.
func (s *Store) Record(ctx context.Context, block int64, q *queue.Queue) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("planstore: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO plans (id, block, items, runnable, edges) VALUES (?, ?, ?, ?, ?)`,
		q.ID().String(), block, q.Len(), len(q.Runnable()), q.Edges(),
	)
	if err != nil {
		return fmt.Errorf("planstore: insert plan: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO plan_items (plan_id, seq, node_id, activation_limit, successors) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("planstore: prepare items: %w", err)
	}
	defer stmt.Close()

	for seq, it := range q.Items() {
		if _, err := stmt.ExecContext(ctx,
			q.ID().String(), seq, int64(it.Job().ID()), it.ActivationLimit(), joinIDs(it.Successors()),
		); err != nil {
			return fmt.Errorf("planstore: insert item %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("planstore: commit: %w", err)
	}
	return nil
}

// Plans lists recorded plans, oldest block first.
func (s *Store) Plans(ctx context.Context) ([]Plan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, block, items, runnable, edges, created_at FROM plans ORDER BY block, rowid`)
	if err != nil {
		return nil, fmt.Errorf("planstore: list plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Block, &p.Items, &p.Runnable, &p.Edges, &p.CreatedAt); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// Items returns the items of one plan in queue order.
func (s *Store) Items(ctx context.Context, planID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, node_id, activation_limit, successors FROM plan_items WHERE plan_id = ? ORDER BY seq`, planID)
	if err != nil {
		return nil, fmt.Errorf("planstore: list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			it         Item
			node       int64
			successors string
		)
		if err := rows.Scan(&it.Seq, &node, &it.ActivationLimit, &successors); err != nil {
			return nil, err
		}
		it.NodeID = nodeid.ID(node)
		if it.Successors, err = splitIDs(successors); err != nil {
			return nil, fmt.Errorf("planstore: plan %s item %d: %w", planID, it.Seq, err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func joinIDs(successors queue.Successors) string {
	parts := make([]string, len(successors))
	for i, next := range successors {
		parts[i] = next.Job().ID().String()
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]nodeid.ID, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]nodeid.ID, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseInt(p, 10, 32)
		if err != nil {
			return nil, err
		}
		ids[i] = nodeid.ID(v)
	}
	return ids, nil
}
