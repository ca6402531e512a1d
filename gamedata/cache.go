package gamedata

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Cache persists scanned catalogs in SQLite so startup does not re-scan an
// unchanged game install. Entries are keyed by the content root and
// invalidated wholesale: any change under a root throws its whole catalog
// away.
type Cache struct {
	db *sql.DB
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS catalog (
	root TEXT NOT NULL,
	kind TEXT NOT NULL,
	id TEXT NOT NULL,
	name TEXT NOT NULL,
	symbol TEXT NOT NULL,
	color TEXT NOT NULL,
	PRIMARY KEY (root, kind, id)
);
CREATE TABLE IF NOT EXISTS catalog_roots (
	root TEXT PRIMARY KEY,
	scanned_at INTEGER NOT NULL
);`

// OpenCache opens or creates the cache database at path.
func OpenCache(path string) (*Cache, error) {
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("gamedata: open cache: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gamedata: ping cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("gamedata: init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

func (c *Cache) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Get returns the cached catalog for a root, or ok=false when none is
// stored.
func (c *Cache) Get(ctx context.Context, root string) (*Catalog, bool, error) {
	var scannedAt int64
	err := c.db.QueryRowContext(ctx, `SELECT scanned_at FROM catalog_roots WHERE root = ?`, root).Scan(&scannedAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("gamedata: cache lookup %s: %w", root, err)
	}

	rows, err := c.db.QueryContext(ctx,
		`SELECT kind, id, name, symbol, color FROM catalog WHERE root = ? ORDER BY kind, id`, root)
	if err != nil {
		return nil, false, fmt.Errorf("gamedata: cache read %s: %w", root, err)
	}
	defer rows.Close()

	cat := &Catalog{}
	for rows.Next() {
		var kind string
		var obj Object
		if err := rows.Scan(&kind, &obj.ID, &obj.Name, &obj.Symbol, &obj.Color); err != nil {
			return nil, false, fmt.Errorf("gamedata: cache scan %s: %w", root, err)
		}
		switch kind {
		case "terrain":
			cat.Terrain = append(cat.Terrain, obj)
		case "furniture":
			cat.Furniture = append(cat.Furniture, obj)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, fmt.Errorf("gamedata: cache rows %s: %w", root, err)
	}
	return cat, true, nil
}

// Put stores a catalog for a root, replacing whatever was there.
func (c *Cache) Put(ctx context.Context, root string, cat *Catalog) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("gamedata: cache write %s: %w", root, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM catalog WHERE root = ?`, root); err != nil {
		return fmt.Errorf("gamedata: cache clear %s: %w", root, err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO catalog (root, kind, id, name, symbol, color) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("gamedata: cache prepare %s: %w", root, err)
	}
	defer stmt.Close()

	insert := func(kind string, objs []Object) error {
		for _, o := range objs {
			if _, err := stmt.ExecContext(ctx, root, kind, o.ID, o.Name, o.Symbol, o.Color); err != nil {
				return err
			}
		}
		return nil
	}
	if err := insert("terrain", cat.Terrain); err != nil {
		return fmt.Errorf("gamedata: cache insert %s: %w", root, err)
	}
	if err := insert("furniture", cat.Furniture); err != nil {
		return fmt.Errorf("gamedata: cache insert %s: %w", root, err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO catalog_roots (root, scanned_at) VALUES (?, strftime('%s','now'))`, root); err != nil {
		return fmt.Errorf("gamedata: cache mark %s: %w", root, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("gamedata: cache commit %s: %w", root, err)
	}
	return nil
}

// Invalidate drops the cached catalog for a root.
func (c *Cache) Invalidate(ctx context.Context, root string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM catalog WHERE root = ?`, root); err != nil {
		return fmt.Errorf("gamedata: cache invalidate %s: %w", root, err)
	}
	if _, err := c.db.ExecContext(ctx, `DELETE FROM catalog_roots WHERE root = ?`, root); err != nil {
		return fmt.Errorf("gamedata: cache invalidate %s: %w", root, err)
	}
	return nil
}
