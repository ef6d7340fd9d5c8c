package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gymkart/storefront/internal/cart/domain"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists keyed values in a single local_state table, mirroring
// the key/value shape of browser local storage.
type SQLiteStore struct {
	db *sql.DB
}

const createLocalState = `
CREATE TABLE IF NOT EXISTS local_state (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// OpenSQLite opens (and if needed creates) the store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createLocalState); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create local_state table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (domain.Cart, error) {
	raw, ok, err := s.GetValue(ctx, CartKey)
	if err != nil {
		return domain.Cart{}, err
	}
	if !ok {
		return domain.Cart{}, nil
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		// Same contract as the file backend: corrupt state is an empty cart.
		return domain.Cart{}, nil
	}
	return domain.Cart{Items: items}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, cart domain.Cart) error {
	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return s.SetValue(ctx, CartKey, string(raw))
}

func (s *SQLiteStore) GetValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM local_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}

func (s *SQLiteStore) SetValue(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO local_state (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) DeleteValue(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM local_state WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
