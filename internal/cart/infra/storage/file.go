// Package storage provides persistence backends for the cart store: a JSON
// file keyed like browser local storage, a SQLite key/value store, and an
// in-memory store for tests and ephemeral sessions.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gymkart/storefront/internal/cart/domain"
)

// CartKey is the fixed key the cart is stored under across all backends.
const CartKey = "cart"

// FileStore keeps each key as a JSON file in a directory. Malformed content
// reads back as an empty cart; the corrupt file is discarded on the next
// save.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("storage dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &FileStore{dir: filepath.Clean(dir)}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileStore) Load(ctx context.Context) (domain.Cart, error) {
	if err := ctx.Err(); err != nil {
		return domain.Cart{}, err
	}

	raw, err := os.ReadFile(f.path(CartKey))
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("read cart file: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		// Unparseable saved state is treated as no saved cart.
		return domain.Cart{}, nil
	}
	return domain.Cart{Items: items}, nil
}

func (f *FileStore) Save(ctx context.Context, cart domain.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	items := cart.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}

	tmp := f.path(CartKey) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write cart file: %w", err)
	}
	if err := os.Rename(tmp, f.path(CartKey)); err != nil {
		return fmt.Errorf("replace cart file: %w", err)
	}
	return nil
}

// GetValue reads a raw value stored under key, for non-cart state such as the
// member session token. Missing keys return ok=false.
func (f *FileStore) GetValue(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	raw, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return string(raw), true, nil
}

func (f *FileStore) SetValue(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(f.path(key), []byte(value), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (f *FileStore) DeleteValue(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
