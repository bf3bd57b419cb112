// Package cart is the local shopping cart. Entries live in a SQLite
// database under the data directory; nothing is sent to the backend.
package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS cart_items (
	id         TEXT PRIMARY KEY,
	food_id    TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	price      REAL NOT NULL DEFAULT 0,
	emoji      TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT '',
	quantity   INTEGER NOT NULL DEFAULT 1,
	added_at   INTEGER NOT NULL
);`

// ErrInvalidItem is returned by Add for entries without a food id or name.
var ErrInvalidItem = errors.New("cart item needs a food id and name")

// Item is one cart entry: a snapshot of the food plus a quantity.
type Item struct {
	ID       string
	FoodID   string
	Name     string
	Price    float64
	Emoji    string
	Image    string
	Quantity int
	AddedAt  time.Time
}

// Subtotal is Price times Quantity.
func (i Item) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Store is a SQLite-backed cart.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates or opens the cart database at path. ":memory:" gives a
// private in-memory cart.
func Open(path string) (*Store, error) {
	dsn := strings.TrimSpace(path)
	if dsn == "" {
		return nil, fmt.Errorf("cart path is empty")
	}
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("create cart dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cart: %w", err)
	}
	// One connection keeps ":memory:" a single database and serialises writes.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA journal_mode = WAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cart schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add puts item in the cart. Adding a food that is already present bumps its
// quantity instead of creating a second entry.
func (s *Store) Add(ctx context.Context, item Item) error {
	item.FoodID = strings.TrimSpace(item.FoodID)
	item.Name = strings.TrimSpace(item.Name)
	if item.FoodID == "" || item.Name == "" {
		return ErrInvalidItem
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO cart_items (id, food_id, name, price, emoji, image, quantity, added_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(food_id) DO UPDATE SET quantity = quantity + excluded.quantity`,
		uuid.NewString(), item.FoodID, item.Name, item.Price, item.Emoji, item.Image,
		item.Quantity, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("add %s to cart: %w", item.FoodID, err)
	}
	return nil
}

// Items lists entries in the order they were first added.
func (s *Store) Items(ctx context.Context) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, food_id, name, price, emoji, image, quantity, added_at
FROM cart_items ORDER BY added_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []Item
	for rows.Next() {
		var it Item
		var addedAt int64
		if err := rows.Scan(&it.ID, &it.FoodID, &it.Name, &it.Price, &it.Emoji, &it.Image, &it.Quantity, &addedAt); err != nil {
			return nil, fmt.Errorf("scan cart row: %w", err)
		}
		it.AddedAt = time.UnixMilli(addedAt)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return items, nil
}

// Count is the number of distinct entries, the value shown on the cart badge.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cart_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cart: %w", err)
	}
	return n, nil
}

// Quantity is the total number of units across entries.
func (s *Store) Quantity(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM cart_items`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sum cart quantity: %w", err)
	}
	return n, nil
}

// Total is the sum of every entry's subtotal.
func (s *Store) Total(ctx context.Context) (float64, error) {
	var total float64
	if err := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(price * quantity), 0) FROM cart_items`).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum cart total: %w", err)
	}
	return total, nil
}

// Remove deletes the entry with id. Removing a missing entry is not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("remove %s from cart: %w", id, err)
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
