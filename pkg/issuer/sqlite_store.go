package issuer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore persists records in SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteStore opens the database at path, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS issued_passes (
		id TEXT PRIMARY KEY,
		account_suffix TEXT NOT NULL,
		payment_network TEXT,
		cardholder_name TEXT,
		device_account_suffix TEXT,
		ephemeral_public_key TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_issued_passes_suffix ON issued_passes(account_suffix);
	`)
	return err
}

// Save implements Store.
func (s *SQLiteStore) Save(ctx context.Context, rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO issued_passes
			(id, account_suffix, payment_network, cardholder_name,
			 device_account_suffix, ephemeral_public_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.PrimaryAccountSuffix, rec.PaymentNetwork, rec.CardholderName,
		rec.DeviceAccountSuffix, rec.EphemeralPublicKey, rec.CreatedAt.UTC())
	return err
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, account_suffix, payment_network, cardholder_name,
		       device_account_suffix, ephemeral_public_key, created_at
		FROM issued_passes WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return rec, err
}

// ListBySuffix implements Store.
func (s *SQLiteStore) ListBySuffix(ctx context.Context, suffix string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_suffix, payment_network, cardholder_name,
		       device_account_suffix, ephemeral_public_key, created_at
		FROM issued_passes
		WHERE ? = '' OR account_suffix = ?
		ORDER BY created_at ASC
	`, suffix, suffix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var rec Record
	var network, name, device, eph sql.NullString
	err := row.Scan(&rec.ID, &rec.PrimaryAccountSuffix, &network, &name, &device, &eph, &rec.CreatedAt)
	if err != nil {
		return Record{}, err
	}
	rec.PaymentNetwork = network.String
	rec.CardholderName = name.String
	rec.DeviceAccountSuffix = device.String
	rec.EphemeralPublicKey = eph.String
	return rec, nil
}

var _ Store = (*SQLiteStore)(nil)
