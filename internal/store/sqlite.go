package store

import (
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hance08/txengine/internal/model"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const filterFalsePositiveRate = 0.01

// SQLite is a TransactionMemory kept in a SQLite file for inputs whose transaction
// history should not live on the Go heap. The file only lives as long as the run:
// it is emptied on open, and removed on Close when it was created as a temp file.
type SQLite struct {
	db     *sql.DB
	path   string
	temp   bool
	filter *bloom.BloomFilter

	upsert *sql.Stmt
	get    *sql.Stmt
}

// NewSQLite opens the database at dbPath (a fresh temp file when empty) and migrates it.
// expected sizes the negative-lookup filter.
func NewSQLite(dbPath string, migrationsFS fs.FS, expected uint) (*SQLite, error) {
	temp := false
	if dbPath == "" {
		f, err := os.CreateTemp("", "txengine-*.db")
		if err != nil {
			return nil, fmt.Errorf("can not create temp database: %w", err)
		}
		dbPath = f.Name()
		temp = true
		if err := f.Close(); err != nil {
			return nil, fmt.Errorf("can not create temp database: %w", err)
		}
	} else {
		dbDir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("can not create database directory %s: %w", dbDir, err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=MEMORY&_synchronous=OFF")
	if err != nil {
		return nil, fmt.Errorf("can not open database : %w", err)
	}
	// One connection keeps every statement on the same SQLite handle.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db, path: dbPath, temp: temp}
	if err := s.init(migrationsFS, expected); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

func (s *SQLite) init(migrationsFS fs.FS, expected uint) error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("can not connect with database : %w", err)
	}
	if err := runMigrations(s.db, migrationsFS); err != nil {
		return fmt.Errorf("failed to migrate database : %w", err)
	}
	if _, err := s.db.Exec(`DELETE FROM stored_transactions`); err != nil {
		return fmt.Errorf("failed to reset stored transactions : %w", err)
	}

	var err error
	s.upsert, err = s.db.Prepare(`
		INSERT INTO stored_transactions (tx_id, client_id, kind, amount)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(tx_id) DO UPDATE SET
			client_id = excluded.client_id,
			kind = excluded.kind,
			amount = excluded.amount;
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}

	s.get, err = s.db.Prepare(`
		SELECT client_id, kind, amount
		FROM stored_transactions
		WHERE tx_id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare SQL : %w", err)
	}

	if expected == 0 {
		expected = 1
	}
	s.filter = bloom.NewWithEstimates(expected, filterFalsePositiveRate)

	return nil
}

func runMigrations(db *sql.DB, migrationsFS fs.FS) error {
	driver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to set up migrate driver : %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create iofs source driver : %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs",
		sourceDriver,
		"sqlite3",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to set up migrate instance : %w", err)
	}

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migration(up) : %w", err)
	}

	return nil
}

func (s *SQLite) Record(stored model.StoredTransaction) error {
	_, err := s.upsert.Exec(
		int64(stored.Tx),
		int64(stored.Client),
		stored.Kind.String(),
		model.FormatAmount(stored.Amount),
	)
	if err != nil {
		return fmt.Errorf("failed to store transaction %d : %w", stored.Tx, err)
	}

	s.filter.Add(filterKey(stored.Tx))
	return nil
}

func (s *SQLite) Lookup(tx model.TxID) (model.StoredTransaction, bool, error) {
	if !s.filter.Test(filterKey(tx)) {
		return model.StoredTransaction{}, false, nil
	}

	var (
		client       int64
		kind, amount string
	)
	err := s.get.QueryRow(int64(tx)).Scan(&client, &kind, &amount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.StoredTransaction{}, false, nil
		}
		return model.StoredTransaction{}, false, fmt.Errorf("failed to query transaction %d : %w", tx, err)
	}

	stored := model.StoredTransaction{Tx: tx, Client: model.ClientID(client)}
	if stored.Kind, err = model.ParseKind(kind); err != nil {
		return model.StoredTransaction{}, false, fmt.Errorf("%w %d: %v", ErrCorruptRecord, tx, err)
	}
	if stored.Amount, err = decimal.NewFromString(amount); err != nil {
		return model.StoredTransaction{}, false, fmt.Errorf("%w %d: %v", ErrCorruptRecord, tx, err)
	}

	return stored, true, nil
}

// Path is the database file backing the store.
func (s *SQLite) Path() string {
	return s.path
}

func (s *SQLite) Close() error {
	for _, stmt := range []*sql.Stmt{s.upsert, s.get} {
		if stmt != nil {
			stmt.Close()
		}
	}

	err := s.db.Close()
	if s.temp {
		if rmErr := os.Remove(s.path); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = rmErr
		}
	}
	return err
}

func filterKey(tx model.TxID) []byte {
	var key [4]byte
	binary.BigEndian.PutUint32(key[:], uint32(tx))
	return key[:]
}
