package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"fjacquet/spendlens/internal/fileutils"
	"fjacquet/spendlens/internal/models"
)

const createExpensesTable = `CREATE TABLE IF NOT EXISTS expenses (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	date     TEXT NOT NULL,
	category TEXT NOT NULL,
	amount   TEXT NOT NULL,
	notes    TEXT NOT NULL DEFAULT ''
)`

// SQLiteBackend keeps the record set in the expenses table of a single
// SQLite file. Row order is insertion order.
type SQLiteBackend struct {
	path string
}

// NewSQLiteBackend returns a backend for the database file at path.
func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

// Name implements Backend.
func (b *SQLiteBackend) Name() string { return BackendSQLite }

// Location implements Backend.
func (b *SQLiteBackend) Location() string { return b.path }

func (b *SQLiteBackend) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, createExpensesTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create expenses table: %w", err)
	}
	return db, nil
}

// Read implements Backend.
func (b *SQLiteBackend) Read(ctx context.Context) ([]models.Expense, error) {
	if err := fileutils.RequireFile(b.path); err != nil {
		return nil, err
	}

	db, err := b.open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	rs, err := db.QueryContext(ctx, `SELECT date, category, amount, notes FROM expenses ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer func() {
		_ = rs.Close()
	}()

	var rows []expenseRow
	for rs.Next() {
		var row expenseRow
		if err := rs.Scan(&row.Date, &row.Category, &row.Amount, &row.Notes); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		rows = append(rows, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}

	return decodeRows(BackendSQLite, rows)
}

// Write implements Backend. The table is emptied and refilled in one transaction.
func (b *SQLiteBackend) Write(ctx context.Context, records []models.Expense) error {
	if err := fileutils.EnsureParentDir(b.path); err != nil {
		return err
	}

	db, err := b.open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Close()
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO expenses (date, category, amount, notes) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for _, r := range records {
		row := encodeRow(r)
		if _, err := stmt.ExecContext(ctx, row.Date, row.Category, row.Amount, row.Notes); err != nil {
			return fmt.Errorf("insert expense: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
