package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"dessert-api/models"
)

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens the database at path, creating parent directories.
func NewSQLite(path string) (*SQLiteStore, error) {
	if !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// sqliteDSN sets the busy timeout in the DSN so every pooled connection
// waits for the write lock instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=busy_timeout(5000)"
}

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteSchema)
	return err
}

func (s *SQLiteStore) Close() {
	s.db.Close()
}

func (s *SQLiteStore) Session(ctx context.Context) (Session, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &sqliteSession{conn: conn}, nil
}

type sqliteSession struct {
	conn *sql.Conn
}

func (s *sqliteSession) Close() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}

func (s *sqliteSession) ListDesserts(ctx context.Context) ([]models.Dessert, error) {
	rows, err := s.conn.QueryContext(ctx, "SELECT id, dessert_name, description, price, image_url FROM desserts")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch desserts: %w", err)
	}
	defer rows.Close()

	desserts := []models.Dessert{}
	for rows.Next() {
		var d models.Dessert
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan dessert: %w", err)
		}
		desserts = append(desserts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate desserts: %w", err)
	}
	return desserts, nil
}

func (s *sqliteSession) GetDessert(ctx context.Context, id string) (*models.Dessert, error) {
	var d models.Dessert
	err := s.conn.QueryRowContext(ctx,
		"SELECT id, dessert_name, description, price, image_url FROM desserts WHERE id = ?", id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dessert: %w", err)
	}
	return &d, nil
}

func (s *sqliteSession) CreateDessert(ctx context.Context, d *models.Dessert) error {
	_, err := s.conn.ExecContext(ctx,
		"INSERT INTO desserts (id, dessert_name, description, price, image_url) VALUES (?, ?, ?, ?, ?)",
		d.ID, d.Name, d.Description, d.Price, d.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dessert: %w", err)
	}
	return nil
}

func (s *sqliteSession) UpdateDessert(ctx context.Context, d *models.Dessert) error {
	res, err := s.conn.ExecContext(ctx,
		"UPDATE desserts SET dessert_name = ?, description = ?, price = ?, image_url = ? WHERE id = ?",
		d.Name, d.Description, d.Price, d.ImageURL, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dessert: %w", err)
	}
	return checkAffected(res)
}

func (s *sqliteSession) DeleteDessert(ctx context.Context, id string) error {
	res, err := s.conn.ExecContext(ctx, "DELETE FROM desserts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete dessert: %w", err)
	}
	return checkAffected(res)
}

func checkAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
