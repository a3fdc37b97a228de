package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dessert-api/models"
)

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(ctx context.Context, url string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to DB: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to reach DB: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresSchema)
	return err
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Session(ctx context.Context) (Session, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire connection: %w", err)
	}
	return &pgSession{conn: conn}, nil
}

type pgSession struct {
	conn *pgxpool.Conn
}

func (s *pgSession) Close() {
	if s.conn != nil {
		s.conn.Release()
		s.conn = nil
	}
}

func (s *pgSession) ListDesserts(ctx context.Context) ([]models.Dessert, error) {
	rows, err := s.conn.Query(ctx, "SELECT id, dessert_name, description, price, image_url FROM desserts")
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

func (s *pgSession) GetDessert(ctx context.Context, id string) (*models.Dessert, error) {
	var d models.Dessert
	err := s.conn.QueryRow(ctx,
		"SELECT id, dessert_name, description, price, image_url FROM desserts WHERE id=$1", id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.Price, &d.ImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get dessert: %w", err)
	}
	return &d, nil
}

func (s *pgSession) CreateDessert(ctx context.Context, d *models.Dessert) error {
	_, err := s.conn.Exec(ctx,
		"INSERT INTO desserts (id, dessert_name, description, price, image_url) VALUES ($1, $2, $3, $4, $5)",
		d.ID, d.Name, d.Description, d.Price, d.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dessert: %w", err)
	}
	return nil
}

func (s *pgSession) UpdateDessert(ctx context.Context, d *models.Dessert) error {
	tag, err := s.conn.Exec(ctx,
		"UPDATE desserts SET dessert_name=$1, description=$2, price=$3, image_url=$4 WHERE id=$5",
		d.Name, d.Description, d.Price, d.ImageURL, d.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update dessert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgSession) DeleteDessert(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, "DELETE FROM desserts WHERE id=$1", id)
	if err != nil {
		return fmt.Errorf("failed to delete dessert: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
