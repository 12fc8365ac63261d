package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/competition-registry/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrStartNotFound    = errors.New("start not found")
	ErrStartRaceInvalid = errors.New("start references an unknown race")
)

type StartRepository interface {
	Create(ctx context.Context, start *models.Start) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Start, error)
	ListByRace(ctx context.Context, raceID uuid.UUID) ([]models.Start, error)
	Update(ctx context.Context, start *models.Start) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresStartRepository struct {
	db *sql.DB
}

func NewPostgresStartRepository(db *sql.DB) StartRepository {
	return &postgresStartRepository{db: db}
}

func (r *postgresStartRepository) Create(ctx context.Context, start *models.Start) error {
	query := `INSERT INTO starts (id, name, time, race_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, start.ID, start.Name, start.Time, start.RaceID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrStartRaceInvalid
		}
		return fmt.Errorf("failed to create start: %w", err)
	}
	return nil
}

func (r *postgresStartRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Start, error) {
	query := `SELECT id, name, time, race_id FROM starts WHERE id = $1`
	start := &models.Start{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&start.ID, &start.Name, &start.Time, &start.RaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStartNotFound
		}
		return nil, fmt.Errorf("failed to find start: %w", err)
	}
	return start, nil
}

func (r *postgresStartRepository) ListByRace(ctx context.Context, raceID uuid.UUID) ([]models.Start, error) {
	query := `SELECT id, name, time, race_id FROM starts WHERE race_id = $1 ORDER BY time, name`
	rows, err := r.db.QueryContext(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list starts: %w", err)
	}
	defer rows.Close()

	starts := make([]models.Start, 0)
	for rows.Next() {
		var start models.Start
		if err := rows.Scan(&start.ID, &start.Name, &start.Time, &start.RaceID); err != nil {
			return nil, fmt.Errorf("failed to scan start row: %w", err)
		}
		starts = append(starts, start)
	}
	return starts, rows.Err()
}

func (r *postgresStartRepository) Update(ctx context.Context, start *models.Start) error {
	query := `UPDATE starts SET name = $1, time = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, start.Name, start.Time, start.ID)
	if err != nil {
		return fmt.Errorf("failed to update start: %w", err)
	}
	return checkAffectedRows(result, ErrStartNotFound)
}

func (r *postgresStartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM starts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete start: %w", err)
	}
	return checkAffectedRows(result, ErrStartNotFound)
}
