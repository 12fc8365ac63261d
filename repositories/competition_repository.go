package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/competition-registry/models"
	"github.com/google/uuid"
)

var ErrCompetitionNotFound = errors.New("competition not found")

type CompetitionRepository interface {
	Create(ctx context.Context, competition *models.Competition) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	GetAll(ctx context.Context) ([]models.Competition, error)
	Update(ctx context.Context, competition *models.Competition) error
	UpdateAnnouncement(ctx context.Context, id uuid.UUID, announcement string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresCompetitionRepository struct {
	db *sql.DB
}

func NewPostgresCompetitionRepository(db *sql.DB) CompetitionRepository {
	return &postgresCompetitionRepository{db: db}
}

func (r *postgresCompetitionRepository) Create(ctx context.Context, c *models.Competition) error {
	query := `
		INSERT INTO competitions (id, name, description, date, location, announcement)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Description, c.Date, c.Location, c.Announcement)
	if err != nil {
		return fmt.Errorf("failed to create competition: %w", err)
	}
	return nil
}

func (r *postgresCompetitionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	query := `SELECT id, name, description, date, location, announcement FROM competitions WHERE id = $1`
	c := &models.Competition{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.Name, &c.Description, &c.Date, &c.Location, &c.Announcement,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to find competition: %w", err)
	}
	return c, nil
}

func (r *postgresCompetitionRepository) GetAll(ctx context.Context) ([]models.Competition, error) {
	query := `SELECT id, name, description, date, location, announcement FROM competitions ORDER BY date, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	defer rows.Close()

	competitions := make([]models.Competition, 0)
	for rows.Next() {
		var c models.Competition
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Date, &c.Location, &c.Announcement); err != nil {
			return nil, fmt.Errorf("failed to scan competition row: %w", err)
		}
		competitions = append(competitions, c)
	}
	return competitions, rows.Err()
}

func (r *postgresCompetitionRepository) Update(ctx context.Context, c *models.Competition) error {
	query := `
		UPDATE competitions
		SET name = $1, description = $2, date = $3, location = $4, announcement = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query, c.Name, c.Description, c.Date, c.Location, c.Announcement, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update competition: %w", err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) UpdateAnnouncement(ctx context.Context, id uuid.UUID, announcement string) error {
	query := `UPDATE competitions SET announcement = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, announcement, id)
	if err != nil {
		return fmt.Errorf("failed to update competition announcement: %w", err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}

func (r *postgresCompetitionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM competitions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete competition: %w", err)
	}
	return checkAffectedRows(result, ErrCompetitionNotFound)
}
