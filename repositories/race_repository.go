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
	ErrRaceNotFound           = errors.New("race not found")
	ErrRaceCompetitionInvalid = errors.New("race references an unknown competition")
)

type RaceRepository interface {
	Create(ctx context.Context, race *models.Race) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error)
	// ListOrderedByMinAge возвращает гонки соревнования в порядке протокола:
	// по минимальному нижнему возрасту категорий, затем по имени, затем по id
	// (имена гонок не уникальны). Гонки без категорий не попадают в выборку.
	ListOrderedByMinAge(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error)
	// ListWithAgeRange возвращает гонки с min/max возрастом категорий
	// для формы регистрации.
	ListWithAgeRange(ctx context.Context, competitionID uuid.UUID) ([]models.RaceWithAgeRange, error)
	Update(ctx context.Context, race *models.Race) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresRaceRepository struct {
	db *sql.DB
}

func NewPostgresRaceRepository(db *sql.DB) RaceRepository {
	return &postgresRaceRepository{db: db}
}

func (r *postgresRaceRepository) Create(ctx context.Context, race *models.Race) error {
	query := `INSERT INTO races (id, name, competition_id) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, race.ID, race.Name, race.CompetitionID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrRaceCompetitionInvalid
		}
		return fmt.Errorf("failed to create race: %w", err)
	}
	return nil
}

func (r *postgresRaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	query := `SELECT id, name, competition_id FROM races WHERE id = $1`
	race := &models.Race{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&race.ID, &race.Name, &race.CompetitionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to find race: %w", err)
	}
	return race, nil
}

func (r *postgresRaceRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error) {
	query := `SELECT id, name, competition_id FROM races WHERE competition_id = $1 ORDER BY name`
	return r.queryRaces(ctx, query, competitionID)
}

func (r *postgresRaceRepository) ListOrderedByMinAge(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error) {
	query := `
		SELECT r.id, r.name, r.competition_id
		FROM races r
		JOIN starts s ON s.race_id = r.id
		JOIN categories c ON c.start_id = s.id
		WHERE r.competition_id = $1
		GROUP BY r.id, r.name, r.competition_id
		ORDER BY MIN(c.from_age), r.name, r.id`
	return r.queryRaces(ctx, query, competitionID)
}

func (r *postgresRaceRepository) queryRaces(ctx context.Context, query string, args ...interface{}) ([]models.Race, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list races: %w", err)
	}
	defer rows.Close()

	races := make([]models.Race, 0)
	for rows.Next() {
		var race models.Race
		if err := rows.Scan(&race.ID, &race.Name, &race.CompetitionID); err != nil {
			return nil, fmt.Errorf("failed to scan race row: %w", err)
		}
		races = append(races, race)
	}
	return races, rows.Err()
}

func (r *postgresRaceRepository) ListWithAgeRange(ctx context.Context, competitionID uuid.UUID) ([]models.RaceWithAgeRange, error) {
	// min_age соответствует самой младшей категории, max_age — самой старшей.
	query := `
		SELECT r.id, r.name, r.competition_id, MIN(c.from_age), MAX(c.to_age)
		FROM races r
		JOIN starts s ON s.race_id = r.id
		JOIN categories c ON c.start_id = s.id
		WHERE r.competition_id = $1
		GROUP BY r.id, r.name, r.competition_id
		ORDER BY MIN(c.from_age), r.name`
	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list races with age range: %w", err)
	}
	defer rows.Close()

	races := make([]models.RaceWithAgeRange, 0)
	for rows.Next() {
		var race models.RaceWithAgeRange
		if err := rows.Scan(&race.ID, &race.Name, &race.CompetitionID, &race.MinAge, &race.MaxAge); err != nil {
			return nil, fmt.Errorf("failed to scan race row: %w", err)
		}
		races = append(races, race)
	}
	return races, rows.Err()
}

func (r *postgresRaceRepository) Update(ctx context.Context, race *models.Race) error {
	query := `UPDATE races SET name = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, race.Name, race.ID)
	if err != nil {
		return fmt.Errorf("failed to update race: %w", err)
	}
	return checkAffectedRows(result, ErrRaceNotFound)
}

func (r *postgresRaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM races WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete race: %w", err)
	}
	return checkAffectedRows(result, ErrRaceNotFound)
}
