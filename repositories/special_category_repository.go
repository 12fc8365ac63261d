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
	ErrSpecialCategoryNotFound    = errors.New("special category not found")
	ErrSpecialCategoryRaceInvalid = errors.New("special category references an unknown race")
)

type SpecialCategoryRepository interface {
	Create(ctx context.Context, category *models.SpecialCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SpecialCategory, error)
	ListByRace(ctx context.Context, raceID uuid.UUID) ([]models.SpecialCategory, error)
	// ListByCompetition возвращает особые зачёты всех гонок соревнования,
	// отсортированные по гонке в порядке протокола.
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategory, error)
	// FilterIDsByRace сужает набор кандидатов до зачётов, которые
	// существуют и принадлежат указанной гонке. Неизвестные и чужие
	// идентификаторы отбрасываются без ошибки.
	FilterIDsByRace(ctx context.Context, exec SQLExecutor, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, category *models.SpecialCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresSpecialCategoryRepository struct {
	db *sql.DB
}

func NewPostgresSpecialCategoryRepository(db *sql.DB) SpecialCategoryRepository {
	return &postgresSpecialCategoryRepository{db: db}
}

func (r *postgresSpecialCategoryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSpecialCategoryRepository) Create(ctx context.Context, sc *models.SpecialCategory) error {
	query := `INSERT INTO special_categories (id, short_name, name, race_id) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, sc.ID, sc.ShortName, sc.Name, sc.RaceID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrSpecialCategoryRaceInvalid
		}
		return fmt.Errorf("failed to create special category: %w", err)
	}
	return nil
}

func (r *postgresSpecialCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SpecialCategory, error) {
	query := `SELECT id, short_name, name, race_id FROM special_categories WHERE id = $1`
	sc := &models.SpecialCategory{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sc.ID, &sc.ShortName, &sc.Name, &sc.RaceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSpecialCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find special category: %w", err)
	}
	return sc, nil
}

func (r *postgresSpecialCategoryRepository) ListByRace(ctx context.Context, raceID uuid.UUID) ([]models.SpecialCategory, error) {
	query := `SELECT id, short_name, name, race_id FROM special_categories WHERE race_id = $1 ORDER BY short_name`
	return r.querySpecialCategories(ctx, query, raceID)
}

func (r *postgresSpecialCategoryRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategory, error) {
	query := `
		SELECT sc.id, sc.short_name, sc.name, sc.race_id
		FROM special_categories sc
		JOIN races r ON sc.race_id = r.id
		WHERE r.competition_id = $1
		ORDER BY r.name, sc.short_name`
	return r.querySpecialCategories(ctx, query, competitionID)
}

func (r *postgresSpecialCategoryRepository) querySpecialCategories(ctx context.Context, query string, args ...interface{}) ([]models.SpecialCategory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list special categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.SpecialCategory, 0)
	for rows.Next() {
		var sc models.SpecialCategory
		if err := rows.Scan(&sc.ID, &sc.ShortName, &sc.Name, &sc.RaceID); err != nil {
			return nil, fmt.Errorf("failed to scan special category row: %w", err)
		}
		categories = append(categories, sc)
	}
	return categories, rows.Err()
}

func (r *postgresSpecialCategoryRepository) FilterIDsByRace(ctx context.Context, exec SQLExecutor, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error) {
	if len(candidateIDs) == 0 {
		return []uuid.UUID{}, nil
	}
	executor := r.getExecutor(exec)
	query := `SELECT id FROM special_categories WHERE id = ANY($1) AND race_id = $2`
	rows, err := executor.QueryContext(ctx, query, pq.Array(candidateIDs), raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to filter special category ids: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, len(candidateIDs))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan special category id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresSpecialCategoryRepository) Update(ctx context.Context, sc *models.SpecialCategory) error {
	query := `UPDATE special_categories SET short_name = $1, name = $2 WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, sc.ShortName, sc.Name, sc.ID)
	if err != nil {
		return fmt.Errorf("failed to update special category: %w", err)
	}
	return checkAffectedRows(result, ErrSpecialCategoryNotFound)
}

func (r *postgresSpecialCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM special_categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete special category: %w", err)
	}
	return checkAffectedRows(result, ErrSpecialCategoryNotFound)
}
