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
	ErrCategoryNotFound     = errors.New("category not found")
	ErrCategoryStartInvalid = errors.New("category references an unknown start")
)

type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListByStart(ctx context.Context, startID uuid.UUID) ([]models.Category, error)
	// ListByRace возвращает все категории, достижимые из гонки
	// (гонка → старты → категории), при условии что гонка принадлежит
	// указанному соревнованию. Чужая или несуществующая гонка даёт
	// пустой результат.
	ListByRace(ctx context.Context, exec SQLExecutor, raceID, competitionID uuid.UUID) ([]models.Category, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type postgresCategoryRepository struct {
	db *sql.DB
}

func NewPostgresCategoryRepository(db *sql.DB) CategoryRepository {
	return &postgresCategoryRepository{db: db}
}

func (r *postgresCategoryRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	query := `INSERT INTO categories (id, label, from_age, to_age, male, start_id) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Label, c.FromAge, c.ToAge, c.Male, c.StartID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrCategoryStartInvalid
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *postgresCategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	query := `SELECT id, label, from_age, to_age, male, start_id FROM categories WHERE id = $1`
	c := &models.Category{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Label, &c.FromAge, &c.ToAge, &c.Male, &c.StartID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return c, nil
}

func (r *postgresCategoryRepository) ListByStart(ctx context.Context, startID uuid.UUID) ([]models.Category, error) {
	query := `SELECT id, label, from_age, to_age, male, start_id FROM categories WHERE start_id = $1 ORDER BY from_age, label`
	return r.queryCategories(ctx, r.db, query, startID)
}

func (r *postgresCategoryRepository) ListByRace(ctx context.Context, exec SQLExecutor, raceID, competitionID uuid.UUID) ([]models.Category, error) {
	query := `
		SELECT c.id, c.label, c.from_age, c.to_age, c.male, c.start_id
		FROM categories c
		JOIN starts s ON c.start_id = s.id
		JOIN races r ON s.race_id = r.id
		WHERE r.id = $1 AND r.competition_id = $2`
	return r.queryCategories(ctx, r.getExecutor(exec), query, raceID, competitionID)
}

func (r *postgresCategoryRepository) queryCategories(ctx context.Context, exec SQLExecutor, query string, args ...interface{}) ([]models.Category, error) {
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Label, &c.FromAge, &c.ToAge, &c.Male, &c.StartID); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *postgresCategoryRepository) Update(ctx context.Context, c *models.Category) error {
	query := `UPDATE categories SET label = $1, from_age = $2, to_age = $3, male = $4 WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query, c.Label, c.FromAge, c.ToAge, c.Male, c.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}

func (r *postgresCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	return checkAffectedRows(result, ErrCategoryNotFound)
}
