package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/competition-registry/models"
	"github.com/google/uuid"
)

// SpecialCategoryLinkRepository управляет связями участник ↔ особый зачёт.
// Запись всегда происходит внутри транзакции регистрации.
type SpecialCategoryLinkRepository interface {
	DeleteByParticipant(ctx context.Context, exec SQLExecutor, participantID uuid.UUID) error
	CreateBatch(ctx context.Context, exec SQLExecutor, participantID uuid.UUID, specialCategoryIDs []uuid.UUID) error
	ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]uuid.UUID, error)
	// ListByCompetition возвращает все связи участников соревнования
	// для сборки протокола.
	ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategoryLink, error)
}

type postgresSpecialCategoryLinkRepository struct {
	db *sql.DB
}

func NewPostgresSpecialCategoryLinkRepository(db *sql.DB) SpecialCategoryLinkRepository {
	return &postgresSpecialCategoryLinkRepository{db: db}
}

func (r *postgresSpecialCategoryLinkRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresSpecialCategoryLinkRepository) DeleteByParticipant(ctx context.Context, exec SQLExecutor, participantID uuid.UUID) error {
	executor := r.getExecutor(exec)
	query := `DELETE FROM participants_in_special_category WHERE participant_id = $1`
	if _, err := executor.ExecContext(ctx, query, participantID); err != nil {
		return fmt.Errorf("failed to delete special category links for participant %s: %w", participantID, err)
	}
	return nil
}

func (r *postgresSpecialCategoryLinkRepository) CreateBatch(ctx context.Context, exec SQLExecutor, participantID uuid.UUID, specialCategoryIDs []uuid.UUID) error {
	if len(specialCategoryIDs) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `INSERT INTO participants_in_special_category (participant_id, special_category_id) VALUES ($1, $2)`
	for _, specialID := range specialCategoryIDs {
		if _, err := executor.ExecContext(ctx, query, participantID, specialID); err != nil {
			return fmt.Errorf("failed to link participant %s to special category %s: %w", participantID, specialID, err)
		}
	}
	return nil
}

func (r *postgresSpecialCategoryLinkRepository) ListByParticipant(ctx context.Context, participantID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT special_category_id FROM participants_in_special_category WHERE participant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, participantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special category links: %w", err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan special category link: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *postgresSpecialCategoryLinkRepository) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategoryLink, error) {
	query := `
		SELECT pisc.participant_id, pisc.special_category_id
		FROM participants_in_special_category pisc
		JOIN participants p ON pisc.participant_id = p.id
		JOIN categories c ON p.category_id = c.id
		JOIN starts s ON c.start_id = s.id
		JOIN races r ON s.race_id = r.id
		WHERE r.competition_id = $1`
	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special category links for competition: %w", err)
	}
	defer rows.Close()

	links := make([]models.SpecialCategoryLink, 0)
	for rows.Next() {
		var link models.SpecialCategoryLink
		if err := rows.Scan(&link.ParticipantID, &link.SpecialCategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan special category link: %w", err)
		}
		links = append(links, link)
	}
	return links, rows.Err()
}
