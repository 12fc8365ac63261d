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
	ErrParticipantNotFound        = errors.New("participant not found")
	ErrParticipantCategoryInvalid = errors.New("participant references an unknown category")
)

type ParticipantRepository interface {
	Insert(ctx context.Context, exec SQLExecutor, participant *models.Participant) error
	// Update перезаписывает персональные поля и категорию участника.
	// Возвращает ErrParticipantNotFound, если строка уже удалена.
	Update(ctx context.Context, exec SQLExecutor, participant *models.Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ListRosterEntries возвращает участников соревнования в порядке
	// протокола: по минимальному возрасту гонки, имени гонки, id гонки,
	// году рождения (по убыванию), затем по имени и фамилии. Этот
	// порядок — контракт сборщика протокола (services.BuildRoster),
	// ключ гонки совпадает с RaceRepository.ListOrderedByMinAge.
	ListRosterEntries(ctx context.Context, competitionID uuid.UUID) ([]models.RosterParticipant, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

func (r *postgresParticipantRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresParticipantRepository) Insert(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO participants (id, last_name, first_name, club, birth_year, consent_agb, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := executor.ExecContext(ctx, query,
		p.ID, p.LastName, p.FirstName, p.Club, p.BirthYear, p.ConsentAGB, p.CategoryID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrParticipantCategoryInvalid
		}
		return fmt.Errorf("failed to insert participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) Update(ctx context.Context, exec SQLExecutor, p *models.Participant) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE participants
		SET last_name = $1, first_name = $2, club = $3, birth_year = $4, consent_agb = $5, category_id = $6
		WHERE id = $7`
	result, err := executor.ExecContext(ctx, query,
		p.LastName, p.FirstName, p.Club, p.BirthYear, p.ConsentAGB, p.CategoryID, p.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" { // foreign_key_violation
			return ErrParticipantCategoryInvalid
		}
		return fmt.Errorf("failed to update participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	query := `
		SELECT id, last_name, first_name, club, birth_year, consent_agb, category_id
		FROM participants WHERE id = $1`
	p := &models.Participant{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.LastName, &p.FirstName, &p.Club, &p.BirthYear, &p.ConsentAGB, &p.CategoryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return p, nil
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM participants WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) ListRosterEntries(ctx context.Context, competitionID uuid.UUID) ([]models.RosterParticipant, error) {
	// race_order повторяет сортировку RaceRepository.ListOrderedByMinAge,
	// чтобы участники шли подряд в том же порядке гонок.
	query := `
		SELECT p.id, p.first_name, p.last_name, p.club, p.birth_year,
		       s.time, c.label, r.id, r.name
		FROM participants p
		JOIN categories c ON p.category_id = c.id
		JOIN starts s ON c.start_id = s.id
		JOIN races r ON s.race_id = r.id
		JOIN (
			SELECT r2.id, MIN(c2.from_age) AS min_age
			FROM races r2
			JOIN starts s2 ON s2.race_id = r2.id
			JOIN categories c2 ON c2.start_id = s2.id
			GROUP BY r2.id
		) race_order ON race_order.id = r.id
		WHERE r.competition_id = $1
		ORDER BY race_order.min_age, r.name, r.id, p.birth_year DESC, p.first_name, p.last_name`
	rows, err := r.db.QueryContext(ctx, query, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list roster entries: %w", err)
	}
	defer rows.Close()

	entries := make([]models.RosterParticipant, 0)
	for rows.Next() {
		var e models.RosterParticipant
		if err := rows.Scan(
			&e.ID, &e.FirstName, &e.LastName, &e.Club, &e.BirthYear,
			&e.StartTime, &e.CategoryLabel, &e.RaceID, &e.RaceName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
