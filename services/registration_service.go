package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
)

// Transactor выполняет функцию в рамках одной транзакции БД.
// Реализация живёт в пакете db; сервис зависит от интерфейса,
// чтобы тесты могли подставить заглушку без реальной базы.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error
}

// RegistrationBroadcaster рассылает события регистрации подписчикам
// live-ленты соревнования. Реализация — live.Hub.
type RegistrationBroadcaster interface {
	BroadcastToRoom(roomID string, message interface{})
}

// RegistrationInput — данные формы регистрации участника.
type RegistrationInput struct {
	LastName  string `json:"last_name"`
	FirstName string `json:"first_name"`
	Club      string `json:"club"`
	BirthYear int    `json:"birth_year"`
	Male      bool   `json:"male"`
	Consent   bool   `json:"consent"`

	RaceID uuid.UUID `json:"race_id"`
	// Кандидаты на особые зачёты в том виде, как их прислала форма.
	// Неизвестные и чужие идентификаторы молча отбрасываются.
	SpecialCategoryIDs []uuid.UUID `json:"special_category_ids"`
}

type RegistrationService interface {
	// UpsertParticipant атомарно регистрирует нового участника
	// (participantID == nil) или обновляет существующего.
	UpsertParticipant(ctx context.Context, competitionID uuid.UUID, participantID *uuid.UUID, input RegistrationInput) (*models.Participant, error)
	// ResolveSpecialCategories сужает набор кандидатов до зачётов гонки.
	ResolveSpecialCategories(ctx context.Context, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error)
}

type registrationService struct {
	categoryRepo repositories.CategoryRepository
	specialRepo  repositories.SpecialCategoryRepository
	participants repositories.ParticipantRepository
	links        repositories.SpecialCategoryLinkRepository
	transactor   Transactor
	broadcaster  RegistrationBroadcaster

	// now подменяется в тестах, чтобы зафиксировать отчётный год.
	now func() time.Time
}

func NewRegistrationService(
	categoryRepo repositories.CategoryRepository,
	specialRepo repositories.SpecialCategoryRepository,
	participants repositories.ParticipantRepository,
	links repositories.SpecialCategoryLinkRepository,
	transactor Transactor,
	broadcaster RegistrationBroadcaster,
) RegistrationService {
	return &registrationService{
		categoryRepo: categoryRepo,
		specialRepo:  specialRepo,
		participants: participants,
		links:        links,
		transactor:   transactor,
		broadcaster:  broadcaster,
		now:          time.Now,
	}
}

// ResolveCategory находит категорию для пары (возраст, пол) среди категорий
// гонки. Возраст считается как referenceYear - birthYear. Если подходящей
// категории нет — ErrNoCategoryForAge. Модель данных не запрещает
// пересекающиеся диапазоны, поэтому при нескольких совпадениях выбор
// детерминирован: сначала самый узкий диапазон, затем наименьший id.
func ResolveCategory(categories []models.Category, birthYear, referenceYear int, male bool) (models.Category, error) {
	age := referenceYear - birthYear

	matches := make([]models.Category, 0, 1)
	for _, c := range categories {
		if c.Male == male && c.FromAge <= age && age <= c.ToAge {
			matches = append(matches, c)
		}
	}
	if len(matches) == 0 {
		return models.Category{}, ErrNoCategoryForAge
	}
	sort.Slice(matches, func(i, j int) bool {
		spanI := matches[i].ToAge - matches[i].FromAge
		spanJ := matches[j].ToAge - matches[j].FromAge
		if spanI != spanJ {
			return spanI < spanJ
		}
		return bytes.Compare(matches[i].ID[:], matches[j].ID[:]) < 0
	})
	return matches[0], nil
}

func (s *registrationService) UpsertParticipant(ctx context.Context, competitionID uuid.UUID, participantID *uuid.UUID, input RegistrationInput) (*models.Participant, error) {
	if !input.Consent {
		return nil, ErrConsentRequired
	}

	referenceYear := s.now().Year()
	if input.BirthYear <= 0 || input.BirthYear > referenceYear {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBirthYear, input.BirthYear)
	}

	var participant *models.Participant
	err := s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		categories, err := s.categoryRepo.ListByRace(ctx, exec, input.RaceID, competitionID)
		if err != nil {
			return fmt.Errorf("failed to load categories for race %s: %w", input.RaceID, err)
		}

		category, err := ResolveCategory(categories, input.BirthYear, referenceYear, input.Male)
		if err != nil {
			return err
		}

		specialIDs, err := s.specialRepo.FilterIDsByRace(ctx, exec, input.SpecialCategoryIDs, input.RaceID)
		if err != nil {
			return fmt.Errorf("failed to resolve special categories: %w", err)
		}

		p := &models.Participant{
			LastName:   input.LastName,
			FirstName:  input.FirstName,
			BirthYear:  input.BirthYear,
			ConsentAGB: input.Consent,
			CategoryID: category.ID,
		}
		if input.Club != "" {
			club := input.Club
			p.Club = &club
		}

		if participantID == nil {
			p.ID = uuid.New()
			if err := s.participants.Insert(ctx, exec, p); err != nil {
				return err
			}
		} else {
			p.ID = *participantID
			// UPDATE берёт блокировку строки и сериализует конкурирующие
			// перезаписи связей одного участника.
			if err := s.participants.Update(ctx, exec, p); err != nil {
				if errors.Is(err, repositories.ErrParticipantNotFound) {
					return ErrParticipantNotFound
				}
				return err
			}
		}

		// Полная замена связей: на вставке удаление — no-op.
		if err := s.links.DeleteByParticipant(ctx, exec, p.ID); err != nil {
			return err
		}
		if err := s.links.CreateBatch(ctx, exec, p.ID, specialIDs); err != nil {
			return err
		}

		p.Category = &category
		p.SpecialCategoryIDs = specialIDs
		participant = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToRoom(competitionID.String(), map[string]interface{}{
			"type": "PARTICIPANT_REGISTERED",
			"payload": map[string]interface{}{
				"participant_id": participant.ID,
				"race_id":        input.RaceID,
				"category":       participant.Category.Label,
			},
		})
	}

	return participant, nil
}

func (s *registrationService) ResolveSpecialCategories(ctx context.Context, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.specialRepo.FilterIDsByRace(ctx, nil, candidateIDs, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve special categories: %w", err)
	}
	return ids, nil
}
