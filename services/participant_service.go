package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
)

// ParticipantService — админские операции над участниками.
// Создание и обновление идут через RegistrationService.
type ParticipantService interface {
	// GetParticipantByID возвращает участника вместе с его особыми
	// зачётами — используется для предзаполнения формы редактирования.
	GetParticipantByID(ctx context.Context, id uuid.UUID) (*models.Participant, error)
	DeleteParticipant(ctx context.Context, id uuid.UUID) error
}

type participantService struct {
	participantRepo repositories.ParticipantRepository
	linkRepo        repositories.SpecialCategoryLinkRepository
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	linkRepo repositories.SpecialCategoryLinkRepository,
) ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		linkRepo:        linkRepo,
	}
}

func (s *participantService) GetParticipantByID(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	participant, err := s.participantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant %s: %w", id, err)
	}

	specialIDs, err := s.linkRepo.ListByParticipant(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load special categories for participant %s: %w", id, err)
	}
	participant.SpecialCategoryIDs = specialIDs
	return participant, nil
}

func (s *participantService) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	if err := s.participantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to delete participant %s: %w", id, err)
	}
	return nil
}
