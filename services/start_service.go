package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
)

type StartInput struct {
	Name string    `json:"name"`
	Time time.Time `json:"time"`
}

type StartService interface {
	CreateStart(ctx context.Context, raceID uuid.UUID, input StartInput) (*models.Start, error)
	ListStartsByRace(ctx context.Context, raceID uuid.UUID) ([]models.Start, error)
	UpdateStart(ctx context.Context, id uuid.UUID, input StartInput) (*models.Start, error)
	DeleteStart(ctx context.Context, id uuid.UUID) error
}

type startService struct {
	startRepo repositories.StartRepository
}

func NewStartService(startRepo repositories.StartRepository) StartService {
	return &startService{startRepo: startRepo}
}

func (s *startService) CreateStart(ctx context.Context, raceID uuid.UUID, input StartInput) (*models.Start, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	start := &models.Start{
		ID:     uuid.New(),
		Name:   name,
		Time:   input.Time,
		RaceID: raceID,
	}
	if err := s.startRepo.Create(ctx, start); err != nil {
		if errors.Is(err, repositories.ErrStartRaceInvalid) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to create start: %w", err)
	}
	return start, nil
}

func (s *startService) ListStartsByRace(ctx context.Context, raceID uuid.UUID) ([]models.Start, error) {
	starts, err := s.startRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list starts: %w", err)
	}
	return starts, nil
}

func (s *startService) UpdateStart(ctx context.Context, id uuid.UUID, input StartInput) (*models.Start, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	start := &models.Start{ID: id, Name: name, Time: input.Time}
	if err := s.startRepo.Update(ctx, start); err != nil {
		if errors.Is(err, repositories.ErrStartNotFound) {
			return nil, ErrStartNotFound
		}
		return nil, fmt.Errorf("failed to update start %s: %w", id, err)
	}
	return start, nil
}

func (s *startService) DeleteStart(ctx context.Context, id uuid.UUID) error {
	if err := s.startRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrStartNotFound) {
			return ErrStartNotFound
		}
		return fmt.Errorf("failed to delete start %s: %w", id, err)
	}
	return nil
}
