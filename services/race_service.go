package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
)

type RaceInput struct {
	Name string `json:"name"`
}

type RaceService interface {
	CreateRace(ctx context.Context, competitionID uuid.UUID, input RaceInput) (*models.Race, error)
	GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error)
	ListRacesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error)
	UpdateRace(ctx context.Context, id uuid.UUID, input RaceInput) (*models.Race, error)
	DeleteRace(ctx context.Context, id uuid.UUID) error
}

type raceService struct {
	raceRepo repositories.RaceRepository
}

func NewRaceService(raceRepo repositories.RaceRepository) RaceService {
	return &raceService{raceRepo: raceRepo}
}

func (s *raceService) CreateRace(ctx context.Context, competitionID uuid.UUID, input RaceInput) (*models.Race, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	race := &models.Race{
		ID:            uuid.New(),
		Name:          name,
		CompetitionID: competitionID,
	}
	if err := s.raceRepo.Create(ctx, race); err != nil {
		if errors.Is(err, repositories.ErrRaceCompetitionInvalid) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to create race: %w", err)
	}
	return race, nil
}

func (s *raceService) GetRaceByID(ctx context.Context, id uuid.UUID) (*models.Race, error) {
	race, err := s.raceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to get race %s: %w", id, err)
	}
	return race, nil
}

func (s *raceService) ListRacesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error) {
	races, err := s.raceRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list races: %w", err)
	}
	return races, nil
}

func (s *raceService) UpdateRace(ctx context.Context, id uuid.UUID, input RaceInput) (*models.Race, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	race := &models.Race{ID: id, Name: name}
	if err := s.raceRepo.Update(ctx, race); err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to update race %s: %w", id, err)
	}
	return race, nil
}

func (s *raceService) DeleteRace(ctx context.Context, id uuid.UUID) error {
	if err := s.raceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrRaceNotFound) {
			return ErrRaceNotFound
		}
		return fmt.Errorf("failed to delete race %s: %w", id, err)
	}
	return nil
}
