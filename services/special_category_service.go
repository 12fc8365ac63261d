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

type SpecialCategoryInput struct {
	ShortName string `json:"short_name"`
	Name      string `json:"name"`
}

type SpecialCategoryService interface {
	CreateSpecialCategory(ctx context.Context, raceID uuid.UUID, input SpecialCategoryInput) (*models.SpecialCategory, error)
	ListSpecialCategoriesByRace(ctx context.Context, raceID uuid.UUID) ([]models.SpecialCategory, error)
	UpdateSpecialCategory(ctx context.Context, id uuid.UUID, input SpecialCategoryInput) (*models.SpecialCategory, error)
	DeleteSpecialCategory(ctx context.Context, id uuid.UUID) error
}

type specialCategoryService struct {
	specialRepo repositories.SpecialCategoryRepository
}

func NewSpecialCategoryService(specialRepo repositories.SpecialCategoryRepository) SpecialCategoryService {
	return &specialCategoryService{specialRepo: specialRepo}
}

func (s *specialCategoryService) CreateSpecialCategory(ctx context.Context, raceID uuid.UUID, input SpecialCategoryInput) (*models.SpecialCategory, error) {
	name := strings.TrimSpace(input.Name)
	shortName := strings.TrimSpace(input.ShortName)
	if name == "" || shortName == "" {
		return nil, ErrNameRequired
	}

	sc := &models.SpecialCategory{
		ID:        uuid.New(),
		ShortName: shortName,
		Name:      name,
		RaceID:    raceID,
	}
	if err := s.specialRepo.Create(ctx, sc); err != nil {
		if errors.Is(err, repositories.ErrSpecialCategoryRaceInvalid) {
			return nil, ErrRaceNotFound
		}
		return nil, fmt.Errorf("failed to create special category: %w", err)
	}
	return sc, nil
}

func (s *specialCategoryService) ListSpecialCategoriesByRace(ctx context.Context, raceID uuid.UUID) ([]models.SpecialCategory, error) {
	categories, err := s.specialRepo.ListByRace(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special categories: %w", err)
	}
	return categories, nil
}

func (s *specialCategoryService) UpdateSpecialCategory(ctx context.Context, id uuid.UUID, input SpecialCategoryInput) (*models.SpecialCategory, error) {
	name := strings.TrimSpace(input.Name)
	shortName := strings.TrimSpace(input.ShortName)
	if name == "" || shortName == "" {
		return nil, ErrNameRequired
	}

	sc := &models.SpecialCategory{ID: id, ShortName: shortName, Name: name}
	if err := s.specialRepo.Update(ctx, sc); err != nil {
		if errors.Is(err, repositories.ErrSpecialCategoryNotFound) {
			return nil, ErrSpecialCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update special category %s: %w", id, err)
	}
	return sc, nil
}

func (s *specialCategoryService) DeleteSpecialCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.specialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrSpecialCategoryNotFound) {
			return ErrSpecialCategoryNotFound
		}
		return fmt.Errorf("failed to delete special category %s: %w", id, err)
	}
	return nil
}
