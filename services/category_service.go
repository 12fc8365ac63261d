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

type CategoryInput struct {
	Label   string `json:"label"`
	FromAge int    `json:"from_age"`
	ToAge   int    `json:"to_age"`
	Male    bool   `json:"male"`
}

type CategoryService interface {
	CreateCategory(ctx context.Context, startID uuid.UUID, input CategoryInput) (*models.Category, error)
	ListCategoriesByStart(ctx context.Context, startID uuid.UUID) ([]models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func validateCategoryInput(input CategoryInput) (string, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return "", ErrNameRequired
	}
	if input.FromAge > input.ToAge {
		return "", ErrInvalidAgeRange
	}
	return label, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, startID uuid.UUID, input CategoryInput) (*models.Category, error) {
	label, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:      uuid.New(),
		Label:   label,
		FromAge: input.FromAge,
		ToAge:   input.ToAge,
		Male:    input.Male,
		StartID: startID,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryStartInvalid) {
			return nil, ErrStartNotFound
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (s *categoryService) ListCategoriesByStart(ctx context.Context, startID uuid.UUID) ([]models.Category, error) {
	categories, err := s.categoryRepo.ListByStart(ctx, startID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, id uuid.UUID, input CategoryInput) (*models.Category, error) {
	label, err := validateCategoryInput(input)
	if err != nil {
		return nil, err
	}

	category := &models.Category{
		ID:      id,
		Label:   label,
		FromAge: input.FromAge,
		ToAge:   input.ToAge,
		Male:    input.Male,
	}
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category %s: %w", id, err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	return nil
}
