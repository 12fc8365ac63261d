package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/Dosada05/competition-registry/storage"
	"github.com/google/uuid"
)

type CompetitionInput struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location"`
	Announcement string    `json:"announcement"`
}

// RaceRegistrationData — гонка с возрастными границами и особыми зачётами
// для формы регистрации.
type RaceRegistrationData struct {
	models.RaceWithAgeRange
	SpecialCategories []models.SpecialCategory `json:"special_categories"`
}

// RegistrationFormData — всё, что нужно для отрисовки формы регистрации.
type RegistrationFormData struct {
	Competition models.Competition     `json:"competition"`
	Races       []RaceRegistrationData `json:"races"`
	// Границы года рождения относительно текущего года, для валидации формы.
	EarliestBirthYear int `json:"earliest_birth_year"`
	LatestBirthYear   int `json:"latest_birth_year"`
}

type CompetitionService interface {
	CreateCompetition(ctx context.Context, input CompetitionInput) (*models.Competition, error)
	GetCompetitionByID(ctx context.Context, id uuid.UUID) (*models.Competition, error)
	GetAllCompetitions(ctx context.Context) ([]models.Competition, error)
	UpdateCompetition(ctx context.Context, id uuid.UUID, input CompetitionInput) (*models.Competition, error)
	DeleteCompetition(ctx context.Context, id uuid.UUID) error
	// GetRegistrationForm собирает данные публичной формы регистрации.
	GetRegistrationForm(ctx context.Context, competitionID uuid.UUID) (*RegistrationFormData, error)
	// UploadAnnouncement загружает документ положения в объектное
	// хранилище и прописывает публичный URL в соревнование.
	UploadAnnouncement(ctx context.Context, id uuid.UUID, filename, contentType string, file io.Reader) (string, error)
}

type competitionService struct {
	competitionRepo repositories.CompetitionRepository
	raceRepo        repositories.RaceRepository
	specialRepo     repositories.SpecialCategoryRepository
	uploader        storage.FileUploader

	now func() time.Time
}

func NewCompetitionService(
	competitionRepo repositories.CompetitionRepository,
	raceRepo repositories.RaceRepository,
	specialRepo repositories.SpecialCategoryRepository,
	uploader storage.FileUploader,
) CompetitionService {
	return &competitionService{
		competitionRepo: competitionRepo,
		raceRepo:        raceRepo,
		specialRepo:     specialRepo,
		uploader:        uploader,
		now:             time.Now,
	}
}

func (s *competitionService) CreateCompetition(ctx context.Context, input CompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	competition := &models.Competition{
		ID:           uuid.New(),
		Name:         name,
		Description:  input.Description,
		Date:         input.Date,
		Location:     input.Location,
		Announcement: input.Announcement,
	}
	if err := s.competitionRepo.Create(ctx, competition); err != nil {
		return nil, fmt.Errorf("failed to create competition: %w", err)
	}
	return competition, nil
}

func (s *competitionService) GetCompetitionByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	competition, err := s.competitionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to get competition %s: %w", id, err)
	}
	return competition, nil
}

func (s *competitionService) GetAllCompetitions(ctx context.Context) ([]models.Competition, error) {
	competitions, err := s.competitionRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list competitions: %w", err)
	}
	return competitions, nil
}

func (s *competitionService) UpdateCompetition(ctx context.Context, id uuid.UUID, input CompetitionInput) (*models.Competition, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	competition := &models.Competition{
		ID:           id,
		Name:         name,
		Description:  input.Description,
		Date:         input.Date,
		Location:     input.Location,
		Announcement: input.Announcement,
	}
	if err := s.competitionRepo.Update(ctx, competition); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return nil, ErrCompetitionNotFound
		}
		return nil, fmt.Errorf("failed to update competition %s: %w", id, err)
	}
	return competition, nil
}

func (s *competitionService) DeleteCompetition(ctx context.Context, id uuid.UUID) error {
	if err := s.competitionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrCompetitionNotFound) {
			return ErrCompetitionNotFound
		}
		return fmt.Errorf("failed to delete competition %s: %w", id, err)
	}
	return nil
}

func (s *competitionService) GetRegistrationForm(ctx context.Context, competitionID uuid.UUID) (*RegistrationFormData, error) {
	competition, err := s.GetCompetitionByID(ctx, competitionID)
	if err != nil {
		return nil, err
	}

	races, err := s.raceRepo.ListWithAgeRange(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list races for registration form: %w", err)
	}
	specials, err := s.specialRepo.ListByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list special categories for registration form: %w", err)
	}
	specialsByRace := make(map[uuid.UUID][]models.SpecialCategory)
	for _, sc := range specials {
		specialsByRace[sc.RaceID] = append(specialsByRace[sc.RaceID], sc)
	}

	form := &RegistrationFormData{
		Competition: *competition,
		Races:       make([]RaceRegistrationData, 0, len(races)),
	}
	minAge, maxAge := 0, 0
	for i, race := range races {
		raceSpecials := specialsByRace[race.ID]
		if raceSpecials == nil {
			raceSpecials = []models.SpecialCategory{}
		}
		form.Races = append(form.Races, RaceRegistrationData{
			RaceWithAgeRange:  race,
			SpecialCategories: raceSpecials,
		})
		if i == 0 || race.MinAge < minAge {
			minAge = race.MinAge
		}
		if i == 0 || race.MaxAge > maxAge {
			maxAge = race.MaxAge
		}
	}
	if len(races) > 0 {
		referenceYear := s.now().Year()
		form.EarliestBirthYear = referenceYear - maxAge
		form.LatestBirthYear = referenceYear - minAge
	}
	return form, nil
}

func (s *competitionService) UploadAnnouncement(ctx context.Context, id uuid.UUID, filename, contentType string, file io.Reader) (string, error) {
	if s.uploader == nil {
		return "", ErrUploadsNotConfigured
	}
	if _, err := s.GetCompetitionByID(ctx, id); err != nil {
		return "", err
	}

	key := fmt.Sprintf("announcements/%s/%s", id, filename)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return "", fmt.Errorf("failed to upload announcement: %w", err)
	}

	if err := s.competitionRepo.UpdateAnnouncement(ctx, id, result.Location); err != nil {
		return "", fmt.Errorf("failed to store announcement url: %w", err)
	}
	return result.Location, nil
}
