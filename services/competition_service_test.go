package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Доопределяем заглушки из roster_service_test.go под сценарии формы.

func (f *fakeRaceRepo) ListWithAgeRange(ctx context.Context, competitionID uuid.UUID) ([]models.RaceWithAgeRange, error) {
	return f.racesWithRange, nil
}

func (f *fakeCompetitionRepo) UpdateAnnouncement(ctx context.Context, id uuid.UUID, announcement string) error {
	f.announcement = announcement
	return nil
}

type fakeUploader struct {
	storage.FileUploader
	uploadedKey string
}

func (f *fakeUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	f.uploadedKey = key
	return &storage.UploadResult{Key: key, Location: "https://cdn.example.com/" + key}, nil
}

func TestGetRegistrationForm(t *testing.T) {
	competition := models.Competition{ID: uuid.New(), Name: "Stadtlauf"}
	shortRace := models.RaceWithAgeRange{
		Race:   models.Race{ID: uuid.New(), Name: "Jugend kurz", CompetitionID: competition.ID},
		MinAge: 8,
		MaxAge: 14,
	}
	mainRace := models.RaceWithAgeRange{
		Race:   models.Race{ID: uuid.New(), Name: "Hauptlauf", CompetitionID: competition.ID},
		MinAge: 15,
		MaxAge: 99,
	}
	special := models.SpecialCategory{ID: uuid.New(), ShortName: "TW", Name: "Teamwertung", RaceID: mainRace.ID}

	svc := NewCompetitionService(
		&fakeCompetitionRepo{competition: &competition},
		&fakeRaceRepo{racesWithRange: []models.RaceWithAgeRange{shortRace, mainRace}},
		&fakeRosterSpecialRepo{specials: []models.SpecialCategory{special}},
		nil,
	).(*competitionService)
	svc.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }

	form, err := svc.GetRegistrationForm(context.Background(), competition.ID)
	require.NoError(t, err)

	assert.Equal(t, "Stadtlauf", form.Competition.Name)
	require.Len(t, form.Races, 2)

	// Зачёты разложены по гонкам; у гонки без зачётов — пустой слайс, не nil.
	assert.NotNil(t, form.Races[0].SpecialCategories)
	assert.Empty(t, form.Races[0].SpecialCategories)
	require.Len(t, form.Races[1].SpecialCategories, 1)
	assert.Equal(t, "TW", form.Races[1].SpecialCategories[0].ShortName)

	// Границы года рождения считаются от самого широкого диапазона возрастов.
	assert.Equal(t, 2025-99, form.EarliestBirthYear)
	assert.Equal(t, 2025-8, form.LatestBirthYear)
}

func TestUploadAnnouncement(t *testing.T) {
	competition := models.Competition{ID: uuid.New(), Name: "Stadtlauf"}

	t.Run("storage not configured", func(t *testing.T) {
		svc := NewCompetitionService(
			&fakeCompetitionRepo{competition: &competition},
			&fakeRaceRepo{},
			&fakeRosterSpecialRepo{},
			nil,
		)

		_, err := svc.UploadAnnouncement(context.Background(), competition.ID, "ausschreibung.pdf", "application/pdf", strings.NewReader("%PDF"))
		assert.ErrorIs(t, err, ErrUploadsNotConfigured)
	})

	t.Run("uploads and stores public url", func(t *testing.T) {
		uploader := &fakeUploader{}
		competitionRepo := &fakeCompetitionRepo{competition: &competition}
		svc := NewCompetitionService(competitionRepo, &fakeRaceRepo{}, &fakeRosterSpecialRepo{}, uploader)

		location, err := svc.UploadAnnouncement(context.Background(), competition.ID, "ausschreibung.pdf", "application/pdf", strings.NewReader("%PDF"))
		require.NoError(t, err)

		expectedKey := "announcements/" + competition.ID.String() + "/ausschreibung.pdf"
		assert.Equal(t, expectedKey, uploader.uploadedKey)
		assert.Equal(t, "https://cdn.example.com/"+expectedKey, location)
		assert.Equal(t, location, competitionRepo.announcement)
	})
}
