package services

import (
	"context"
	"testing"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRoster(t *testing.T) {
	raceA := models.Race{ID: uuid.New(), Name: "Jugend kurz"}
	raceB := models.Race{ID: uuid.New(), Name: "Hauptlauf"}

	scYouth := models.SpecialCategory{ID: uuid.New(), ShortName: "SJ", Name: "Schülerwertung", RaceID: raceA.ID}
	scTeam := models.SpecialCategory{ID: uuid.New(), ShortName: "TW", Name: "Teamwertung", RaceID: raceA.ID}

	anna := models.RosterParticipant{ID: uuid.New(), FirstName: "Anna", LastName: "Beispiel", RaceID: raceA.ID}
	ben := models.RosterParticipant{ID: uuid.New(), FirstName: "Ben", LastName: "Muster", RaceID: raceA.ID}
	clara := models.RosterParticipant{ID: uuid.New(), FirstName: "Clara", LastName: "Test", RaceID: raceB.ID}

	t.Run("participants grouped by race with aligned flags", func(t *testing.T) {
		rosters := BuildRoster(
			[]models.Race{raceA, raceB},
			[][]models.SpecialCategory{{scYouth, scTeam}, nil},
			[]models.RosterParticipant{anna, ben, clara},
			[][]uuid.UUID{{scTeam.ID}, nil, nil},
		)

		require.Len(t, rosters, 2)

		first := rosters[0]
		assert.Equal(t, "Jugend kurz", first.RaceName)
		require.Len(t, first.Participants, 2)
		assert.Equal(t, "Anna", first.Participants[0].FirstName)
		assert.Equal(t, "Ben", first.Participants[1].FirstName)
		// Анна состоит только во втором зачёте, Бен — ни в одном.
		assert.Equal(t, []bool{false, true}, first.Participants[0].SpecialCategoryFlags)
		assert.Equal(t, []bool{false, false}, first.Participants[1].SpecialCategoryFlags)

		second := rosters[1]
		assert.Equal(t, "Hauptlauf", second.RaceName)
		require.Len(t, second.Participants, 1)
		assert.Equal(t, "Clara", second.Participants[0].FirstName)
		// У гонки нет особых зачётов — вектор флагов пуст, но не nil.
		assert.NotNil(t, second.Participants[0].SpecialCategoryFlags)
		assert.Empty(t, second.Participants[0].SpecialCategoryFlags)
		assert.NotNil(t, second.SpecialCategories)
		assert.Empty(t, second.SpecialCategories)
	})

	t.Run("race without participants still gets an entry", func(t *testing.T) {
		rosters := BuildRoster(
			[]models.Race{raceA, raceB},
			[][]models.SpecialCategory{{scYouth}, nil},
			[]models.RosterParticipant{clara},
			[][]uuid.UUID{nil},
		)

		// Clara бежит вторую гонку; первая остаётся пустой.
		require.Len(t, rosters, 2)
		assert.Empty(t, rosters[0].Participants)
		require.Len(t, rosters[1].Participants, 1)
	})

	t.Run("same-named races keep separate groups", func(t *testing.T) {
		// Имена гонок не уникальны: группировка обязана идти по id.
		twinA := models.Race{ID: uuid.New(), Name: "Hauptlauf"}
		twinB := models.Race{ID: uuid.New(), Name: "Hauptlauf"}
		first := models.RosterParticipant{ID: uuid.New(), FirstName: "Anna", RaceID: twinA.ID}
		second := models.RosterParticipant{ID: uuid.New(), FirstName: "Ben", RaceID: twinB.ID}

		rosters := BuildRoster(
			[]models.Race{twinA, twinB},
			[][]models.SpecialCategory{nil, nil},
			[]models.RosterParticipant{first, second},
			[][]uuid.UUID{nil, nil},
		)

		require.Len(t, rosters, 2)
		require.Len(t, rosters[0].Participants, 1)
		assert.Equal(t, "Anna", rosters[0].Participants[0].FirstName)
		require.Len(t, rosters[1].Participants, 1)
		assert.Equal(t, "Ben", rosters[1].Participants[0].FirstName)
	})

	t.Run("reordering specials permutes flags identically", func(t *testing.T) {
		forward := BuildRoster(
			[]models.Race{raceA},
			[][]models.SpecialCategory{{scYouth, scTeam}},
			[]models.RosterParticipant{anna},
			[][]uuid.UUID{{scTeam.ID}},
		)
		reversed := BuildRoster(
			[]models.Race{raceA},
			[][]models.SpecialCategory{{scTeam, scYouth}},
			[]models.RosterParticipant{anna},
			[][]uuid.UUID{{scTeam.ID}},
		)

		assert.Equal(t, []bool{false, true}, forward[0].Participants[0].SpecialCategoryFlags)
		assert.Equal(t, []bool{true, false}, reversed[0].Participants[0].SpecialCategoryFlags)
	})

	t.Run("empty inputs produce empty roster", func(t *testing.T) {
		rosters := BuildRoster(nil, nil, nil, nil)
		assert.Empty(t, rosters)
	})
}

// Заглушки для GetCompetitionRoster.

type fakeCompetitionRepo struct {
	repositories.CompetitionRepository
	competition  *models.Competition
	announcement string
}

func (f *fakeCompetitionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Competition, error) {
	if f.competition == nil || f.competition.ID != id {
		return nil, repositories.ErrCompetitionNotFound
	}
	return f.competition, nil
}

type fakeRaceRepo struct {
	repositories.RaceRepository
	races          []models.Race
	racesWithRange []models.RaceWithAgeRange
}

func (f *fakeRaceRepo) ListOrderedByMinAge(ctx context.Context, competitionID uuid.UUID) ([]models.Race, error) {
	return f.races, nil
}

type fakeRosterSpecialRepo struct {
	repositories.SpecialCategoryRepository
	specials []models.SpecialCategory
}

func (f *fakeRosterSpecialRepo) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategory, error) {
	return f.specials, nil
}

type fakeRosterParticipantRepo struct {
	repositories.ParticipantRepository
	entries []models.RosterParticipant
}

func (f *fakeRosterParticipantRepo) ListRosterEntries(ctx context.Context, competitionID uuid.UUID) ([]models.RosterParticipant, error) {
	return f.entries, nil
}

type fakeRosterLinkRepo struct {
	repositories.SpecialCategoryLinkRepository
	links []models.SpecialCategoryLink
}

func (f *fakeRosterLinkRepo) ListByCompetition(ctx context.Context, competitionID uuid.UUID) ([]models.SpecialCategoryLink, error) {
	return f.links, nil
}

func TestGetCompetitionRoster(t *testing.T) {
	competition := models.Competition{ID: uuid.New(), Name: "Stadtlauf"}
	race := models.Race{ID: uuid.New(), Name: "Hauptlauf", CompetitionID: competition.ID}
	special := models.SpecialCategory{ID: uuid.New(), ShortName: "TW", Name: "Teamwertung", RaceID: race.ID}
	runner := models.RosterParticipant{ID: uuid.New(), FirstName: "Anna", LastName: "Beispiel", RaceID: race.ID}

	newService := func() RosterService {
		return NewRosterService(
			&fakeCompetitionRepo{competition: &competition},
			&fakeRaceRepo{races: []models.Race{race}},
			&fakeRosterSpecialRepo{specials: []models.SpecialCategory{special}},
			&fakeRosterParticipantRepo{entries: []models.RosterParticipant{runner}},
			&fakeRosterLinkRepo{links: []models.SpecialCategoryLink{{ParticipantID: runner.ID, SpecialCategoryID: special.ID}}},
		)
	}

	t.Run("assembles roster from all sources", func(t *testing.T) {
		roster, err := newService().GetCompetitionRoster(context.Background(), competition.ID)
		require.NoError(t, err)

		assert.Equal(t, "Stadtlauf", roster.Competition.Name)
		require.Len(t, roster.Races, 1)
		require.Len(t, roster.Races[0].Participants, 1)
		assert.Equal(t, []bool{true}, roster.Races[0].Participants[0].SpecialCategoryFlags)
	})

	t.Run("unknown competition", func(t *testing.T) {
		_, err := newService().GetCompetitionRoster(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrCompetitionNotFound)
	})
}
