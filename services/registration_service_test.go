package services

import (
	"context"
	"testing"
	"time"

	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Заглушки репозиториев: встраиваем интерфейс, переопределяем только то,
// что нужно сценарию.

type fakeCategoryRepo struct {
	repositories.CategoryRepository
	categories []models.Category
}

func (f *fakeCategoryRepo) ListByRace(ctx context.Context, exec repositories.SQLExecutor, raceID, competitionID uuid.UUID) ([]models.Category, error) {
	return f.categories, nil
}

type fakeSpecialRepo struct {
	repositories.SpecialCategoryRepository
	// Зачёты, реально принадлежащие гонке.
	raceSpecialIDs []uuid.UUID
}

func (f *fakeSpecialRepo) FilterIDsByRace(ctx context.Context, exec repositories.SQLExecutor, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error) {
	valid := make(map[uuid.UUID]bool, len(f.raceSpecialIDs))
	for _, id := range f.raceSpecialIDs {
		valid[id] = true
	}
	filtered := make([]uuid.UUID, 0, len(candidateIDs))
	for _, id := range candidateIDs {
		if valid[id] {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

type fakeParticipantRepo struct {
	repositories.ParticipantRepository
	stored      map[uuid.UUID]models.Participant
	insertCalls int
	updateCalls int
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{stored: make(map[uuid.UUID]models.Participant)}
}

func (f *fakeParticipantRepo) Insert(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant) error {
	f.insertCalls++
	f.stored[p.ID] = *p
	return nil
}

func (f *fakeParticipantRepo) Update(ctx context.Context, exec repositories.SQLExecutor, p *models.Participant) error {
	f.updateCalls++
	if _, ok := f.stored[p.ID]; !ok {
		return repositories.ErrParticipantNotFound
	}
	f.stored[p.ID] = *p
	return nil
}

type fakeLinkRepo struct {
	repositories.SpecialCategoryLinkRepository
	links map[uuid.UUID][]uuid.UUID
}

func newFakeLinkRepo() *fakeLinkRepo {
	return &fakeLinkRepo{links: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeLinkRepo) DeleteByParticipant(ctx context.Context, exec repositories.SQLExecutor, participantID uuid.UUID) error {
	delete(f.links, participantID)
	return nil
}

func (f *fakeLinkRepo) CreateBatch(ctx context.Context, exec repositories.SQLExecutor, participantID uuid.UUID, specialCategoryIDs []uuid.UUID) error {
	f.links[participantID] = append([]uuid.UUID(nil), specialCategoryIDs...)
	return nil
}

type fakeTransactor struct {
	calls int
}

func (f *fakeTransactor) WithinTx(ctx context.Context, fn func(exec repositories.SQLExecutor) error) error {
	f.calls++
	return fn(nil)
}

type fakeBroadcaster struct {
	rooms    []string
	messages []interface{}
}

func (f *fakeBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	f.rooms = append(f.rooms, roomID)
	f.messages = append(f.messages, message)
}

// uuidWithPrefix даёт воспроизводимые идентификаторы с заданным старшим
// байтом, чтобы контролировать порядок сравнения.
func uuidWithPrefix(b byte) uuid.UUID {
	var id uuid.UUID
	id[0] = b
	return id
}

func TestResolveCategory(t *testing.T) {
	maleKids := models.Category{ID: uuidWithPrefix(1), Label: "M10", FromAge: 8, ToAge: 10, Male: true}
	maleTeens := models.Category{ID: uuidWithPrefix(2), Label: "M14", FromAge: 11, ToAge: 14, Male: true}
	femaleTeens := models.Category{ID: uuidWithPrefix(3), Label: "W14", FromAge: 11, ToAge: 14, Male: false}
	categories := []models.Category{maleKids, maleTeens, femaleTeens}

	t.Run("unique match by age and gender", func(t *testing.T) {
		got, err := ResolveCategory(categories, 2013, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, maleTeens.ID, got.ID)
	})

	t.Run("range boundaries are inclusive", func(t *testing.T) {
		got, err := ResolveCategory(categories, 2025-8, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, maleKids.ID, got.ID)

		got, err = ResolveCategory(categories, 2025-10, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, maleKids.ID, got.ID)
	})

	t.Run("gender mismatch yields no category", func(t *testing.T) {
		_, err := ResolveCategory([]models.Category{maleTeens}, 2013, 2025, false)
		assert.ErrorIs(t, err, ErrNoCategoryForAge)
	})

	t.Run("age outside all ranges", func(t *testing.T) {
		_, err := ResolveCategory(categories, 1950, 2025, true)
		assert.ErrorIs(t, err, ErrNoCategoryForAge)
	})

	t.Run("overlap resolved by narrowest range", func(t *testing.T) {
		wide := models.Category{ID: uuidWithPrefix(1), Label: "M-open", FromAge: 0, ToAge: 99, Male: true}
		narrow := models.Category{ID: uuidWithPrefix(9), Label: "M14", FromAge: 11, ToAge: 14, Male: true}

		got, err := ResolveCategory([]models.Category{wide, narrow}, 2013, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, narrow.ID, got.ID)
	})

	t.Run("equal ranges resolved by smallest id", func(t *testing.T) {
		a := models.Category{ID: uuidWithPrefix(7), Label: "A", FromAge: 11, ToAge: 14, Male: true}
		b := models.Category{ID: uuidWithPrefix(4), Label: "B", FromAge: 11, ToAge: 14, Male: true}

		// Результат не зависит от порядка на входе.
		got, err := ResolveCategory([]models.Category{a, b}, 2013, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)

		got, err = ResolveCategory([]models.Category{b, a}, 2013, 2025, true)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	})
}

type registrationFixture struct {
	service      *registrationService
	categories   *fakeCategoryRepo
	specials     *fakeSpecialRepo
	participants *fakeParticipantRepo
	links        *fakeLinkRepo
	transactor   *fakeTransactor
	broadcaster  *fakeBroadcaster
}

func newRegistrationFixture(categories []models.Category, raceSpecialIDs []uuid.UUID) *registrationFixture {
	f := &registrationFixture{
		categories:   &fakeCategoryRepo{categories: categories},
		specials:     &fakeSpecialRepo{raceSpecialIDs: raceSpecialIDs},
		participants: newFakeParticipantRepo(),
		links:        newFakeLinkRepo(),
		transactor:   &fakeTransactor{},
		broadcaster:  &fakeBroadcaster{},
	}
	svc := NewRegistrationService(f.categories, f.specials, f.participants, f.links, f.transactor, f.broadcaster)
	f.service = svc.(*registrationService)
	// Фиксируем отчётный год, чтобы тесты не зависели от календаря.
	f.service.now = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return f
}

func TestUpsertParticipant_ConsentRequired(t *testing.T) {
	f := newRegistrationFixture(nil, nil)

	_, err := f.service.UpsertParticipant(context.Background(), uuid.New(), nil, RegistrationInput{
		LastName:  "Мустер",
		FirstName: "Макс",
		BirthYear: 2012,
		Consent:   false,
		RaceID:    uuid.New(),
	})

	assert.ErrorIs(t, err, ErrConsentRequired)
	// До транзакции дело не доходит.
	assert.Zero(t, f.transactor.calls)
	assert.Zero(t, f.participants.insertCalls)
}

func TestUpsertParticipant_InvalidBirthYear(t *testing.T) {
	f := newRegistrationFixture(nil, nil)

	for _, birthYear := range []int{0, -3, 2026} {
		_, err := f.service.UpsertParticipant(context.Background(), uuid.New(), nil, RegistrationInput{
			BirthYear: birthYear,
			Consent:   true,
			RaceID:    uuid.New(),
		})
		assert.ErrorIs(t, err, ErrInvalidBirthYear, "birth year %d", birthYear)
	}
	assert.Zero(t, f.transactor.calls)
}

func TestUpsertParticipant_NoCategoryForAge(t *testing.T) {
	categories := []models.Category{
		{ID: uuidWithPrefix(1), Label: "M10", FromAge: 8, ToAge: 10, Male: true},
	}
	f := newRegistrationFixture(categories, nil)

	_, err := f.service.UpsertParticipant(context.Background(), uuid.New(), nil, RegistrationInput{
		LastName:  "Мустер",
		FirstName: "Макс",
		BirthYear: 1980,
		Male:      true,
		Consent:   true,
		RaceID:    uuid.New(),
	})

	assert.ErrorIs(t, err, ErrNoCategoryForAge)
	assert.Zero(t, f.participants.insertCalls)
	assert.Empty(t, f.broadcaster.rooms)
}

func TestUpsertParticipant_CreateFiltersSpecialsAndBroadcasts(t *testing.T) {
	category := models.Category{ID: uuidWithPrefix(1), Label: "M14", FromAge: 11, ToAge: 14, Male: true}
	ownSpecial := uuidWithPrefix(10)
	foreignSpecial := uuidWithPrefix(11)

	f := newRegistrationFixture([]models.Category{category}, []uuid.UUID{ownSpecial})
	competitionID := uuid.New()

	participant, err := f.service.UpsertParticipant(context.Background(), competitionID, nil, RegistrationInput{
		LastName:           "Мустер",
		FirstName:          "Макс",
		Club:               "SV Musterstadt",
		BirthYear:          2012,
		Male:               true,
		Consent:            true,
		RaceID:             uuid.New(),
		SpecialCategoryIDs: []uuid.UUID{ownSpecial, foreignSpecial},
	})

	require.NoError(t, err)
	require.NotNil(t, participant)
	assert.NotEqual(t, uuid.Nil, participant.ID)
	assert.Equal(t, category.ID, participant.CategoryID)
	require.NotNil(t, participant.Category)
	assert.Equal(t, "M14", participant.Category.Label)
	require.NotNil(t, participant.Club)
	assert.Equal(t, "SV Musterstadt", *participant.Club)

	// Чужой зачёт молча отброшен, свой — записан.
	assert.Equal(t, []uuid.UUID{ownSpecial}, participant.SpecialCategoryIDs)
	assert.Equal(t, []uuid.UUID{ownSpecial}, f.links.links[participant.ID])

	assert.Equal(t, 1, f.participants.insertCalls)
	assert.Equal(t, 1, f.transactor.calls)

	// Событие ушло в комнату соревнования.
	require.Len(t, f.broadcaster.rooms, 1)
	assert.Equal(t, competitionID.String(), f.broadcaster.rooms[0])
	message, ok := f.broadcaster.messages[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "PARTICIPANT_REGISTERED", message["type"])
}

func TestUpsertParticipant_UpdateReplacesLinks(t *testing.T) {
	category := models.Category{ID: uuidWithPrefix(1), Label: "M14", FromAge: 11, ToAge: 14, Male: true}
	oldSpecial := uuidWithPrefix(20)
	newSpecial := uuidWithPrefix(21)

	f := newRegistrationFixture([]models.Category{category}, []uuid.UUID{oldSpecial, newSpecial})

	participantID := uuid.New()
	f.participants.stored[participantID] = models.Participant{ID: participantID}
	f.links.links[participantID] = []uuid.UUID{oldSpecial}

	participant, err := f.service.UpsertParticipant(context.Background(), uuid.New(), &participantID, RegistrationInput{
		LastName:           "Мустер",
		FirstName:          "Макс",
		BirthYear:          2012,
		Male:               true,
		Consent:            true,
		RaceID:             uuid.New(),
		SpecialCategoryIDs: []uuid.UUID{newSpecial},
	})

	require.NoError(t, err)
	assert.Equal(t, participantID, participant.ID)
	assert.Equal(t, 1, f.participants.updateCalls)
	assert.Zero(t, f.participants.insertCalls)

	// Старые связи полностью заменены новым набором.
	assert.Equal(t, []uuid.UUID{newSpecial}, f.links.links[participantID])
}

func TestUpsertParticipant_RepeatedUpdateIsIdempotent(t *testing.T) {
	category := models.Category{ID: uuidWithPrefix(1), Label: "M14", FromAge: 11, ToAge: 14, Male: true}
	special := uuidWithPrefix(40)

	f := newRegistrationFixture([]models.Category{category}, []uuid.UUID{special})

	participantID := uuid.New()
	f.participants.stored[participantID] = models.Participant{ID: participantID}

	input := RegistrationInput{
		LastName:           "Мустер",
		FirstName:          "Макс",
		Club:               "SV Musterstadt",
		BirthYear:          2012,
		Male:               true,
		Consent:            true,
		RaceID:             uuid.New(),
		SpecialCategoryIDs: []uuid.UUID{special},
	}
	competitionID := uuid.New()

	first, err := f.service.UpsertParticipant(context.Background(), competitionID, &participantID, input)
	require.NoError(t, err)

	rowAfterFirst := f.participants.stored[participantID]
	linksAfterFirst := append([]uuid.UUID(nil), f.links.links[participantID]...)

	// Повторный апдейт с теми же данными не меняет итоговое состояние.
	second, err := f.service.UpsertParticipant(context.Background(), competitionID, &participantID, input)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, rowAfterFirst, f.participants.stored[participantID])
	assert.Equal(t, linksAfterFirst, f.links.links[participantID])

	assert.Equal(t, 2, f.participants.updateCalls)
	assert.Zero(t, f.participants.insertCalls)
}

func TestUpsertParticipant_UpdateOfDeletedParticipant(t *testing.T) {
	category := models.Category{ID: uuidWithPrefix(1), Label: "M14", FromAge: 11, ToAge: 14, Male: true}
	f := newRegistrationFixture([]models.Category{category}, nil)

	missingID := uuid.New()
	_, err := f.service.UpsertParticipant(context.Background(), uuid.New(), &missingID, RegistrationInput{
		LastName:  "Мустер",
		FirstName: "Макс",
		BirthYear: 2012,
		Male:      true,
		Consent:   true,
		RaceID:    uuid.New(),
	})

	assert.ErrorIs(t, err, ErrParticipantNotFound)
	assert.Empty(t, f.broadcaster.rooms)
}

func TestResolveSpecialCategories(t *testing.T) {
	own := uuidWithPrefix(30)
	foreign := uuidWithPrefix(31)
	f := newRegistrationFixture(nil, []uuid.UUID{own})

	ids, err := f.service.ResolveSpecialCategories(context.Background(), []uuid.UUID{foreign, own, foreign}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{own}, ids)
}
