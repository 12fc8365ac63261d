package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/competition-registry/middleware"
	"github.com/Dosada05/competition-registry/models"
	"github.com/Dosada05/competition-registry/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrationService struct {
	participant *models.Participant
	err         error

	gotCompetitionID uuid.UUID
	gotParticipantID *uuid.UUID
	gotInput         services.RegistrationInput
}

func (f *fakeRegistrationService) UpsertParticipant(ctx context.Context, competitionID uuid.UUID, participantID *uuid.UUID, input services.RegistrationInput) (*models.Participant, error) {
	f.gotCompetitionID = competitionID
	f.gotParticipantID = participantID
	f.gotInput = input
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeRegistrationService) ResolveSpecialCategories(ctx context.Context, candidateIDs []uuid.UUID, raceID uuid.UUID) ([]uuid.UUID, error) {
	return candidateIDs, nil
}

func newRegistrationRouter(svc services.RegistrationService) *chi.Mux {
	handler := NewRegistrationHandler(svc, nil)
	router := chi.NewRouter()
	router.Post("/competitions/{competitionID}/participants", handler.RegisterParticipant)
	router.Put("/competitions/{competitionID}/participants/{participantID}", handler.UpdateParticipant)
	return router
}

func TestRegisterParticipant(t *testing.T) {
	competitionID := uuid.New()
	raceID := uuid.New()

	t.Run("created", func(t *testing.T) {
		svc := &fakeRegistrationService{
			participant: &models.Participant{ID: uuid.New(), LastName: "Мустер", FirstName: "Макс"},
		}
		router := newRegistrationRouter(svc)

		body := `{"last_name":"Мустер","first_name":"Макс","birth_year":2012,"male":true,"consent":true,"race_id":"` + raceID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/competitions/"+competitionID.String()+"/participants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, competitionID, svc.gotCompetitionID)
		assert.Nil(t, svc.gotParticipantID)
		assert.Equal(t, raceID, svc.gotInput.RaceID)
		assert.Contains(t, rec.Body.String(), "participant")
	})

	t.Run("invalid competition id", func(t *testing.T) {
		router := newRegistrationRouter(&fakeRegistrationService{})

		req := httptest.NewRequest(http.MethodPost, "/competitions/not-a-uuid/participants", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("consent error maps to 400", func(t *testing.T) {
		router := newRegistrationRouter(&fakeRegistrationService{err: services.ErrConsentRequired})

		body := `{"last_name":"Мустер","first_name":"Макс","birth_year":2012,"consent":false,"race_id":"` + raceID.String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/competitions/"+competitionID.String()+"/participants", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "consent")
	})
}

func TestUpdateParticipant(t *testing.T) {
	competitionID := uuid.New()
	participantID := uuid.New()
	raceID := uuid.New()
	body := `{"last_name":"Мустер","first_name":"Макс","birth_year":2012,"male":true,"consent":true,"race_id":"` + raceID.String() + `"}`

	t.Run("updated", func(t *testing.T) {
		svc := &fakeRegistrationService{
			participant: &models.Participant{ID: participantID},
		}
		router := newRegistrationRouter(svc)

		req := httptest.NewRequest(http.MethodPut, "/competitions/"+competitionID.String()+"/participants/"+participantID.String(), strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, svc.gotParticipantID)
		assert.Equal(t, participantID, *svc.gotParticipantID)
	})

	t.Run("missing participant maps to 404", func(t *testing.T) {
		router := newRegistrationRouter(&fakeRegistrationService{err: services.ErrParticipantNotFound})

		req := httptest.NewRequest(http.MethodPut, "/competitions/"+competitionID.String()+"/participants/"+participantID.String(), strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

type fakeParticipantService struct {
	participant *models.Participant
	err         error

	deletedID uuid.UUID
}

func (f *fakeParticipantService) GetParticipantByID(ctx context.Context, id uuid.UUID) (*models.Participant, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.participant, nil
}

func (f *fakeParticipantService) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	f.deletedID = id
	return f.err
}

func TestDeleteParticipant(t *testing.T) {
	const secret = "test-secret"
	participantID := uuid.New()

	newDeleteRouter := func(svc services.ParticipantService) *chi.Mux {
		handler := NewRegistrationHandler(&fakeRegistrationService{}, svc)
		router := chi.NewRouter()
		router.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(secret))
			r.Delete("/participants/{participantID}", handler.DeleteParticipant)
		})
		return router
	}

	adminToken := func(t *testing.T) string {
		t.Helper()
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": uuid.New().String(),
			"name":    "admin",
			"exp":     time.Now().Add(time.Hour).Unix(),
			"iat":     time.Now().Unix(),
		})
		signed, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return signed
	}

	t.Run("deleted by authenticated admin", func(t *testing.T) {
		svc := &fakeParticipantService{}
		router := newDeleteRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/participants/"+participantID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+adminToken(t))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, participantID, svc.deletedID)
	})

	t.Run("unauthenticated request is rejected", func(t *testing.T) {
		svc := &fakeParticipantService{}
		router := newDeleteRouter(svc)

		req := httptest.NewRequest(http.MethodDelete, "/participants/"+participantID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, uuid.Nil, svc.deletedID)
	})

	t.Run("missing claims in context", func(t *testing.T) {
		// Хендлер вызван напрямую, без Authenticate.
		svc := &fakeParticipantService{}
		handler := NewRegistrationHandler(&fakeRegistrationService{}, svc)
		router := chi.NewRouter()
		router.Delete("/participants/{participantID}", handler.DeleteParticipant)

		req := httptest.NewRequest(http.MethodDelete, "/participants/"+participantID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, uuid.Nil, svc.deletedID)
	})
}
