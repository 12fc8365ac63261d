package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/competition-registry/middleware"
	"github.com/Dosada05/competition-registry/services"
)

// RegistrationHandler обслуживает публичную форму регистрации
// и админское редактирование заявок.
type RegistrationHandler struct {
	registrationService services.RegistrationService
	participantService  services.ParticipantService
}

func NewRegistrationHandler(
	registrationService services.RegistrationService,
	participantService services.ParticipantService,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		participantService:  participantService,
	}
}

// RegisterParticipant godoc
// @Summary Зарегистрировать участника
// @Tags participants
// @Description Определяет возрастную категорию по году рождения и полу, фильтрует особые зачёты и создаёт участника одной транзакцией.
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param body body services.RegistrationInput true "Данные заявки"
// @Success 201 {object} map[string]interface{} "Участник зарегистрирован"
// @Failure 400 {object} map[string]string "Нет согласия, нет подходящей категории или данные невалидны"
// @Failure 404 {object} map[string]string "Гонка не принадлежит соревнованию"
// @Router /competitions/{competitionID}/participants [post]
func (h *RegistrationHandler) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.registrationService.UpsertParticipant(r.Context(), competitionID, nil, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateParticipant godoc
// @Summary Обновить заявку участника
// @Tags participants
// @Description Пересчитывает категорию и полностью заменяет особые зачёты участника.
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param participantID path string true "Participant ID"
// @Param body body services.RegistrationInput true "Новые данные заявки"
// @Success 200 {object} map[string]interface{} "Заявка обновлена"
// @Failure 404 {object} map[string]string "Участник или гонка не найдены"
// @Security BearerAuth
// @Router /competitions/{competitionID}/participants/{participantID} [put]
func (h *RegistrationHandler) UpdateParticipant(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participantID, err := getUUIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RegistrationInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.registrationService.UpsertParticipant(r.Context(), competitionID, &participantID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetParticipantByID godoc
// @Summary Получить участника
// @Tags participants
// @Description Возвращает участника вместе с его особыми зачётами для формы редактирования.
// @Produce json
// @Param participantID path string true "Participant ID"
// @Success 200 {object} map[string]interface{} "Участник найден"
// @Failure 404 {object} map[string]string "Участник не найден"
// @Security BearerAuth
// @Router /participants/{participantID} [get]
func (h *RegistrationHandler) GetParticipantByID(w http.ResponseWriter, r *http.Request) {
	participantID, err := getUUIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participant, err := h.participantService.GetParticipantByID(r.Context(), participantID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteParticipant godoc
// @Summary Удалить участника
// @Tags participants
// @Param participantID path string true "Participant ID"
// @Success 204 "Участник удалён"
// @Failure 404 {object} map[string]string "Участник не найден"
// @Security BearerAuth
// @Router /participants/{participantID} [delete]
func (h *RegistrationHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	actorName, err := middleware.GetUserNameFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	participantID, err := getUUIDFromURL(r, "participantID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.participantService.DeleteParticipant(r.Context(), participantID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	slog.Info("participant deleted",
		slog.String("participant_id", participantID.String()),
		slog.String("deleted_by", actorName),
	)

	w.WriteHeader(http.StatusNoContent)
}
