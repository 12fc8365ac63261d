package handlers

import (
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type StartHandler struct {
	startService services.StartService
}

func NewStartHandler(startService services.StartService) *StartHandler {
	return &StartHandler{startService: startService}
}

// CreateStart godoc
// @Summary Создать старт в гонке
// @Tags starts
// @Accept json
// @Produce json
// @Param raceID path string true "Race ID"
// @Param body body services.StartInput true "Данные старта"
// @Success 201 {object} map[string]interface{} "Старт создан"
// @Failure 404 {object} map[string]string "Гонка не найдена"
// @Security BearerAuth
// @Router /races/{raceID}/starts [post]
func (h *StartHandler) CreateStart(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.StartInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	start, err := h.startService.CreateStart(r.Context(), raceID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"start": start}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListStartsByRace godoc
// @Summary Старты гонки
// @Tags starts
// @Produce json
// @Param raceID path string true "Race ID"
// @Success 200 {object} map[string]interface{} "Список стартов"
// @Router /races/{raceID}/starts [get]
func (h *StartHandler) ListStartsByRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	starts, err := h.startService.ListStartsByRace(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"starts": starts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateStart godoc
// @Summary Обновить старт
// @Tags starts
// @Accept json
// @Produce json
// @Param startID path string true "Start ID"
// @Param body body services.StartInput true "Новые данные старта"
// @Success 200 {object} map[string]interface{} "Старт обновлён"
// @Failure 404 {object} map[string]string "Старт не найден"
// @Security BearerAuth
// @Router /starts/{startID} [put]
func (h *StartHandler) UpdateStart(w http.ResponseWriter, r *http.Request) {
	startID, err := getUUIDFromURL(r, "startID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.StartInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	start, err := h.startService.UpdateStart(r.Context(), startID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"start": start}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteStart godoc
// @Summary Удалить старт
// @Tags starts
// @Param startID path string true "Start ID"
// @Success 204 "Старт удалён"
// @Failure 404 {object} map[string]string "Старт не найден"
// @Security BearerAuth
// @Router /starts/{startID} [delete]
func (h *StartHandler) DeleteStart(w http.ResponseWriter, r *http.Request) {
	startID, err := getUUIDFromURL(r, "startID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.startService.DeleteStart(r.Context(), startID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
