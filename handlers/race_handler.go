package handlers

import (
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type RaceHandler struct {
	raceService services.RaceService
}

func NewRaceHandler(raceService services.RaceService) *RaceHandler {
	return &RaceHandler{raceService: raceService}
}

// CreateRace godoc
// @Summary Создать гонку в соревновании
// @Tags races
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param body body services.RaceInput true "Данные гонки"
// @Success 201 {object} map[string]interface{} "Гонка создана"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Security BearerAuth
// @Router /competitions/{competitionID}/races [post]
func (h *RaceHandler) CreateRace(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RaceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.raceService.CreateRace(r.Context(), competitionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"race": race}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRacesByCompetition godoc
// @Summary Гонки соревнования
// @Tags races
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{} "Список гонок"
// @Router /competitions/{competitionID}/races [get]
func (h *RaceHandler) ListRacesByCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	races, err := h.raceService.ListRacesByCompetition(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"races": races}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetRaceByID godoc
// @Summary Получить гонку по ID
// @Tags races
// @Produce json
// @Param raceID path string true "Race ID"
// @Success 200 {object} map[string]interface{} "Гонка найдена"
// @Failure 404 {object} map[string]string "Гонка не найдена"
// @Router /races/{raceID} [get]
func (h *RaceHandler) GetRaceByID(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.raceService.GetRaceByID(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"race": race}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRace godoc
// @Summary Обновить гонку
// @Tags races
// @Accept json
// @Produce json
// @Param raceID path string true "Race ID"
// @Param body body services.RaceInput true "Новые данные гонки"
// @Success 200 {object} map[string]interface{} "Гонка обновлена"
// @Failure 404 {object} map[string]string "Гонка не найдена"
// @Security BearerAuth
// @Router /races/{raceID} [put]
func (h *RaceHandler) UpdateRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.RaceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	race, err := h.raceService.UpdateRace(r.Context(), raceID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"race": race}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteRace godoc
// @Summary Удалить гонку
// @Tags races
// @Param raceID path string true "Race ID"
// @Success 204 "Гонка удалена"
// @Failure 404 {object} map[string]string "Гонка не найдена"
// @Security BearerAuth
// @Router /races/{raceID} [delete]
func (h *RaceHandler) DeleteRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.raceService.DeleteRace(r.Context(), raceID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
