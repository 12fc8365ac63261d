package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type CompetitionHandler struct {
	competitionService services.CompetitionService
}

func NewCompetitionHandler(competitionService services.CompetitionService) *CompetitionHandler {
	return &CompetitionHandler{competitionService: competitionService}
}

// CreateCompetition godoc
// @Summary Создать соревнование
// @Tags competitions
// @Accept json
// @Produce json
// @Param body body services.CompetitionInput true "Данные соревнования"
// @Success 201 {object} map[string]interface{} "Соревнование создано"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Security BearerAuth
// @Router /competitions [post]
func (h *CompetitionHandler) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var input services.CompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competition, err := h.competitionService.CreateCompetition(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"competition": competition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetAllCompetitions godoc
// @Summary Список соревнований
// @Tags competitions
// @Produce json
// @Success 200 {object} map[string]interface{} "Список соревнований"
// @Router /competitions [get]
func (h *CompetitionHandler) GetAllCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := h.competitionService.GetAllCompetitions(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competitions": competitions}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetCompetitionByID godoc
// @Summary Получить соревнование по ID
// @Tags competitions
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{} "Соревнование найдено"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Router /competitions/{competitionID} [get]
func (h *CompetitionHandler) GetCompetitionByID(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competition, err := h.competitionService.GetCompetitionByID(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": competition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateCompetition godoc
// @Summary Обновить соревнование
// @Tags competitions
// @Accept json
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param body body services.CompetitionInput true "Новые данные соревнования"
// @Success 200 {object} map[string]interface{} "Соревнование обновлено"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Security BearerAuth
// @Router /competitions/{competitionID} [put]
func (h *CompetitionHandler) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CompetitionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	competition, err := h.competitionService.UpdateCompetition(r.Context(), competitionID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"competition": competition}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteCompetition godoc
// @Summary Удалить соревнование
// @Tags competitions
// @Param competitionID path string true "Competition ID"
// @Success 204 "Соревнование удалено"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Security BearerAuth
// @Router /competitions/{competitionID} [delete]
func (h *CompetitionHandler) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.competitionService.DeleteCompetition(r.Context(), competitionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetRegistrationForm godoc
// @Summary Данные для формы регистрации
// @Tags competitions
// @Description Гонки с возрастными границами, особые зачёты по гонкам и допустимые границы года рождения.
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Success 200 {object} map[string]interface{} "Данные формы"
// @Failure 404 {object} map[string]string "Соревнование не найдено"
// @Router /competitions/{competitionID}/registration-form [get]
func (h *CompetitionHandler) GetRegistrationForm(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	form, err := h.competitionService.GetRegistrationForm(r.Context(), competitionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"form": form}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadAnnouncement godoc
// @Summary Загрузить положение соревнования
// @Tags competitions
// @Description Загружает PDF положения в объектное хранилище и сохраняет публичную ссылку.
// @Accept mpfd
// @Produce json
// @Param competitionID path string true "Competition ID"
// @Param announcement formData file true "Файл положения"
// @Success 200 {object} map[string]string "Ссылка на положение"
// @Failure 400 {object} map[string]string "Некорректный запрос"
// @Failure 503 {object} map[string]string "Хранилище не настроено"
// @Security BearerAuth
// @Router /competitions/{competitionID}/announcement [post]
func (h *CompetitionHandler) UploadAnnouncement(w http.ResponseWriter, r *http.Request) {
	competitionID, err := getUUIDFromURL(r, "competitionID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("announcement")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get announcement file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for announcement"))
		return
	}

	location, err := h.competitionService.UploadAnnouncement(r.Context(), competitionID, header.Filename, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"announcement": location}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
