package handlers

import (
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type SpecialCategoryHandler struct {
	specialCategoryService services.SpecialCategoryService
}

func NewSpecialCategoryHandler(specialCategoryService services.SpecialCategoryService) *SpecialCategoryHandler {
	return &SpecialCategoryHandler{specialCategoryService: specialCategoryService}
}

// CreateSpecialCategory godoc
// @Summary Создать особый зачёт в гонке
// @Tags special-categories
// @Accept json
// @Produce json
// @Param raceID path string true "Race ID"
// @Param body body services.SpecialCategoryInput true "Данные особого зачёта"
// @Success 201 {object} map[string]interface{} "Особый зачёт создан"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Гонка не найдена"
// @Security BearerAuth
// @Router /races/{raceID}/special-categories [post]
func (h *SpecialCategoryHandler) CreateSpecialCategory(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SpecialCategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	specialCategory, err := h.specialCategoryService.CreateSpecialCategory(r.Context(), raceID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"special_category": specialCategory}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListSpecialCategoriesByRace godoc
// @Summary Особые зачёты гонки
// @Tags special-categories
// @Produce json
// @Param raceID path string true "Race ID"
// @Success 200 {object} map[string]interface{} "Список особых зачётов"
// @Router /races/{raceID}/special-categories [get]
func (h *SpecialCategoryHandler) ListSpecialCategoriesByRace(w http.ResponseWriter, r *http.Request) {
	raceID, err := getUUIDFromURL(r, "raceID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	specialCategories, err := h.specialCategoryService.ListSpecialCategoriesByRace(r.Context(), raceID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"special_categories": specialCategories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateSpecialCategory godoc
// @Summary Обновить особый зачёт
// @Tags special-categories
// @Accept json
// @Produce json
// @Param specialCategoryID path string true "Special Category ID"
// @Param body body services.SpecialCategoryInput true "Новые данные особого зачёта"
// @Success 200 {object} map[string]interface{} "Особый зачёт обновлён"
// @Failure 404 {object} map[string]string "Особый зачёт не найден"
// @Security BearerAuth
// @Router /special-categories/{specialCategoryID} [put]
func (h *SpecialCategoryHandler) UpdateSpecialCategory(w http.ResponseWriter, r *http.Request) {
	specialCategoryID, err := getUUIDFromURL(r, "specialCategoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SpecialCategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	specialCategory, err := h.specialCategoryService.UpdateSpecialCategory(r.Context(), specialCategoryID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"special_category": specialCategory}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteSpecialCategory godoc
// @Summary Удалить особый зачёт
// @Tags special-categories
// @Param specialCategoryID path string true "Special Category ID"
// @Success 204 "Особый зачёт удалён"
// @Failure 404 {object} map[string]string "Особый зачёт не найден"
// @Security BearerAuth
// @Router /special-categories/{specialCategoryID} [delete]
func (h *SpecialCategoryHandler) DeleteSpecialCategory(w http.ResponseWriter, r *http.Request) {
	specialCategoryID, err := getUUIDFromURL(r, "specialCategoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.specialCategoryService.DeleteSpecialCategory(r.Context(), specialCategoryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
