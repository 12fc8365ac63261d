package handlers

import (
	"net/http"

	"github.com/Dosada05/competition-registry/services"
)

type CategoryHandler struct {
	categoryService services.CategoryService
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory godoc
// @Summary Создать возрастную категорию в старте
// @Tags categories
// @Accept json
// @Produce json
// @Param startID path string true "Start ID"
// @Param body body services.CategoryInput true "Данные категории"
// @Success 201 {object} map[string]interface{} "Категория создана"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 404 {object} map[string]string "Старт не найден"
// @Security BearerAuth
// @Router /starts/{startID}/categories [post]
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	startID, err := getUUIDFromURL(r, "startID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), startID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListCategoriesByStart godoc
// @Summary Категории старта
// @Tags categories
// @Produce json
// @Param startID path string true "Start ID"
// @Success 200 {object} map[string]interface{} "Список категорий"
// @Router /starts/{startID}/categories [get]
func (h *CategoryHandler) ListCategoriesByStart(w http.ResponseWriter, r *http.Request) {
	startID, err := getUUIDFromURL(r, "startID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	categories, err := h.categoryService.ListCategoriesByStart(r.Context(), startID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"categories": categories}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateCategory godoc
// @Summary Обновить категорию
// @Tags categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID"
// @Param body body services.CategoryInput true "Новые данные категории"
// @Success 200 {object} map[string]interface{} "Категория обновлена"
// @Failure 404 {object} map[string]string "Категория не найдена"
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getUUIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.CategoryInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), categoryID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"category": category}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteCategory godoc
// @Summary Удалить категорию
// @Tags categories
// @Param categoryID path string true "Category ID"
// @Success 204 "Категория удалена"
// @Failure 404 {object} map[string]string "Категория не найдена"
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getUUIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
