package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// IngredientHandler handles the ingredient catalog.
type IngredientHandler struct {
	svc    *service.IngredientService
	logger *slog.Logger
}

// NewIngredientHandler creates a new IngredientHandler.
func NewIngredientHandler(svc *service.IngredientService, logger *slog.Logger) *IngredientHandler {
	return &IngredientHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/recipes/ingredients.
func (h *IngredientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.IngredientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	ing, err := h.svc.CreateIngredient(r.Context(), service.IngredientInput{
		Name:     req.Name,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("ingredient_created", "ingredient_id", ing.ID)
	writeData(w, http.StatusCreated, "Ingredient created", ing)
}

// Delete handles DELETE /api/v1/recipes/ingredients/{id}.
func (h *IngredientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ing, err := h.svc.DeleteIngredient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("ingredient_deleted", "ingredient_id", ing.ID)
	writeData(w, http.StatusOK, "Ingredient deleted", ing)
}

// Search handles GET /api/v1/recipes/ingredients/search?name=...
func (h *IngredientHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "name query parameter is required")
		return
	}

	ingredients, err := h.svc.SearchIngredients(r.Context(), name)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	if len(ingredients) == 0 {
		writeError(w, http.StatusNotFound, "INGREDIENTS_NOT_FOUND", "Ingredients not found")
		return
	}
	writeData(w, http.StatusOK, "", ingredients)
}
