package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// PantryHandler handles a user's pantry (alacena).
type PantryHandler struct {
	svc    *service.PantryService
	logger *slog.Logger
}

// NewPantryHandler creates a new PantryHandler.
func NewPantryHandler(svc *service.PantryService, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{svc: svc, logger: logger}
}

// Add handles POST /api/v1/recipes/users/alacena.
// Responds 201 when the ingredient is new to the pantry, 200 when its quantity grew.
func (h *PantryHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req dto.AddPantryItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !requireSelf(w, r, req.UserID) {
		return
	}

	result, err := h.svc.AddIngredient(r.Context(), req.UserID, req.IngredientName, float64(req.Quantity))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	if result.Created {
		writeData(w, http.StatusCreated, "Ingredient added to pantry", result.Pantry)
		return
	}
	writeData(w, http.StatusOK, "Ingredient quantity updated", result.Pantry)
}

// Remove handles DELETE /api/v1/recipes/users/alacena.
func (h *PantryHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req dto.RemovePantryItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !requireSelf(w, r, req.UserID) {
		return
	}

	if err := h.svc.RemoveIngredient(r.Context(), req.UserID, req.IngredientName); err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "Ingredient removed from pantry", nil)
}

// Get handles GET /api/v1/recipes/users/{userId}/alacena.
func (h *PantryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !requireSelf(w, r, userID) {
		return
	}

	pantry, err := h.svc.GetPantry(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "", pantry)
}

// Delete handles DELETE /api/v1/recipes/users/{userId}/alacena.
func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !requireSelf(w, r, userID) {
		return
	}

	pantry, err := h.svc.DeletePantry(r.Context(), userID)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("pantry_deleted", "user_id", userID, "entries", len(pantry.Entries))
	writeData(w, http.StatusOK, "Pantry deleted", pantry)
}
