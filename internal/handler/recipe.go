package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/service"
)

// RecipeHandler handles HTTP requests for recipes and favorites.
type RecipeHandler struct {
	svc    *service.RecipeService
	logger *slog.Logger
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(svc *service.RecipeService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{svc: svc, logger: logger}
}

// Create handles POST /api/v1/recipes/recipes.
// The author defaults to the caller and may not be anyone else.
func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.UserID == "" {
		req.UserID = auth.UserIDFromContext(r.Context())
	}
	if !requireSelf(w, r, req.UserID) {
		return
	}

	recipe, err := h.svc.CreateRecipe(r.Context(), toRecipeInput(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("recipe_created", "recipe_id", recipe.ID, "user_id", recipe.UserID)
	writeData(w, http.StatusCreated, "Recipe created", recipe)
}

// List handles GET /api/v1/recipes/recipes?page=N.
func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_PAGE", "page must be a positive integer")
			return
		}
		page = parsed
	}

	recipes, err := h.svc.ListRecipes(r.Context(), page)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeRecipes(w, recipes)
}

// Get handles GET /api/v1/recipes/recipe/{id}.
func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.svc.GetRecipe(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "", recipe)
}

// Update handles PATCH /api/v1/recipes/recipe/{id}. Only the author may edit.
func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.svc.GetRecipe(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	if !requireSelf(w, r, existing.UserID) {
		return
	}

	var req dto.RecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	recipe, err := h.svc.UpdateRecipe(r.Context(), id, toRecipeInput(req))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("recipe_updated", "recipe_id", recipe.ID)
	writeData(w, http.StatusOK, "Recipe updated", recipe)
}

// Delete handles DELETE /api/v1/recipes/recipe/{id}. Only the author may delete.
func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.svc.GetRecipe(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	if !requireSelf(w, r, existing.UserID) {
		return
	}

	recipe, err := h.svc.DeleteRecipe(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("recipe_deleted", "recipe_id", recipe.ID)
	writeData(w, http.StatusOK, "Recipe deleted", recipe)
}

// Search handles GET /api/v1/recipes/recipes/search?name=...
func (h *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "MISSING_NAME", "name query parameter is required")
		return
	}

	recipes, err := h.svc.SearchRecipes(r.Context(), name)
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeRecipes(w, recipes)
}

// ListByUser handles GET /api/v1/recipes/users/{userId}/recipes.
func (h *RecipeHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListUserRecipes(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeRecipes(w, recipes)
}

// ListSaved handles GET /api/v1/recipes/users/{userId}/saved-recipes.
func (h *RecipeHandler) ListSaved(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.svc.ListSavedRecipes(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeRecipes(w, recipes)
}

// ToggleFavorite handles PATCH /api/v1/recipes/recipes/{id}/toggle-favorite/{userId}.
func (h *RecipeHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if !requireSelf(w, r, userID) {
		return
	}

	fav, err := h.svc.ToggleFavorite(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	message := "Recipe removed from favorites"
	if fav.Saved {
		message = "Recipe added to favorites"
	}
	writeData(w, http.StatusOK, message, fav)
}

// writeRecipes writes a recipe list, or 404 when it is empty.
func writeRecipes(w http.ResponseWriter, recipes []*model.Recipe) {
	if len(recipes) == 0 {
		writeError(w, http.StatusNotFound, "RECIPES_NOT_FOUND", "Recipes not found")
		return
	}
	writeData(w, http.StatusOK, "", recipes)
}

func toRecipeInput(req dto.RecipeRequest) service.RecipeInput {
	return service.RecipeInput{
		Name:         req.Name,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		PrepTime:     req.PrepTime,
		Difficulty:   req.Difficulty,
		Instructions: req.Instructions,
		Image:        req.Image,
		Servings:     req.Servings,
		Cost:         req.Cost,
		UserID:       req.UserID,
	}
}
