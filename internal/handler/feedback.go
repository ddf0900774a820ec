package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/handler/dto"
	"github.com/recetario/recetario/internal/service"
)

// FeedbackHandler handles comments and ratings on a recipe.
type FeedbackHandler struct {
	svc    *service.FeedbackService
	logger *slog.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(svc *service.FeedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/recipes/recipes/{id}/comments-ratings.
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.svc.GetCommentsAndRatings(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}
	writeData(w, http.StatusOK, "", feedback)
}

// Add handles POST /api/v1/recipes/recipes/{id}/comments-ratings.
// Every record must be authored by the caller.
func (h *FeedbackHandler) Add(w http.ResponseWriter, r *http.Request) {
	recipeID := chi.URLParam(r, "id")

	var req dto.FeedbackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	caller := auth.UserIDFromContext(r.Context())
	if caller == "" {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	for _, id := range req.UserIDs() {
		if id != caller {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "Cannot act on behalf of another user")
			return
		}
	}

	batch, err := h.svc.AddCommentsAndRatings(r.Context(), req.ToInput(recipeID))
	if err != nil {
		handleServiceError(w, h.logger, err)
		return
	}

	h.logger.Info("feedback_added",
		"recipe_id", recipeID,
		"comments", len(batch.Comments),
		"ratings", len(batch.Ratings),
	)
	writeData(w, http.StatusCreated, "Comments and ratings added", dto.FeedbackBatchResponse{
		Comments: batch.Comments,
		Ratings:  batch.Ratings,
	})
}
