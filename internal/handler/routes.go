package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handlers groups the resource handlers mounted by Routes.
type Handlers struct {
	Users       *UserHandler
	Recipes     *RecipeHandler
	Ingredients *IngredientHandler
	Pantry      *PantryHandler
	Feedback    *FeedbackHandler
}

// Routes registers the recipe API on r. Routes that act on behalf of a
// user are wrapped in protect, which must authenticate the caller.
func Routes(r chi.Router, h Handlers, protect ...func(http.Handler) http.Handler) {
	// Public reads and account entry points
	r.Post("/users/register", h.Users.Register)
	r.Post("/users/login", h.Users.Login)

	r.Get("/recipes", h.Recipes.List)
	r.Get("/recipes/search", h.Recipes.Search)
	r.Get("/recipe/{id}", h.Recipes.Get)
	r.Get("/recipes/{id}/comments-ratings", h.Feedback.List)
	r.Get("/users/{userId}/recipes", h.Recipes.ListByUser)
	r.Get("/users/{userId}/saved-recipes", h.Recipes.ListSaved)
	r.Get("/ingredients/search", h.Ingredients.Search)

	r.Group(func(r chi.Router) {
		r.Use(protect...)

		r.Post("/recipes", h.Recipes.Create)
		r.Patch("/recipe/{id}", h.Recipes.Update)
		r.Delete("/recipe/{id}", h.Recipes.Delete)
		r.Patch("/recipes/{id}/toggle-favorite/{userId}", h.Recipes.ToggleFavorite)
		r.Post("/recipes/{id}/comments-ratings", h.Feedback.Add)

		r.Patch("/users/{userId}/edit-profile", h.Users.UpdateProfile)

		r.Post("/users/alacena", h.Pantry.Add)
		r.Delete("/users/alacena", h.Pantry.Remove)
		r.Get("/users/{userId}/alacena", h.Pantry.Get)
		r.Delete("/users/{userId}/alacena", h.Pantry.Delete)

		r.Post("/ingredients", h.Ingredients.Create)
		r.Delete("/ingredients/{id}", h.Ingredients.Delete)
	})
}
