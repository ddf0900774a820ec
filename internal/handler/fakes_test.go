package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/recetario/recetario/internal/auth"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
	"github.com/recetario/recetario/internal/service"
)

// fakeStore is an in-memory persistence layer for handler tests.
type fakeStore struct {
	mu sync.Mutex

	users       map[string]*model.User
	pantries    map[string]*model.Pantry
	comments    []model.Comment
	ratings     []model.Rating
	recipes     map[string]*model.Recipe
	ingredients map[string]*model.Ingredient
	saved       map[[2]string]bool

	err error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       make(map[string]*model.User),
		pantries:    make(map[string]*model.Pantry),
		recipes:     make(map[string]*model.Recipe),
		ingredients: make(map[string]*model.Ingredient),
		saved:       make(map[[2]string]bool),
	}
}

func (f *fakeStore) CreateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeStore) UpdateUser(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) UpsertPantryItem(_ context.Context, userID, name string, delta float64) (*model.Pantry, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, false, f.err
	}
	if _, ok := f.users[userID]; !ok {
		return nil, false, repository.ErrUserNotFound
	}
	p, ok := f.pantries[userID]
	if !ok {
		p = &model.Pantry{UserID: userID}
		f.pantries[userID] = p
	}
	created := p.Add(name, delta)
	return clonePantry(p), created, nil
}

func (f *fakeStore) GetPantryByUser(_ context.Context, userID string) (*model.Pantry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pantries[userID]
	if !ok {
		return nil, repository.ErrPantryNotFound
	}
	return clonePantry(p), nil
}

func (f *fakeStore) RemovePantryItem(_ context.Context, userID, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pantries[userID]
	if !ok {
		return repository.ErrPantryNotFound
	}
	p.Remove(name)
	return nil
}

func (f *fakeStore) DeletePantryByUser(_ context.Context, userID string) (*model.Pantry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pantries[userID]
	if !ok {
		return nil, repository.ErrPantryNotFound
	}
	delete(f.pantries, userID)
	return p, nil
}

func clonePantry(p *model.Pantry) *model.Pantry {
	cp := *p
	cp.Entries = append([]model.PantryEntry(nil), p.Entries...)
	return &cp
}

func (f *fakeStore) InsertFeedback(_ context.Context, comments []model.Comment, ratings []model.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, c := range comments {
		if _, ok := f.recipes[c.RecipeID]; !ok {
			return repository.ErrRecipeNotFound
		}
	}
	for _, r := range ratings {
		if _, ok := f.recipes[r.RecipeID]; !ok {
			return repository.ErrRecipeNotFound
		}
	}
	f.comments = append(f.comments, comments...)
	f.ratings = append(f.ratings, ratings...)
	return nil
}

func (f *fakeStore) ListCommentsByRecipe(_ context.Context, recipeID string) ([]model.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Comment
	for _, c := range f.comments {
		if c.RecipeID == recipeID {
			if u, ok := f.users[c.UserID]; ok {
				c.Author = &model.UserSummary{Name: u.Name, Image: u.Image}
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRatingsByRecipe(_ context.Context, recipeID string) ([]model.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Rating
	for _, r := range f.ratings {
		if r.RecipeID == recipeID {
			if u, ok := f.users[r.UserID]; ok {
				r.Author = &model.UserSummary{Name: u.Name, Image: u.Image}
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRecipe(_ context.Context, recipe *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[recipe.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *recipe
	f.recipes[recipe.ID] = &cp
	return nil
}

func (f *fakeStore) GetRecipeByID(_ context.Context, id string) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, repository.ErrRecipeNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeStore) ListRecipes(_ context.Context, page, pageSize int) ([]*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*model.Recipe
	for _, r := range f.recipes {
		all = append(all, r)
	}
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := min(start+pageSize, len(all))
	return all[start:end], nil
}

func (f *fakeStore) ListRecipesByUser(_ context.Context, userID string) ([]*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Recipe
	for _, r := range f.recipes {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchRecipesByName(_ context.Context, term string) ([]*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Recipe
	for _, r := range f.recipes {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(term)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateRecipe(_ context.Context, recipe *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[recipe.ID]; !ok {
		return repository.ErrRecipeNotFound
	}
	cp := *recipe
	f.recipes[recipe.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteRecipe(_ context.Context, id string) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.recipes[id]
	if !ok {
		return nil, repository.ErrRecipeNotFound
	}
	delete(f.recipes, id)
	return r, nil
}

func (f *fakeStore) ToggleFavorite(_ context.Context, userID, recipeID string) (*model.Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.recipes[recipeID]; !ok {
		return nil, repository.ErrRecipeNotFound
	}
	key := [2]string{userID, recipeID}
	f.saved[key] = !f.saved[key]
	return &model.Favorite{UserID: userID, RecipeID: recipeID, Saved: f.saved[key]}, nil
}

func (f *fakeStore) ListSavedRecipes(_ context.Context, userID string) ([]*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Recipe
	for key, saved := range f.saved {
		if saved && key[0] == userID {
			if r, ok := f.recipes[key[1]]; ok {
				out = append(out, r)
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CreateIngredient(_ context.Context, ing *model.Ingredient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *ing
	f.ingredients[ing.ID] = &cp
	return nil
}

func (f *fakeStore) DeleteIngredient(_ context.Context, id string) (*model.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ing, ok := f.ingredients[id]
	if !ok {
		return nil, repository.ErrIngredientNotFound
	}
	delete(f.ingredients, id)
	return ing, nil
}

func (f *fakeStore) SearchIngredientsByName(_ context.Context, term string) ([]*model.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Ingredient
	for _, ing := range f.ingredients {
		if strings.Contains(strings.ToLower(ing.Name), strings.ToLower(term)) {
			out = append(out, ing)
		}
	}
	return out, nil
}

// addUser registers a user with a real credential for password.
func (f *fakeStore) addUser(id, name, email, password string) {
	cred, err := auth.IssueCredential(password)
	if err != nil {
		panic(err)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[id] = &model.User{ID: id, Name: name, Email: email, Credential: cred}
}

func (f *fakeStore) addRecipe(id, userID, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipes[id] = &model.Recipe{ID: id, UserID: userID, Name: name}
}

type fakeTokens struct{}

func (fakeTokens) Issue(userID string) (string, time.Time, error) {
	return "token-" + userID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// asCaller authenticates every request as userID. An empty id leaves the
// request anonymous.
func asCaller(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID != "" {
				r = r.WithContext(auth.ContextWithUserID(r.Context(), userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// newTestRouter wires every handler over store with the same paths as the server.
func newTestRouter(store *fakeStore, caller string) http.Handler {
	logger := discardLogger()

	users := NewUserHandler(service.NewUserService(store, fakeTokens{}, nil), logger)
	recipes := NewRecipeHandler(service.NewRecipeService(store, nil, nil), logger)
	ingredients := NewIngredientHandler(service.NewIngredientService(store), logger)
	pantry := NewPantryHandler(service.NewPantryService(store, nil), logger)
	feedback := NewFeedbackHandler(service.NewFeedbackService(store, nil), logger)

	r := chi.NewRouter()
	r.Use(asCaller(caller))
	Routes(r, Handlers{
		Users:       users,
		Recipes:     recipes,
		Ingredients: ingredients,
		Pantry:      pantry,
		Feedback:    feedback,
	})
	return r
}
