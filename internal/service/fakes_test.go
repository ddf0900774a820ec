package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// memStore is an in-memory stand-in for *repository.Repository. A single
// mutex makes every method atomic, mirroring the database's guarantees.
type memStore struct {
	mu sync.Mutex

	users       map[string]*model.User
	pantries    map[string]*model.Pantry
	comments    []model.Comment
	ratings     []model.Rating
	recipes     map[string]*model.Recipe
	favorites   map[[2]string]*model.Favorite
	ingredients map[string]*model.Ingredient

	// failWith, when set, is returned by every method.
	failWith error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[string]*model.User),
		pantries:    make(map[string]*model.Pantry),
		recipes:     make(map[string]*model.Recipe),
		favorites:   make(map[[2]string]*model.Favorite),
		ingredients: make(map[string]*model.Ingredient),
	}
}

func (m *memStore) addUser(u *model.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
}

// ---- UserStore ----

func (m *memStore) CreateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

func (m *memStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (m *memStore) UpdateUser(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for id, u := range m.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *user
	m.users[user.ID] = &cp
	return nil
}

// ---- PantryStore ----

func (m *memStore) UpsertPantryItem(_ context.Context, userID, name string, delta float64) (*model.Pantry, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, false, m.failWith
	}
	if _, ok := m.users[userID]; !ok {
		return nil, false, repository.ErrUserNotFound
	}
	p, ok := m.pantries[userID]
	if !ok {
		p = &model.Pantry{UserID: userID, CreatedAt: time.Now()}
		m.pantries[userID] = p
	}
	created := p.Add(name, delta)
	return clonePantry(p), created, nil
}

func (m *memStore) GetPantryByUser(_ context.Context, userID string) (*model.Pantry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.pantries[userID]
	if !ok {
		return nil, repository.ErrPantryNotFound
	}
	return clonePantry(p), nil
}

func (m *memStore) RemovePantryItem(_ context.Context, userID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	p, ok := m.pantries[userID]
	if !ok {
		return repository.ErrPantryNotFound
	}
	p.Remove(name)
	return nil
}

func (m *memStore) DeletePantryByUser(_ context.Context, userID string) (*model.Pantry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	p, ok := m.pantries[userID]
	if !ok {
		return nil, repository.ErrPantryNotFound
	}
	delete(m.pantries, userID)
	return p, nil
}

func clonePantry(p *model.Pantry) *model.Pantry {
	cp := *p
	cp.Entries = append([]model.PantryEntry(nil), p.Entries...)
	return &cp
}

// ---- FeedbackStore ----

func (m *memStore) InsertFeedback(_ context.Context, comments []model.Comment, ratings []model.Rating) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for _, c := range comments {
		if err := m.checkRefs(c.UserID, c.RecipeID); err != nil {
			return err
		}
	}
	for _, r := range ratings {
		if err := m.checkRefs(r.UserID, r.RecipeID); err != nil {
			return err
		}
	}
	m.comments = append(m.comments, comments...)
	m.ratings = append(m.ratings, ratings...)
	return nil
}

func (m *memStore) checkRefs(userID, recipeID string) error {
	if _, ok := m.users[userID]; !ok {
		return repository.ErrUserNotFound
	}
	if _, ok := m.recipes[recipeID]; !ok {
		return repository.ErrRecipeNotFound
	}
	return nil
}

func (m *memStore) ListCommentsByRecipe(_ context.Context, recipeID string) ([]model.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []model.Comment
	for _, c := range m.comments {
		if c.RecipeID == recipeID {
			c.Author = m.summary(c.UserID)
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memStore) ListRatingsByRecipe(_ context.Context, recipeID string) ([]model.Rating, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	var out []model.Rating
	for _, r := range m.ratings {
		if r.RecipeID == recipeID {
			r.Author = m.summary(r.UserID)
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memStore) summary(userID string) *model.UserSummary {
	u, ok := m.users[userID]
	if !ok {
		return nil
	}
	return &model.UserSummary{Name: u.Name, Image: u.Image}
}

// ---- RecipeStore ----

func (m *memStore) CreateRecipe(_ context.Context, recipe *model.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.users[recipe.UserID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *recipe
	m.recipes[recipe.ID] = &cp
	return nil
}

func (m *memStore) GetRecipeByID(_ context.Context, id string) (*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.recipes[id]
	if !ok {
		return nil, repository.ErrRecipeNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) sortedRecipes(keep func(*model.Recipe) bool) []*model.Recipe {
	out := make([]*model.Recipe, 0)
	for _, r := range m.recipes {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (m *memStore) ListRecipes(_ context.Context, page, pageSize int) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	all := m.sortedRecipes(func(*model.Recipe) bool { return true })
	start := (page - 1) * pageSize
	if start >= len(all) {
		return []*model.Recipe{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *memStore) ListRecipesByUser(_ context.Context, userID string) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sortedRecipes(func(r *model.Recipe) bool { return r.UserID == userID }), nil
}

func (m *memStore) SearchRecipesByName(_ context.Context, term string) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	term = strings.ToLower(term)
	return m.sortedRecipes(func(r *model.Recipe) bool {
		return strings.Contains(strings.ToLower(r.Name), term)
	}), nil
}

func (m *memStore) UpdateRecipe(_ context.Context, recipe *model.Recipe) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.recipes[recipe.ID]; !ok {
		return repository.ErrRecipeNotFound
	}
	cp := *recipe
	m.recipes[recipe.ID] = &cp
	return nil
}

func (m *memStore) DeleteRecipe(_ context.Context, id string) (*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	r, ok := m.recipes[id]
	if !ok {
		return nil, repository.ErrRecipeNotFound
	}
	delete(m.recipes, id)
	return r, nil
}

func (m *memStore) ToggleFavorite(_ context.Context, userID, recipeID string) (*model.Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.recipes[recipeID]; !ok {
		return nil, repository.ErrRecipeNotFound
	}
	if _, ok := m.users[userID]; !ok {
		return nil, repository.ErrUserNotFound
	}
	key := [2]string{userID, recipeID}
	fav, ok := m.favorites[key]
	if ok {
		fav.Saved = !fav.Saved
	} else {
		fav = &model.Favorite{UserID: userID, RecipeID: recipeID, Saved: true}
		m.favorites[key] = fav
	}
	cp := *fav
	return &cp, nil
}

func (m *memStore) ListSavedRecipes(_ context.Context, userID string) ([]*model.Recipe, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.sortedRecipes(func(r *model.Recipe) bool {
		fav, ok := m.favorites[[2]string{userID, r.ID}]
		return ok && fav.Saved
	}), nil
}

// ---- IngredientStore ----

func (m *memStore) CreateIngredient(_ context.Context, ing *model.Ingredient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	cp := *ing
	m.ingredients[ing.ID] = &cp
	return nil
}

func (m *memStore) DeleteIngredient(_ context.Context, id string) (*model.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	ing, ok := m.ingredients[id]
	if !ok {
		return nil, repository.ErrIngredientNotFound
	}
	delete(m.ingredients, id)
	return ing, nil
}

func (m *memStore) SearchIngredientsByName(_ context.Context, term string) ([]*model.Ingredient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	term = strings.ToLower(term)
	out := make([]*model.Ingredient, 0)
	for _, ing := range m.ingredients {
		if strings.Contains(strings.ToLower(ing.Name), term) {
			cp := *ing
			out = append(out, &cp)
		}
	}
	return out, nil
}

// memCache is an in-memory RecipeCache.
type memCache struct {
	mu      sync.Mutex
	recipes map[string]model.Recipe
	broken  bool
}

func newMemCache() *memCache {
	return &memCache{recipes: make(map[string]model.Recipe)}
}

var errCacheMiss = errors.New("miss")

func (c *memCache) GetRecipe(_ context.Context, id string) (*model.Recipe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return nil, errors.New("redis down")
	}
	r, ok := c.recipes[id]
	if !ok {
		return nil, errCacheMiss
	}
	return &r, nil
}

func (c *memCache) SetRecipe(_ context.Context, recipe *model.Recipe) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.broken {
		return errors.New("redis down")
	}
	c.recipes[recipe.ID] = *recipe
	return nil
}

func (c *memCache) DeleteRecipe(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.recipes, id)
	return nil
}

func (c *memCache) has(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.recipes[id]
	return ok
}

// stubTokens issues predictable tokens.
type stubTokens struct {
	err error
}

func (s stubTokens) Issue(userID string) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	return "token-" + userID, time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}
