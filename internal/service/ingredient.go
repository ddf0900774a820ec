package service

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// IngredientService manages the shared ingredient catalog.
type IngredientService struct {
	store IngredientStore
	now   func() time.Time
}

// NewIngredientService creates a new IngredientService.
func NewIngredientService(store IngredientStore) *IngredientService {
	return &IngredientService{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// IngredientInput defines input for a catalog ingredient.
type IngredientInput struct {
	Name     string
	Category string
	Image    string
}

// CreateIngredient adds an ingredient to the catalog.
func (s *IngredientService) CreateIngredient(ctx context.Context, input IngredientInput) (*model.Ingredient, error) {
	name, err := requireText("name", input.Name)
	if err != nil {
		return nil, err
	}
	category, err := requireText("category", input.Category)
	if err != nil {
		return nil, err
	}
	image, err := validateImageURL("image", input.Image, false)
	if err != nil {
		return nil, err
	}

	ing := &model.Ingredient{
		ID:        ulid.Make().String(),
		Name:      name,
		Category:  category,
		Image:     image,
		CreatedAt: s.now(),
	}

	if err := s.store.CreateIngredient(ctx, ing); err != nil {
		return nil, storageErr("create ingredient", err)
	}
	return ing, nil
}

// DeleteIngredient removes an ingredient from the catalog and returns it.
func (s *IngredientService) DeleteIngredient(ctx context.Context, id string) (*model.Ingredient, error) {
	if err := validateID("id", id); err != nil {
		return nil, err
	}

	ing, err := s.store.DeleteIngredient(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrIngredientNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, storageErr("delete ingredient", err)
	}
	return ing, nil
}

// SearchIngredients finds catalog ingredients whose name contains term, ignoring case.
func (s *IngredientService) SearchIngredients(ctx context.Context, term string) ([]*model.Ingredient, error) {
	term, err := requireText("name", term)
	if err != nil {
		return nil, err
	}

	ingredients, err := s.store.SearchIngredientsByName(ctx, term)
	if err != nil {
		return nil, storageErr("search ingredients", err)
	}
	return ingredients, nil
}
