package service

import (
	"context"
	"errors"
	"strings"

	"github.com/recetario/recetario/internal/metrics"
	"github.com/recetario/recetario/internal/model"
	"github.com/recetario/recetario/internal/repository"
)

// PantryService maintains each user's alacena.
type PantryService struct {
	store   PantryStore
	metrics metrics.Recorder
}

// NewPantryService creates a new PantryService.
func NewPantryService(store PantryStore, recorder metrics.Recorder) *PantryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PantryService{store: store, metrics: recorder}
}

// AddResult is the pantry after an addition.
type AddResult struct {
	Pantry *model.Pantry
	// Created is true when the ingredient was not in the pantry before.
	Created bool
}

// AddIngredient adds quantity to the named ingredient, creating the entry
// and the pantry as needed. Repeated additions of the same name accumulate
// into one entry, including under concurrent calls.
func (s *PantryService) AddIngredient(ctx context.Context, userID, name string, quantity float64) (*AddResult, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}
	name, err := pantryName(name)
	if err != nil {
		return nil, err
	}
	if err := validateQuantity("quantity", quantity); err != nil {
		return nil, err
	}

	pantry, created, err := s.store.UpsertPantryItem(ctx, userID, name, quantity)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr("add pantry item", err)
	}

	s.metrics.IncPantryItemAdded()

	return &AddResult{Pantry: pantry, Created: created}, nil
}

// RemoveIngredient removes the named ingredient. Removing a name that is not
// in the pantry succeeds; a user without a pantry gets ErrPantryNotFound.
func (s *PantryService) RemoveIngredient(ctx context.Context, userID, name string) error {
	if err := validateID("user_id", userID); err != nil {
		return err
	}
	name, err := pantryName(name)
	if err != nil {
		return err
	}

	if err := s.store.RemovePantryItem(ctx, userID, name); err != nil {
		if errors.Is(err, repository.ErrPantryNotFound) {
			return ErrPantryNotFound
		}
		return storageErr("remove pantry item", err)
	}

	s.metrics.IncPantryItemRemoved()
	return nil
}

// GetPantry returns the user's pantry entries in insertion order.
func (s *PantryService) GetPantry(ctx context.Context, userID string) (*model.Pantry, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	pantry, err := s.store.GetPantryByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPantryNotFound) {
			return nil, ErrPantryNotFound
		}
		return nil, storageErr("get pantry", err)
	}
	return pantry, nil
}

// DeletePantry removes the user's whole pantry and returns what it held.
func (s *PantryService) DeletePantry(ctx context.Context, userID string) (*model.Pantry, error) {
	if err := validateID("user_id", userID); err != nil {
		return nil, err
	}

	pantry, err := s.store.DeletePantryByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrPantryNotFound) {
			return nil, ErrPantryNotFound
		}
		return nil, storageErr("delete pantry", err)
	}
	return pantry, nil
}

// pantryName trims surrounding space; the remaining name matches exactly.
func pantryName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("ingredient_name", "is required")
	}
	if len(name) > 200 {
		return "", invalid("ingredient_name", "is too long")
	}
	return name, nil
}
