package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidQuantity is returned when a quantity is neither a JSON number
// nor a string holding one.
var ErrInvalidQuantity = errors.New("quantity must be a number")

// Quantity accepts either a JSON number (2, 1.5) or a numeric string ("2").
type Quantity float64

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return ErrInvalidQuantity
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return ErrInvalidQuantity
		}
		*q = Quantity(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return ErrInvalidQuantity
	}
	*q = Quantity(f)
	return nil
}

// AddPantryItemRequest represents the body for adding to a pantry.
type AddPantryItemRequest struct {
	UserID         string   `json:"user_id"`
	IngredientName string   `json:"ingredient_name"`
	Quantity       Quantity `json:"quantity"`
}

// RemovePantryItemRequest represents the body for removing from a pantry.
type RemovePantryItemRequest struct {
	UserID         string `json:"user_id"`
	IngredientName string `json:"ingredient_name"`
}
