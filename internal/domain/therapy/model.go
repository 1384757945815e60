package therapy

import (
	"errors"
	"strings"

	"physionomie/internal/domain/pricing"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 120
)

// Category constants
const (
	CategoryMain      = "main"
	CategorySecondary = "secondary"
)

// Domain errors
var (
	ErrEmptyName         = errors.New("therapy name cannot be empty")
	ErrInvalidDuration   = errors.New("therapy duration must be a positive number of minutes")
	ErrInvalidCategory   = errors.New("category must be 'main' or 'secondary'")
	ErrNegativeBasePrice = errors.New("base price cannot be negative")
)

// Therapy is a priced treatment type offered by the practice.
// Bonuses is always derived from a single GKV base price via the pricing
// package and never edited field by field.
type Therapy struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	DurationMin int                `json:"time"`
	Category    string             `json:"category"`
	Bonuses     pricing.BonusTable `json:"bonuses"`
}

// Validate checks if the Therapy has valid data.
// PRE: Therapy struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Therapy) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("therapy name cannot exceed 120 characters")
	}
	if t.DurationMin <= 0 {
		return ErrInvalidDuration
	}
	if t.Category != CategoryMain && t.Category != CategorySecondary {
		return ErrInvalidCategory
	}
	return nil
}

// IsMain returns true for main-category therapies.
// INVARIANT: Therapy fields are not mutated
func (t *Therapy) IsMain() bool {
	return t.Category == CategoryMain
}
