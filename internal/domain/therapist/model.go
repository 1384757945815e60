package therapist

import (
	"errors"
	"strings"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254
)

// DefaultPassword is assigned to newly created therapists until changed.
const DefaultPassword = "therapeut123"

// Domain errors
var (
	ErrEmptyName          = errors.New("therapist name cannot be empty")
	ErrInvalidEmail       = errors.New("therapist email must contain '@'")
	ErrInvalidBonusTarget = errors.New("bonus target must be positive")
)

// Therapist is a practice employee who logs treatment activities.
// RevenuePercent is display-only: it appears on dashboards but is never
// applied in any bonus computation.
type Therapist struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	BonusTarget    float64 `json:"bonusTarget"`
	RevenuePercent int     `json:"revenuePercent"`
}

// Validate checks if the Therapist has valid data.
// PRE: Therapist struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (t *Therapist) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if len(t.Name) > MaxNameLength {
		return errors.New("therapist name cannot exceed 100 characters")
	}
	if len(t.Email) > MaxEmailLength {
		return errors.New("therapist email cannot exceed 254 characters")
	}
	if !strings.Contains(t.Email, "@") {
		return ErrInvalidEmail
	}
	if t.BonusTarget <= 0 {
		return ErrInvalidBonusTarget
	}
	return nil
}
