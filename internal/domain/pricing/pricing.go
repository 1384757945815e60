package pricing

import "errors"

// Payer tier constants. Every therapy price table carries exactly these three.
const (
	TierGKV      = "GKV" // public insurance baseline
	TierBeihilfe = "BH"  // subsidized employee rate
	TierPrivat   = "P"   // private rate
)

// Price multipliers relative to the GKV base price.
const (
	BeihilfeFactor = 1.4
	PrivatFactor   = 1.5
)

// ValidTiers contains all valid payer tier codes in display order.
var ValidTiers = []string{TierGKV, TierBeihilfe, TierPrivat}

// TierLabels maps tier codes to human-readable names.
var TierLabels = map[string]string{
	TierGKV:      "GKV",
	TierBeihilfe: "Beihilfe",
	TierPrivat:   "Privat",
}

var ErrUnknownTier = errors.New("unknown payer tier")

// BonusTable holds the per-tier price of a therapy. The three fields are the
// three payer tiers; there is no way to construct a table with other keys.
type BonusTable struct {
	GKV      float64 `json:"GKV"`
	Beihilfe float64 `json:"BH"`
	Privat   float64 `json:"P"`
}

// DeriveBonusTable computes the full price table from a GKV base price.
// PRE: none, negative inputs pass through unchanged
// POST: GKV = base, Beihilfe = base*1.4, Privat = base*1.5, unrounded
func DeriveBonusTable(basePrice float64) BonusTable {
	return BonusTable{
		GKV:      basePrice,
		Beihilfe: basePrice * BeihilfeFactor,
		Privat:   basePrice * PrivatFactor,
	}
}

// Price returns the table entry for the given tier code.
// INVARIANT: BonusTable fields are not mutated
func (t BonusTable) Price(tier string) (float64, error) {
	switch tier {
	case TierGKV:
		return t.GKV, nil
	case TierBeihilfe:
		return t.Beihilfe, nil
	case TierPrivat:
		return t.Privat, nil
	}
	return 0, ErrUnknownTier
}

// IsValidTier reports whether code is one of the three payer tiers.
func IsValidTier(code string) bool {
	for _, t := range ValidTiers {
		if t == code {
			return true
		}
	}
	return false
}
