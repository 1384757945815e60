package activity

import (
	"time"

	"physionomie/internal/domain/therapy"
)

// Activity is one logged treatment event. Name, DurationMin and Bonus are
// snapshots taken from the therapy catalog at logging time; they never change
// when the source therapy is later edited or deleted.
type Activity struct {
	ID          string  `json:"id"`
	TherapyID   string  `json:"therapyId"`
	Name        string  `json:"name"`
	DurationMin int     `json:"time"`
	Tier        string  `json:"kasse"`
	Bonus       float64 `json:"bonus"`
	LoggedAt    string  `json:"timestamp"` // local time of day, HH:MM
}

// Snapshot builds an Activity from a therapy and payer tier at the given
// moment. The id is assigned by the caller.
// PRE: tier is one of the three payer tiers present in th.Bonuses
// POST: Returns an activity carrying the therapy's current name, duration
// and tier price; the therapy itself is not referenced afterwards
func Snapshot(id string, th therapy.Therapy, tier string, now time.Time) (Activity, error) {
	bonus, err := th.Bonuses.Price(tier)
	if err != nil {
		return Activity{}, err
	}
	return Activity{
		ID:          id,
		TherapyID:   th.ID,
		Name:        th.Name,
		DurationMin: th.DurationMin,
		Tier:        tier,
		Bonus:       bonus,
		LoggedAt:    now.Format("15:04"),
	}, nil
}
