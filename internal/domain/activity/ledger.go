package activity

// Ledger partitions all logged activities by calendar date (ISO YYYY-MM-DD)
// and therapist id. List order is insertion order. A date/therapist pair has
// no entry until the first activity is logged against it.
//
// Ledger values are logically immutable: Log and Remove return a new value
// sharing unmodified branches with the receiver, and callers replace the
// stored ledger wholesale. Historical entries are never mutated in place.
type Ledger map[string]map[string][]Activity

// Log appends an activity at the given date/therapist pair, creating
// intermediate maps as needed.
// PRE: date is an ISO date string, therapistID is non-empty
// POST: Returns a new ledger; the receiver is unchanged
func (l Ledger) Log(date, therapistID string, a Activity) Ledger {
	next := l.clone()
	byTherapist, ok := next[date]
	if !ok {
		byTherapist = make(map[string][]Activity)
		next[date] = byTherapist
	}
	list := byTherapist[therapistID]
	updated := make([]Activity, 0, len(list)+1)
	updated = append(updated, list...)
	updated = append(updated, a)
	byTherapist[therapistID] = updated
	return next
}

// Remove deletes the activity with the given id at the date/therapist pair.
// A missing date, therapist or id is a no-op, not an error. An emptied list
// is dropped from the ledger entirely.
// POST: Returns a new ledger; the receiver is unchanged
func (l Ledger) Remove(date, therapistID, activityID string) Ledger {
	byTherapist, ok := l[date]
	if !ok {
		return l
	}
	list, ok := byTherapist[therapistID]
	if !ok {
		return l
	}

	kept := make([]Activity, 0, len(list))
	for _, a := range list {
		if a.ID != activityID {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(list) {
		return l
	}

	next := l.clone()
	if len(kept) == 0 {
		delete(next[date], therapistID)
		if len(next[date]) == 0 {
			delete(next, date)
		}
		return next
	}
	next[date][therapistID] = kept
	return next
}

// For returns the activities logged at the given date/therapist pair, in
// insertion order. Absent pairs yield nil.
// INVARIANT: the ledger is not mutated
func (l Ledger) For(date, therapistID string) []Activity {
	byTherapist, ok := l[date]
	if !ok {
		return nil
	}
	return byTherapist[therapistID]
}

// AllFor flattens every date's activity list for the given therapist across
// the whole ledger. Order across dates is unspecified; aggregations over the
// result are order-independent.
// INVARIANT: the ledger is not mutated
func (l Ledger) AllFor(therapistID string) []Activity {
	var all []Activity
	for _, byTherapist := range l {
		all = append(all, byTherapist[therapistID]...)
	}
	return all
}

// All flattens every activity in the ledger regardless of therapist.
// INVARIANT: the ledger is not mutated
func (l Ledger) All() []Activity {
	var all []Activity
	for _, byTherapist := range l {
		for _, list := range byTherapist {
			all = append(all, list...)
		}
	}
	return all
}

// clone copies the two map levels. Activity slices are copied on write by
// Log/Remove, so sharing them here is safe.
func (l Ledger) clone() Ledger {
	next := make(Ledger, len(l)+1)
	for date, byTherapist := range l {
		inner := make(map[string][]Activity, len(byTherapist))
		for id, list := range byTherapist {
			inner[id] = list
		}
		next[date] = inner
	}
	return next
}
