package recommender

import (
	"errors"
	"math"
	"sort"
)

// ErrEmptyInteractionSet signals that the store holds no interactions at
// all. Callers treat it as "no collaborative signal available", not as a
// hard failure.
var ErrEmptyInteractionSet = errors.New("no interactions available")

// InteractionMatrix is the sparse user x activity rating matrix a model is
// trained on, together with the index maps needed to translate model
// output back into identities. Activity indexes are assigned fresh on
// every build by enumerating the distinct activity ids in ascending order;
// they carry no identity across retrains beyond the Activities mapping.
type InteractionMatrix struct {
	// Users holds the distinct user ids in row order.
	Users []uint `json:"users"`
	// Activities maps activity index (position) to activity id.
	Activities []uint64 `json:"activities"`
	// Rows is parallel to Users; each row maps activity index to the
	// aggregated rating. Missing cells are 0.
	Rows []map[int]float64 `json:"rows"`

	userIndex     map[uint]int
	activityIndex map[uint64]int
}

// buildInteractionMatrix aggregates duplicate (user, activity) pairs by
// maximum rating and coerces any non-finite value to 0 so the trainer
// never sees NaN cells.
func buildInteractionMatrix(interactions []ratedInteraction) (*InteractionMatrix, error) {
	if len(interactions) == 0 {
		return nil, ErrEmptyInteractionSet
	}

	userSet := make(map[uint]struct{})
	activitySet := make(map[uint64]struct{})
	for _, in := range interactions {
		userSet[in.UserID] = struct{}{}
		activitySet[in.ActivityID] = struct{}{}
	}

	m := &InteractionMatrix{
		Users:      make([]uint, 0, len(userSet)),
		Activities: make([]uint64, 0, len(activitySet)),
	}
	for id := range userSet {
		m.Users = append(m.Users, id)
	}
	for id := range activitySet {
		m.Activities = append(m.Activities, id)
	}
	sort.Slice(m.Users, func(i, j int) bool { return m.Users[i] < m.Users[j] })
	sort.Slice(m.Activities, func(i, j int) bool { return m.Activities[i] < m.Activities[j] })
	m.reindex()

	m.Rows = make([]map[int]float64, len(m.Users))
	for i := range m.Rows {
		m.Rows[i] = make(map[int]float64)
	}

	for _, in := range interactions {
		row := m.Rows[m.userIndex[in.UserID]]
		col := m.activityIndex[in.ActivityID]

		rating := in.Rating
		if math.IsNaN(rating) || math.IsInf(rating, 0) {
			rating = 0
		}
		if rating < 0 {
			rating = 0
		}

		if rating > row[col] {
			row[col] = rating
		} else if _, ok := row[col]; !ok {
			row[col] = rating
		}
	}

	return m, nil
}

func (m *InteractionMatrix) reindex() {
	m.userIndex = make(map[uint]int, len(m.Users))
	for i, id := range m.Users {
		m.userIndex[id] = i
	}
	m.activityIndex = make(map[uint64]int, len(m.Activities))
	for i, id := range m.Activities {
		m.activityIndex[id] = i
	}
}

// UserIndexOf returns the row index for a user id.
func (m *InteractionMatrix) UserIndexOf(userID uint) (int, bool) {
	if m.userIndex == nil {
		m.reindex()
	}
	idx, ok := m.userIndex[userID]
	return idx, ok
}

// ActivityIDOf translates an activity index back into an activity id.
func (m *InteractionMatrix) ActivityIDOf(idx int) (uint64, bool) {
	if idx < 0 || idx >= len(m.Activities) {
		return 0, false
	}
	return m.Activities[idx], true
}

func (m *InteractionMatrix) NumUsers() int      { return len(m.Users) }
func (m *InteractionMatrix) NumActivities() int { return len(m.Activities) }

// Rating returns the cell value for (row, col), 0 when unset.
func (m *InteractionMatrix) Rating(row, col int) float64 {
	if row < 0 || row >= len(m.Rows) {
		return 0
	}
	return m.Rows[row][col]
}
