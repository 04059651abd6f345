package recommender

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestBuildInteractionMatrixEmpty(t *testing.T) {
	_, err := buildInteractionMatrix(nil)
	if !errors.Is(err, ErrEmptyInteractionSet) {
		t.Fatalf("buildInteractionMatrix(nil) error = %v, want ErrEmptyInteractionSet", err)
	}
}

func TestBuildInteractionMatrixAggregatesByMax(t *testing.T) {
	m, err := buildInteractionMatrix([]ratedInteraction{
		{UserID: 1, ActivityID: 100, Rating: 2},
		{UserID: 1, ActivityID: 100, Rating: 5},
		{UserID: 1, ActivityID: 100, Rating: 3},
	})
	if err != nil {
		t.Fatalf("buildInteractionMatrix() error = %v", err)
	}

	if got := m.Rating(0, 0); got != 5 {
		t.Errorf("aggregated rating = %v, want 5", got)
	}
}

func TestBuildInteractionMatrixCoercesNonFinite(t *testing.T) {
	m, err := buildInteractionMatrix([]ratedInteraction{
		{UserID: 1, ActivityID: 100, Rating: math.NaN()},
		{UserID: 1, ActivityID: 101, Rating: math.Inf(1)},
		{UserID: 1, ActivityID: 102, Rating: -3},
	})
	if err != nil {
		t.Fatalf("buildInteractionMatrix() error = %v", err)
	}

	for col := 0; col < m.NumActivities(); col++ {
		if got := m.Rating(0, col); got != 0 {
			t.Errorf("column %d rating = %v, want 0", col, got)
		}
	}
}

func TestBuildInteractionMatrixIndexAssignment(t *testing.T) {
	rows := []ratedInteraction{
		{UserID: 7, ActivityID: 300, Rating: 1},
		{UserID: 2, ActivityID: 100, Rating: 2},
		{UserID: 7, ActivityID: 200, Rating: 3},
	}

	m, err := buildInteractionMatrix(rows)
	if err != nil {
		t.Fatalf("buildInteractionMatrix() error = %v", err)
	}

	if !reflect.DeepEqual(m.Users, []uint{2, 7}) {
		t.Errorf("Users = %v, want ascending [2 7]", m.Users)
	}
	if !reflect.DeepEqual(m.Activities, []uint64{100, 200, 300}) {
		t.Errorf("Activities = %v, want ascending [100 200 300]", m.Activities)
	}

	// Presentation order of the input must not matter.
	reversed, err := buildInteractionMatrix([]ratedInteraction{rows[2], rows[1], rows[0]})
	if err != nil {
		t.Fatalf("buildInteractionMatrix() error = %v", err)
	}
	if !reflect.DeepEqual(m.Users, reversed.Users) || !reflect.DeepEqual(m.Activities, reversed.Activities) {
		t.Error("index assignment depends on input order")
	}

	idx, ok := m.UserIndexOf(7)
	if !ok || idx != 1 {
		t.Errorf("UserIndexOf(7) = %d,%v, want 1,true", idx, ok)
	}
	if _, ok := m.UserIndexOf(99); ok {
		t.Error("UserIndexOf(99) reported a hit for an absent user")
	}

	id, ok := m.ActivityIDOf(2)
	if !ok || id != 300 {
		t.Errorf("ActivityIDOf(2) = %d,%v, want 300,true", id, ok)
	}
	if _, ok := m.ActivityIDOf(5); ok {
		t.Error("ActivityIDOf(5) reported a hit out of range")
	}
}
