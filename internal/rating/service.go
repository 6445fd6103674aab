package rating

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service validates user input and orchestrates the store. It is the
// only thing the shell talks to. It holds no state between calls:
// every operation is a full load → mutate → save cycle against the
// persisted snapshot.
type Service struct {
	store *Store
	now   func() time.Time
}

// NewService creates a service over the given store.
func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// AddRating validates the raw name and score, builds a rating stamped
// with the current time and persists it. Returns the created rating.
func (s *Service) AddRating(rawName, rawScore string) (Rating, error) {
	name, err := ParseName(rawName)
	if err != nil {
		return Rating{}, err
	}
	score, err := ParseScore(rawScore)
	if err != nil {
		return Rating{}, err
	}

	collection, err := s.store.Load()
	if err != nil {
		return Rating{}, err
	}
	r := Rating{
		ID:        uuid.New().String(),
		Wine:      name,
		Score:     score,
		CreatedAt: s.now(),
	}
	if _, err := s.store.Append(collection, r); err != nil {
		return Rating{}, err
	}
	return r, nil
}

// ListRatings returns all ratings in stored order. Display numbers
// 1..N assigned by the caller correspond to this order.
func (s *Service) ListRatings() ([]Rating, error) {
	collection, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return s.store.List(collection), nil
}

// DeleteRating removes the rating at the 1-based display index and
// returns it so the caller can confirm what was deleted. The index is
// checked against the live collection, not a stale listing.
func (s *Service) DeleteRating(index int) (Rating, error) {
	collection, err := s.store.Load()
	if err != nil {
		return Rating{}, err
	}
	_, removed, err := s.store.RemoveAt(collection, index)
	if err != nil {
		return Rating{}, err
	}
	return removed, nil
}

// Selection is the parsed outcome of a delete prompt. Cancelled means
// the user declined; it is a no-op, not a failure, and callers must
// treat it differently from an error.
type Selection struct {
	Index     int
	Cancelled bool
}

// ParseSelection interprets the raw delete-prompt input. Empty input
// cancels; anything non-numeric fails with ErrInvalidSelection. Range
// checking happens later, in DeleteRating, against the live
// collection.
func ParseSelection(raw string) (Selection, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selection{Cancelled: true}, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return Selection{}, fmt.Errorf("%w (got %q)", ErrInvalidSelection, raw)
	}
	return Selection{Index: n}, nil
}
