package rating

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// User-input failures. The shell recovers from these with a re-prompt.
var (
	ErrInvalidName      = errors.New("wine name cannot be empty")
	ErrInvalidScore     = errors.New("score must be a number from 0 to 10 with at most one decimal")
	ErrInvalidSelection = errors.New("selection must be a number")
	ErrIndexOutOfRange  = errors.New("no rating at that position")
)

// Rating is a single judgment of a wine. CreatedAt is set once at
// creation and never changes.
type Rating struct {
	ID        string    `json:"id"`
	Wine      string    `json:"wine_name"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Collection is the full ordered set of ratings, insertion order
// preserved. It is the program's entire durable state.
type Collection []Rating

// Allow 0–10 with optional one decimal: e.g. 7, 7.5, 10, 10.0
var scoreRe = regexp.MustCompile(`^(10(\.0)?|\d(\.\d)?)$`)

// ParseName trims the raw input and rejects empty names.
func ParseName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrInvalidName
	}
	return name, nil
}

// ParseScore parses user text into a score. Out-of-range values and
// values with more than one decimal are rejected, never clamped or
// rounded.
func ParseScore(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if !scoreRe.MatchString(raw) {
		return 0, fmt.Errorf("%w (got %q)", ErrInvalidScore, raw)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w (got %q)", ErrInvalidScore, raw)
	}
	return value, nil
}

// Validate re-checks the record invariants. The service already
// validated the inputs, so a failure here means a caller bypassed it.
func (r Rating) Validate() error {
	if strings.TrimSpace(r.Wine) == "" {
		return ErrInvalidName
	}
	if r.Score < 0 || r.Score > 10 {
		return fmt.Errorf("%w (got %g)", ErrInvalidScore, r.Score)
	}
	// One-decimal precision: 7.55 is invalid even though it is in range.
	tenths := r.Score * 10
	if math.Abs(tenths-math.Round(tenths)) > 1e-9 {
		return fmt.Errorf("%w (got %g)", ErrInvalidScore, r.Score)
	}
	return nil
}

// ValidationError marks a record that failed the store's own invariant
// check. It should never surface in practice: the service validates
// everything before it reaches the store.
type ValidationError struct {
	Cause error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid rating reached the store: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
