package lending

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/mrlokans/library-manager/internal/entities"
)

// ErrInvalidDate is returned for dates not in YYYY-MM-DD form.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

// Policy holds the late-return fee.
type Policy struct {
	FinePerDay float64
}

// DefaultFinePerDay is charged for each whole day past the effective due date.
const DefaultFinePerDay = 5.0

func DefaultPolicy() Policy {
	return Policy{FinePerDay: DefaultFinePerDay}
}

// Fine is FinePerDay for every whole calendar day returned is after due.
// Returning on or before the due date costs nothing.
func (p Policy) Fine(due, returned time.Time) float64 {
	days := DaysBetween(due, returned)
	if days <= 0 {
		return 0
	}
	return float64(days) * p.FinePerDay
}

// FineFor computes the fine for returning loan on the given day.
func (p Policy) FineFor(loan entities.Loan, returned time.Time) float64 {
	return p.Fine(loan.EffectiveDueDate(), returned)
}

// DaysBetween counts calendar days from one date to another, ignoring time of day.
func DaysBetween(from, to time.Time) int {
	diff := entities.TruncateToDay(to).Sub(entities.TruncateToDay(from))
	return int(math.Round(diff.Hours() / 24))
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse(entities.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, value)
	}
	return datatypes.Date(t), nil
}

// ParseOptionalDate is ParseDate where an empty value means no date.
func ParseOptionalDate(value string) (*datatypes.Date, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	d, err := ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
