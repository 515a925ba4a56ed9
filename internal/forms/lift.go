package forms

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

// Upper bounds for a single entry.
const (
	MaxWeight = 1000.0
	MaxReps   = 100
)

// Field names a log form input.
type Field string

const (
	FieldLiftType Field = "liftType"
	FieldWeight   Field = "weight"
	FieldReps     Field = "reps"
	FieldDate     Field = "date"
)

// Reason enumerates why an input was rejected.
type Reason int

const (
	ReasonEmpty Reason = iota
	ReasonNonNumeric
	ReasonOutOfRange
	ReasonInvalidChoice
	ReasonInvalidDate
)

func (r Reason) String() string {
	switch r {
	case ReasonEmpty:
		return "is required"
	case ReasonNonNumeric:
		return "must be a number"
	case ReasonOutOfRange:
		return "is out of range"
	case ReasonInvalidChoice:
		return "is not a supported lift"
	case ReasonInvalidDate:
		return "must be a date (YYYY-MM-DD)"
	default:
		return "is invalid"
	}
}

// ValidationError reports a rejected form field.
type ValidationError struct {
	Field  Field
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return shared.ErrInvalidInput
}

// Message returns a sentence suitable for the form status line.
func (e *ValidationError) Message() string {
	label := map[Field]string{
		FieldLiftType: "Lift type",
		FieldWeight:   "Weight",
		FieldReps:     "Reps",
		FieldDate:     "Date",
	}[e.Field]

	switch {
	case e.Field == FieldWeight && e.Reason == ReasonOutOfRange:
		return fmt.Sprintf("Weight must be greater than 0 and at most %g kg.", MaxWeight)
	case e.Field == FieldReps && e.Reason == ReasonOutOfRange:
		return fmt.Sprintf("Reps must be between 1 and %d.", MaxReps)
	case e.Field == FieldReps && e.Reason == ReasonNonNumeric:
		return "Reps must be a whole number."
	}
	return fmt.Sprintf("%s %s.", label, e.Reason)
}

// AsValidation extracts a [ValidationError] from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// LiftForm holds the raw, unparsed log form inputs.
type LiftForm struct {
	LiftType string
	Weight   string
	Reps     string
	Date     string
}

// ParseLift validates a [LiftForm] and converts it into a [models.Lift].
//
// Fields are checked in form order; the first rejection is returned.
func ParseLift(f LiftForm) (models.Lift, error) {
	var lift models.Lift

	lt := models.LiftType(strings.ToLower(strings.TrimSpace(f.LiftType)))
	if lt == "" {
		return lift, &ValidationError{Field: FieldLiftType, Reason: ReasonEmpty}
	}
	if !lt.Valid() {
		return lift, &ValidationError{Field: FieldLiftType, Reason: ReasonInvalidChoice}
	}

	weight, err := parseWeight(f.Weight)
	if err != nil {
		return lift, err
	}

	reps, err := parseReps(f.Reps)
	if err != nil {
		return lift, err
	}

	date := strings.TrimSpace(f.Date)
	if date == "" {
		return lift, &ValidationError{Field: FieldDate, Reason: ReasonEmpty}
	}
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return lift, &ValidationError{Field: FieldDate, Reason: ReasonInvalidDate}
	}

	return models.Lift{LiftType: lt, Weight: weight, Reps: reps, Date: date}, nil
}

func parseWeight(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: FieldWeight, Reason: ReasonEmpty}
	}
	w, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
		return 0, &ValidationError{Field: FieldWeight, Reason: ReasonNonNumeric}
	}
	if w <= 0 || w > MaxWeight {
		return 0, &ValidationError{Field: FieldWeight, Reason: ReasonOutOfRange}
	}
	return w, nil
}

func parseReps(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &ValidationError{Field: FieldReps, Reason: ReasonEmpty}
	}
	r, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: FieldReps, Reason: ReasonNonNumeric}
	}
	if r < 1 || r > MaxReps {
		return 0, &ValidationError{Field: FieldReps, Reason: ReasonOutOfRange}
	}
	return r, nil
}

// ValidateLift checks an already-decoded lift against the same rules as [ParseLift].
func ValidateLift(l models.Lift) error {
	_, err := ParseLift(LiftForm{
		LiftType: string(l.LiftType),
		Weight:   strconv.FormatFloat(l.Weight, 'f', -1, 64),
		Reps:     strconv.Itoa(l.Reps),
		Date:     l.Date,
	})
	return err
}
