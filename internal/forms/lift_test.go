package forms

import (
	"errors"
	"testing"

	"github.com/desertthunder/liftlog/internal/models"
	"github.com/desertthunder/liftlog/internal/shared"
)

func TestParseLift(t *testing.T) {
	valid := LiftForm{LiftType: "squat", Weight: "142.5", Reps: "5", Date: "2026-10-19"}

	t.Run("valid form", func(t *testing.T) {
		lift, err := ParseLift(valid)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := models.Lift{LiftType: models.Squat, Weight: 142.5, Reps: 5, Date: "2026-10-19"}
		if lift != want {
			t.Errorf("got %+v, want %+v", lift, want)
		}
	})

	t.Run("trims and lowercases", func(t *testing.T) {
		lift, err := ParseLift(LiftForm{LiftType: " Bench ", Weight: " 100 ", Reps: " 3 ", Date: " 2026-01-02 "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lift.LiftType != models.Bench || lift.Weight != 100 || lift.Reps != 3 || lift.Date != "2026-01-02" {
			t.Errorf("unexpected lift %+v", lift)
		}
	})

	tc := []struct {
		name   string
		mutate func(f *LiftForm)
		field  Field
		reason Reason
	}{
		{"empty lift type", func(f *LiftForm) { f.LiftType = "" }, FieldLiftType, ReasonEmpty},
		{"unknown lift type", func(f *LiftForm) { f.LiftType = "curl" }, FieldLiftType, ReasonInvalidChoice},
		{"empty weight", func(f *LiftForm) { f.Weight = "  " }, FieldWeight, ReasonEmpty},
		{"non-numeric weight", func(f *LiftForm) { f.Weight = "heavy" }, FieldWeight, ReasonNonNumeric},
		{"NaN weight", func(f *LiftForm) { f.Weight = "NaN" }, FieldWeight, ReasonNonNumeric},
		{"infinite weight", func(f *LiftForm) { f.Weight = "Inf" }, FieldWeight, ReasonNonNumeric},
		{"zero weight", func(f *LiftForm) { f.Weight = "0" }, FieldWeight, ReasonOutOfRange},
		{"negative weight", func(f *LiftForm) { f.Weight = "-20" }, FieldWeight, ReasonOutOfRange},
		{"absurd weight", func(f *LiftForm) { f.Weight = "1000.5" }, FieldWeight, ReasonOutOfRange},
		{"empty reps", func(f *LiftForm) { f.Reps = "" }, FieldReps, ReasonEmpty},
		{"fractional reps", func(f *LiftForm) { f.Reps = "2.5" }, FieldReps, ReasonNonNumeric},
		{"zero reps", func(f *LiftForm) { f.Reps = "0" }, FieldReps, ReasonOutOfRange},
		{"too many reps", func(f *LiftForm) { f.Reps = "101" }, FieldReps, ReasonOutOfRange},
		{"empty date", func(f *LiftForm) { f.Date = "" }, FieldDate, ReasonEmpty},
		{"bad date", func(f *LiftForm) { f.Date = "19/10/2026" }, FieldDate, ReasonInvalidDate},
		{"impossible date", func(f *LiftForm) { f.Date = "2026-02-30" }, FieldDate, ReasonInvalidDate},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)

			_, err := ParseLift(form)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput in chain, got %v", err)
			}

			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if ve.Field != tt.field || ve.Reason != tt.reason {
				t.Errorf("got %s/%v, want %s/%v", ve.Field, ve.Reason, tt.field, tt.reason)
			}
			if ve.Message() == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestValidationErrorMessage(t *testing.T) {
	tc := []struct {
		err  ValidationError
		want string
	}{
		{ValidationError{FieldWeight, ReasonEmpty}, "Weight is required."},
		{ValidationError{FieldWeight, ReasonOutOfRange}, "Weight must be greater than 0 and at most 1000 kg."},
		{ValidationError{FieldReps, ReasonOutOfRange}, "Reps must be between 1 and 100."},
		{ValidationError{FieldReps, ReasonNonNumeric}, "Reps must be a whole number."},
		{ValidationError{FieldLiftType, ReasonInvalidChoice}, "Lift type is not a supported lift."},
	}

	for _, tt := range tc {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.err.Message(); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateLift(t *testing.T) {
	tests := []struct {
		name   string
		lift   models.Lift
		field  Field
		reason Reason
		ok     bool
	}{
		{name: "valid", lift: models.Lift{LiftType: models.Squat, Weight: 140, Reps: 5, Date: "2025-03-01"}, ok: true},
		{name: "zero weight", lift: models.Lift{LiftType: models.Squat, Weight: 0, Reps: 5, Date: "2025-03-01"}, field: FieldWeight, reason: ReasonOutOfRange},
		{name: "zero reps", lift: models.Lift{LiftType: models.Bench, Weight: 80, Reps: 0, Date: "2025-03-01"}, field: FieldReps, reason: ReasonOutOfRange},
		{name: "unknown lift", lift: models.Lift{LiftType: "curl", Weight: 20, Reps: 10, Date: "2025-03-01"}, field: FieldLiftType, reason: ReasonInvalidChoice},
		{name: "missing date", lift: models.Lift{LiftType: models.Deadlift, Weight: 200, Reps: 1}, field: FieldDate, reason: ReasonEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLift(tt.lift)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := AsValidation(err)
			if !ok {
				t.Fatalf("expected validation error, got %v", err)
			}
			if ve.Field != tt.field || ve.Reason != tt.reason {
				t.Errorf("expected %s %s, got %s %s", tt.field, tt.reason, ve.Field, ve.Reason)
			}
		})
	}
}
