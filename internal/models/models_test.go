package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestLiftID(t *testing.T) {
	tc := []struct {
		name string
		body string
		want LiftID
	}{
		{name: "numeric id", body: `{"id": 42, "liftType": "squat"}`, want: "42"},
		{name: "string id", body: `{"id": "abc-123", "liftType": "squat"}`, want: "abc-123"},
		{name: "null id", body: `{"id": null, "liftType": "squat"}`, want: ""},
		{name: "missing id", body: `{"liftType": "squat"}`, want: ""},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			var lift Lift
			if err := json.Unmarshal([]byte(tt.body), &lift); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if lift.ID != tt.want {
				t.Errorf("ID = %q, want %q", lift.ID, tt.want)
			}
		})
	}

	t.Run("rejects objects", func(t *testing.T) {
		var lift Lift
		if err := json.Unmarshal([]byte(`{"id": {"x": 1}}`), &lift); err == nil {
			t.Error("expected error for object id")
		}
	})
}

func TestLift(t *testing.T) {
	t.Run("submission payload omits empty id", func(t *testing.T) {
		data, err := json.Marshal(Lift{LiftType: Bench, Weight: 102.5, Reps: 3, Date: "2026-10-19"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := `{"liftType":"bench","weight":102.5,"reps":3,"date":"2026-10-19"}`
		if string(data) != want {
			t.Errorf("got %s, want %s", data, want)
		}
	})

	t.Run("Day truncates timestamps", func(t *testing.T) {
		day, err := Lift{Date: "2026-10-19T08:30:00Z"}.Day()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if day.Format(DateLayout) != "2026-10-19" {
			t.Errorf("unexpected day %v", day)
		}
	})

	t.Run("WeightString", func(t *testing.T) {
		if got := (Lift{Weight: 140}).WeightString(); got != "140" {
			t.Errorf("got %s, want 140", got)
		}
		if got := (Lift{Weight: 142.5}).WeightString(); got != "142.5" {
			t.Errorf("got %s, want 142.5", got)
		}
	})
}

func TestLiftType(t *testing.T) {
	for _, lt := range LiftTypes {
		if !lt.Valid() {
			t.Errorf("expected %s to be valid", lt)
		}
	}
	if LiftType("curl").Valid() {
		t.Error("expected curl to be invalid")
	}
	if Bench.Label() != "Bench Press" {
		t.Errorf("unexpected label %s", Bench.Label())
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2026, time.October, 19, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "2026-10-19" {
		t.Errorf("Today() = %s", got)
	}
}
