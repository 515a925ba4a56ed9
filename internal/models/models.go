package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// LiftType enumerates the supported competition lifts.
type LiftType string

const (
	Squat    LiftType = "squat"
	Bench    LiftType = "bench"
	Deadlift LiftType = "deadlift"
)

// LiftTypes lists every [LiftType] in display order.
var LiftTypes = []LiftType{Squat, Bench, Deadlift}

// Valid reports whether t is a known lift.
func (t LiftType) Valid() bool {
	switch t {
	case Squat, Bench, Deadlift:
		return true
	}
	return false
}

// Label returns the display name of the lift.
func (t LiftType) Label() string {
	switch t {
	case Squat:
		return "Squat"
	case Bench:
		return "Bench Press"
	case Deadlift:
		return "Deadlift"
	default:
		return string(t)
	}
}

// LiftID is an identifier assigned by the backend.
//
// Backends differ on whether ids are numbers or strings, so both decode into the same textual form.
type LiftID string

func (id *LiftID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = LiftID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("lift id must be a string or number: %w", err)
	}
	*id = LiftID(n.String())
	return nil
}

// Lift is a single recorded exercise performance.
type Lift struct {
	ID       LiftID   `json:"id,omitempty"`
	LiftType LiftType `json:"liftType"`
	Weight   float64  `json:"weight"`
	Reps     int      `json:"reps"`
	Date     string   `json:"date"`
}

// Day parses the calendar date of the lift.
//
// Timestamps with a time component are truncated to their date part.
func (l Lift) Day() (time.Time, error) {
	date := l.Date
	if len(date) > len(DateLayout) {
		date = date[:len(DateLayout)]
	}
	return time.Parse(DateLayout, date)
}

// WeightString formats the weight without trailing zeros.
func (l Lift) WeightString() string {
	return strconv.FormatFloat(l.Weight, 'f', -1, 64)
}

// VideoSelection is a video file chosen for upload.
type VideoSelection struct {
	Path     string
	Name     string
	MIMEType string
	Size     int64
}

// Today returns the current calendar date in [DateLayout].
func Today(now time.Time) string {
	return now.Format(DateLayout)
}
