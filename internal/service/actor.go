package service

import (
	"strconv"
	"time"
)

// Actor is the authenticated operator behind a mutation
type Actor struct {
	UserID   uint
	Username string
	Name     string
}

// Ref is the value written to created_by / updated_by / deleted_by
func (a Actor) Ref() string {
	if a.UserID == 0 {
		return "system"
	}
	return strconv.FormatUint(uint64(a.UserID), 10)
}

var SystemActor = Actor{Username: "system", Name: "System"}

// LoadLocation falls back to UTC+7 when tzdata is not available
func LoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("WIB", 7*60*60)
	}
	return loc
}

var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseTimestamp accepts RFC3339, datetime-local and date-only input in loc
func parseTimestamp(value string, loc *time.Location) (time.Time, bool, error) {
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, false, nil
		}
	}
	t, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, false, ErrInvalidDate
	}
	return t, true, nil
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
