package timeutil

import (
	"fmt"
	"regexp"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

const DefaultTimezone = "UTC"

var (
	timeRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ToMinutes converts "HH:MM" to minutes since midnight. Input must be
// validated with IsValidTime first; invalid input yields -1.
func ToMinutes(hm string) int {
	if !timeRe.MatchString(hm) {
		return -1
	}
	h := int(hm[0]-'0')*10 + int(hm[1]-'0')
	m := int(hm[3]-'0')*10 + int(hm[4]-'0')
	return h*60 + m
}

// FromMinutes converts minutes since midnight back to "HH:MM".
// Exact inverse of ToMinutes on [0, 1439].
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func IsValidTime(hm string) bool {
	return timeRe.MatchString(hm)
}

func IsValidDate(d string) bool {
	if !dateRe.MatchString(d) {
		return false
	}
	parsed, err := time.Parse(DateLayout, d)
	if err != nil {
		return false
	}
	return parsed.Format(DateLayout) == d
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today returns the current calendar date in the clinic timezone.
func Today(tz string) string {
	return NowIn(tz).Format(DateLayout)
}

// CurrentTime returns the current wall-clock time "HH:MM" in the clinic timezone.
func CurrentTime(tz string) string {
	return NowIn(tz).Format(TimeLayout)
}

// AddDays shifts a "YYYY-MM-DD" date by n calendar days.
func AddDays(date string, n int) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// Weekday returns the weekday number (0=Sunday..6=Saturday) of a date.
func Weekday(date string) int {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return -1
	}
	return int(t.Weekday())
}

// ParseDate parses a "YYYY-MM-DD" date in the given timezone.
func ParseDate(date, tz string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, date, Location(tz))
}
