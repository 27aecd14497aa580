// Package stats derives dashboard figures from a user's exercise list.
//
// Every function is pure. The reference instant is passed explicitly; the
// calendar day of now in its own location is "today", and a record's calendar
// day is its UTC date.
package stats

import (
	"math"
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

const (
	// DefaultGoal is used when a non-positive weekly goal is supplied.
	DefaultGoal = entity.DefaultWeeklyGoal

	seriesDays = 7
	labelFmt   = "Jan 02"
	dayFmt     = "2006-01-02"
)

type Summary struct {
	TotalDuration       int `json:"totalDuration"`
	TotalExercises      int `json:"totalExercises"`
	AverageDuration     int `json:"avgDuration"`
	CurrentWeekDuration int `json:"currentWeekDuration"`
}

// DayPoint is one bucket of a per-day series.
type DayPoint struct {
	Date     time.Time `json:"date"`
	Label    string    `json:"label"`
	Duration int       `json:"duration"`
}

// Today returns the calendar day of now, keyed like entity.CalendarDay.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekBounds returns the Monday and Sunday of the week containing today.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	today := Today(now)
	offset := (int(today.Weekday()) + 6) % 7
	monday := today.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// Summarize computes totals, the rounded average and the current week's minutes.
func Summarize(exs []entity.Exercise, now time.Time) Summary {
	monday, sunday := WeekBounds(now)
	var s Summary
	for _, ex := range exs {
		s.TotalDuration += ex.Duration
		d := ex.Day()
		if !d.Before(monday) && !d.After(sunday) {
			s.CurrentWeekDuration += ex.Duration
		}
	}
	s.TotalExercises = len(exs)
	if s.TotalExercises > 0 {
		s.AverageDuration = roundHalfUp(float64(s.TotalDuration) / float64(s.TotalExercises))
	}
	return s
}

// GoalProgress returns the share of goal reached as a percentage capped at 100.
func GoalProgress(current, goal int) int {
	if goal <= 0 {
		goal = DefaultGoal
	}
	p := roundHalfUp(100 * float64(current) / float64(goal))
	if p > 100 {
		return 100
	}
	return p
}

// LastSevenDays buckets durations into today-6..today, oldest first.
// Records outside the range are ignored.
func LastSevenDays(exs []entity.Exercise, now time.Time) []DayPoint {
	today := Today(now)
	start := today.AddDate(0, 0, -(seriesDays - 1))
	out := make([]DayPoint, seriesDays)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i] = DayPoint{Date: d, Label: d.Format(labelFmt)}
	}
	for _, ex := range exs {
		d := ex.Day()
		if d.Before(start) || d.After(today) {
			continue
		}
		out[dayIndex(start, d)].Duration += ex.Duration
	}
	return out
}

// dayIndex counts whole days from start to d. Both are UTC midnights.
func dayIndex(start, d time.Time) int {
	return int(d.Sub(start).Hours() / 24)
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
