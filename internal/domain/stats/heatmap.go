package stats

import (
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

// HeatmapDays is the number of days covered, ending today.
const HeatmapDays = 365

type HeatmapDay struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
	Level    int    `json:"level"`
}

// Heatmap holds the yearly grid. Weeks are columns of 7 rows starting on
// Sunday; nil entries pad the first column before the first day.
type Heatmap struct {
	Days  []HeatmapDay    `json:"days"`
	Weeks [][]*HeatmapDay `json:"weeks"`
}

// Level maps a day's minutes to an intensity bucket 0..4.
func Level(minutes int) int {
	switch {
	case minutes == 0:
		return 0
	case minutes < 30:
		return 1
	case minutes < 60:
		return 2
	case minutes < 90:
		return 3
	default:
		return 4
	}
}

// BuildHeatmap sums durations per day over the last HeatmapDays days.
func BuildHeatmap(exs []entity.Exercise, now time.Time) Heatmap {
	today := Today(now)
	start := today.AddDate(0, 0, -(HeatmapDays - 1))

	days := make([]HeatmapDay, HeatmapDays)
	for _, ex := range exs {
		d := ex.Day()
		if d.Before(start) || d.After(today) {
			continue
		}
		days[dayIndex(start, d)].Duration += ex.Duration
	}
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i).Format(dayFmt)
		days[i].Level = Level(days[i].Duration)
	}

	weeks := make([][]*HeatmapDay, 0, HeatmapDays/7+2)
	week := make([]*HeatmapDay, int(start.Weekday()), 7)
	for i := range days {
		week = append(week, &days[i])
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]*HeatmapDay, 0, 7)
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}
	return Heatmap{Days: days, Weeks: weeks}
}
