package stats

import (
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

type Dashboard struct {
	Summary       Summary        `json:"summary"`
	WeeklyGoal    int            `json:"weeklyGoal"`
	GoalProgress  int            `json:"goalProgress"`
	LastSevenDays []DayPoint     `json:"lastSevenDays"`
	PersonalBests []PersonalBest `json:"personalBests"`
	Heatmap       Heatmap        `json:"heatmap"`
	Achievements  []Achievement  `json:"achievements"`
}

// BuildDashboard computes every dashboard figure from one exercise list.
func BuildDashboard(exs []entity.Exercise, goal int, now time.Time) Dashboard {
	if goal <= 0 {
		goal = DefaultGoal
	}
	s := Summarize(exs, now)
	return Dashboard{
		Summary:       s,
		WeeklyGoal:    goal,
		GoalProgress:  GoalProgress(s.CurrentWeekDuration, goal),
		LastSevenDays: LastSevenDays(exs, now),
		PersonalBests: PersonalBests(exs),
		Heatmap:       BuildHeatmap(exs, now),
		Achievements:  Achievements(exs),
	}
}
