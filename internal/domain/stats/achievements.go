package stats

import "github.com/oksasatya/go-exercise-tracker/internal/domain/entity"

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

type rule struct {
	id, title, desc string
	check           func(count, total, longest int) bool
}

// rules are listed in the order badges are shown; workout-count badges
// ascend by threshold.
var rules = []rule{
	{"rookie", "Rookie", "Logged your first workout!", func(c, _, _ int) bool { return c >= 1 }},
	{"consistency", "Consistency", "Logged 5 workouts.", func(c, _, _ int) bool { return c >= 5 }},
	{"dedication", "Dedication", "Logged 10 workouts.", func(c, _, _ int) bool { return c >= 10 }},
	{"centurion", "Centurion", "Reached 100 total minutes.", func(_, t, _ int) bool { return t >= 100 }},
	{"endurance", "Endurance", "Completed a 60+ min session.", func(_, _, l int) bool { return l >= 60 }},
}

// Achievements evaluates every badge against exs. Nothing is persisted.
func Achievements(exs []entity.Exercise) []Achievement {
	total := 0
	longest := 0
	hasAny := false
	for _, ex := range exs {
		total += ex.Duration
		if !hasAny || ex.Duration > longest {
			longest = ex.Duration
			hasAny = true
		}
	}
	out := make([]Achievement, len(rules))
	for i, r := range rules {
		out[i] = Achievement{
			ID:          r.id,
			Title:       r.title,
			Description: r.desc,
			Unlocked:    r.check(len(exs), total, longest),
		}
	}
	return out
}

// NewlyUnlocked returns the achievements unlocked in after but not in before.
func NewlyUnlocked(before, after []Achievement) []Achievement {
	had := make(map[string]bool, len(before))
	for _, a := range before {
		if a.Unlocked {
			had[a.ID] = true
		}
	}
	var out []Achievement
	for _, a := range after {
		if a.Unlocked && !had[a.ID] {
			out = append(out, a)
		}
	}
	return out
}
