package stats

import "github.com/oksasatya/go-exercise-tracker/internal/domain/entity"

type PersonalBest struct {
	Category entity.Category `json:"category"`
	Exercise entity.Exercise `json:"exercise"`
}

// PersonalBests returns the longest exercise per category, in order of first
// appearance. A later record replaces the best only when strictly longer.
func PersonalBests(exs []entity.Exercise) []PersonalBest {
	idx := make(map[entity.Category]int)
	out := make([]PersonalBest, 0)
	for _, ex := range exs {
		cat := ex.Category.OrOther()
		i, ok := idx[cat]
		if !ok {
			idx[cat] = len(out)
			out = append(out, PersonalBest{Category: cat, Exercise: ex})
			continue
		}
		if ex.Duration > out[i].Exercise.Duration {
			out[i].Exercise = ex
		}
	}
	return out
}
