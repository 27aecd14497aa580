package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
)

// CategoryAll disables the category filter.
const CategoryAll = "All"

// chartLimit caps the chart length when no date window is applied.
const chartLimit = 14

type Window string

const (
	WindowAll Window = "all"
	Window7d  Window = "7d"
	Window30d Window = "30d"
)

type SortOrder string

const (
	SortDateDesc     SortOrder = "date_desc"
	SortDateAsc      SortOrder = "date_asc"
	SortDurationDesc SortOrder = "duration_desc"
	SortDurationAsc  SortOrder = "duration_asc"
)

type ViewOptions struct {
	Category string
	Window   Window
	Sort     SortOrder
}

// ParseViewOptions validates raw query values. Empty values take the defaults:
// All categories, all time, newest first.
func ParseViewOptions(category, window, order string) (ViewOptions, error) {
	opts := ViewOptions{Category: CategoryAll, Window: WindowAll, Sort: SortDateDesc}

	if c := strings.TrimSpace(category); c != "" && !strings.EqualFold(c, CategoryAll) {
		cat, err := entity.ParseCategory(c)
		if err != nil {
			return opts, err
		}
		opts.Category = string(cat)
	}

	switch w := Window(strings.ToLower(strings.TrimSpace(window))); w {
	case "":
	case WindowAll, Window7d, Window30d:
		opts.Window = w
	default:
		return opts, fmt.Errorf("unknown window %q", window)
	}

	switch s := SortOrder(strings.ToLower(strings.TrimSpace(order))); s {
	case "":
	case SortDateDesc, SortDateAsc, SortDurationDesc, SortDurationAsc:
		opts.Sort = s
	default:
		return opts, fmt.Errorf("unknown sort %q", order)
	}
	return opts, nil
}

func (w Window) days() int {
	switch w {
	case Window7d:
		return 7
	case Window30d:
		return 30
	default:
		return 0
	}
}

type ChartPoint struct {
	Date     string `json:"date"`
	Duration int    `json:"duration"`
}

type View struct {
	Exercises     []entity.Exercise `json:"exercises"`
	Count         int               `json:"count"`
	TotalDuration int               `json:"totalDuration"`
	Chart         []ChartPoint      `json:"chart"`
}

// Filter keeps the exercises matching the category and window of opts.
// The input slice is not modified.
func Filter(exs []entity.Exercise, opts ViewOptions, now time.Time) []entity.Exercise {
	var cutoff time.Time
	n := opts.Window.days()
	if n > 0 {
		cutoff = Today(now).AddDate(0, 0, -n)
	}
	out := make([]entity.Exercise, 0, len(exs))
	for _, ex := range exs {
		if opts.Category != "" && opts.Category != CategoryAll && string(ex.Category.OrOther()) != opts.Category {
			continue
		}
		if n > 0 && !ex.Day().After(cutoff) {
			continue
		}
		out = append(out, ex)
	}
	return out
}

// Sort orders exs in place. Equal keys keep their relative order.
func Sort(exs []entity.Exercise, order SortOrder) {
	var less func(a, b entity.Exercise) bool
	switch order {
	case SortDateAsc:
		less = func(a, b entity.Exercise) bool { return a.Date.Before(b.Date) }
	case SortDurationDesc:
		less = func(a, b entity.Exercise) bool { return a.Duration > b.Duration }
	case SortDurationAsc:
		less = func(a, b entity.Exercise) bool { return a.Duration < b.Duration }
	default:
		less = func(a, b entity.Exercise) bool { return a.Date.After(b.Date) }
	}
	sort.SliceStable(exs, func(i, j int) bool { return less(exs[i], exs[j]) })
}

// Chart sums durations per calendar day, oldest first.
func Chart(exs []entity.Exercise) []ChartPoint {
	sums := make(map[time.Time]int)
	for _, ex := range exs {
		sums[ex.Day()] += ex.Duration
	}
	keys := make([]time.Time, 0, len(sums))
	for d := range sums {
		keys = append(keys, d)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]ChartPoint, len(keys))
	for i, d := range keys {
		out[i] = ChartPoint{Date: d.Format(dayFmt), Duration: sums[d]}
	}
	return out
}

// BuildView filters and sorts exs and attaches totals and a per-day chart.
func BuildView(exs []entity.Exercise, opts ViewOptions, now time.Time) View {
	filtered := Filter(exs, opts, now)
	Sort(filtered, opts.Sort)

	v := View{Exercises: filtered, Count: len(filtered)}
	for _, ex := range filtered {
		v.TotalDuration += ex.Duration
	}
	v.Chart = Chart(filtered)
	if opts.Window == WindowAll && len(v.Chart) > chartLimit {
		v.Chart = v.Chart[len(v.Chart)-chartLimit:]
	}
	return v
}
