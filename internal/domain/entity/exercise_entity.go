package entity

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryCardio      Category = "Cardio"
	CategoryStrength    Category = "Strength"
	CategoryFlexibility Category = "Flexibility"
	CategoryBalance     Category = "Balance"
	CategoryOther       Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCardio,
	CategoryStrength,
	CategoryFlexibility,
	CategoryBalance,
	CategoryOther,
}

// ParseCategory accepts a category name case-insensitively. Empty input maps to Other.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return CategoryOther, nil
	}
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// OrOther returns c, or Other when c is empty.
func (c Category) OrOther() Category {
	if c == "" {
		return CategoryOther
	}
	return c
}

// Exercise is a single logged workout. Username is the owner and the only
// authorization key; it is set from the caller's session, never from input.
type Exercise struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Day returns the calendar day of the exercise: its UTC date at midnight.
func (e Exercise) Day() time.Time {
	return CalendarDay(e.Date)
}

// CalendarDay truncates t to its UTC calendar date.
func CalendarDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseDate parses the date formats accepted by the API into a UTC instant.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
