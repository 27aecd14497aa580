package handlers

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/oksasatya/go-exercise-tracker/internal/domain/entity"
	"github.com/oksasatya/go-exercise-tracker/pkg/validation"
)

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
	Email    string `json:"email" binding:"omitempty,email"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type exerciseRequest struct {
	Description string     `json:"description" binding:"required"`
	Duration    *Minutes   `json:"duration" binding:"required"`
	Date        *DateInput `json:"date" binding:"required"`
	// checked case-insensitively by entity.ParseCategory
	Category    string     `json:"category"`
}

type goalRequest struct {
	WeeklyGoal *GoalMinutes `json:"weeklyGoal" binding:"required"`
}

// Minutes accepts a JSON number or a numeric string. Fractions are rounded.
type Minutes int

func (m *Minutes) UnmarshalJSON(b []byte) error {
	n, err := parseNumber(b, "duration")
	if err == nil {
		*m = Minutes(n)
	}
	return err
}

// GoalMinutes is Minutes reported against the weeklyGoal field.
type GoalMinutes int

func (m *GoalMinutes) UnmarshalJSON(b []byte) error {
	n, err := parseNumber(b, "weeklyGoal")
	if err == nil {
		*m = GoalMinutes(n)
	}
	return err
}

func parseNumber(b []byte, field string) (int, error) {
	raw := string(bytes.TrimSpace(b))
	if unq, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unq)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
		return 0, &validation.FieldError{Field: field, Message: "must be a number"}
	}
	return int(math.Round(f)), nil
}

// DateInput accepts YYYY-MM-DD or an RFC3339 timestamp.
type DateInput struct {
	time.Time
}

func (d *DateInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return &validation.FieldError{Field: "date", Message: "must be a date string"}
	}
	t, err := entity.ParseDate(s)
	if err != nil {
		return &validation.FieldError{Field: "date", Message: "must be YYYY-MM-DD or RFC3339"}
	}
	d.Time = t
	return nil
}
