package entity

import (
	"time"
)

// DefaultWeeklyGoal is the weekly target in minutes assigned to new users.
const DefaultWeeklyGoal = 150

// User is the aggregate root for the account domain.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID         string    `json:"id"`
	Username   string    `json:"username"`
	Password   string    `json:"-"`
	Email      string    `json:"email,omitempty"`
	WeeklyGoal int       `json:"weeklyGoal"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Goal returns the weekly goal, falling back to the default when unset.
func (u *User) Goal() int {
	if u == nil || u.WeeklyGoal <= 0 {
		return DefaultWeeklyGoal
	}
	return u.WeeklyGoal
}
