package goals

import (
	"time"

	"github.com/2beens/fittrack/internal/access"
)

const (
	DefaultWeeklyActivityGoal = 5
	MinWeeklyActivityGoal     = 1
	MaxWeeklyActivityGoal     = 7
)

// UserGoals is the single goals record of one owner.
type UserGoals struct {
	ID                 int       `json:"id"`
	UserID             string    `json:"userId"`
	WeeklyActivityGoal int       `json:"weeklyActivityGoal"`
	CalorieGoal        *float64  `json:"calorieGoal,omitempty"`
	WeightGoal         *float64  `json:"weightGoal,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Patch holds the goal fields to set; nil fields keep their stored value.
type Patch struct {
	WeeklyActivityGoal *int     `json:"weeklyActivityGoal,omitempty"`
	CalorieGoal        *float64 `json:"calorieGoal,omitempty"`
	WeightGoal         *float64 `json:"weightGoal,omitempty"`
}

func (p Patch) validate() error {
	if p.WeeklyActivityGoal != nil {
		return validateWeeklyGoal(*p.WeeklyActivityGoal)
	}
	return nil
}

func validateWeeklyGoal(goal int) error {
	if goal < MinWeeklyActivityGoal || goal > MaxWeeklyActivityGoal {
		return access.InvalidArgument(
			"weekly activity goal must be between %d and %d days, got %d",
			MinWeeklyActivityGoal, MaxWeeklyActivityGoal, goal,
		)
	}
	return nil
}

// WeeklyGoalOrDefault is the goal the dashboard measures against.
func WeeklyGoalOrDefault(g *UserGoals) int {
	if g == nil {
		return DefaultWeeklyActivityGoal
	}
	return g.WeeklyActivityGoal
}
