package dashboard

import (
	"fmt"
	"math"
	"time"

	"github.com/2beens/fittrack/internal/meals"
	"github.com/2beens/fittrack/internal/workouts"
	"github.com/2beens/fittrack/pkg"
)

const (
	windowDays = 7

	caloriesPerSetBase      = 15.0
	caloriesPerWeightFactor = 0.3
	caloriesWeightCap       = 20.0
	caloriesPerRep          = 0.5
	// credit for a workout marked done without any exercise marked done
	caloriesFlatWorkout = 150.0
)

type Metrics struct {
	Date                   string `json:"date"`
	TodayCompletedWorkouts int    `json:"todayCompletedWorkouts"`
	WeeklyActiveDays       int    `json:"weeklyActiveDays"`
	WeeklyProgress         string `json:"weeklyProgress"`
	WeeklyGoal             int    `json:"weeklyGoal"`
	WeeklyGoalMet          bool   `json:"weeklyGoalMet"`
	WeeklyCaloriesBurned   int    `json:"weeklyCaloriesBurned"`
	Streak                 int    `json:"streak"`
}

// Compute derives the dashboard metrics from the full workout and meal history of one user.
// Dates are compared as YYYY-MM-DD strings; today carries the user's local calendar date.
func Compute(today time.Time, allWorkouts []workouts.Workout, allMeals []meals.Meal, weeklyGoal int) Metrics {
	todayStr := today.Format(pkg.DateLayout)

	window := make(map[string]bool, windowDays)
	for offset := 0; offset < windowDays; offset++ {
		window[daysBefore(today, offset)] = true
	}

	activityDates := map[string]bool{}
	weekActive := map[string]bool{}
	todayCompleted := 0
	caloriesBurned := 0.0

	for i := range allWorkouts {
		w := &allWorkouts[i]
		if !w.Completed {
			continue
		}
		activityDates[w.Date] = true
		if w.Date == todayStr {
			todayCompleted++
		}
		if window[w.Date] {
			weekActive[w.Date] = true
			caloriesBurned += WorkoutCalories(w)
		}
	}

	for _, m := range allMeals {
		activityDates[m.Date] = true
		if window[m.Date] {
			weekActive[m.Date] = true
		}
	}

	return Metrics{
		Date:                   todayStr,
		TodayCompletedWorkouts: todayCompleted,
		WeeklyActiveDays:       len(weekActive),
		WeeklyProgress:         fmt.Sprintf("%d/%d", len(weekActive), windowDays),
		WeeklyGoal:             weeklyGoal,
		WeeklyGoalMet:          len(weekActive) >= weeklyGoal,
		WeeklyCaloriesBurned:   int(math.Round(caloriesBurned)),
		Streak:                 streak(today, activityDates),
	}
}

// WorkoutCalories estimates the calories burned by the completed exercises of a workout.
func WorkoutCalories(w *workouts.Workout) float64 {
	total := 0.0
	completedExercises := 0
	for _, e := range w.Exercises {
		if !e.Completed {
			continue
		}
		completedExercises++
		total += ExerciseCalories(e)
	}
	if completedExercises == 0 {
		return caloriesFlatWorkout
	}
	return total
}

func ExerciseCalories(e workouts.Exercise) float64 {
	perSet := caloriesPerSetBase +
		math.Min(e.Weight*caloriesPerWeightFactor, caloriesWeightCap) +
		float64(e.Reps)*caloriesPerRep
	return perSet * float64(e.Sets)
}

// streak counts consecutive active days going back from today; no activity today means 0.
func streak(today time.Time, activityDates map[string]bool) int {
	count := 0
	for count <= len(activityDates) && activityDates[daysBefore(today, count)] {
		count++
	}
	return count
}

func daysBefore(day time.Time, days int) string {
	return day.AddDate(0, 0, -days).Format(pkg.DateLayout)
}
