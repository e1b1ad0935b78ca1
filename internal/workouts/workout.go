package workouts

import (
	"time"
)

const entityName = "workout"

type Exercise struct {
	ID        string  `json:"id"`
	Name      string  `json:"name" validate:"required"`
	Sets      int     `json:"sets" validate:"gte=1"`
	Reps      int     `json:"reps" validate:"gte=1"`
	Weight    float64 `json:"weight" validate:"gte=0"`
	Completed bool    `json:"completed"`
}

type Workout struct {
	ID        int        `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	Date      string     `json:"date"`
	Exercises []Exercise `json:"exercises"`
	Completed bool       `json:"completed"`
	CreatedAt time.Time  `json:"createdAt"`
}

// AllExercisesCompleted is false for a workout without exercises.
func (w *Workout) AllExercisesCompleted() bool {
	if len(w.Exercises) == 0 {
		return false
	}
	for _, e := range w.Exercises {
		if !e.Completed {
			return false
		}
	}
	return true
}

type CreateRequest struct {
	Name      string     `json:"name" validate:"required"`
	Date      string     `json:"date" validate:"required,datetime=2006-01-02"`
	Exercises []Exercise `json:"exercises" validate:"dive"`
	Completed bool       `json:"completed"`
}

// Patch holds the updatable fields of a workout; nil fields are left untouched.
type Patch struct {
	Exercises *[]Exercise `json:"exercises,omitempty"`
	Completed *bool       `json:"completed,omitempty"`
}

func (p Patch) IsEmpty() bool {
	return p.Exercises == nil && p.Completed == nil
}
