package meals

import "time"

const entityName = "meal"

type Meal struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Calories  float64   `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	Type     string  `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carbs    float64 `json:"carbs" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// DailySummary holds the nutrition totals of one calendar date.
type DailySummary struct {
	Date      string  `json:"date"`
	MealCount int     `json:"mealCount"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
}
