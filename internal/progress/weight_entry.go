package progress

import "time"

const entityName = "weight_entry"

type WeightEntry struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Weight    float64   `json:"weight"`
	Date      string    `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Weight float64 `json:"weight" validate:"gt=0"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Notes  *string `json:"notes,omitempty"`
}

type Summary struct {
	CurrentWeight  float64 `json:"currentWeight"`
	StartingWeight float64 `json:"startingWeight"`
	Change         float64 `json:"change"`
	Entries        int     `json:"entries"`
}

// Summarize expects entries ordered most recently created first, as List returns them.
// Current is the newest entry, starting the oldest one.
func Summarize(entries []WeightEntry) Summary {
	if len(entries) == 0 {
		return Summary{}
	}
	current := entries[0].Weight
	starting := entries[len(entries)-1].Weight
	return Summary{
		CurrentWeight:  current,
		StartingWeight: starting,
		Change:         current - starting,
		Entries:        len(entries),
	}
}
