package pkg

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// IntPathVar reads a numeric route variable, e.g. {id} in /workouts/{id}.
func IntPathVar(r *http.Request, name string) (int, error) {
	value, ok := mux.Vars(r)[name]
	if !ok || value == "" {
		return 0, fmt.Errorf("%s empty", name)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s NaN: %s", name, value)
	}
	return id, nil
}
