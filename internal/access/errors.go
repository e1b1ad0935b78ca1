package access

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrForbidden is signalled the same way as ErrUnauthorized:
	// errors.Is(ErrForbidden, ErrUnauthorized) is true.
	ErrForbidden = fmt.Errorf("%w: record owned by another user", ErrUnauthorized)
)

// NotFound wraps ErrNotFound with the entity name and id.
func NotFound(entity string, id int) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

// InvalidArgument wraps ErrInvalidArgument with a reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// HTTPStatus maps an error from a service call to the response status code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidArgument):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTPMessage is the text sent to the client for a given error.
// Internal errors are never exposed.
func HTTPMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

// WriteError logs a failed operation and writes the mapped status and message.
// Only internal errors are logged at error level, client errors are traced.
func WriteError(w http.ResponseWriter, operation string, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.Errorf("%s: %s", operation, err)
	} else {
		log.Tracef("%s: %s", operation, err)
	}
	http.Error(w, HTTPMessage(err), status)
}
