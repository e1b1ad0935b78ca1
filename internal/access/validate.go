package access

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the `validate` struct tags of a create request.
// Failures wrap ErrInvalidArgument.
func Validate(req any) error {
	if err := validate.Struct(req); err != nil {
		return InvalidArgument("%s", err)
	}
	return nil
}
