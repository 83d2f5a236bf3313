// FILE: internal/pkg/serverutils/validator.go
package serverutils

import (
	"strings"

	"featured-listing-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and folds failures into a single
// invalid-argument error the error handler can render.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.InvalidArgument("invalid request body")
	}

	var problems []string
	for _, fe := range validationErrors {
		switch fe.Tag() {
		case "required":
			problems = append(problems, fe.Field()+" is required")
		case "oneof":
			problems = append(problems, fe.Field()+" must be one of: "+fe.Param())
		case "gt":
			problems = append(problems, fe.Field()+" must be greater than "+fe.Param())
		default:
			problems = append(problems, fe.Field()+" is invalid")
		}
	}
	return apperror.InvalidArgument("%s", strings.Join(problems, "; "))
}
