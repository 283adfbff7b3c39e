// internal/server/validate.go
package server

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"calee/internal/models"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names in errors.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterValidation("food_category", func(fl validator.FieldLevel) bool {
		return models.ValidCategory(models.FoodCategory(fl.Field().String()))
	})

	return v
}
