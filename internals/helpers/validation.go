package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// Validate menjalankan validasi struct tag (validator.v10).
func Validate(s any) error {
	return validate.Struct(s)
}

// JsonValidationErrorFrom memetakan error validator.v10 → envelope 422 per-field.
// Error non-validator dianggap payload rusak (400).
func JsonValidationErrorFrom(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return JsonError(c, fiber.StatusBadRequest, "invalid payload")
	}
	fieldErrors := make(map[string][]string, len(ve))
	for _, fe := range ve {
		fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
	}
	return JsonValidationError(c, fieldErrors)
}
