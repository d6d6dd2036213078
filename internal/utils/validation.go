package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// alphaSpaceRegex accepts letters (including accented Spanish letters) and
// spaces. Used for person names and specialties.
var alphaSpaceRegex = regexp.MustCompile(`^[A-Za-zÁÉÍÓÚáéíóúÑñÜü\s]+$`)

// RegisterValidators installs the custom rules on gin's binding validator.
// Must be called once before the router starts serving.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
			return alphaSpaceRegex.MatchString(strings.TrimSpace(fl.Field().String()))
		})
	}
}

// FormatValidationError formats validation errors into one aggregated,
// human-readable string with one message per failing field.
func FormatValidationError(err error) string {
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, fieldMessage(e))
	}
	return strings.Join(messages, "; ")
}

func fieldMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field())
	case "alphaspace":
		return fmt.Sprintf("%s may only contain letters and spaces", e.Field())
	case "numeric":
		return fmt.Sprintf("%s may only contain numbers", e.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", e.Field(), e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", e.Field(), e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field(), e.Param())
	default:
		return fmt.Sprintf("%s is invalid", e.Field())
	}
}

// BindAndValidate binds the request body to a struct and validates it.
// If binding or validation fails, it sends a BadRequest response with the
// aggregated messages and returns false.
func BindAndValidate(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		if _, ok := err.(validator.ValidationErrors); ok {
			BadRequest(c, FormatValidationError(err))
		} else {
			BadRequest(c, "Invalid request payload: "+err.Error())
		}
		return false
	}
	return true
}
