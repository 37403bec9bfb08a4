package dto

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules on gin's validator
// and reports field errors by their JSON names. Safe to call repeatedly.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("priority", validatePriority)
		_ = v.RegisterValidation("role", validateRole)
		_ = v.RegisterValidation("datauri_or_url", validateImage)
		_ = v.RegisterValidation("bcrypt_len", validateBcryptLength)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// validatePriority accepts low, medium, high, or empty to clear it.
func validatePriority(fl validator.FieldLevel) bool {
	switch models.Priority(fl.Field().String()) {
	case "", models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	default:
		return false
	}
}

func validateRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseUserRole(fl.Field().String())
	return ok
}

// bcrypt only hashes the first 72 bytes and rejects anything longer.
const maxPasswordBytes = 72

func validateBcryptLength(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= maxPasswordBytes
}

// validateImage accepts a base64 or percent-encoded data URI, an http(s)
// URL, or empty to clear the image.
func validateImage(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" || utils.IsHTTPURL(s) {
		return true
	}
	_, err := utils.DecodeDataURI(s)
	return err == nil
}

// ValidationDetails maps each failing field to the rule it broke. It
// returns nil when err is not a validation error.
func ValidationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
