package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MKhiriev/go-api-dispatch/internal/app"
	"github.com/MKhiriev/go-api-dispatch/models"
)

type credentials struct {
	Login    string `json:"login" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type setRoleRequest struct {
	Login string `json:"login" validate:"required"`
	Role  string `json:"role" validate:"required,oneof=user admin"`
}

type disableRequest struct {
	Login    string `json:"login" validate:"required"`
	Disabled *bool  `json:"disabled" validate:"required"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json names instead of Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode copies payload (without the injected identity) into dst and
// validates it. A non-nil response is the envelope to answer with.
func (h *handlers) decode(payload models.Payload, dst any) *models.Response {
	fields := maps.Clone(payload)
	delete(fields, models.LoggedUserKey)

	raw, err := json.Marshal(fields)
	if err != nil {
		return models.NewBadRequest(fmt.Sprintf("payload is not serializable: %s", err))
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return models.NewBadRequest(fmt.Sprintf("malformed payload: %s", err))
	}

	if err := h.validate.Struct(dst); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return models.NewBadRequest(err.Error())
		}

		problems := make([]string, 0, len(validationErrors))
		for _, fe := range validationErrors {
			problems = append(problems, validationProblem(fe))
		}
		return models.NewBadRequest(app.MsgValidationFailed, map[string]any{"errors": problems})
	}

	return nil
}

func validationProblem(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s: must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
}
