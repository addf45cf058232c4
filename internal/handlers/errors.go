package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// ErrorResponse is the body of every failed request
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: Invalid input.
	Error string `json:"error"`

	// Messages per invalid field
	Fields map[string][]string `json:"fields,omitempty"`
}

const (
	msgInvalidInput   = "Invalid input."
	msgInternalError  = "Internal server error"
	msgNotNull        = "This field may not be null."
	msgInvalidInteger = "A valid integer is required."
)

var validate = newValidator()

// newValidator reports struct fields under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateRequest runs the validate tags of req and converts failures into a
// services.ValidationError.
func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	v := &services.ValidationError{}
	for _, fe := range fieldErrs {
		v.Add(fe.Field(), validationMessage(fe))
	}
	return v
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "gte":
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	default:
		return "Invalid value."
	}
}

// decodeJSON decodes the request body into dst. Fields listed in notNull may
// be omitted but not sent as null.
func decodeJSON(r *http.Request, dst any, notNull ...string) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}

	if len(notNull) > 0 {
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(body, &raw); err == nil {
			v := &services.ValidationError{}
			for _, field := range notNull {
				if val, ok := raw[field]; ok && string(val) == "null" {
					v.Add(field, msgNotNull)
				}
			}
			if err := v.Err(); err != nil {
				return err
			}
		}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return services.NewValidationError(typeErr.Field, "Incorrect type. Got "+typeErr.Value+".")
		case errors.Is(err, models.ErrPriceInvalid):
			return services.NewValidationError("price", models.ErrPriceInvalid.Error())
		default:
			return services.NewValidationError("non_field_errors", "JSON parse error - "+err.Error())
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// writeError maps service errors onto HTTP responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msgInvalidInput, Fields: ve.Fields})
	case errors.Is(err, services.ErrInvalidCredentials):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:  msgInvalidInput,
			Fields: map[string][]string{"non_field_errors": {err.Error()}},
		})
	case errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	default:
		logger.Log.Errorw("internal server error",
			"request_id", middlewares.RequestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"err", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: msgInternalError})
	}
}

// ownerID returns the authenticated user id or writes a 401.
func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middlewares.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, r, services.ErrUnauthenticated)
	}
	return id, ok
}
