package handlertools

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gatefig/gatefig/internal"
	"github.com/gatefig/gatefig/pkg/models"
)

var log = internal.GetLogger()

var Validate = validator.New()

// NotBlank fails strings that are empty or whitespace only.
func NotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func RegisterValidations(validations map[string]func(fl validator.FieldLevel) bool) error {
	for name, validationFunc := range validations {
		if err := Validate.RegisterValidation(name, validationFunc); err != nil {
			log.Errorf("Error registering validation %s: %s", name, err)
		}
	}

	return nil
}

// BoolFromQuery extracts a query string value and converts it to a bool
func BoolFromQuery(r *http.Request, param string) (bool, error) {
	p := r.URL.Query().Get(param)
	if p != "" {
		return strconv.ParseBool(p)
	}
	return false, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(&data)
}

// DecodeAndValidateJSON decodes the request body and runs struct
// validation on the result.
func DecodeAndValidateJSON(r *http.Request, v any) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return Validate.Struct(v)
}

// RenderError renders an error response.
func RenderError(w http.ResponseWriter, err error, status int) {
	if status != http.StatusNotFound {
		// Don't log not found errors
		log.Error(err)
	}

	if errors.Is(err, models.ErrBadRequest) {
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encodeErr := EncodeJSON(w, models.ErrorResponse{Message: err.Error()}); encodeErr != nil {
		log.Errorf("failed to encode error response: %s", encodeErr)
	}
}
