package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/kvboard/shared/api"
	internal_errors "github.com/itchan-dev/kvboard/shared/errors"
	"github.com/itchan-dev/kvboard/shared/logger"
)

var validate = newValidator()

// newValidator reports field errors by their json names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, api.ErrorResponse{Error: message})
}

// WriteErrorAndStatusCode maps service errors to a JSON error body.
// Anything unrecognized is a 500 without details.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	var withCode *internal_errors.ErrorWithStatusCode
	var validationErr *internal_errors.ValidationError
	var storeErr *internal_errors.StoreError

	switch {
	case errors.As(err, &withCode):
		WriteError(w, withCode.StatusCode, withCode.Message)
	case errors.As(err, &validationErr):
		WriteError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, internal_errors.NotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &storeErr):
		logger.Log.Error("store failure", "op", storeErr.Op, "error", storeErr.Err)
		WriteJSON(w, http.StatusInternalServerError, api.ErrorResponse{
			Error:   "internal server error",
			Details: storeErr.Reason(),
		})
	default:
		logger.Log.Error("unhandled error", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}

func DecodeValidate(r io.ReadCloser, body any) error {
	if err := Decode(r, body); err != nil {
		return err
	}
	if err := validate.Struct(body); err != nil {
		logger.Log.Debug("request validation failed", "error", err)
		return &internal_errors.ValidationError{Message: "Required fields missing: " + missingFields(err)}
	}
	return nil
}

func Decode(r io.ReadCloser, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Debug("request body is not json", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return nil
}

// missingFields lists failed fields by their json names, falling back to the raw error.
func missingFields(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	names := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		names = append(names, fe.Field())
	}
	return strings.Join(names, ", ")
}
