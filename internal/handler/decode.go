package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// decodeJSON reads a single JSON value into dst and writes the error
// response itself when decoding fails. It returns false in that case.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err == nil {
		return true
	}

	var maxErr *http.MaxBytesError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &maxErr):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	case errors.Is(err, openapi_types.ErrValidationEmail):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "email must be a valid email address")
	case errors.As(err, &typeErr):
		badRequest(w, "field "+typeErr.Field+" has the wrong type")
	default:
		badRequest(w, "malformed JSON body: "+err.Error())
	}
	return false
}
