package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"product-api/internal/model"
	"product-api/internal/validation"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	msgProductNotFound = "Product not found"
	msgInternalError   = "Internal server error"

	maxBodyBytes = 1 << 20
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes a {"detail": message} response with the given status code.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Detail: message}, logger)
}

// writeValidationError writes a 422 response listing the offending fields.
func writeValidationError(w http.ResponseWriter, errs validation.Errors, logger zerolog.Logger) {
	logger.Debug().Err(errs).Msg("request rejected by validation")
	writeJSON(w, http.StatusUnprocessableEntity, model.ErrorResponse{Detail: errs}, logger)
}

// decodeJSON reads a single JSON document from the request body into dst.
// Decoding failures are reported as validation.Errors.
func decodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))

	if err := decoder.Decode(dst); err != nil {
		var (
			typeErr   *json.UnmarshalTypeError
			syntaxErr *json.SyntaxError
		)
		switch {
		case errors.Is(err, io.EOF):
			return validation.NewError("body", "is required")
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return validation.NewError(typeErr.Field, fmt.Sprintf("must be of type %s", typeErr.Type))
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return validation.NewError("body", "must be valid JSON")
		default:
			// A field's own UnmarshalJSON failed and encoding/json does not say which.
			if fieldErr := invalidField(body, dst); fieldErr != nil {
				return fieldErr
			}
			return validation.NewError("body", "must be valid JSON")
		}
	}

	if decoder.More() {
		return validation.NewError("body", "must contain a single JSON object")
	}
	return nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// invalidField decodes each top-level member of body into its own field of
// dst and reports the first one that fails.
func invalidField(body []byte, dst any) validation.Errors {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return nil
	}

	t := reflect.TypeOf(dst)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		raw, ok := members[name]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, reflect.New(field.Type).Interface()); err != nil {
			ft := field.Type
			for ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft == decimalType {
				return validation.NewError(name, "must be a valid decimal number")
			}
			return validation.NewError(name, "is invalid")
		}
	}
	return nil
}

// parseID extracts the {id} path value as an integer. Ids that were never
// assigned, including zero and negatives, are left for the store to reject.
func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
