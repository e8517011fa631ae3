// Package httpjson holds the request/response plumbing shared by the JSON
// API handlers: body decoding with validation, response encoding, and the
// single place where application errors become HTTP responses.
package httpjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chroniclehq/chronicle/internal/app/system/apperr"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func init() {
	// Report field names from json tags so validation messages match the
	// names clients actually sent.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Decode reads the request body into dst and validates it. Malformed JSON
// and failed validation both come back as validation errors with per-field
// messages.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return apperr.ValidationField("body", "invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fieldMessage(fe)
			}
			return apperr.Validation(fields)
		}
		return apperr.Internal(err)
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing %s", fe.Field())
	case "email":
		return fmt.Sprintf("invalid email for %s", fe.Field())
	case "oneof":
		return fmt.Sprintf("invalid value for %s", fe.Field())
	case "max":
		return fmt.Sprintf("%s too long", fe.Field())
	default:
		return fmt.Sprintf("invalid %s", fe.Field())
	}
}

// Write encodes v as the JSON response body with the given status.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// OK writes a 200 response with a standard message envelope.
func OK(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, map[string]string{"message": message})
}

// errorBody is the wire shape of a failed request.
type errorBody struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Error writes err as a JSON error response. Internal errors are logged
// with their cause and returned as an opaque message; everything else is
// passed through to the client.
func Error(w http.ResponseWriter, log *zap.Logger, err error) {
	ae := apperr.From(err)
	status := apperr.Status(ae)

	body := errorBody{Message: ae.Msg, Fields: ae.Fields}
	if ae.Kind == apperr.KindInternal {
		if log != nil {
			log.Error("request failed", zap.Error(err))
		}
		body.Message = "internal error"
		body.Fields = nil
	}
	Write(w, status, body)
}
