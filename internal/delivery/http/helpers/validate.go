package helpers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"invento/internal/domain"
)

// maxBodyBytes caps request bodies; every payload of this API is a small JSON object.
const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go ones.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator is implemented by request DTOs with rules that struct tags cannot express.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// DecodeAndValidate decodes the request body into dest (with DisallowUnknownFields), checks
// its `validate` struct tags and, if dest implements Validator, runs Validate(). On failure
// it writes a 400 ValidationError and returns false; otherwise returns true.
// Callers should return immediately when DecodeAndValidate returns false.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	return decodeAndValidate(w, r, dest, true)
}

// DecodeAndValidateLenient is DecodeAndValidate for public form posts: fields dest does
// not declare are ignored instead of rejected.
func DecodeAndValidateLenient(w http.ResponseWriter, r *http.Request, dest any) bool {
	return decodeAndValidate(w, r, dest, false)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any, strict bool) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(dest); err != nil {
		WriteJSONError(w, http.StatusBadRequest, domain.ErrValidation.Name, decodeMessage(err))
		return false
	}
	if errs := Validate(dest); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, domain.ErrValidation.Name, strings.Join(errs, "; "))
		return false
	}
	return true
}

// Validate runs the struct tag rules and the Validator hook on v.
func Validate(v any) []string {
	var msgs []string
	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []string{err.Error()}
		}
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
	}
	if vv, ok := v.(Validator); ok {
		msgs = append(msgs, vv.Validate()...)
	}
	return msgs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_with":
		return fe.Field() + " is required"
	case "email":
		return "invalid email format"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "min", "max", "len":
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}

func decodeMessage(err error) string {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		maxErr    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &syntaxErr):
		return fmt.Sprintf("malformed JSON at offset %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		return fmt.Sprintf("%s has the wrong type", typeErr.Field)
	case errors.As(err, &maxErr):
		return "request body too large"
	case errors.Is(err, io.EOF):
		return "request body is empty"
	case errors.Is(err, io.ErrUnexpectedEOF):
		return "malformed JSON: unexpected end of input"
	}
	return err.Error()
}
