package validation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	// report JSON argument names instead of Go field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidationError represents validation error detail.
type ValidationError struct {
	Code    string                 `json:"code,omitempty" example:"ERR_REQUIRED"`
	Field   string                 `json:"field,omitempty" example:"symbol"`
	Message string                 `json:"message,omitempty" example:"symbol is required"`
	Params  map[string]interface{} `json:"params,omitempty"`
}

// Errors is the list of problems found in one request. It is returned as an
// error so callers can tell rejected input apart from upstream failures.
type Errors []ValidationError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return "invalid arguments: " + strings.Join(msgs, "; ")
}

// Bind decodes loosely typed arguments into req, a pointer to a struct.
// `default:` tags apply only to keys absent from args; an explicit empty
// string or null is validated like any other value. Keys are matched to json
// tag names exactly and anything else is dropped. It has no side effects
// beyond writing req.
func Bind(ctx context.Context, args map[string]any, req interface{}) error {
	if err := defaults.Set(req); err != nil {
		return toErrors(err)
	}

	known, errs := knownArguments(args, req)
	if len(errs) > 0 {
		return errs
	}

	raw, err := json.Marshal(known)
	if err != nil {
		return Errors{{Code: "ERR_UNKNOWN", Message: err.Error()}}
	}
	if err := json.Unmarshal(raw, req); err != nil {
		return toErrors(err)
	}
	if err := validate.StructCtx(ctx, req); err != nil {
		return toErrors(err)
	}
	return nil
}

// knownArguments keeps the args whose keys are json tag names of req and
// rejects the ones set to null, which decoding would otherwise ignore.
func knownArguments(args map[string]any, req interface{}) (map[string]any, Errors) {
	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	known := make(map[string]any, len(args))
	var errs Errors
	for i := 0; i < t.NumField(); i++ {
		fld := t.Field(i)
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		v, ok := args[name]
		if !ok {
			continue
		}
		if v == nil {
			errs = append(errs, ValidationError{
				Code:    "ERR_TYPE",
				Field:   name,
				Message: fmt.Sprintf("%s must be a %s", name, jsonKind(fld.Type)),
				Params:  map[string]interface{}{"got": "null"},
			})
			continue
		}
		known[name] = v
	}
	return known, errs
}

func toErrors(err error) Errors {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		errs := make(Errors, 0, len(validationErrors))
		for _, e := range validationErrors {
			errs = append(errs, ValidationError{
				Code:    "ERR_" + strings.ToUpper(e.Tag()),
				Field:   e.Field(),
				Message: getErrorMessage(e),
				Params:  getErrorParams(e),
			})
		}
		return errs
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return Errors{{
			Code:    "ERR_TYPE",
			Field:   typeErr.Field,
			Message: fmt.Sprintf("%s must be a %s", typeErr.Field, jsonKind(typeErr.Type)),
			Params:  map[string]interface{}{"got": typeErr.Value},
		}}
	}

	return Errors{{
		Code:    "ERR_UNKNOWN",
		Message: err.Error(),
	}}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return t.Kind().String()
	}
}

func getErrorMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

func getErrorParams(fe validator.FieldError) map[string]interface{} {
	params := make(map[string]interface{})

	switch fe.Tag() {
	case "min", "gte":
		params["min"] = fe.Param()
	case "max", "lte":
		params["max"] = fe.Param()
	case "oneof":
		params["options"] = strings.Split(fe.Param(), " ")
	}

	return params
}
