package http

import (
	"errors"

	"StockMCP/pkg/validation"

	"github.com/labstack/echo/v4"
)

var binder = &echo.DefaultBinder{}

// ReadArguments decodes a JSON object body into loosely typed tool
// arguments. An empty body means no arguments.
func ReadArguments(c echo.Context) (map[string]any, error) {
	args := map[string]any{}
	if err := binder.BindBody(c, &args); err != nil {
		return nil, BadRequestError("request body must be a JSON object").WithError(err)
	}
	return args, nil
}

// ValidationErrors returns the field problems carried by err, if any.
func ValidationErrors(err error) ([]validation.ValidationError, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
