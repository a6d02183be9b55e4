package yahoo

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
)

var (
	ErrRateLimited = errors.New("too many requests to the market data provider, try again shortly")
	ErrNoCrumb     = errors.New("could not establish a market data session")
)

// APIError is a failure reported by the provider itself.
type APIError struct {
	Status      int
	Code        string
	Description string
}

func (e *APIError) Error() string {
	switch {
	case e.Description != "":
		return e.Description
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("HTTP %d %s", e.Status, http.StatusText(e.Status))
	}
}

// NotFoundError is returned when a lookup succeeded but named nothing.
type NotFoundError struct {
	Kind   string
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found for symbol: %s", e.Kind, e.Symbol)
}

// every endpoint nests its error object under its own root key
var errorRoots = []string{"chart", "quoteSummary", "finance", "quoteResponse", "timeseries"}

// decodeAPIError extracts the provider error from body. It returns nil for a
// successful status whose body carries no error object.
func decodeAPIError(status int, body []byte) *APIError {
	var doc interface{}
	if err := json.Unmarshal(body, &doc); err == nil {
		for _, root := range errorRoots {
			desc := lookupString(doc, "$."+root+".error.description")
			code := lookupString(doc, "$."+root+".error.code")
			if desc != "" || code != "" {
				return &APIError{Status: status, Code: code, Description: desc}
			}
		}
	}
	if status >= http.StatusBadRequest {
		return &APIError{Status: status}
	}
	return nil
}

func lookupString(doc interface{}, path string) string {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return ""
	}
	if list, ok := v.([]interface{}); ok {
		if len(list) == 0 {
			return ""
		}
		v = list[0]
	}
	s, _ := v.(string)
	return s
}
