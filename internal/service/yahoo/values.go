package yahoo

import (
	"bytes"
	"encoding/json"
	"time"

	"StockMCP/pkg/util"
)

// Number is a provider numeric field. It arrives either bare or wrapped as
// {"raw": 1.5, "fmt": "1.50"}; an empty object or null means absent.
type Number struct {
	Value *float64
}

func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	n.Value = nil

	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		return nil
	case b[0] == '{':
		var wrapped struct {
			Raw *float64 `json:"raw"`
		}
		if err := json.Unmarshal(b, &wrapped); err != nil {
			return err
		}
		n.Value = wrapped.Raw
		return nil
	case b[0] == '"':
		// "Infinity" and friends
		return nil
	}

	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	n.Value = &f
	return nil
}

// Time reads the number as epoch seconds.
func (n Number) Time() *time.Time {
	if n.Value == nil {
		return nil
	}
	t := util.FromUnix(int64(*n.Value))
	return &t
}
