package breeze

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// params collects query parameters before encoding. Values are
// transformed into the string forms the Breeze API expects; empty and
// zero values are dropped entirely rather than sent blank.
type params map[string]any

// encode renders the parameter map as a query string. Transformation
// rules match what Breeze accepts:
//
//   - string slices join with "-"
//   - booleans become "1" (false is dropped like any empty value)
//   - keys ending in "_json" marshal their value to JSON
//   - decimals render with their exact scale
func (p params) encode() (url.Values, error) {
	values := url.Values{}
	for key, v := range p {
		s, err := encodeParam(key, v)
		if err != nil {
			return nil, err
		}
		if s == "" {
			continue
		}
		values.Set(key, s)
	}
	return values, nil
}

func encodeParam(key string, v any) (string, error) {
	if v == nil {
		return "", nil
	}
	if strings.HasSuffix(key, "_json") {
		if s, ok := v.(string); ok {
			return s, nil
		}
		data, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("breeze: parameter %s: %w", key, err)
		}
		return string(data), nil
	}
	switch val := v.(type) {
	case string:
		return val, nil
	case bool:
		if val {
			return "1", nil
		}
		return "", nil
	case int:
		if val == 0 {
			return "", nil
		}
		return strconv.Itoa(val), nil
	case []string:
		return strings.Join(nonEmpty(val), "-"), nil
	case decimal.Decimal:
		if val.IsZero() {
			return "", nil
		}
		return val.String(), nil
	default:
		return "", fmt.Errorf("breeze: parameter %s has unsupported type %T", key, v)
	}
}

func nonEmpty(in []string) []string {
	out := in[:0:0]
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
