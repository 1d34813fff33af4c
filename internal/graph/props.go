package graph

import (
	"encoding/json"
	"strconv"
)

// Props is the property bag stored on a node. Values survive a JSON
// round-trip, so numeric accessors tolerate int, int64, float64 and
// json.Number representations of the same property.
type Props map[string]any

func (p Props) String(field string) string {
	if v, ok := p[field].(string); ok {
		return v
	}
	return ""
}

func (p Props) Int(field string) (int, bool) {
	f, ok := p.Float(field)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func (p Props) Float(field string) (float64, bool) {
	return asFloat(p[field])
}

func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		if nested, ok := v.(map[string]any); ok {
			inner := make(map[string]any, len(nested))
			for nk, nv := range nested {
				inner[nk] = nv
			}
			out[k] = inner
			continue
		}
		out[k] = v
	}
	return out
}

func asFloat(v any) (float64, bool) {
	switch value := v.(type) {
	case int:
		return float64(value), true
	case int32:
		return float64(value), true
	case int64:
		return float64(value), true
	case float32:
		return float64(value), true
	case float64:
		return value, true
	case json.Number:
		f, err := value.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
