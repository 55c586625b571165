package tuning

import (
	"fmt"
)

// Coerce converts a value tree into plain JSON-serializable Go values. The
// conversion is a closed enumeration over the numeric representations that
// can appear in parameter maps and results (all int/uint widths, both float
// widths, bool, string, maps and slices thereof); anything outside the set
// falls back to its string representation rather than failing the write.
func Coerce(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case bool, string, int, float64:
		return x
	case int8:
		return int(x)
	case int16:
		return int(x)
	case int32:
		return int(x)
	case int64:
		return int(x)
	case uint:
		return int(x)
	case uint8:
		return int(x)
	case uint16:
		return int(x)
	case uint32:
		return int(x)
	case uint64:
		return int(x)
	case float32:
		return float64(x)
	case Params:
		return coerceMap(x)
	case map[string]any:
		return coerceMap(x)
	case map[string][]any:
		out := make(map[string]any, len(x))
		for k, vals := range x {
			out[k] = Coerce(vals)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = Coerce(e)
		}
		return out
	case []float64:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case []int:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out
	default:
		return fmt.Sprintf("%v", x)
	}
}

func coerceMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = Coerce(v)
	}
	return out
}
