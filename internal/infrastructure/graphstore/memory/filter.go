package memory

import (
	"strings"

	"github.com/futstats/soccergraph/internal/graph"
)

func matchesAll(props graph.Props, filters []graph.Filter) bool {
	for _, f := range filters {
		if !matches(props, f) {
			return false
		}
	}
	return true
}

func matches(props graph.Props, f graph.Filter) bool {
	switch f.Op {
	case graph.OpAnd:
		return matchesAll(props, f.Sub)
	case graph.OpOr:
		for _, sub := range f.Sub {
			if matches(props, sub) {
				return true
			}
		}
		return false
	case graph.OpEq:
		return equalsValue(props[f.Field], f.Value)
	case graph.OpGte:
		return compareValue(props[f.Field], f.Value, func(c int) bool { return c >= 0 })
	case graph.OpLte:
		return compareValue(props[f.Field], f.Value, func(c int) bool { return c <= 0 })
	case graph.OpContains:
		s, ok := props[f.Field].(string)
		want, wok := f.Value.(string)
		return ok && wok && strings.Contains(s, want)
	case graph.OpContainsFold:
		s, ok := props[f.Field].(string)
		want, wok := f.Value.(string)
		return ok && wok && strings.Contains(strings.ToLower(s), strings.ToLower(want))
	default:
		return false
	}
}

// equalsValue compares numerically when both sides parse as numbers, so an
// int stored through a JSON round-trip still matches its float64 twin.
func equalsValue(have, want any) bool {
	if have == nil {
		return false
	}
	if fh, ok := toFloat(have); ok {
		if fw, ok := toFloat(want); ok {
			return fh == fw
		}
	}
	return have == want
}

func compareValue(have, want any, accept func(int) bool) bool {
	if have == nil || want == nil {
		return false
	}
	if fh, ok := toFloat(have); ok {
		if fw, ok := toFloat(want); ok {
			switch {
			case fh < fw:
				return accept(-1)
			case fh > fw:
				return accept(1)
			default:
				return accept(0)
			}
		}
	}
	sh, hok := have.(string)
	sw, wok := want.(string)
	if hok && wok {
		return accept(strings.Compare(sh, sw))
	}
	return false
}
