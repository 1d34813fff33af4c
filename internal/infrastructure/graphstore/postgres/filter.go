package postgres

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/platform/querybuilder"
)

// filterCondition translates one graph.Filter into a jsonb predicate.
// Property names come from code, never from callers, so interpolating
// them into the extraction expression is safe.
func filterCondition(f graph.Filter) (querybuilder.Condition, error) {
	switch f.Op {
	case graph.OpAnd, graph.OpOr:
		subs := make([]querybuilder.Condition, 0, len(f.Sub))
		for _, sub := range f.Sub {
			cond, err := filterCondition(sub)
			if err != nil {
				return nil, err
			}
			subs = append(subs, cond)
		}
		if f.Op == graph.OpAnd {
			return querybuilder.And(subs...), nil
		}
		return querybuilder.Or(subs...), nil
	case graph.OpEq:
		return comparison(f, "="), nil
	case graph.OpGte:
		return comparison(f, ">="), nil
	case graph.OpLte:
		return comparison(f, "<="), nil
	case graph.OpContains:
		return querybuilder.Expr(
			fmt.Sprintf("props->>'%s' LIKE '%%' || ? || '%%'", f.Field), f.Value), nil
	case graph.OpContainsFold:
		return querybuilder.Expr(
			fmt.Sprintf("props->>'%s' ILIKE '%%' || ? || '%%'", f.Field), f.Value), nil
	default:
		return nil, errors.Newf("unsupported filter op %q", f.Op)
	}
}

func comparison(f graph.Filter, operator string) querybuilder.Condition {
	if isNumeric(f.Value) {
		return querybuilder.Expr(
			fmt.Sprintf("(props->>'%s')::numeric %s ?", f.Field, operator), f.Value)
	}
	return querybuilder.Expr(
		fmt.Sprintf("props->>'%s' %s ?", f.Field, operator), f.Value)
}

func isNumeric(v any) bool {
	switch v.(type) {
	case int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}
