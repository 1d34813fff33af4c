package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/futstats/soccergraph/internal/graph"
)

// Store is an in-process graph.Store backed by mutex-guarded maps. It is
// the default backend for single-run loads and the fixture backend for
// tests.
type Store struct {
	mu    sync.RWMutex
	nodes map[string]map[string]graph.Props
	edges map[string]struct{}
}

func NewStore() *Store {
	return &Store{
		nodes: make(map[string]map[string]graph.Props),
		edges: make(map[string]struct{}),
	}
}

func (s *Store) UpsertNode(_ context.Context, label, key string, props graph.Props) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byKey, ok := s.nodes[label]
	if !ok {
		byKey = make(map[string]graph.Props)
		s.nodes[label] = byKey
	}
	byKey[key] = props.Clone()
	return nil
}

func (s *Store) UpsertEdge(_ context.Context, fromLabel, fromKey, edgeType, toLabel, toKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.nodeExists(fromLabel, fromKey) || !s.nodeExists(toLabel, toKey) {
		return nil
	}
	s.edges[edgeKey(fromLabel, fromKey, edgeType, toLabel, toKey)] = struct{}{}
	return nil
}

func (s *Store) Query(_ context.Context, q graph.Query) ([]graph.Props, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]graph.Props, 0)
	for _, props := range s.nodes[q.Label] {
		if matchesAll(props, q.Filters) {
			out = append(out, props.Clone())
		}
	}

	if q.OrderBy != "" {
		sortProps(out, q.OrderBy, q.Desc)
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *Store) Aggregate(_ context.Context, label string, filters []graph.Filter, aggs []graph.Aggregation) (graph.Props, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	sums := make(map[string]float64, len(aggs))
	seen := make(map[string]int, len(aggs))

	for _, props := range s.nodes[label] {
		if !matchesAll(props, filters) {
			continue
		}
		count++
		for _, agg := range aggs {
			if agg.Kind == graph.AggCount {
				continue
			}
			if value, ok := props.Float(agg.Field); ok {
				sums[agg.As] += value
				seen[agg.As]++
			}
		}
	}

	result := make(graph.Props, len(aggs))
	for _, agg := range aggs {
		switch agg.Kind {
		case graph.AggCount:
			result[agg.As] = count
		case graph.AggSum:
			result[agg.As] = sums[agg.As]
		case graph.AggAvg:
			if n := seen[agg.As]; n > 0 {
				result[agg.As] = sums[agg.As] / float64(n)
			} else {
				result[agg.As] = 0.0
			}
		}
	}
	return result, nil
}

// HasEdge reports whether the exact edge exists. Test helper, not part of
// the graph.Store contract.
func (s *Store) HasEdge(fromLabel, fromKey, edgeType, toLabel, toKey string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[edgeKey(fromLabel, fromKey, edgeType, toLabel, toKey)]
	return ok
}

func (s *Store) nodeExists(label, key string) bool {
	byKey, ok := s.nodes[label]
	if !ok {
		return false
	}
	_, ok = byKey[key]
	return ok
}

func edgeKey(fromLabel, fromKey, edgeType, toLabel, toKey string) string {
	return strings.Join([]string{fromLabel, fromKey, edgeType, toLabel, toKey}, "|")
}

func sortProps(items []graph.Props, field string, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		less, ok := lessValue(items[i][field], items[j][field])
		if !ok {
			// missing values sort to the end regardless of direction
			_, iHas := items[i][field]
			_, jHas := items[j][field]
			return iHas && !jHas
		}
		if desc {
			return !less && !equalValue(items[i][field], items[j][field])
		}
		return less
	})
}

func lessValue(a, b any) (bool, bool) {
	if a == nil || b == nil {
		return false, false
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb, true
		}
	}
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		return sa < sb, true
	}
	return false, false
}

func equalValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	return graph.Props{"v": v}.Float("v")
}
