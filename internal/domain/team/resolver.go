package team

import (
	"sort"
	"strings"
)

// Resolver accumulates the canonical-name -> Team mapping during one load
// run. It is created per pipeline run and discarded after Teams() is
// materialized; repeat observations of the same raw name are O(1) and do
// not grow memory.
type Resolver struct {
	teams map[string]*Team
	seen  map[string]map[string]struct{}
}

func NewResolver() *Resolver {
	return &Resolver{
		teams: make(map[string]*Team),
		seen:  make(map[string]map[string]struct{}),
	}
}

// Observe records one sighting of a raw team name and returns the canonical
// name. The first non-empty state wins for a canonical team; later states
// never overwrite it.
func (r *Resolver) Observe(rawName, state string) string {
	canonical := Normalize(rawName)
	if canonical == "" {
		return ""
	}

	entry, ok := r.teams[canonical]
	if !ok {
		entry = &Team{Name: canonical}
		r.teams[canonical] = entry
		r.seen[canonical] = make(map[string]struct{})
	}

	if entry.State == "" {
		if state = strings.TrimSpace(state); state != "" {
			entry.State = state
		}
	}

	raw := strings.TrimSpace(rawName)
	if _, dup := r.seen[canonical][raw]; !dup && raw != "" {
		r.seen[canonical][raw] = struct{}{}
		entry.OriginalNames = append(entry.OriginalNames, raw)
	}

	return canonical
}

func (r *Resolver) Len() int {
	return len(r.teams)
}

// Teams materializes the accumulated set, ordered by canonical name, for
// one bulk write pass.
func (r *Resolver) Teams() []Team {
	out := make([]Team, 0, len(r.teams))
	for _, entry := range r.teams {
		out = append(out, *entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
