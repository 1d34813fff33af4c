package team

import "github.com/futstats/soccergraph/internal/graph"

// Team is one canonical club identity assembled from raw source names.
// Name is the normalized unique key; OriginalNames keeps every raw
// variant observed during a load and only ever grows.
type Team struct {
	Name          string
	State         string
	OriginalNames []string
}

func (t Team) Props() graph.Props {
	names := make([]string, len(t.OriginalNames))
	copy(names, t.OriginalNames)

	props := graph.Props{
		"name":           t.Name,
		"original_names": names,
	}
	if t.State != "" {
		props["state"] = t.State
	}
	return props
}

func FromProps(p graph.Props) Team {
	t := Team{
		Name:  p.String("name"),
		State: p.String("state"),
	}
	switch raw := p["original_names"].(type) {
	case []string:
		t.OriginalNames = append(t.OriginalNames, raw...)
	case []any:
		for _, item := range raw {
			if s, ok := item.(string); ok {
				t.OriginalNames = append(t.OriginalNames, s)
			}
		}
	}
	return t
}
