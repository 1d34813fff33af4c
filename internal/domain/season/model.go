package season

import (
	"strconv"

	"github.com/futstats/soccergraph/internal/graph"
)

// Season is identified solely by year and created lazily the first time a
// match declares it.
type Season struct {
	Year int
}

func (s Season) Key() string {
	return strconv.Itoa(s.Year)
}

func (s Season) Props() graph.Props {
	return graph.Props{"year": s.Year}
}
