package competition

import (
	"strings"

	"github.com/futstats/soccergraph/internal/graph"
)

const (
	TypeLeague = "league"
	TypeCup    = "cup"
)

// Competition is immutable reference data: exactly three competitions
// exist and they are created before any match ingestion.
type Competition struct {
	Name      string
	ShortName string
	Country   string
	Type      string
}

var (
	Brasileirao = Competition{
		Name:      "Brasileirao Serie A",
		ShortName: "Brasileirao",
		Country:   "Brazil",
		Type:      TypeLeague,
	}
	CopaDoBrasil = Competition{
		Name:      "Copa do Brasil",
		ShortName: "Copa do Brasil",
		Country:   "Brazil",
		Type:      TypeCup,
	}
	Libertadores = Competition{
		Name:      "Copa Libertadores",
		ShortName: "Libertadores",
		Country:   "International",
		Type:      TypeCup,
	}
)

func All() []Competition {
	return []Competition{Brasileirao, CopaDoBrasil, Libertadores}
}

// FromTournament maps a free-text tournament label to one of the three
// fixed competitions by keyword. Anything unrecognized defaults to the
// league.
func FromTournament(name string) Competition {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "copa") && strings.Contains(lower, "brasil"):
		return CopaDoBrasil
	case strings.Contains(lower, "libertadores"):
		return Libertadores
	default:
		return Brasileirao
	}
}

func (c Competition) Props() graph.Props {
	return graph.Props{
		"name":             c.Name,
		"short_name":       c.ShortName,
		"country":          c.Country,
		"competition_type": c.Type,
	}
}
