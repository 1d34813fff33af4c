package match

import (
	"time"

	"github.com/futstats/soccergraph/internal/graph"
)

// Match results derived from the goal counts.
const (
	ResultHomeWin = "home_win"
	ResultAwayWin = "away_win"
	ResultDraw    = "draw"
)

// Match is one played game. HomeTeam/AwayTeam hold canonical team names.
// Date is nil when the source date could not be parsed. Statistics carries
// source-specific extras (corners, shots) keyed by stat name.
type Match struct {
	ID          string
	Date        *time.Time
	HomeTeam    string
	AwayTeam    string
	HomeGoals   int
	AwayGoals   int
	Competition string
	Season      *int
	Round       string
	Stadium     string
	Statistics  map[string]int
}

// Result is derived from the goals and never stored independently.
func (m Match) Result() string {
	switch {
	case m.HomeGoals > m.AwayGoals:
		return ResultHomeWin
	case m.AwayGoals > m.HomeGoals:
		return ResultAwayWin
	default:
		return ResultDraw
	}
}

func (m Match) TotalGoals() int {
	return m.HomeGoals + m.AwayGoals
}

func (m Match) Props() graph.Props {
	props := graph.Props{
		"id":          m.ID,
		"home_team":   m.HomeTeam,
		"away_team":   m.AwayTeam,
		"home_goals":  m.HomeGoals,
		"away_goals":  m.AwayGoals,
		"competition": m.Competition,
	}
	if m.Date != nil {
		props["datetime"] = m.Date.Format(time.RFC3339)
	}
	if m.Season != nil {
		props["season"] = *m.Season
	}
	if m.Round != "" {
		props["round"] = m.Round
	}
	if m.Stadium != "" {
		props["stadium"] = m.Stadium
	}
	if len(m.Statistics) > 0 {
		stats := make(map[string]any, len(m.Statistics))
		for name, value := range m.Statistics {
			stats[name] = value
		}
		props["statistics"] = stats
	}
	return props
}

func FromProps(p graph.Props) Match {
	m := Match{
		ID:          p.String("id"),
		HomeTeam:    p.String("home_team"),
		AwayTeam:    p.String("away_team"),
		Competition: p.String("competition"),
		Round:       p.String("round"),
		Stadium:     p.String("stadium"),
	}
	if goals, ok := p.Int("home_goals"); ok {
		m.HomeGoals = goals
	}
	if goals, ok := p.Int("away_goals"); ok {
		m.AwayGoals = goals
	}
	if raw := p.String("datetime"); raw != "" {
		if parsed, err := time.Parse(time.RFC3339, raw); err == nil {
			m.Date = &parsed
		}
	}
	if year, ok := p.Int("season"); ok {
		m.Season = &year
	}
	if stats, ok := p["statistics"].(map[string]any); ok && len(stats) > 0 {
		m.Statistics = make(map[string]int, len(stats))
		for name := range stats {
			if value, ok := graph.Props(stats).Int(name); ok {
				m.Statistics[name] = value
			}
		}
	}
	return m
}
