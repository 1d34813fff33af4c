package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/futstats/soccergraph/internal/graph"
)

type SeasonStandingsInput struct {
	Competition string `validate:"required"`
	Season      int    `validate:"required"`
}

type StandingsRow struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Matches        int    `json:"matches"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// SeasonStandings builds the ranked table for one competition season by
// crediting both sides of every match once. Ordering is points, then goal
// difference, then goals for, all descending; positions are 1-based.
func (s *QueryService) SeasonStandings(ctx context.Context, input SeasonStandingsInput) ([]StandingsRow, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.SeasonStandings")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("standings:%s:%d", input.Competition, input.Season)
	return cached(ctx, s, key, func(ctx context.Context) ([]StandingsRow, error) {
		matches, err := s.queryMatches(ctx, graph.Query{
			Filters: []graph.Filter{
				graph.Contains("competition", input.Competition),
				graph.Eq("season", input.Season),
			},
		})
		if err != nil {
			return nil, err
		}

		table := make(map[string]*StandingsRow)
		row := func(name string) *StandingsRow {
			if r, ok := table[name]; ok {
				return r
			}
			r := &StandingsRow{Team: name}
			table[name] = r
			return r
		}

		for _, m := range matches {
			home, away := row(m.HomeTeam), row(m.AwayTeam)
			home.Matches++
			away.Matches++
			home.GoalsFor += m.HomeGoals
			home.GoalsAgainst += m.AwayGoals
			away.GoalsFor += m.AwayGoals
			away.GoalsAgainst += m.HomeGoals

			switch {
			case m.HomeGoals > m.AwayGoals:
				home.Wins++
				home.Points += 3
				away.Losses++
			case m.AwayGoals > m.HomeGoals:
				away.Wins++
				away.Points += 3
				home.Losses++
			default:
				home.Draws++
				away.Draws++
				home.Points++
				away.Points++
			}
		}

		rows := make([]StandingsRow, 0, len(table))
		for _, r := range table {
			r.GoalDifference = r.GoalsFor - r.GoalsAgainst
			rows = append(rows, *r)
		}
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].GoalDifference != rows[j].GoalDifference {
				return rows[i].GoalDifference > rows[j].GoalDifference
			}
			if rows[i].GoalsFor != rows[j].GoalsFor {
				return rows[i].GoalsFor > rows[j].GoalsFor
			}
			return rows[i].Team < rows[j].Team
		})
		for i := range rows {
			rows[i].Position = i + 1
		}
		return rows, nil
	})
}

type CompetitionWinnersInput struct {
	Competition string `validate:"required"`
	StartYear   *int
	EndYear     *int
}

type SeasonWinner struct {
	Season         int    `json:"season"`
	Team           string `json:"team"`
	Points         int    `json:"points"`
	Wins           int    `json:"wins"`
	GoalDifference int    `json:"goal_difference"`
}

// CompetitionWinners takes the standings leader of every season in the
// inclusive year range. For cups this is a points approximation rather
// than the knockout result; the simplification is deliberate.
func (s *QueryService) CompetitionWinners(ctx context.Context, input CompetitionWinnersInput) ([]SeasonWinner, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.CompetitionWinners")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	matches, err := s.queryMatches(ctx, graph.Query{
		Filters: []graph.Filter{graph.Contains("competition", input.Competition)},
	})
	if err != nil {
		return nil, err
	}

	seasonSet := make(map[int]struct{})
	for _, m := range matches {
		if m.Season == nil {
			continue
		}
		year := *m.Season
		if input.StartYear != nil && year < *input.StartYear {
			continue
		}
		if input.EndYear != nil && year > *input.EndYear {
			continue
		}
		seasonSet[year] = struct{}{}
	}

	seasons := make([]int, 0, len(seasonSet))
	for year := range seasonSet {
		seasons = append(seasons, year)
	}
	sort.Ints(seasons)

	winners := make([]SeasonWinner, 0, len(seasons))
	for _, year := range seasons {
		standings, err := s.SeasonStandings(ctx, SeasonStandingsInput{
			Competition: input.Competition,
			Season:      year,
		})
		if err != nil {
			return nil, err
		}
		if len(standings) == 0 {
			continue
		}
		top := standings[0]
		winners = append(winners, SeasonWinner{
			Season:         year,
			Team:           top.Team,
			Points:         top.Points,
			Wins:           top.Wins,
			GoalDifference: top.GoalDifference,
		})
	}
	return winners, nil
}

type LeagueStatisticsInput struct {
	Competition string `validate:"required"`
	Season      *int
}

type LeagueStatisticsResult struct {
	Competition  string  `json:"competition"`
	Season       *int    `json:"season,omitempty"`
	TotalMatches int     `json:"total_matches"`
	TotalGoals   int     `json:"total_goals"`
	AvgGoals     float64 `json:"avg_goals_per_match"`
	HomeWins     int     `json:"home_wins"`
	AwayWins     int     `json:"away_wins"`
	Draws        int     `json:"draws"`
	HomeWinRate  float64 `json:"home_win_rate"`
	AwayWinRate  float64 `json:"away_win_rate"`
	DrawRate     float64 `json:"draw_rate"`
}

// LeagueStatistics aggregates a competition (optionally one season) in a
// single pass. The three rates are rounded independently and sum to about
// 100 within rounding error.
func (s *QueryService) LeagueStatistics(ctx context.Context, input LeagueStatisticsInput) (*LeagueStatisticsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.LeagueStatistics")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	filters := []graph.Filter{graph.Contains("competition", input.Competition)}
	if input.Season != nil {
		filters = append(filters, graph.Eq("season", *input.Season))
	}

	matches, err := s.queryMatches(ctx, graph.Query{Filters: filters})
	if err != nil {
		return nil, err
	}

	result := &LeagueStatisticsResult{
		Competition:  input.Competition,
		Season:       input.Season,
		TotalMatches: len(matches),
	}
	for _, m := range matches {
		result.TotalGoals += m.TotalGoals()
		switch {
		case m.HomeGoals > m.AwayGoals:
			result.HomeWins++
		case m.AwayGoals > m.HomeGoals:
			result.AwayWins++
		default:
			result.Draws++
		}
	}
	if result.TotalMatches > 0 {
		result.AvgGoals = round2(float64(result.TotalGoals) / float64(result.TotalMatches))
	}
	result.HomeWinRate = percentage(result.HomeWins, result.TotalMatches)
	result.AwayWinRate = percentage(result.AwayWins, result.TotalMatches)
	result.DrawRate = percentage(result.Draws, result.TotalMatches)
	return result, nil
}

type TopScoringTeamsInput struct {
	Competition string
	Season      *int
	Limit       int `validate:"gte=0"`
}

type TeamGoals struct {
	Team    string `json:"team"`
	Goals   int    `json:"goals"`
	Matches int    `json:"matches"`
}

// TopScoringTeams sums each team's home and away goals and ranks
// descending, ties broken by name.
func (s *QueryService) TopScoringTeams(ctx context.Context, input TopScoringTeamsInput) ([]TeamGoals, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.TopScoringTeams")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var filters []graph.Filter
	if input.Competition != "" {
		filters = append(filters, graph.Contains("competition", input.Competition))
	}
	if input.Season != nil {
		filters = append(filters, graph.Eq("season", *input.Season))
	}

	matches, err := s.queryMatches(ctx, graph.Query{Filters: filters})
	if err != nil {
		return nil, err
	}

	totals := make(map[string]*TeamGoals)
	credit := func(name string, goals int) {
		entry, ok := totals[name]
		if !ok {
			entry = &TeamGoals{Team: name}
			totals[name] = entry
		}
		entry.Goals += goals
		entry.Matches++
	}
	for _, m := range matches {
		credit(m.HomeTeam, m.HomeGoals)
		credit(m.AwayTeam, m.AwayGoals)
	}

	ranking := make([]TeamGoals, 0, len(totals))
	for _, entry := range totals {
		ranking = append(ranking, *entry)
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Goals != ranking[j].Goals {
			return ranking[i].Goals > ranking[j].Goals
		}
		return ranking[i].Team < ranking[j].Team
	})

	limit := limitOrDefault(input.Limit, defaultTopScorersLimit)
	if len(ranking) > limit {
		ranking = ranking[:limit]
	}
	return ranking, nil
}
