package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/futstats/soccergraph/internal/domain/match"
	"github.com/futstats/soccergraph/internal/domain/team"
	"github.com/futstats/soccergraph/internal/graph"
)

type HeadToHeadInput struct {
	TeamA string `validate:"required"`
	TeamB string `validate:"required"`
	Limit int    `validate:"gte=0"`
}

type HeadToHeadResult struct {
	TeamA        string        `json:"team_a"`
	TeamB        string        `json:"team_b"`
	TotalMatches int           `json:"total_matches"`
	TeamAWins    int           `json:"team_a_wins"`
	TeamBWins    int           `json:"team_b_wins"`
	Draws        int           `json:"draws"`
	TeamAGoals   int           `json:"team_a_goals"`
	TeamBGoals   int           `json:"team_b_goals"`
	Matches      []MatchRecord `json:"matches"`
}

// HeadToHead aggregates the record between two teams across every meeting,
// most recent first. Swapping the argument order only swaps the side
// labels, never the aggregates.
func (s *QueryService) HeadToHead(ctx context.Context, input HeadToHeadInput) (*HeadToHeadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.HeadToHead")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	teamA := team.Normalize(input.TeamA)
	teamB := team.Normalize(input.TeamB)

	matches, err := s.queryMatches(ctx, graph.Query{
		Filters: []graph.Filter{graph.Or(
			graph.And(graph.Eq("home_team", teamA), graph.Eq("away_team", teamB)),
			graph.And(graph.Eq("home_team", teamB), graph.Eq("away_team", teamA)),
		)},
		OrderBy: "datetime",
		Desc:    true,
		Limit:   limitOrDefault(input.Limit, defaultHeadToHeadLimit),
	})
	if err != nil {
		return nil, err
	}

	result := &HeadToHeadResult{
		TeamA:        teamA,
		TeamB:        teamB,
		TotalMatches: len(matches),
		Matches:      make([]MatchRecord, 0, len(matches)),
	}
	for _, m := range matches {
		aAtHome := m.HomeTeam == teamA
		if aAtHome {
			result.TeamAGoals += m.HomeGoals
			result.TeamBGoals += m.AwayGoals
		} else {
			result.TeamAGoals += m.AwayGoals
			result.TeamBGoals += m.HomeGoals
		}
		switch m.Result() {
		case match.ResultDraw:
			result.Draws++
		case match.ResultHomeWin:
			if aAtHome {
				result.TeamAWins++
			} else {
				result.TeamBWins++
			}
		case match.ResultAwayWin:
			if aAtHome {
				result.TeamBWins++
			} else {
				result.TeamAWins++
			}
		}
		result.Matches = append(result.Matches, newMatchRecord(m))
	}
	return result, nil
}

type TeamMatchesInput struct {
	Team        string `validate:"required"`
	Season      *int
	Competition string
	HomeOnly    bool
	AwayOnly    bool
	Limit       int `validate:"gte=0"`
}

// TeamMatchRecord extends MatchRecord with the queried team's perspective.
type TeamMatchRecord struct {
	MatchRecord
	Outcome      string `json:"outcome"`
	Points       int    `json:"points"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
}

type TeamMatchesResult struct {
	Team           string            `json:"team"`
	TotalMatches   int               `json:"total_matches"`
	Wins           int               `json:"wins"`
	Draws          int               `json:"draws"`
	Losses         int               `json:"losses"`
	GoalsFor       int               `json:"goals_for"`
	GoalsAgainst   int               `json:"goals_against"`
	GoalDifference int               `json:"goal_difference"`
	Points         int               `json:"points"`
	Matches        []TeamMatchRecord `json:"matches"`
}

// TeamMatches lists a team's matches with per-match outcome and points
// from that team's perspective. HomeOnly takes precedence when both side
// flags are set. Competition matching is case-sensitive containment, so
// "Brasileirao" also matches "Brasileirao Serie A".
func (s *QueryService) TeamMatches(ctx context.Context, input TeamMatchesInput) (*TeamMatchesResult, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.TeamMatches")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	canonical := team.Normalize(input.Team)

	var participation graph.Filter
	switch {
	case input.HomeOnly:
		participation = graph.Eq("home_team", canonical)
	case input.AwayOnly:
		participation = graph.Eq("away_team", canonical)
	default:
		participation = graph.Or(
			graph.Eq("home_team", canonical),
			graph.Eq("away_team", canonical),
		)
	}

	filters := []graph.Filter{participation}
	if input.Season != nil {
		filters = append(filters, graph.Eq("season", *input.Season))
	}
	if input.Competition != "" {
		filters = append(filters, graph.Contains("competition", input.Competition))
	}

	matches, err := s.queryMatches(ctx, graph.Query{
		Filters: filters,
		OrderBy: "datetime",
		Desc:    true,
		Limit:   limitOrDefault(input.Limit, defaultTeamMatchesLimit),
	})
	if err != nil {
		return nil, err
	}

	result := &TeamMatchesResult{
		Team:         canonical,
		TotalMatches: len(matches),
		Matches:      make([]TeamMatchRecord, 0, len(matches)),
	}
	for _, m := range matches {
		record := TeamMatchRecord{MatchRecord: newMatchRecord(m)}
		if m.HomeTeam == canonical {
			record.GoalsFor, record.GoalsAgainst = m.HomeGoals, m.AwayGoals
		} else {
			record.GoalsFor, record.GoalsAgainst = m.AwayGoals, m.HomeGoals
		}
		switch {
		case record.GoalsFor > record.GoalsAgainst:
			record.Outcome = "win"
			record.Points = 3
			result.Wins++
		case record.GoalsFor == record.GoalsAgainst:
			record.Outcome = "draw"
			record.Points = 1
			result.Draws++
		default:
			record.Outcome = "loss"
			result.Losses++
		}
		result.GoalsFor += record.GoalsFor
		result.GoalsAgainst += record.GoalsAgainst
		result.Points += record.Points
		result.Matches = append(result.Matches, record)
	}
	result.GoalDifference = result.GoalsFor - result.GoalsAgainst
	return result, nil
}

type TeamStatisticsInput struct {
	Team        string `validate:"required"`
	Season      *int
	Competition string
}

type TeamStatisticsResult struct {
	Team           string  `json:"team"`
	TotalMatches   int     `json:"total_matches"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsFor       int     `json:"goals_for"`
	GoalsAgainst   int     `json:"goals_against"`
	GoalDifference int     `json:"goal_difference"`
	Points         int     `json:"points"`
	WinRate        float64 `json:"win_rate"`
	HomeWinRate    float64 `json:"home_win_rate"`
	AwayWinRate    float64 `json:"away_win_rate"`
}

// TeamStatistics composes overall, home-only and away-only match sets into
// win-rate percentages. Rates are 0 when the corresponding set is empty.
func (s *QueryService) TeamStatistics(ctx context.Context, input TeamStatisticsInput) (*TeamStatisticsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.TeamStatistics")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	canonical := team.Normalize(input.Team)
	key := fmt.Sprintf("team_stats:%s:%s:%s", canonical, optionalYear(input.Season), input.Competition)

	return cached(ctx, s, key, func(ctx context.Context) (*TeamStatisticsResult, error) {
		base := TeamMatchesInput{
			Team:        canonical,
			Season:      input.Season,
			Competition: input.Competition,
			Limit:       statisticsScanLimit,
		}

		overall, err := s.TeamMatches(ctx, base)
		if err != nil {
			return nil, err
		}
		home := base
		home.HomeOnly = true
		homeOnly, err := s.TeamMatches(ctx, home)
		if err != nil {
			return nil, err
		}
		away := base
		away.AwayOnly = true
		awayOnly, err := s.TeamMatches(ctx, away)
		if err != nil {
			return nil, err
		}

		return &TeamStatisticsResult{
			Team:           canonical,
			TotalMatches:   overall.TotalMatches,
			Wins:           overall.Wins,
			Draws:          overall.Draws,
			Losses:         overall.Losses,
			GoalsFor:       overall.GoalsFor,
			GoalsAgainst:   overall.GoalsAgainst,
			GoalDifference: overall.GoalDifference,
			Points:         overall.Points,
			WinRate:        percentage(overall.Wins, overall.TotalMatches),
			HomeWinRate:    percentage(homeOnly.Wins, homeOnly.TotalMatches),
			AwayWinRate:    percentage(awayOnly.Wins, awayOnly.TotalMatches),
		}, nil
	})
}

type BiggestWinsInput struct {
	Competition string
	Season      *int
	Limit       int `validate:"gte=0"`
}

type BiggestWin struct {
	MatchRecord
	GoalDifference int    `json:"goal_difference"`
	Winner         string `json:"winner"`
	Score          string `json:"score"`
}

// BiggestWins ranks non-draw matches by margin of victory, breaking ties
// by total goals. Score reads winner-first.
func (s *QueryService) BiggestWins(ctx context.Context, input BiggestWinsInput) ([]BiggestWin, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.BiggestWins")
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

	wins := make([]BiggestWin, 0, len(matches))
	for _, m := range matches {
		if m.HomeGoals == m.AwayGoals {
			continue
		}
		win := BiggestWin{MatchRecord: newMatchRecord(m)}
		if m.HomeGoals > m.AwayGoals {
			win.GoalDifference = m.HomeGoals - m.AwayGoals
			win.Winner = m.HomeTeam
			win.Score = fmt.Sprintf("%d-%d", m.HomeGoals, m.AwayGoals)
		} else {
			win.GoalDifference = m.AwayGoals - m.HomeGoals
			win.Winner = m.AwayTeam
			win.Score = fmt.Sprintf("%d-%d", m.AwayGoals, m.HomeGoals)
		}
		wins = append(wins, win)
	}

	sort.SliceStable(wins, func(i, j int) bool {
		if wins[i].GoalDifference != wins[j].GoalDifference {
			return wins[i].GoalDifference > wins[j].GoalDifference
		}
		return wins[i].TotalGoals > wins[j].TotalGoals
	})

	limit := limitOrDefault(input.Limit, defaultBiggestWinsLimit)
	if len(wins) > limit {
		wins = wins[:limit]
	}
	return wins, nil
}

type MatchesByDateRangeInput struct {
	Start       string `validate:"required"`
	End         string `validate:"required"`
	Competition string
	Limit       int `validate:"gte=0"`
}

// MatchesByDateRange lists matches within an inclusive ISO date range,
// oldest first. Matches without a parsed datetime never appear.
func (s *QueryService) MatchesByDateRange(ctx context.Context, input MatchesByDateRangeInput) ([]MatchRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.MatchesByDateRange")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	filters := []graph.Filter{
		graph.Gte("datetime", input.Start),
		// the stored datetime carries a time component, so pad the end
		// date to keep the range inclusive
		graph.Lte("datetime", input.End+"T23:59:59Z"),
	}
	if input.Competition != "" {
		filters = append(filters, graph.Contains("competition", input.Competition))
	}

	matches, err := s.queryMatches(ctx, graph.Query{
		Filters: filters,
		OrderBy: "datetime",
		Limit:   limitOrDefault(input.Limit, defaultDateRangeLimit),
	})
	if err != nil {
		return nil, err
	}

	records := make([]MatchRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, newMatchRecord(m))
	}
	return records, nil
}

func optionalYear(year *int) string {
	if year == nil {
		return "all"
	}
	return fmt.Sprintf("%d", *year)
}
