package usecase

import (
	"context"

	"github.com/futstats/soccergraph/internal/domain/player"
	"github.com/futstats/soccergraph/internal/domain/team"
	"github.com/futstats/soccergraph/internal/graph"
)

type FindPlayersInput struct {
	Name        string
	Nationality string
	Club        string
	Position    string
	MinOverall  *int
	MaxOverall  *int
	Limit       int `validate:"gte=0"`
}

type PlayerRecord struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Age         *int   `json:"age,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Overall     *int   `json:"overall,omitempty"`
	Potential   *int   `json:"potential,omitempty"`
	Club        string `json:"club,omitempty"`
	Position    string `json:"position,omitempty"`
}

// FindPlayers filters the player set, highest rated first. The club filter
// accepts both the canonical team name and a raw club substring.
func (s *QueryService) FindPlayers(ctx context.Context, input FindPlayersInput) ([]PlayerRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.FindPlayers")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var filters []graph.Filter
	if input.Name != "" {
		filters = append(filters, graph.ContainsFold("name", input.Name))
	}
	if input.Nationality != "" {
		filters = append(filters, graph.ContainsFold("nationality", input.Nationality))
	}
	if input.Club != "" {
		filters = append(filters, graph.Or(
			graph.Eq("club", team.Normalize(input.Club)),
			graph.ContainsFold("club", input.Club),
		))
	}
	if input.Position != "" {
		filters = append(filters, graph.ContainsFold("position", input.Position))
	}
	if input.MinOverall != nil {
		filters = append(filters, graph.Gte("overall", *input.MinOverall))
	}
	if input.MaxOverall != nil {
		filters = append(filters, graph.Lte("overall", *input.MaxOverall))
	}

	return s.queryPlayers(ctx, graph.Query{
		Filters: filters,
		OrderBy: "overall",
		Desc:    true,
		Limit:   limitOrDefault(input.Limit, defaultPlayersLimit),
	})
}

type TopPlayersInput struct {
	Nationality string
	Club        string
	Limit       int `validate:"gte=0"`
}

func (s *QueryService) TopPlayersByRating(ctx context.Context, input TopPlayersInput) ([]PlayerRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.TopPlayersByRating")
	defer span.End()

	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var filters []graph.Filter
	if input.Nationality != "" {
		filters = append(filters, graph.ContainsFold("nationality", input.Nationality))
	}
	if input.Club != "" {
		filters = append(filters, graph.ContainsFold("club", input.Club))
	}

	return s.queryPlayers(ctx, graph.Query{
		Filters: filters,
		OrderBy: "overall",
		Desc:    true,
		Limit:   limitOrDefault(input.Limit, defaultTopPlayersLimit),
	})
}

func (s *QueryService) queryPlayers(ctx context.Context, q graph.Query) ([]PlayerRecord, error) {
	q.Label = graph.LabelPlayer
	rows, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, storeError("query players", err)
	}

	records := make([]PlayerRecord, 0, len(rows))
	for _, props := range rows {
		p := player.FromProps(props)
		records = append(records, PlayerRecord{
			ID:          p.ID,
			Name:        p.Name,
			Age:         p.Age,
			Nationality: p.Nationality,
			Overall:     p.Overall,
			Potential:   p.Potential,
			Club:        p.Club,
			Position:    p.Position,
		})
	}
	return records, nil
}

type TeamRecord struct {
	Name          string   `json:"name"`
	State         string   `json:"state,omitempty"`
	OriginalNames []string `json:"original_names,omitempty"`
}

// ListTeams returns every stored team ordered by canonical name.
func (s *QueryService) ListTeams(ctx context.Context) ([]TeamRecord, error) {
	ctx, span := startUsecaseSpan(ctx, "QueryService.ListTeams")
	defer span.End()

	rows, err := s.store.Query(ctx, graph.Query{
		Label:   graph.LabelTeam,
		OrderBy: "name",
	})
	if err != nil {
		return nil, storeError("query teams", err)
	}

	records := make([]TeamRecord, 0, len(rows))
	for _, props := range rows {
		t := team.FromProps(props)
		records = append(records, TeamRecord{
			Name:          t.Name,
			State:         t.State,
			OriginalNames: t.OriginalNames,
		})
	}
	return records, nil
}
