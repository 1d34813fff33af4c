package ingestion

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/futstats/soccergraph/internal/domain/match"
	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/infrastructure/graphstore/memory"
	"github.com/futstats/soccergraph/internal/infrastructure/tabular"
)

// stubReader serves in-memory rows keyed by file base name. Files without
// an entry behave like missing sources.
type stubReader struct {
	files map[string][]tabular.Row
}

func (s *stubReader) Read(_ context.Context, path string, fn func(tabular.Row) error) error {
	rows, ok := s.files[filepath.Base(path)]
	if !ok {
		return fs.ErrNotExist
	}
	for _, row := range rows {
		if err := fn(row); err != nil {
			return err
		}
	}
	return nil
}

func fixtureReader() *stubReader {
	return &stubReader{files: map[string][]tabular.Row{
		"Brasileirao_Matches.csv": {
			{
				"datetime": "2020-02-01 16:00:00", "home_team": "Atlético Mineiro", "away_team": "Grêmio",
				"home_goal": "2", "away_goal": "1", "season": "2020", "round": "1",
				"home_team_state": "MG", "away_team_state": "RS",
			},
			{
				"datetime": "2020-02-08 18:30:00", "home_team": "Grêmio", "away_team": "Atletico-MG",
				"home_goal": "0", "away_goal": "0", "season": "2020", "round": "2",
				"home_team_state": "RS", "away_team_state": "MG",
			},
		},
		"BR-Football-Dataset.csv": {
			{
				"date": "01/03/2020", "home": "Santos", "away": "Flamengo",
				"home_goal": "3", "away_goal": "2", "tournament": "Copa Libertadores",
				"home_corner": "7", "away_corner": "4", "total_corners": "11",
			},
		},
		"fifa_data.csv": {
			{"ID": "1", "Name": "Gabriel Barbosa", "Age": "23", "Nationality": "Brazil", "Overall": "85", "Potential": "89", "Club": "Flamengo", "Position": "ST"},
			{"ID": "", "Name": "No Id"},
			{"ID": "2", "Name": "Everton", "Overall": "82", "Club": "Grêmio", "Position": "LW"},
		},
	}}
}

func loadFixtures(t *testing.T) (*memory.Store, Counts) {
	t.Helper()
	store := memory.NewStore()
	pipeline := NewPipeline(store, fixtureReader(), nil, 2)
	counts, err := pipeline.LoadAll(context.Background(), "/data")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	return store, counts
}

func TestLoadAllCounts(t *testing.T) {
	_, counts := loadFixtures(t)

	if counts.Competitions != 3 {
		t.Fatalf("competitions = %d, want 3", counts.Competitions)
	}
	if counts.Matches != 3 {
		t.Fatalf("matches = %d, want 3", counts.Matches)
	}
	// Atletico-MG, Gremio, Santos, Flamengo
	if counts.Teams != 4 {
		t.Fatalf("teams = %d, want 4", counts.Teams)
	}
	if counts.Players != 2 {
		t.Fatalf("players = %d, want 2", counts.Players)
	}
}

func TestLoadAllMergesTeamVariants(t *testing.T) {
	store, _ := loadFixtures(t)

	teams, err := store.Query(context.Background(), graph.Query{
		Label:   graph.LabelTeam,
		Filters: []graph.Filter{graph.Eq("name", "Atletico-MG")},
	})
	if err != nil {
		t.Fatalf("query teams: %v", err)
	}
	if len(teams) != 1 {
		t.Fatalf("expected one Atletico-MG node, got %d", len(teams))
	}
	if got := teams[0].String("state"); got != "MG" {
		t.Fatalf("state = %q, want MG", got)
	}
	names, ok := teams[0]["original_names"].([]string)
	if !ok || len(names) != 2 {
		t.Fatalf("original_names = %v, want both raw variants", teams[0]["original_names"])
	}
}

func TestLoadAllMatchNodeAndEdges(t *testing.T) {
	store, _ := loadFixtures(t)
	ctx := context.Background()

	matches, err := store.Query(ctx, graph.Query{
		Label:   graph.LabelMatch,
		Filters: []graph.Filter{graph.Eq("home_team", "Santos")},
	})
	if err != nil {
		t.Fatalf("query matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one Santos home match, got %d", len(matches))
	}

	m := match.FromProps(matches[0])
	if m.Competition != "Copa Libertadores" {
		t.Fatalf("competition = %q", m.Competition)
	}
	if m.Result() != match.ResultHomeWin || m.TotalGoals() != 5 {
		t.Fatalf("derived fields wrong: result=%s total=%d", m.Result(), m.TotalGoals())
	}
	if m.Statistics["total_corners"] != 11 {
		t.Fatalf("statistics = %v", m.Statistics)
	}

	if !store.HasEdge(graph.LabelMatch, m.ID, graph.EdgeHomeTeam, graph.LabelTeam, "Santos") {
		t.Fatal("missing HOME_TEAM edge")
	}
	if !store.HasEdge(graph.LabelMatch, m.ID, graph.EdgeAwayTeam, graph.LabelTeam, "Flamengo") {
		t.Fatal("missing AWAY_TEAM edge")
	}
	if !store.HasEdge(graph.LabelMatch, m.ID, graph.EdgePartOf, graph.LabelCompetition, "Copa Libertadores") {
		t.Fatal("missing PART_OF edge")
	}
}

func TestLoadAllSeasonEdges(t *testing.T) {
	store, _ := loadFixtures(t)
	ctx := context.Background()

	seasons, err := store.Query(ctx, graph.Query{Label: graph.LabelSeason})
	if err != nil {
		t.Fatalf("query seasons: %v", err)
	}
	if len(seasons) != 1 {
		t.Fatalf("expected one season node, got %d", len(seasons))
	}
	if year, _ := seasons[0].Int("year"); year != 2020 {
		t.Fatalf("season year = %d", year)
	}

	matches, err := store.Query(ctx, graph.Query{
		Label:   graph.LabelMatch,
		Filters: []graph.Filter{graph.Eq("season", 2020)},
	})
	if err != nil {
		t.Fatalf("query matches: %v", err)
	}
	for _, props := range matches {
		if !store.HasEdge(graph.LabelMatch, props.String("id"), graph.EdgeInSeason, graph.LabelSeason, "2020") {
			t.Fatalf("match %s missing IN_SEASON edge", props.String("id"))
		}
	}
}

func TestLoadAllPlayers(t *testing.T) {
	store, _ := loadFixtures(t)
	ctx := context.Background()

	players, err := store.Query(ctx, graph.Query{Label: graph.LabelPlayer, OrderBy: "id"})
	if err != nil {
		t.Fatalf("query players: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("players = %d, want 2 (row without ID skipped)", len(players))
	}

	if !store.HasEdge(graph.LabelPlayer, "1", graph.EdgePlaysFor, graph.LabelTeam, "Flamengo") {
		t.Fatal("missing PLAYS_FOR edge for player 1")
	}
	if !store.HasEdge(graph.LabelPlayer, "2", graph.EdgePlaysFor, graph.LabelTeam, "Gremio") {
		t.Fatal("missing PLAYS_FOR edge for player 2")
	}
}

func TestLoadAllIdempotent(t *testing.T) {
	store := memory.NewStore()
	reader := fixtureReader()
	ctx := context.Background()

	first, err := NewPipeline(store, reader, nil, 0).LoadAll(ctx, "/data")
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := NewPipeline(store, reader, nil, 0).LoadAll(ctx, "/data")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("counts changed across runs: %+v vs %+v", first, second)
	}

	for _, label := range []string{graph.LabelTeam, graph.LabelMatch, graph.LabelPlayer, graph.LabelSeason} {
		got, err := store.Query(ctx, graph.Query{Label: label})
		if err != nil {
			t.Fatalf("query %s: %v", label, err)
		}
		want := map[string]int{
			graph.LabelTeam:   4,
			graph.LabelMatch:  3,
			graph.LabelPlayer: 2,
			graph.LabelSeason: 1,
		}[label]
		if len(got) != want {
			t.Fatalf("%s nodes = %d after re-run, want %d", label, len(got), want)
		}
	}
}

func TestLoadAllMissingSourcesTolerated(t *testing.T) {
	store := memory.NewStore()
	reader := &stubReader{files: map[string][]tabular.Row{}}

	counts, err := NewPipeline(store, reader, nil, 0).LoadAll(context.Background(), "/data")
	if err != nil {
		t.Fatalf("LoadAll with no sources: %v", err)
	}
	if counts.Competitions != 3 || counts.Matches != 0 || counts.Teams != 0 || counts.Players != 0 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestLoadAllSkipsRowsWithoutTeams(t *testing.T) {
	store := memory.NewStore()
	reader := &stubReader{files: map[string][]tabular.Row{
		"Brasileirao_Matches.csv": {
			{"datetime": "2020-02-01", "home_team": "", "away_team": "Gremio", "home_goal": "1", "away_goal": "0"},
			{"datetime": "2020-02-02", "home_team": "Santos", "away_team": "Gremio", "home_goal": "1", "away_goal": "0"},
		},
	}}

	counts, err := NewPipeline(store, reader, nil, 0).LoadAll(context.Background(), "/data")
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if counts.Matches != 1 {
		t.Fatalf("matches = %d, want 1", counts.Matches)
	}
}
