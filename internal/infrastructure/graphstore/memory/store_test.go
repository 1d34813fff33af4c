package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futstats/soccergraph/internal/graph"
)

func TestUpsertNodeReplacesProps(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.UpsertNode(ctx, graph.LabelTeam, "Flamengo", graph.Props{
		"name":  "Flamengo",
		"state": "RJ",
	}))
	require.NoError(t, store.UpsertNode(ctx, graph.LabelTeam, "Flamengo", graph.Props{
		"name": "Flamengo",
	}))

	got, err := store.Query(ctx, graph.Query{Label: graph.LabelTeam})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Flamengo", got[0].String("name"))
	_, hasState := got[0]["state"]
	assert.False(t, hasState, "upsert must replace props, not merge")
}

func TestUpsertEdgeRequiresBothEndpoints(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.UpsertNode(ctx, graph.LabelMatch, "m1", graph.Props{"match_id": "m1"}))

	require.NoError(t, store.UpsertEdge(ctx, graph.LabelMatch, "m1", graph.EdgeHomeTeam, graph.LabelTeam, "Santos"))
	assert.False(t, store.HasEdge(graph.LabelMatch, "m1", graph.EdgeHomeTeam, graph.LabelTeam, "Santos"))

	require.NoError(t, store.UpsertNode(ctx, graph.LabelTeam, "Santos", graph.Props{"name": "Santos"}))
	require.NoError(t, store.UpsertEdge(ctx, graph.LabelMatch, "m1", graph.EdgeHomeTeam, graph.LabelTeam, "Santos"))
	assert.True(t, store.HasEdge(graph.LabelMatch, "m1", graph.EdgeHomeTeam, graph.LabelTeam, "Santos"))
}

func TestQueryFiltersOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	matches := []graph.Props{
		{"match_id": "a", "home_team": "Santos", "away_team": "Gremio", "home_goals": 3, "away_goals": 0, "season": 2020},
		{"match_id": "b", "home_team": "Santos", "away_team": "Bahia", "home_goals": 1, "away_goals": 1, "season": 2020},
		{"match_id": "c", "home_team": "Gremio", "away_team": "Santos", "home_goals": 2, "away_goals": 2, "season": 2021},
	}
	for _, m := range matches {
		require.NoError(t, store.UpsertNode(ctx, graph.LabelMatch, m.String("match_id"), m))
	}

	got, err := store.Query(ctx, graph.Query{
		Label:   graph.LabelMatch,
		Filters: []graph.Filter{graph.Eq("home_team", "Santos")},
		OrderBy: "home_goals",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].String("match_id"))
	assert.Equal(t, "b", got[1].String("match_id"))

	got, err = store.Query(ctx, graph.Query{
		Label: graph.LabelMatch,
		Filters: []graph.Filter{graph.Or(
			graph.Eq("home_team", "Santos"),
			graph.Eq("away_team", "Santos"),
		)},
		Limit: 2,
	})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = store.Query(ctx, graph.Query{
		Label:   graph.LabelMatch,
		Filters: []graph.Filter{graph.Gte("season", 2021)},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c", got[0].String("match_id"))
}

func TestQueryRangeOnDateStrings(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	dates := map[string]string{
		"m1": "2020-02-01T16:00:00Z",
		"m2": "2020-06-15T16:00:00Z",
		"m3": "2021-01-10T16:00:00Z",
	}
	for id, dt := range dates {
		require.NoError(t, store.UpsertNode(ctx, graph.LabelMatch, id, graph.Props{"match_id": id, "datetime": dt}))
	}

	got, err := store.Query(ctx, graph.Query{
		Label: graph.LabelMatch,
		Filters: []graph.Filter{
			graph.Gte("datetime", "2020-03-01"),
			graph.Lte("datetime", "2020-12-31T23:59:59Z"),
		},
		OrderBy: "datetime",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "m2", got[0].String("match_id"))
}

func TestQueryContainsFold(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.UpsertNode(ctx, graph.LabelPlayer, "1", graph.Props{"id": 1, "name": "Gabriel Barbosa"}))
	require.NoError(t, store.UpsertNode(ctx, graph.LabelPlayer, "2", graph.Props{"id": 2, "name": "Everton Ribeiro"}))

	got, err := store.Query(ctx, graph.Query{
		Label:   graph.LabelPlayer,
		Filters: []graph.Filter{graph.ContainsFold("name", "gabriel")},
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Gabriel Barbosa", got[0].String("name"))
}

func TestQueryOrderMissingValuesLast(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.UpsertNode(ctx, graph.LabelPlayer, "1", graph.Props{"id": 1, "name": "A", "overall": 90}))
	require.NoError(t, store.UpsertNode(ctx, graph.LabelPlayer, "2", graph.Props{"id": 2, "name": "B"}))
	require.NoError(t, store.UpsertNode(ctx, graph.LabelPlayer, "3", graph.Props{"id": 3, "name": "C", "overall": 85}))

	got, err := store.Query(ctx, graph.Query{
		Label:   graph.LabelPlayer,
		OrderBy: "overall",
		Desc:    true,
	})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0].String("name"))
	assert.Equal(t, "C", got[1].String("name"))
	assert.Equal(t, "B", got[2].String("name"))
}

func TestAggregate(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	goals := []int{3, 1, 2}
	for i, g := range goals {
		require.NoError(t, store.UpsertNode(ctx, graph.LabelMatch, string(rune('a'+i)), graph.Props{
			"home_goals": g,
			"away_goals": 1,
			"season":     2020,
		}))
	}

	got, err := store.Aggregate(ctx, graph.LabelMatch,
		[]graph.Filter{graph.Eq("season", 2020)},
		[]graph.Aggregation{
			{Kind: graph.AggCount, As: "matches"},
			{Kind: graph.AggSum, Field: "home_goals", As: "home_goals"},
			{Kind: graph.AggAvg, Field: "home_goals", As: "avg_home_goals"},
		})
	require.NoError(t, err)

	count, ok := got.Int("matches")
	require.True(t, ok)
	assert.Equal(t, 3, count)

	sum, ok := got.Float("home_goals")
	require.True(t, ok)
	assert.InDelta(t, 6.0, sum, 1e-9)

	avg, ok := got.Float("avg_home_goals")
	require.True(t, ok)
	assert.InDelta(t, 2.0, avg, 1e-9)
}

func TestAggregateEmptySet(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	got, err := store.Aggregate(ctx, graph.LabelMatch, nil, []graph.Aggregation{
		{Kind: graph.AggCount, As: "matches"},
		{Kind: graph.AggAvg, Field: "home_goals", As: "avg_home_goals"},
	})
	require.NoError(t, err)

	count, _ := got.Int("matches")
	assert.Equal(t, 0, count)
	avg, ok := got.Float("avg_home_goals")
	require.True(t, ok)
	assert.Zero(t, avg)
}
