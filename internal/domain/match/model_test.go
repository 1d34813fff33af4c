package match

import (
	"testing"
	"time"
)

func TestResultDerivedFromGoals(t *testing.T) {
	cases := []struct {
		home, away int
		want       string
	}{
		{2, 1, ResultHomeWin},
		{0, 3, ResultAwayWin},
		{1, 1, ResultDraw},
		{0, 0, ResultDraw},
	}
	for _, tc := range cases {
		m := Match{HomeGoals: tc.home, AwayGoals: tc.away}
		if got := m.Result(); got != tc.want {
			t.Fatalf("Result(%d-%d) = %q, want %q", tc.home, tc.away, got, tc.want)
		}
		if got := m.TotalGoals(); got != tc.home+tc.away {
			t.Fatalf("TotalGoals(%d-%d) = %d", tc.home, tc.away, got)
		}
	}
}

func TestPropsRoundTrip(t *testing.T) {
	d := time.Date(2020, 5, 1, 16, 0, 0, 0, time.UTC)
	season := 2020
	m := Match{
		ID:          "20200501_Flamengo_Fluminense_Brasi",
		Date:        &d,
		HomeTeam:    "Flamengo",
		AwayTeam:    "Fluminense",
		HomeGoals:   2,
		AwayGoals:   1,
		Competition: "Brasileirao Serie A",
		Season:      &season,
		Round:       "1",
		Stadium:     "Maracana",
		Statistics:  map[string]int{"home_corner": 6, "away_corner": 3},
	}

	got := FromProps(m.Props())
	if got.ID != m.ID || got.HomeTeam != m.HomeTeam || got.AwayTeam != m.AwayTeam {
		t.Fatalf("identity fields lost: %+v", got)
	}
	if got.HomeGoals != 2 || got.AwayGoals != 1 {
		t.Fatalf("goals lost: %+v", got)
	}
	if got.Date == nil || !got.Date.Equal(d) {
		t.Fatalf("date lost: %v", got.Date)
	}
	if got.Season == nil || *got.Season != 2020 {
		t.Fatalf("season lost: %v", got.Season)
	}
	if got.Statistics["home_corner"] != 6 {
		t.Fatalf("statistics lost: %v", got.Statistics)
	}
}

func TestPropsOmitDerivedAndAbsentFields(t *testing.T) {
	m := Match{ID: "x", HomeTeam: "A", AwayTeam: "B", HomeGoals: 3, Competition: "Copa do Brasil"}
	props := m.Props()

	for _, forbidden := range []string{"result", "total_goals"} {
		if _, ok := props[forbidden]; ok {
			t.Fatalf("derived field %q must not be stored", forbidden)
		}
	}
	for _, absent := range []string{"datetime", "season", "round", "stadium", "statistics"} {
		if _, ok := props[absent]; ok {
			t.Fatalf("absent optional %q must be omitted", absent)
		}
	}
}
