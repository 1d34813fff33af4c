package ingestion

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/futstats/soccergraph/internal/domain/competition"
	"github.com/futstats/soccergraph/internal/domain/match"
	"github.com/futstats/soccergraph/internal/domain/player"
	"github.com/futstats/soccergraph/internal/domain/season"
	"github.com/futstats/soccergraph/internal/domain/team"
	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/infrastructure/tabular"
	"github.com/futstats/soccergraph/internal/platform/logging"
)

const defaultPlayerBatchSize = 500

// Counts summarizes one LoadAll run.
type Counts struct {
	Teams        int `json:"teams"`
	Players      int `json:"players"`
	Matches      int `json:"matches"`
	Competitions int `json:"competitions"`
}

// Pipeline ingests the five match sources and the player source into the
// graph store. All writes are upserts by natural key, so running the same
// load twice leaves the graph unchanged.
type Pipeline struct {
	store           graph.Store
	reader          tabular.RowReader
	logger          *logging.Logger
	playerBatchSize int
}

func NewPipeline(store graph.Store, reader tabular.RowReader, logger *logging.Logger, playerBatchSize int) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	if playerBatchSize <= 0 {
		playerBatchSize = defaultPlayerBatchSize
	}
	return &Pipeline{
		store:           store,
		reader:          reader,
		logger:          logger,
		playerBatchSize: playerBatchSize,
	}
}

// matchColumns names the per-source CSV columns. Empty means the source
// does not carry that field.
type matchColumns struct {
	date       string
	home       string
	away       string
	homeGoals  string
	awayGoals  string
	season     string
	round      string
	stadium    string
	homeState  string
	awayState  string
	tournament string
	stats      []string
}

type matchSource struct {
	file string
	tag  string
	// comp is the fixed competition; ignored when byTournament is set and
	// the competition is derived per row from the tournament column.
	comp         competition.Competition
	byTournament bool
	cols         matchColumns
}

var genericColumns = matchColumns{
	date:      "datetime",
	home:      "home_team",
	away:      "away_team",
	homeGoals: "home_goal",
	awayGoals: "away_goal",
	season:    "season",
	round:     "round",
}

func matchSources() []matchSource {
	brasileiraoCols := genericColumns
	brasileiraoCols.homeState = "home_team_state"
	brasileiraoCols.awayState = "away_team_state"

	libertadoresCols := genericColumns
	libertadoresCols.round = "stage"

	return []matchSource{
		{
			file: "Brasileirao_Matches.csv",
			tag:  "Brasileirao",
			comp: competition.Brasileirao,
			cols: brasileiraoCols,
		},
		{
			file: "Brazilian_Cup_Matches.csv",
			tag:  "CopaBrasil",
			comp: competition.CopaDoBrasil,
			cols: genericColumns,
		},
		{
			file: "Libertadores_Matches.csv",
			tag:  "Libertadores",
			comp: competition.Libertadores,
			cols: libertadoresCols,
		},
		{
			file: "novo_campeonato_brasileiro.csv",
			tag:  "BrasHist",
			comp: competition.Brasileirao,
			cols: matchColumns{
				date:      "Data",
				home:      "Equipe_mandante",
				away:      "Equipe_visitante",
				homeGoals: "Gols_mandante",
				awayGoals: "Gols_visitante",
				season:    "Ano",
				round:     "Rodada",
				stadium:   "Arena",
				homeState: "Mandante_UF",
				awayState: "Visitante_UF",
			},
		},
		{
			file:         "BR-Football-Dataset.csv",
			tag:          "Extended",
			byTournament: true,
			cols: matchColumns{
				date:       "date",
				home:       "home",
				away:       "away",
				homeGoals:  "home_goal",
				awayGoals:  "away_goal",
				tournament: "tournament",
				stats: []string{
					"home_corner", "away_corner",
					"home_attack", "away_attack",
					"home_shots", "away_shots",
					"total_corners",
				},
			},
		},
	}
}

const playersFile = "fifa_data.csv"

// teamEdge is a deferred HOME_TEAM/AWAY_TEAM write. Team nodes are bulk
// written only after every source has been scanned, and the store skips
// edges with missing endpoints, so these must wait until then.
type teamEdge struct {
	matchID  string
	edgeType string
	teamName string
}

type run struct {
	resolver    *team.Resolver
	seasonsSeen map[int]struct{}
	teamEdges   []teamEdge
	counts      Counts
}

// LoadAll ingests every source under dataDir. A missing source file is
// logged and contributes nothing; a store failure aborts the run.
func (p *Pipeline) LoadAll(ctx context.Context, dataDir string) (Counts, error) {
	r := &run{
		resolver:    team.NewResolver(),
		seasonsSeen: make(map[int]struct{}),
	}

	for _, comp := range competition.All() {
		if err := p.store.UpsertNode(ctx, graph.LabelCompetition, comp.Name, comp.Props()); err != nil {
			return r.counts, err
		}
		r.counts.Competitions++
	}

	for _, source := range matchSources() {
		if err := p.loadMatches(ctx, r, source, filepath.Join(dataDir, source.file)); err != nil {
			return r.counts, err
		}
	}

	for _, t := range r.resolver.Teams() {
		if err := p.store.UpsertNode(ctx, graph.LabelTeam, t.Name, t.Props()); err != nil {
			return r.counts, err
		}
	}
	r.counts.Teams = r.resolver.Len()

	for _, edge := range r.teamEdges {
		err := p.store.UpsertEdge(ctx, graph.LabelMatch, edge.matchID, edge.edgeType, graph.LabelTeam, edge.teamName)
		if err != nil {
			return r.counts, err
		}
	}

	if err := p.loadPlayers(ctx, r, filepath.Join(dataDir, playersFile)); err != nil {
		return r.counts, err
	}

	p.logger.InfoContext(ctx, "load complete",
		"teams", r.counts.Teams,
		"players", r.counts.Players,
		"matches", r.counts.Matches,
		"competitions", r.counts.Competitions,
	)
	return r.counts, nil
}

func (p *Pipeline) loadMatches(ctx context.Context, r *run, source matchSource, path string) error {
	before := r.counts.Matches
	err := p.reader.Read(ctx, path, func(row tabular.Row) error {
		return p.ingestMatchRow(ctx, r, source, row)
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.WarnContext(ctx, "match source missing, skipping", "file", source.file)
			return nil
		}
		return err
	}

	p.logger.InfoContext(ctx, "match source loaded",
		"file", source.file,
		"matches", r.counts.Matches-before,
	)
	return nil
}

func (p *Pipeline) ingestMatchRow(ctx context.Context, r *run, source matchSource, row tabular.Row) error {
	rawHome := row.Get(source.cols.home)
	rawAway := row.Get(source.cols.away)
	if rawHome == "" || rawAway == "" {
		return nil
	}

	home := r.resolver.Observe(rawHome, row.Get(source.cols.homeState))
	away := r.resolver.Observe(rawAway, row.Get(source.cols.awayState))

	comp := source.comp
	if source.byTournament {
		comp = competition.FromTournament(row.Get(source.cols.tournament))
	}

	date := ParseDate(row.Get(source.cols.date))
	m := match.Match{
		ID:          match.ComputeID(date, rawHome, rawAway, source.tag),
		Date:        date,
		HomeTeam:    home,
		AwayTeam:    away,
		HomeGoals:   parseGoals(row.Get(source.cols.homeGoals)),
		AwayGoals:   parseGoals(row.Get(source.cols.awayGoals)),
		Competition: comp.Name,
		Season:      parseOptionalInt(row.Get(source.cols.season)),
		Round:       row.Get(source.cols.round),
		Stadium:     row.Get(source.cols.stadium),
	}
	for _, statCol := range source.cols.stats {
		if value := parseOptionalInt(row.Get(statCol)); value != nil {
			if m.Statistics == nil {
				m.Statistics = make(map[string]int, len(source.cols.stats))
			}
			m.Statistics[statCol] = *value
		}
	}

	if err := p.store.UpsertNode(ctx, graph.LabelMatch, m.ID, m.Props()); err != nil {
		return err
	}
	if err := p.store.UpsertEdge(ctx, graph.LabelMatch, m.ID, graph.EdgePartOf, graph.LabelCompetition, comp.Name); err != nil {
		return err
	}
	if m.Season != nil {
		if err := p.ensureSeason(ctx, r, *m.Season); err != nil {
			return err
		}
		key := season.Season{Year: *m.Season}.Key()
		if err := p.store.UpsertEdge(ctx, graph.LabelMatch, m.ID, graph.EdgeInSeason, graph.LabelSeason, key); err != nil {
			return err
		}
	}

	r.teamEdges = append(r.teamEdges,
		teamEdge{matchID: m.ID, edgeType: graph.EdgeHomeTeam, teamName: home},
		teamEdge{matchID: m.ID, edgeType: graph.EdgeAwayTeam, teamName: away},
	)
	r.counts.Matches++
	return nil
}

func (p *Pipeline) ensureSeason(ctx context.Context, r *run, year int) error {
	if _, ok := r.seasonsSeen[year]; ok {
		return nil
	}
	s := season.Season{Year: year}
	if err := p.store.UpsertNode(ctx, graph.LabelSeason, s.Key(), s.Props()); err != nil {
		return err
	}
	r.seasonsSeen[year] = struct{}{}
	return nil
}

func (p *Pipeline) loadPlayers(ctx context.Context, r *run, path string) error {
	batch := make([]player.Player, 0, p.playerBatchSize)

	flush := func() error {
		for _, pl := range batch {
			if err := p.store.UpsertNode(ctx, graph.LabelPlayer, pl.Key(), pl.Props()); err != nil {
				return err
			}
			if pl.Club != "" {
				err := p.store.UpsertEdge(ctx, graph.LabelPlayer, pl.Key(), graph.EdgePlaysFor, graph.LabelTeam, team.Normalize(pl.Club))
				if err != nil {
					return err
				}
			}
		}
		r.counts.Players += len(batch)
		batch = batch[:0]
		return nil
	}

	err := p.reader.Read(ctx, path, func(row tabular.Row) error {
		id := parseOptionalInt(row.Get("ID"))
		if id == nil {
			return nil
		}
		batch = append(batch, player.Player{
			ID:          *id,
			Name:        row.Get("Name"),
			Age:         parseOptionalInt(row.Get("Age")),
			Nationality: row.Get("Nationality"),
			Overall:     parseOptionalInt(row.Get("Overall")),
			Potential:   parseOptionalInt(row.Get("Potential")),
			Club:        row.Get("Club"),
			Position:    row.Get("Position"),
		})
		if len(batch) >= p.playerBatchSize {
			return flush()
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.WarnContext(ctx, "player source missing, skipping", "file", playersFile)
			return nil
		}
		return err
	}
	if err := flush(); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "players loaded", "players", r.counts.Players)
	return nil
}
