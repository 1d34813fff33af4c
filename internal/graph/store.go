package graph

import "context"

// Node labels persisted in the knowledge graph.
const (
	LabelTeam        = "Team"
	LabelPlayer      = "Player"
	LabelMatch       = "Match"
	LabelCompetition = "Competition"
	LabelSeason      = "Season"
)

// Edge types between graph nodes.
const (
	EdgeHomeTeam = "HOME_TEAM"
	EdgeAwayTeam = "AWAY_TEAM"
	EdgePartOf   = "PART_OF"
	EdgeInSeason = "IN_SEASON"
	EdgePlaysFor = "PLAYS_FOR"
)

// Query selects nodes of one label by property predicates.
type Query struct {
	Label   string
	Filters []Filter
	OrderBy string
	Desc    bool
	// Limit caps the result set; zero means no cap.
	Limit int
}

type AggKind string

const (
	AggCount AggKind = "count"
	AggSum   AggKind = "sum"
	AggAvg   AggKind = "avg"
)

// Aggregation computes one value over the filtered node set. Field is
// ignored for AggCount. The result is keyed by As.
type Aggregation struct {
	Kind  AggKind
	Field string
	As    string
}

// Store is the persistence contract the ingestion pipeline and query engine
// depend on. Writes are idempotent upserts keyed by (label, key); node
// properties are fully replaced on every upsert, never merged. Edge upserts
// are silent no-ops when either endpoint is missing, so callers must write
// endpoint nodes first.
type Store interface {
	UpsertNode(ctx context.Context, label, key string, props Props) error
	UpsertEdge(ctx context.Context, fromLabel, fromKey, edgeType, toLabel, toKey string) error
	Query(ctx context.Context, q Query) ([]Props, error)
	Aggregate(ctx context.Context, label string, filters []Filter, aggs []Aggregation) (Props, error)
}
