package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"

	"github.com/futstats/soccergraph/internal/domain/match"
	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/platform/cache"
	"github.com/futstats/soccergraph/internal/platform/logging"
)

// Default and internal result caps per operation.
const (
	defaultHeadToHeadLimit  = 50
	defaultTeamMatchesLimit = 100
	defaultBiggestWinsLimit = 20
	defaultTopScorersLimit  = 10
	defaultPlayersLimit     = 50
	defaultTopPlayersLimit  = 20
	defaultDateRangeLimit   = 100
	statisticsScanLimit     = 1000
)

// QueryService answers analytical queries over the stored graph. All
// operations are pure reads; an empty result is a normal answer, never an
// error.
type QueryService struct {
	store    graph.Store
	validate *validator.Validate
	cache    *cache.Store
	logger   *logging.Logger
}

// NewQueryService builds the service. resultCache may be nil to disable
// result caching.
func NewQueryService(store graph.Store, resultCache *cache.Store, logger *logging.Logger) *QueryService {
	if logger == nil {
		logger = logging.Default()
	}
	return &QueryService{
		store:    store,
		validate: validator.New(),
		cache:    resultCache,
		logger:   logger,
	}
}

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

func (s *QueryService) validateInput(input any) error {
	if err := s.validate.Struct(input); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func (s *QueryService) queryMatches(ctx context.Context, q graph.Query) ([]match.Match, error) {
	q.Label = graph.LabelMatch
	rows, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, storeError("query matches", err)
	}
	out := make([]match.Match, 0, len(rows))
	for _, props := range rows {
		out = append(out, match.FromProps(props))
	}
	return out, nil
}

// cached runs loader through the TTL cache when caching is enabled and the
// loaded value is of type T.
func cached[T any](ctx context.Context, s *QueryService, key string, loader func(context.Context) (T, error)) (T, error) {
	if s.cache == nil {
		return loader(ctx)
	}
	value, err := s.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return loader(ctx)
	}
	return typed, nil
}

func limitOrDefault(limit, fallback int) int {
	if limit > 0 {
		return limit
	}
	return fallback
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// MatchRecord is the per-match view returned by listing operations.
type MatchRecord struct {
	ID          string         `json:"id"`
	Date        string         `json:"date,omitempty"`
	HomeTeam    string         `json:"home_team"`
	AwayTeam    string         `json:"away_team"`
	HomeGoals   int            `json:"home_goals"`
	AwayGoals   int            `json:"away_goals"`
	Result      string         `json:"result"`
	TotalGoals  int            `json:"total_goals"`
	Competition string         `json:"competition"`
	Season      *int           `json:"season,omitempty"`
	Round       string         `json:"round,omitempty"`
	Stadium     string         `json:"stadium,omitempty"`
	Statistics  map[string]int `json:"statistics,omitempty"`
}

func newMatchRecord(m match.Match) MatchRecord {
	record := MatchRecord{
		ID:          m.ID,
		HomeTeam:    m.HomeTeam,
		AwayTeam:    m.AwayTeam,
		HomeGoals:   m.HomeGoals,
		AwayGoals:   m.AwayGoals,
		Result:      m.Result(),
		TotalGoals:  m.TotalGoals(),
		Competition: m.Competition,
		Season:      m.Season,
		Round:       m.Round,
		Stadium:     m.Stadium,
		Statistics:  m.Statistics,
	}
	if m.Date != nil {
		record.Date = m.Date.Format("2006-01-02")
	}
	return record
}
