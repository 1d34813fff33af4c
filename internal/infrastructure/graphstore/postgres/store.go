package postgres

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/valyala/bytebufferpool"

	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/platform/querybuilder"
)

const (
	nodesTable = "graph_nodes"
	edgesTable = "graph_edges"
)

// Store persists the knowledge graph in two Postgres tables with jsonb
// property bags. Schema lives in db/migrations.
type Store struct {
	db *sqlx.DB
}

func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, errors.Wrap(err, "connect postgres")
	}
	return &Store{db: db}, nil
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) UpsertNode(ctx context.Context, label, key string, props graph.Props) error {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(props); err != nil {
		return errors.Wrapf(err, "encode props of %s/%s", label, key)
	}

	query, args, err := querybuilder.InsertInto(nodesTable).
		Columns("label", "key", "props").
		Values(label, key, buf.String()).
		Suffix("ON CONFLICT (label, key) DO UPDATE SET props = EXCLUDED.props, updated_at = now()").
		ToSQL()
	if err != nil {
		return errors.Wrap(err, "build upsert node query")
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrapf(err, "upsert node %s/%s", label, key)
	}
	return nil
}

// UpsertEdge inserts only when both endpoints exist, matching the silent
// no-op contract of graph.Store.
func (s *Store) UpsertEdge(ctx context.Context, fromLabel, fromKey, edgeType, toLabel, toKey string) error {
	const query = `
		INSERT INTO graph_edges (from_label, from_key, edge_type, to_label, to_key)
		SELECT $1, $2, $3, $4, $5
		WHERE EXISTS (SELECT 1 FROM graph_nodes WHERE label = $1 AND key = $2)
		  AND EXISTS (SELECT 1 FROM graph_nodes WHERE label = $4 AND key = $5)
		ON CONFLICT (from_label, from_key, edge_type, to_label, to_key) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, fromLabel, fromKey, edgeType, toLabel, toKey); err != nil {
		return errors.Wrapf(err, "upsert edge %s-%s->%s", fromKey, edgeType, toKey)
	}
	return nil
}

func (s *Store) Query(ctx context.Context, q graph.Query) ([]graph.Props, error) {
	builder := querybuilder.Select("props").
		From(nodesTable).
		Where(querybuilder.Eq("label", q.Label))
	for _, f := range q.Filters {
		cond, err := filterCondition(f)
		if err != nil {
			return nil, err
		}
		builder = builder.Where(cond)
	}
	if q.OrderBy != "" {
		direction := ""
		if q.Desc {
			direction = " DESC NULLS LAST"
		}
		builder = builder.OrderBy(fmt.Sprintf("props->'%s'%s", q.OrderBy, direction))
	}
	if q.Limit > 0 {
		builder = builder.Limit(q.Limit)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build node query")
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "query %s nodes", q.Label)
	}
	defer rows.Close()

	var out []graph.Props
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, errors.Wrap(err, "scan node props")
		}
		props := make(graph.Props)
		if err := sonic.Unmarshal(raw, &props); err != nil {
			return nil, errors.Wrap(err, "decode node props")
		}
		out = append(out, props)
	}
	return out, errors.Wrap(rows.Err(), "iterate nodes")
}

func (s *Store) Aggregate(ctx context.Context, label string, filters []graph.Filter, aggs []graph.Aggregation) (graph.Props, error) {
	if len(aggs) == 0 {
		return graph.Props{}, nil
	}

	columns := make([]string, 0, len(aggs))
	for _, agg := range aggs {
		expr, err := aggColumn(agg)
		if err != nil {
			return nil, err
		}
		columns = append(columns, expr)
	}

	builder := querybuilder.Select(columns...).
		From(nodesTable).
		Where(querybuilder.Eq("label", label))
	for _, f := range filters {
		cond, err := filterCondition(f)
		if err != nil {
			return nil, err
		}
		builder = builder.Where(cond)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, errors.Wrap(err, "build aggregate query")
	}

	values := make([]float64, len(aggs))
	dests := make([]any, len(aggs))
	for i := range values {
		dests[i] = &values[i]
	}
	if err := s.db.QueryRowxContext(ctx, query, args...).Scan(dests...); err != nil {
		return nil, errors.Wrapf(err, "aggregate %s nodes", label)
	}

	result := make(graph.Props, len(aggs))
	for i, agg := range aggs {
		if agg.Kind == graph.AggCount {
			result[agg.As] = int(values[i])
			continue
		}
		result[agg.As] = values[i]
	}
	return result, nil
}

func aggColumn(agg graph.Aggregation) (string, error) {
	switch agg.Kind {
	case graph.AggCount:
		return "COUNT(*)", nil
	case graph.AggSum:
		return fmt.Sprintf("COALESCE(SUM((props->>'%s')::numeric), 0)", agg.Field), nil
	case graph.AggAvg:
		return fmt.Sprintf("COALESCE(AVG((props->>'%s')::numeric), 0)", agg.Field), nil
	default:
		return "", errors.Newf("unsupported aggregation kind %q", agg.Kind)
	}
}
