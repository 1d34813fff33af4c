package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"go.uber.org/zap/zapcore"

	"github.com/futstats/soccergraph/internal/app"
	"github.com/futstats/soccergraph/internal/config"
	"github.com/futstats/soccergraph/internal/graph"
	"github.com/futstats/soccergraph/internal/platform/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := zapcore.InfoLevel
	if parsed, perr := zapcore.ParseLevel(cfg.LogLevel); perr == nil {
		level = parsed
	}
	logger := logging.NewJSON(level).With(
		"service", cfg.ServiceName,
		"version", cfg.ServiceVersion,
	)
	logging.SetDefault(logger)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build app: %w", err)
	}
	defer application.Close()

	logger.InfoContext(ctx, "starting load",
		"data_dir", cfg.DataDir,
		"store", cfg.GraphStore,
	)

	counts, err := application.Pipeline.LoadAll(ctx, cfg.DataDir)
	if err != nil {
		return fmt.Errorf("load sources: %w", err)
	}

	encoded, err := sonic.MarshalIndent(counts, "", "  ")
	if err != nil {
		return fmt.Errorf("encode counts: %w", err)
	}
	fmt.Println(string(encoded))

	return printStoredTotals(ctx, application)
}

// printStoredTotals reads back per-label node counts so the run output
// reflects what the store actually holds, not just what this run wrote.
func printStoredTotals(ctx context.Context, application *app.App) error {
	labels := []string{
		graph.LabelTeam,
		graph.LabelPlayer,
		graph.LabelMatch,
		graph.LabelCompetition,
		graph.LabelSeason,
	}

	stored := make(map[string]int, len(labels))
	for _, label := range labels {
		result, err := application.Store.Aggregate(ctx, label, nil, []graph.Aggregation{
			{Kind: graph.AggCount, As: "total"},
		})
		if err != nil {
			return fmt.Errorf("count %s nodes: %w", label, err)
		}
		total, _ := result.Int("total")
		stored[label] = total
	}

	encoded, err := sonic.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("encode stored totals: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
