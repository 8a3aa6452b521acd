package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/catalog"
	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/metrics"
	"github.com/FlatBartender/bis-solver/internal/progress"
	"github.com/FlatBartender/bis-solver/internal/report"
	"github.com/FlatBartender/bis-solver/internal/repositories/results"
)

var (
	solverKind    string
	evaluatorKind string
	detail        bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [catalog.json]",
	Short: "Rank gearsets from an item catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.InvalidArgument("no catalog given, pass a path or set catalog in the config")
		}
		if solverKind != "" {
			cfg.Solver.Kind = solverKind
		}
		if evaluatorKind != "" {
			cfg.Evaluator.Kind = evaluatorKind
		}

		items, err := catalog.Load(path)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Loaded %d items from %s\n", len(items), path)

		opts := []app.Option{app.WithLogger(log)}
		if cfg.Metrics.Addr != "" {
			reg := prometheus.NewRegistry()
			opts = append(opts, app.WithMetrics(metrics.New(reg)))
			stop := serveMetrics(cfg.Metrics.Addr, reg)
			defer stop()
		}
		if cfg.Redis.Addr != "" {
			repo, closeRepo, err := openResults()
			if err != nil {
				return err
			}
			defer closeRepo()
			opts = append(opts, app.WithResults(repo))
		}

		res, err := app.New(cfg, opts...).Run(cmd.Context(), items, &statusLine{})
		if err != nil {
			return err
		}
		return printResult(res)
	},
}

func init() {
	solveCmd.Flags().StringVar(&solverKind, "solver", "", "split or rolling (overrides config)")
	solveCmd.Flags().StringVar(&evaluatorKind, "evaluator", "", "infinite_dummy or timeline (overrides config)")
	solveCmd.Flags().BoolVar(&detail, "detail", false, "print every gearset in full instead of the summary table")
	rootCmd.AddCommand(solveCmd)
}

func printResult(res *report.Result) error {
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	if detail {
		fmt.Print(report.Text(res))
		return nil
	}
	fmt.Print(report.Table(res))
	if len(res.Entries) > 0 {
		fmt.Println()
		fmt.Print(report.Text(&report.Result{
			ID:        res.ID,
			Solver:    res.Solver,
			Evaluator: res.Evaluator,
			ElapsedMs: res.ElapsedMs,
			Entries:   res.Entries[:1],
		}))
	}
	return nil
}

// statusLine prints each status change to stderr.
type statusLine struct {
	start time.Time
}

var _ progress.Sink = (*statusLine)(nil)

func (s *statusLine) Message(status string) {
	if s.start.IsZero() {
		s.start = time.Now()
	}
	fmt.Fprintf(os.Stderr, "[%6.1fs] %s\n", time.Since(s.start).Seconds(), status)
}

func (s *statusLine) Add(uint64) {}
func (s *statusLine) Reset()     {}

func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn("metrics server stopped", zap.Error(err))
		}
	}()
	log.Info("serving metrics", zap.String("addr", addr))
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func openResults() (results.Repository, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	repo, err := results.NewRedis(&results.RedisConfig{Client: client, TTL: cfg.Redis.TTL})
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}
	return repo, func() { _ = client.Close() }, nil
}
