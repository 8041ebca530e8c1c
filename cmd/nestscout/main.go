package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nestscout/nestscout/internal/agent"
	"github.com/nestscout/nestscout/internal/catalog"
	"github.com/nestscout/nestscout/internal/config"
	"github.com/nestscout/nestscout/internal/domain/search/filter"
	"github.com/nestscout/nestscout/internal/evaluation"
	"github.com/nestscout/nestscout/internal/index"
	"github.com/nestscout/nestscout/internal/logger"
	"github.com/nestscout/nestscout/internal/metrics"
	"github.com/nestscout/nestscout/internal/store"
	memorystore "github.com/nestscout/nestscout/internal/store/memory"
	redisstore "github.com/nestscout/nestscout/internal/store/redis"
	"github.com/nestscout/nestscout/internal/transport/httpapi"
	openaitransport "github.com/nestscout/nestscout/internal/transport/openai"
	"github.com/nestscout/nestscout/internal/version"
)

// app holds the wired components behind every command.
type app struct {
	cfg    config.Config
	log    *zap.Logger
	store  store.Store
	index  *index.Index
	agent  *agent.Agent
	judge  *evaluation.Judge
	closer func()
}

func buildApp(ctx context.Context, enriched bool) (*app, error) {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(env, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	metrics.Register()

	var st store.Store
	switch cfg.Database.Driver {
	case "redis":
		rs, err := redisstore.New(redisstore.Config{
			Addrs:     cfg.Database.Addrs,
			Password:  cfg.Database.Password,
			KeyPrefix: cfg.Database.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("init redis store: %w", err)
		}
		timeout := time.Duration(cfg.Database.ReadinessTimeout) * time.Second
		if err := rs.WaitForReady(ctx, timeout); err != nil {
			rs.Close()
			return nil, err
		}
		st = rs
	case "memory":
		st = memorystore.New()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}

	embedder := openaitransport.NewEmbedder(&openaitransport.Config{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.EmbeddingModel,
		Dimensions: cfg.OpenAI.Dimensions,
		Logger:     log,
	})
	chat := openaitransport.NewChatClient(&openaitransport.Config{
		APIKey:    cfg.OpenAI.APIKey,
		BaseURL:   cfg.OpenAI.BaseURL,
		Model:     cfg.OpenAI.ChatModel,
		MaxTokens: cfg.OpenAI.MaxTokens,
		Logger:    log,
	})
	judgeChat := openaitransport.NewChatClient(&openaitransport.Config{
		APIKey:    cfg.OpenAI.APIKey,
		BaseURL:   cfg.OpenAI.BaseURL,
		Model:     cfg.Evaluation.JudgeModel,
		MaxTokens: cfg.OpenAI.MaxTokens,
		Logger:    log,
	})

	ix := index.New(embedder, st, index.Options{
		Dimensions: cfg.OpenAI.Dimensions,
		Enriched:   enriched,
	}, log)

	return &app{
		cfg:   cfg,
		log:   log,
		store: st,
		index: ix,
		agent: agent.New(ix, chat, cfg.Search.TopK, log),
		judge: evaluation.NewJudge(judgeChat, log),
		closer: func() {
			st.Close()
			_ = log.Sync()
		},
	}, nil
}

func main() {
	var enriched bool

	root := &cobra.Command{
		Use:           "nestscout",
		Short:         "Semantic property search with a built-in retrieval evaluation harness",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&enriched, "enriched", false,
		"embed listings with structured attributes folded into the text")

	root.AddCommand(
		newServeCmd(&enriched),
		newIngestCmd(&enriched),
		newSearchCmd(&enriched),
		newEvaluateCmd(&enriched),
		newStatsCmd(&enriched),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newServeCmd(enriched *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := buildApp(ctx, *enriched)
			if err != nil {
				return err
			}
			defer a.closer()

			srv := &http.Server{
				Addr:         fmt.Sprintf(":%d", a.cfg.HTTP.Port),
				Handler:      httpapi.NewServer(a.agent, a.log).Router(),
				ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
				WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("http server starting", zap.Int("port", a.cfg.HTTP.Port))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newIngestCmd(enriched *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Create the search index and load the seed listings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), *enriched)
			if err != nil {
				return err
			}
			defer a.closer()

			if err := a.index.EnsureIndex(cmd.Context()); err != nil {
				return fmt.Errorf("ensure index: %w", err)
			}

			listings, err := catalog.Listings()
			if err != nil {
				return err
			}

			res := a.index.UpsertBatch(cmd.Context(), listings)
			fmt.Printf("Ingested %d listings (%d failed)\n", res.Succeeded, res.Failed)
			if res.Failed > 0 {
				return fmt.Errorf("%d listings failed to ingest", res.Failed)
			}
			return nil
		},
	}
}

func newSearchCmd(enriched *bool) *cobra.Command {
	var spec filterFlags

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search for properties",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd.Context(), *enriched)
			if err != nil {
				return err
			}
			defer a.closer()

			resp, err := a.agent.Search(cmd.Context(), args[0], spec.toSpec())
			if err != nil {
				return err
			}
			fmt.Println(resp)
			return nil
		},
	}
	spec.register(cmd)
	return cmd
}

func newEvaluateCmd(enriched *bool) *cobra.Command {
	var ingestFirst bool

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Run the retrieval configuration comparison",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), *enriched)
			if err != nil {
				return err
			}
			defer a.closer()

			listings, err := catalog.Listings()
			if err != nil {
				return err
			}

			if ingestFirst {
				if err := a.index.EnsureIndex(cmd.Context()); err != nil {
					return fmt.Errorf("ensure index: %w", err)
				}
				res := a.index.UpsertBatch(cmd.Context(), listings)
				if res.Failed > 0 {
					return fmt.Errorf("%d listings failed to ingest", res.Failed)
				}
			}

			pipeline := evaluation.NewPipeline(a.agent, a.judge, listings, catalog.Queries(), a.log)
			results, err := pipeline.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Print(evaluation.RenderReport(results.Summaries, evaluation.Configurations()))

			path := a.cfg.Evaluation.ResultsPath
			if err := evaluation.WriteJSON(path, results); err != nil {
				return err
			}
			fmt.Printf("Results written to %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&ingestFirst, "ingest", false, "ingest the seed listings before evaluating")
	return cmd
}

func newStatsCmd(enriched *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := buildApp(cmd.Context(), *enriched)
			if err != nil {
				return err
			}
			defer a.closer()

			stats, err := a.agent.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total vectors: %d\n", stats.TotalVectors)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(*cobra.Command, []string) {
			fmt.Printf("nestscout %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}
}

// filterFlags collects search constraint flags.
type filterFlags struct {
	propertyType string
	city         string
	state        string
	neighborhood string
	minBedrooms  int
	minBathrooms float64
	minPrice     int
	maxPrice     int
	amenities    []string
	status       string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.propertyType, "type", "", "property type (house, condo, ...)")
	fl.StringVar(&f.city, "city", "", "city")
	fl.StringVar(&f.state, "state", "", "2-letter state")
	fl.StringVar(&f.neighborhood, "neighborhood", "", "neighborhood")
	fl.IntVar(&f.minBedrooms, "min-bedrooms", 0, "minimum bedrooms")
	fl.Float64Var(&f.minBathrooms, "min-bathrooms", 0, "minimum bathrooms")
	fl.IntVar(&f.minPrice, "min-price", 0, "minimum price")
	fl.IntVar(&f.maxPrice, "max-price", 0, "maximum price")
	fl.StringSliceVar(&f.amenities, "amenities", nil, "required amenities")
	fl.StringVar(&f.status, "status", "", "listing status")
}

func (f *filterFlags) toSpec() filter.Spec {
	spec := filter.Spec{
		PropertyType:      f.propertyType,
		City:              f.city,
		State:             f.state,
		Neighborhood:      f.neighborhood,
		RequiredAmenities: f.amenities,
		Status:            f.status,
	}
	if f.minBedrooms > 0 {
		spec.MinBedrooms = &f.minBedrooms
	}
	if f.minBathrooms > 0 {
		spec.MinBathrooms = &f.minBathrooms
	}
	if f.minPrice > 0 {
		spec.MinPrice = &f.minPrice
	}
	if f.maxPrice > 0 {
		spec.MaxPrice = &f.maxPrice
	}
	return spec
}
