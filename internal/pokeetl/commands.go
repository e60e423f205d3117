package pokeetl

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/kiosk404/pokedex/internal/pkg/db"
	"github.com/kiosk404/pokedex/internal/pokeetl/etl"
	"github.com/kiosk404/pokedex/internal/pokeetl/options"
	"github.com/kiosk404/pokedex/pkg/logger"
	"github.com/kiosk404/pokedex/pkg/shutdown"
	"github.com/kiosk404/pokedex/pkg/utils/json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const (
	defaultPipelineLimit = 151
	defaultExtractLimit  = 10
)

func prepare(opts *options.Options) error {
	if errs := opts.Validate(); len(errs) != 0 {
		return errors.Join(errs...)
	}
	return logger.Init(opts.Log)
}

func newExtractor(opts *options.Options) *etl.Extractor {
	return etl.NewExtractor(etl.ExtractConfig{
		SourceURL:   opts.ExtractOptions.SourceURL,
		Timeout:     opts.ExtractOptions.Timeout,
		RetryMax:    opts.ExtractOptions.RetryMax,
		Concurrency: opts.ExtractOptions.Concurrency,
	})
}

// openStore connects to the database and makes sure the tables exist.
func openStore(ctx context.Context, opts *options.Options) (*db.DB, error) {
	store, err := db.Open(ctx, opts.DatabaseOptions)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, store); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func validateLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("--limit must be at least 1, got %d", limit)
	}
	return nil
}

func newRunPipelineCommand(opts *options.Options) *cobra.Command {
	limit := defaultPipelineLimit
	cmd := &cobra.Command{
		Use:   "run-pipeline",
		Short: "Run the full ETL pipeline (extract, transform, load)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			if err := prepare(opts); err != nil {
				return err
			}
			defer logger.FlushLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, opts)
			if err != nil {
				return err
			}
			defer store.Close()

			m, err := etl.NewPipeline(newExtractor(opts), etl.NewLoader(store)).Run(ctx, limit)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "extracted=%d transformed=%d loaded=%d duration=%s\n",
				m.Extracted, m.Transformed, m.Loaded, m.Duration.Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", limit, "Number of Pokémon to process.")
	opts.AddFlags(cmd.Flags())
	return cmd
}

func newExtractOnlyCommand(opts *options.Options) *cobra.Command {
	limit := defaultExtractLimit
	outputFile := "extracted.json"
	cmd := &cobra.Command{
		Use:   "extract-only",
		Short: "Run only the extract stage and save the records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			if err := prepare(opts); err != nil {
				return err
			}
			defer logger.FlushLog()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			records, err := newExtractor(opts).Extract(ctx, limit)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(records, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outputFile, err)
			}
			logger.Info("[Extract] extracted %d records into %s", len(records), outputFile)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", limit, "Number of Pokémon to extract.")
	cmd.Flags().StringVar(&outputFile, "output-file", outputFile, "File the extracted records are written to.")
	opts.ExtractOptions.AddFlags(cmd.Flags())
	cmd.Flags().StringVar(&opts.Log.Level, "log.level", opts.Log.Level, "Minimum log level (debug, info, warn, error).")
	return cmd
}

func newScheduleCommand(opts *options.Options) *cobra.Command {
	limit := defaultPipelineLimit
	spec := "@daily"
	metricsAddr := ""
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the pipeline periodically on a cron expression",
		Long: heredoc.Doc(`
			Run the pipeline periodically until interrupted. The expression uses the
			standard five cron fields or a descriptor such as @hourly or "@every 6h".
			A tick that fires while a run is still in progress is skipped.`),
		Example: heredoc.Doc(`
			pokeetl schedule --cron "0 3 * * *" --limit 151
			pokeetl schedule --cron "@every 6h" --metrics-addr :9102`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := validateLimit(limit); err != nil {
				return err
			}
			if err := prepare(opts); err != nil {
				return err
			}
			defer logger.FlushLog()

			store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			pipeline := etl.NewPipeline(newExtractor(opts), etl.NewLoader(store))
			scheduler, err := etl.NewScheduler(spec, limit, pipeline)
			if err != nil {
				_ = store.Close()
				return err
			}

			gs := shutdown.New()
			var metricsServer *http.Server
			if metricsAddr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.Handler())
				metricsServer = &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
				go func() {
					logger.Info("[Scheduler] serving metrics on %s/metrics", metricsAddr)
					if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("[Scheduler] metrics server stopped: %v", err)
						gs.Trigger("metrics server failure")
					}
				}()
			}

			gs.AddShutdownCallback(shutdown.Func(func(string) error {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := scheduler.Stop(ctx); err != nil {
					logger.Warn("[Scheduler] run still in progress at shutdown: %v", err)
				}
				if metricsServer != nil {
					_ = metricsServer.Shutdown(ctx)
				}
				return store.Close()
			}))
			if err := gs.Start(); err != nil {
				return err
			}

			scheduler.Start()
			<-gs.Done()
			return nil
		},
	}
	fs := cmd.Flags()
	fs.IntVar(&limit, "limit", limit, "Number of Pokémon to process on each run.")
	fs.StringVar(&spec, "cron", spec, "Cron expression or descriptor for the runs.")
	fs.StringVar(&metricsAddr, "metrics-addr", metricsAddr, "Serve Prometheus metrics on this address; empty disables.")
	opts.AddFlags(fs)
	return cmd
}

func newInitSchemaCommand(opts *options.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init-schema",
		Short: "Create the catalog tables and indexes when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := prepare(opts); err != nil {
				return err
			}
			defer logger.FlushLog()

			store, err := openStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("[Schema] catalog schema ready on %s", store.Dialect)
			return nil
		},
	}
	cmd.Flags().StringVar(&opts.Log.Level, "log.level", opts.Log.Level, "Minimum log level (debug, info, warn, error).")
	opts.DatabaseOptions.AddFlags(cmd.Flags())
	return cmd
}
