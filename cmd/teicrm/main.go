package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/cayleygraph/quad"
	"github.com/coolbeans/teicrm/pkg/config"
	"github.com/coolbeans/teicrm/pkg/ingest"
	"github.com/coolbeans/teicrm/pkg/mapping"
	"github.com/coolbeans/teicrm/pkg/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "teicrm",
		Short: "TEI to CIDOC-CRM mapper",
		Long: `teicrm converts TEI-encoded prosopographical and geographical
markup into CIDOC-CRM triples.

Every tei:person, tei:place and tei:org with an xml:id becomes a subject
below the configured domain, described with:
  - identifiers and appellations
  - occupations, affiliations, births, deaths and events (persons)
  - coordinates (places)

The output is N-Triples.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(watchCmd())
	rootCmd.AddCommand(configCmd())
	return rootCmd
}

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert TEI documents to N-Triples",
		Long: `Convert one or more TEI documents into a single CIDOC-CRM graph.

Sources may be file paths or glob patterns; "**" matches any number of
directories.

Example:
  teicrm convert --source listperson.xml
  teicrm convert --source 'data/**/*.xml' --output graph.nt --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, _ := cmd.Flags().GetStringSlice("source")
			output, _ := cmd.Flags().GetString("output")
			showStats, _ := cmd.Flags().GetBool("stats")

			if len(sources) == 0 {
				return fmt.Errorf("--source flag is required")
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			builder := ingest.NewBuilder(mapping.New(cfg.MappingConfig(logger)), cfg.IngestOptions())
			graph, stats, err := builder.BuildSources(sources)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}

			written, err := writeGraph(cmd.OutOrStdout(), output, graph)
			if err != nil {
				return err
			}
			logger.Infow("graph written", "output", outputName(output), "triples", written)

			if showStats {
				printStats(cmd.ErrOrStderr(), stats, graph)
			}
			return nil
		},
	}

	addMappingFlags(cmd)
	cmd.Flags().Bool("stats", false, "Show entity statistics on stderr")
	return cmd
}

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Convert TEI documents again whenever they change",
		Long: `Convert the sources once, then again on every change to the
directories holding them, until interrupted.

Example:
  teicrm watch --source 'data/*.xml' --output graph.nt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, _ := cmd.Flags().GetStringSlice("source")
			output, _ := cmd.Flags().GetString("output")
			debounce, _ := cmd.Flags().GetDuration("debounce")

			if len(sources) == 0 {
				return fmt.Errorf("--source flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if cmd.Flags().Changed("debounce") {
				cfg.Watch.Debounce = debounce
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			builder := ingest.NewBuilder(mapping.New(cfg.MappingConfig(logger)), cfg.IngestOptions())
			return builder.Watch(ctx, sources, ingest.WatchOptions{Debounce: cfg.Watch.Debounce},
				func(graph *store.Graph, stats *ingest.BuildStats, err error) {
					if err != nil {
						logger.Errorw("conversion failed", "error", err)
						return
					}
					written, err := writeGraph(cmd.OutOrStdout(), output, graph)
					if err != nil {
						logger.Errorw("writing graph failed", "error", err)
						return
					}
					logger.Infow("graph written",
						"output", output,
						"triples", written,
						"persons", stats.Persons,
						"places", stats.Places,
						"orgs", stats.Orgs,
						"skipped", stats.Skipped,
						"rejected", stats.Rejected)
				})
		},
	}

	addMappingFlags(cmd)
	cmd.Flags().Duration("debounce", ingest.DefaultDebounce, "Wait this long for further changes before converting")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage teicrm configuration",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ProjectConfigFile
			if len(args) > 0 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.DefaultConfig().SaveToFile(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			data, err := cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	addMappingFlags(showCmd)

	cmd.AddCommand(initCmd)
	cmd.AddCommand(showCmd)
	return cmd
}

func addMappingFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("source", "s", nil, "Source TEI files or glob patterns")
	cmd.Flags().StringP("output", "o", "", "Output N-Triples file (default: stdout)")
	cmd.Flags().StringP("config", "c", "", "Config file (default: teicrm.yaml in the current or a parent directory)")
	cmd.Flags().String("domain", "", "Base IRI of entity subjects")
	cmd.Flags().String("type-domain", "", "Base IRI of generated types")
	cmd.Flags().String("lang", "", "Default language tag")
	cmd.Flags().Bool("strict", false, "Fail on entities without xml:id")
	cmd.Flags().BoolP("verbose", "v", false, "Log skipped structures")
}

// loadConfig resolves the configuration of cmd and builds its logger.
func loadConfig(cmd *cobra.Command) (*config.Config, *zap.SugaredLogger, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	bootstrap, err := newLogger(verbose)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.NewLoader(bootstrap).Load(configPath)
	if err != nil {
		bootstrap.Sync()
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	overrides := &config.Config{}
	overrides.Domain, _ = cmd.Flags().GetString("domain")
	overrides.TypeDomain, _ = cmd.Flags().GetString("type-domain")
	overrides.DefaultLang, _ = cmd.Flags().GetString("lang")
	overrides.Strict, _ = cmd.Flags().GetBool("strict")
	overrides.Verbose = verbose
	cfg.Merge(overrides)

	if err := cfg.Validate(); err != nil {
		bootstrap.Sync()
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Verbose == verbose {
		return cfg, bootstrap, nil
	}
	bootstrap.Sync()
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newLogger returns a debug-level development logger when verbose and a
// production logger otherwise. Both write to stderr.
func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	var zapConfig zap.Config
	if verbose {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.Sampling = nil
	}
	zapConfig.OutputPaths = []string{"stderr"}

	logger, err := zapConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger.Sugar(), nil
}

// writeGraph writes graph as N-Triples to path, or to stdout when path is
// empty.
func writeGraph(stdout io.Writer, path string, graph *store.Graph) (int, error) {
	if path == "" {
		return store.WriteNTriples(stdout, graph)
	}

	file, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create %s: %w", path, err)
	}
	written, err := store.WriteNTriples(file, graph)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	return written, err
}

func outputName(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func printStats(w io.Writer, stats *ingest.BuildStats, graph *store.Graph) {
	fmt.Fprintln(w, "\nGraph Statistics:")
	fmt.Fprintf(w, "  Total triples:    %d\n", stats.TotalTriples)
	fmt.Fprintf(w, "  Persons:          %d\n", stats.Persons)
	fmt.Fprintf(w, "  Places:           %d\n", stats.Places)
	fmt.Fprintf(w, "  Organisations:    %d\n", stats.Orgs)
	fmt.Fprintf(w, "  Skipped:          %d\n", stats.Skipped)
	fmt.Fprintf(w, "  Rejected:         %d\n", stats.Rejected)

	if graph == nil || graph.IsEmpty() {
		return
	}

	counts := graph.Stats().PredicateCounts
	predicates := make([]string, 0, len(counts))
	for predicate := range counts {
		predicates = append(predicates, predicate)
	}
	sort.Slice(predicates, func(i, j int) bool {
		if counts[predicates[i]] != counts[predicates[j]] {
			return counts[predicates[i]] > counts[predicates[j]]
		}
		return predicates[i] < predicates[j]
	})

	fmt.Fprintln(w, "\nPredicates:")
	for _, predicate := range predicates {
		fmt.Fprintf(w, "  %-40s %d\n", store.Compact(quad.IRI(predicate)), counts[predicate])
	}
}
