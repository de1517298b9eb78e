package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/classify"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/config"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/project"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/propagate"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/row"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/rules"
	"github.com/fkiliver/RPGMaker-LLM-Translator/internal/translate"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// storeOpener opens the project table a command writes back to.
type storeOpener func(ctx context.Context) (project.Store, error)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if !cfg.EnvFileLoaded {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	rootCmd := newRootCmd(func(ctx context.Context) (project.Store, error) {
		return project.Open(ctx, cfg)
	})
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open storeOpener) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rpgm-tagger",
		Short: "Tag and annotate Translator++ rows of RPG Maker projects by context path",
		Long: `Classifies a Translator++ row as yellow (every context path is translatable)
or green (some are), and copies a green row's translation onto the parameters
of its translatable context paths.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("output", "o", formatJSON, "Output format: json or yaml")

	table := rules.Default()
	classifier := classify.NewClassifier(table)

	rootCmd.AddCommand(classifyCmd(classifier))
	rootCmd.AddCommand(propagateCmd(table, open))
	rootCmd.AddCommand(annotateCmd(classifier, table, open))
	rootCmd.AddCommand(matchCmd(table))
	rootCmd.AddCommand(rulesCmd(table))
	rootCmd.AddCommand(showCmd(open))
	rootCmd.AddCommand(prepCmd())

	return rootCmd
}

func classifyCmd(classifier *classify.Classifier) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [row.json]",
		Short: "Recompute the yellow/green tag of one row",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readRow(cmd, args)
			if err != nil {
				return err
			}
			classifier.Classify(r)
			logRow("Row classified", r)
			return writeOutput(cmd, r)
		},
	}
}

func propagateCmd(table *rules.Table, open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "propagate [row.json]",
		Short: "Copy a green row's translation onto its translatable paths and write it to the project table",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readRow(cmd, args)
			if err != nil {
				return err
			}
			return withStore(cmd, open, func(ctx context.Context, store project.Store) error {
				if err := propagate.NewPropagator(table, store).Propagate(ctx, r); err != nil {
					return err
				}
				logRow("Row propagated", r)
				return writeOutput(cmd, r)
			})
		},
	}
}

func annotateCmd(classifier *classify.Classifier, table *rules.Table, open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "annotate [row.json]",
		Short: "Classify a row, then propagate its translation if it turned green",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := readRow(cmd, args)
			if err != nil {
				return err
			}
			return withStore(cmd, open, func(ctx context.Context, store project.Store) error {
				classifier.Classify(r)
				if err := propagate.NewPropagator(table, store).Propagate(ctx, r); err != nil {
					return err
				}
				logRow("Row annotated", r)
				return writeOutput(cmd, r)
			})
		},
	}
}

func matchCmd(table *rules.Table) *cobra.Command {
	return &cobra.Command{
		Use:   "match <path>...",
		Short: "Show which rule, if any, accepts each context path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, path := range args {
				name := "-"
				if rule, ok := table.Match(path); ok {
					name = rule.Name
				}
				fmt.Fprintf(out, "%s\t%s\n", path, name)
			}
			return nil
		},
	}
}

func rulesCmd(table *rules.Table) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the translatable path rules in evaluation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, r := range table.Rules() {
				fmt.Fprintf(out, "%-22s %s\n", r.Name, r.Source)
			}
			return nil
		},
	}
}

func showCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "show <file> <rowId>",
		Short: "Print the parameters stored in the project table for one row",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rowID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parse row id %q: %w", args[1], err)
			}
			return withStore(cmd, open, func(ctx context.Context, store project.Store) error {
				params, found, err := store.ReadParameters(ctx, args[0], rowID)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("no parameters stored for %s#%d", args[0], rowID)
				}
				return writeOutput(cmd, params)
			})
		},
	}
}

func prepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prep [text]",
		Short: "Show how a cell value is split and shielded before it is sent for translation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				text = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read text: %w", err)
				}
				text = string(data)
			}

			segments := translate.Prepare(text)
			log.Info().Int("segments", len(segments)).Msg("Value prepared")
			return writeOutput(cmd, segments)
		},
	}
}

// withStore opens the project table for the duration of fn.
func withStore(cmd *cobra.Command, open storeOpener, fn func(ctx context.Context, store project.Store) error) error {
	ctx, cancel := setupContext(cmd.Context())
	defer cancel()

	store, err := open(ctx)
	if err != nil {
		return fmt.Errorf("open project store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close project store")
		}
	}()

	return fn(ctx, store)
}

// setupContext creates a cancellable context with signal handling.
func setupContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// readRow decodes the host row from the named file, or stdin when the
// argument is missing or "-".
func readRow(cmd *cobra.Command, args []string) (*row.Binding, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, fmt.Errorf("read row: %w", err)
	}
	return row.DecodeBinding(data)
}

func logRow(msg string, r row.Row) {
	file, rowID := r.Key()
	log.Info().
		Str("file", file).
		Int("row", rowID).
		Strs("tags", r.GetTags()).
		Msg(msg)
}
