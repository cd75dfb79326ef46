package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/notemaster"
	"github.com/aretw0/notemaster/pkg/core"
)

var (
	verbose  bool
	dataDir  string
	backend  string
	codec    string
	readOnly bool
	envFile  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notemaster",
	Short: "A note-taking engine with tags, search and backups",
	Long: `NoteMaster keeps your notes in a local data directory.
Every change is written through at once; search, tag filters and sorting
run over the whole collection.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", "", "Data directory (default $NOTEMASTER_DIR or the user data dir)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: fs, sqlite or memory")
	rootCmd.PersistentFlags().StringVar(&codec, "codec", "", "Stored value encoding: json or yaml")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Never write to the data directory")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file with NOTEMASTER_* variables")
}

// openApp resolves the configuration (dotenv, environment, then flags) and
// opens the data directory.
func openApp(cmd *cobra.Command) (*notemaster.App, error) {
	cfg, err := notemaster.LoadConfig(envFile)
	if err != nil {
		return nil, err
	}

	opts := []notemaster.Option{
		notemaster.WithConfig(cfg),
		notemaster.WithLogger(slog.Default()),
	}
	dir := cfg.Dir
	flags := cmd.Flags()
	if flags.Changed("dir") {
		dir = dataDir
	}
	if flags.Changed("backend") {
		opts = append(opts, notemaster.WithBackend(backend))
	}
	if flags.Changed("codec") {
		opts = append(opts, notemaster.WithFormat(codec))
	}
	if flags.Changed("read-only") {
		opts = append(opts, notemaster.WithReadOnly(readOnly))
	}

	app, err := notemaster.Open(cmd.Context(), dir, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dir, err)
	}
	return app, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid note id %q", arg)
	}
	return id, nil
}

// lookup returns the note named by arg or a wrapped core.ErrNotFound.
func lookup(app *notemaster.App, arg string) (core.Note, error) {
	id, err := parseID(arg)
	if err != nil {
		return core.Note{}, err
	}
	n, ok := app.Store.Get(id)
	if !ok {
		return core.Note{}, fmt.Errorf("note %d: %w", id, core.ErrNotFound)
	}
	return n, nil
}

// reportPersist warns on stderr when a change could not be stored.
func reportPersist(cmd *cobra.Command, status core.PersistStatus) {
	if status == core.PersistDegraded {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: change kept in memory only, storage write failed")
	}
}
