package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/techtonix/compass/internal/apiclient"
	"github.com/techtonix/compass/internal/config"
	"github.com/techtonix/compass/internal/profile"
	"github.com/techtonix/compass/internal/session"
	"github.com/techtonix/compass/internal/storage"
)

var (
	version = "dev"
	commit  = "none"
)

// noColor disables ANSI colors in output helpers. Set from --no-color or
// ui.no_color.
var noColor bool

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "compass",
		Short:         "Career guidance dashboard for the terminal",
		Long:          "compass captures a short learner profile and browses learning-resource recommendations for it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newProfileCmd(),
		newRecommendCmd(),
		newDashboardCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "compass %s (commit: %s)\n", version, commit)
		},
	}
}

// loadConfig is replaced in tests.
var loadConfig = config.Load

// env holds what a command needs: config, the durable store and the API
// client authenticated from the stored session.
type env struct {
	cfg      config.Config
	store    *storage.Store
	sessions *session.Store
	profiles *profile.Store
	api      *apiclient.Client
}

// openEnv loads config, configures logging to logOut and opens the store.
// Loggers must be configured before the stores are built.
func openEnv(logOut io.Writer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogging(logOut, cfg)
	if cfg.UI.NoColor {
		noColor = true
	}

	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening storage: %w", err)
	}

	sessions := session.NewStore(store)
	return &env{
		cfg:      cfg,
		store:    store,
		sessions: sessions,
		profiles: profile.NewStore(store),
		api:      apiclient.New(cfg.API.BaseURL, sessions, nil),
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// requireLogin is the CLI counterpart of the dashboard's route guard.
func (e *env) requireLogin() (session.Session, error) {
	sess, err := e.sessions.Require()
	if err != nil {
		return session.Session{}, fmt.Errorf("%w: run `compass login` first", err)
	}
	return sess, nil
}

func setupLogging(w io.Writer, cfg config.Config) {
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
}
