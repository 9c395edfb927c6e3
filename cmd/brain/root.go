package main

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/secondbrain/brain-client/internal/config"
	"github.com/secondbrain/brain-client/internal/di"
	"github.com/secondbrain/brain-client/internal/notice"
)

// app carries state shared by every subcommand of one invocation.
type app struct {
	flags    config.Flags
	injector *do.RootScope
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "brain",
		Short: "Save and share links in your second brain",
		Long: `brain talks to a second brain REST API.

Sign in once, then save YouTube videos, X posts and other links with tags,
list what you saved, and publish a read-only link to the whole collection.
"brain serve" starts the same workflows as a local web UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a.injector = di.NewContainer(a.flags)
			if err := di.Bootstrap(a.injector); err != nil {
				_ = a.shutdown(cmd)
				return fmt.Errorf("failed to start: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.shutdown(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.Env, "env", "", "Environment: development, staging or production (env ENV)")
	pf.StringVar(&a.flags.EnvFile, "env-file", "", "Path to a .env file (default .env)")
	pf.StringVar(&a.flags.LogLevel, "log-level", "", "Log level: debug, info, warn or error (env LOG_LEVEL)")
	pf.StringVar(&a.flags.APIBaseURL, "api-url", "", "Base URL of the REST API (env API_BASE_URL)")
	pf.StringVar(&a.flags.ClientOrigin, "origin", "", "Origin share links are built on (env CLIENT_ORIGIN)")
	pf.StringVar(&a.flags.StorageDriver, "storage-driver", "", "Token storage: badger, sqlite or memory (env STORAGE_DRIVER)")
	pf.StringVar(&a.flags.StoragePath, "storage-path", "", "Token storage location (env STORAGE_PATH)")

	root.AddCommand(
		a.newServeCmd(),
		a.newSignupCmd(),
		a.newLoginCmd(),
		a.newLogoutCmd(),
		a.newStatusCmd(),
		a.newListCmd(),
		a.newAddCmd(),
		a.newShareCmd(),
		a.newRevokeCmd(),
	)

	return root
}

// shutdown prints whatever the workflows reported and releases resources.
func (a *app) shutdown(cmd *cobra.Command) error {
	if a.injector == nil {
		return nil
	}
	a.flushNotices(cmd)

	injector := a.injector
	a.injector = nil
	if err := di.Shutdown(injector); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (a *app) flushNotices(cmd *cobra.Command) {
	queue, err := do.Invoke[*notice.Queue](a.injector)
	if err != nil {
		return
	}
	w := &notice.Writer{Out: cmd.OutOrStdout()}
	for _, n := range queue.Drain() {
		w.Notify(n)
	}
}

// run wraps a command body so notices are printed and resources released
// even when the body fails. Cobra skips post-run hooks on error.
func (a *app) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		if err != nil {
			_ = a.shutdown(cmd)
		}
		return err
	}
}
