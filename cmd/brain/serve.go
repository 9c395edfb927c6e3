package main

import (
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"
	"github.com/spf13/cobra"

	"github.com/secondbrain/brain-client/internal/di"
	"github.com/secondbrain/brain-client/internal/logger"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local web UI",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, _ []string) error {
			if err := di.StartServer(a.injector); err != nil {
				return err
			}
			log := do.MustInvoke[*logger.Logger](a.injector)

			// Wait for shutdown signal
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			log.Info("Shutting down gracefully...")
			return nil
		}),
	}

	f := cmd.Flags()
	f.StringVar(&a.flags.Host, "host", "", "Interface to listen on (env SERVER_HOST, default 127.0.0.1)")
	f.StringVar(&a.flags.Port, "port", "", "Port to listen on (env SERVER_PORT)")
	f.StringVar(&a.flags.LoginPath, "login-path", "", "Where anonymous visitors are sent (env LOGIN_PATH)")
	f.StringVar(&a.flags.ReadTimeout, "read-timeout", "", "HTTP read timeout (env SERVER_READ_TIMEOUT)")
	f.StringVar(&a.flags.WriteTimeout, "write-timeout", "", "HTTP write timeout (env SERVER_WRITE_TIMEOUT)")
	f.StringVar(&a.flags.IdleTimeout, "idle-timeout", "", "HTTP idle timeout (env SERVER_IDLE_TIMEOUT)")
	f.StringVar(&a.flags.AllowedOrigins, "cors-origins", "", "Comma-separated CORS origins (env CORS_ALLOWED_ORIGINS)")
	return cmd
}
