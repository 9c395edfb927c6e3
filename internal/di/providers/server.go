package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/secondbrain/brain-client/internal/api"
	"github.com/secondbrain/brain-client/internal/config"
	"github.com/secondbrain/brain-client/internal/dashboard"
	"github.com/secondbrain/brain-client/internal/form"
	"github.com/secondbrain/brain-client/internal/logger"
	"github.com/secondbrain/brain-client/internal/notice"
	"github.com/secondbrain/brain-client/internal/service"
	"github.com/secondbrain/brain-client/internal/share"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	handler  *api.Server
	listener net.Listener
}

// ListenAddr is the address the server is bound to.
func (h *HTTPServerHandle) ListenAddr() net.Addr {
	return h.listener.Addr()
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	defer h.handler.Close()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the local UI server.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	tokens := do.MustInvoke[*AuthStoreHandle](i)

	services := &api.Services{
		Auth:      do.MustInvoke[*service.AuthService](i),
		Session:   tokens.Store,
		Dashboard: do.MustInvoke[*dashboard.Dashboard](i),
		Form:      do.MustInvoke[*form.Form](i),
		Share:     do.MustInvoke[*share.Workflow](i),
		Notices:   do.MustInvoke[*notice.Queue](i),
	}

	handler := api.NewServer(services, api.Options{
		Origin:            cfg.Client.Origin,
		LoginPath:         cfg.Client.LoginPath,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		AuthRatePerMinute: cfg.Auth.RatePerMinute,
		AuthBurst:         cfg.Auth.Burst,
	}, log.Logger)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Bind before returning so a busy port fails startup.
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		handler.Close()
		return nil, fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}

	// Start in background
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	log.Info("Brain client UI running", "addr", ln.Addr().String(), "origin", cfg.Client.Origin)

	return &HTTPServerHandle{Server: srv, handler: handler, listener: ln}, nil
}
