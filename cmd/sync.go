package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	portfolioHttp "github.com/glbter/portfolio-dashboard/http"
	"github.com/glbter/portfolio-dashboard/refresher"
)

const shutdownTimeout = 10 * time.Second

// ExecuteSync serves the dashboard until ctx is cancelled.
func ExecuteSync(ctx context.Context, cfg Config, logger *zap.Logger) error {
	ref, err := newRefresher(cfg, logger)
	if err != nil {
		return err
	}
	return serve(ctx, cfg, ref, logger)
}

func newRouter(ref *refresher.Refresher, logger *zap.Logger) chi.Router {
	handler := portfolioHttp.PortfolioHandler{
		Refresher: ref,
		Logger:    logger,
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	handler.Register(r)
	return r
}

func serve(ctx context.Context, cfg Config, ref *refresher.Refresher, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		ref.Run(ctx)
	}()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(ref, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server is starting", zap.String("addr", cfg.HTTPAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		cancel()
		<-done
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server is stopping")

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()

	err := srv.Shutdown(shutdownCtx)
	<-done
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}
