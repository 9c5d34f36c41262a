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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/safar/northwind-store/internal/api"
	"github.com/safar/northwind-store/internal/config"
	"github.com/safar/northwind-store/internal/database"
	"github.com/safar/northwind-store/internal/logger"
	"github.com/safar/northwind-store/internal/metrics"
	"github.com/safar/northwind-store/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Load config: %v", err)
	}

	l, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Build logger: %v", err)
	}
	entry := log.NewEntry(l)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		l.Fatalf("Connect to database: %v", err)
	}
	defer db.Close()

	l.WithField("driver", cfg.Database.Driver).Info("Connected to database successfully")

	handler := api.NewHandler(
		store.NewOrderRepository(db, entry),
		store.NewCatalogRepository(db),
		db,
		entry,
	)

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)
	router := handler.Router(httpMetrics.Middleware)
	router.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, server, entry); err != nil {
		l.WithError(err).Fatal("Server stopped with error")
	}
}

// serve runs server until ctx is done, then shuts it down. A listen failure
// is returned so the process can exit non-zero.
func serve(ctx context.Context, server *http.Server, entry *log.Entry) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		entry.WithField("addr", server.Addr).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		entry.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
