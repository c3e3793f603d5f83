package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/RMahshie/scmplot/internal/api"
	"github.com/RMahshie/scmplot/internal/repository/filesystem"
	"github.com/RMahshie/scmplot/internal/storage"
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the latest chart and PDR tables over HTTP",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, args []string) error { return serve() },
	}
	serveCmd.Flags().String("http-port", "", "HTTP listen port")
	bindFlag("PORT", serveCmd.Flags().Lookup("http-port"))
	rootCmd.AddCommand(serveCmd)
}

func newRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(api.ZerologLogger())
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	config := huma.DefaultConfig("scmplot viewer", api.Version)
	config.DocsPath = "/api/docs"
	humaAPI := humachi.New(router, config)

	repo := filesystem.NewArtifactRepository(storage.NewFileStore(""), cfg.Chart.Path)
	api.RegisterHealth(humaAPI)
	api.RegisterRoutes(humaAPI, repo, cfg.Extract.Glob)

	return router
}

func serve() error {
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting viewer")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return err
	case <-quit:
	}
	log.Info().Msg("Shutting down viewer...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info().Msg("Viewer exited")
	return nil
}
