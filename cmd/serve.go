package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/archive"
	"github.com/yumyai/phamfasta/pkg/extract"
	"github.com/yumyai/phamfasta/pkg/handler"
	"go.uber.org/zap"
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the export API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		dbctx := &handler.DBContext{
			Repo: store,
			Export: extract.Options{
				ArchiveRoot: cfg.Archive.Root,
				CacheSize:   cfg.Cache.Genomes,
				Archive: archive.Options{
					Gzip:      cfg.Archive.Gzip,
					LineWidth: cfg.Archive.LineWidth,
				},
			},
		}

		srv := &http.Server{
			Addr:    cfg.Server.Addr,
			Handler: handler.NewRouter(dbctx),
		}

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Info("Start:", zap.String("Version", VERSION))
		logger.Info("Server starting on", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Error starting server:", zap.String("error message", err.Error()))
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "0.0.0.0:8080", "listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}
