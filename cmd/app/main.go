package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"travelplanner/cmd/fx/config_fx"
	"travelplanner/cmd/fx/controllers_fx"
	"travelplanner/cmd/fx/geocode_fx"
	"travelplanner/cmd/fx/logger_fx"
	"travelplanner/cmd/fx/memcache_fx"
	"travelplanner/cmd/fx/planner_fx"
	"travelplanner/cmd/fx/prompt_fx"
	"travelplanner/cmd/fx/research_fx"
	"travelplanner/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "travelplanner",
	Short: "AI trip planner",
	Long: `travelplanner gathers city facts, points of interest and weather, asks a text
generation backend for transit advice and a day-by-day itinerary, and splits the budget.`,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := fx.New(
			coreModules(),
			controllers_fx.Module,
			fx.Invoke(StartServer),
		)
		app.Run()
		return app.Err()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// coreModules wires everything a planning run needs.
func coreModules() fx.Option {
	return fx.Options(
		config_fx.Module,
		logger_fx.Module,
		memcache_fx.Module,
		geocode_fx.Module,
		research_fx.Module,
		prompt_fx.Module,
		planner_fx.Module,
	)
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr), zap.String("provider", cfg.ProviderLabel()))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
