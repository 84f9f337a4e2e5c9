// Package cmd is for command line interactions with the phamfasta application
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/yumyai/phamfasta/config"
	"github.com/yumyai/phamfasta/logger"
	"github.com/yumyai/phamfasta/pkg/db"
	"go.uber.org/zap"
)

const VERSION = "0.1.0"

var cfg config.Config

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "phamfasta",
	Short: "Export gene and genome sequences from a Phamerator database as FASTA archives",
	Long: `Export gene and genome sequences from a Phamerator database as FASTA archives.

Select phages by name, cluster (prefix matched, "Singleton" for unclustered
phages) and pham, then write one FASTA file per phage (nested by cluster) or
one per pham.`,
	Version:       VERSION,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotEnv(); err != nil {
			// logger is not up yet
			fmt.Fprintln(os.Stderr, "No .env found, using local environment")
		}

		c, err := config.NewConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = c

		if err := logger.InitLogger(logger.ParseLevel(cfg.Log.Level)); err != nil {
			return err
		}
		logger.Debug("Config loaded", zap.Any("config", cfg))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	config.SetDefaults(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.String("db-driver", "sqlite", "database/sql driver: sqlite or pgx")
	flags.String("db", "./data/phamerator.db", "sqlite file or postgres URL of the Phamerator database")
	flags.String("archive-root", "FASTA-files", "directory that receives one sub-directory per run")
	flags.String("log-level", "info", "debug, info, warn or error")

	// Bind the parameters to viper
	viper.BindPFlag("db.driver", flags.Lookup("db-driver"))
	viper.BindPFlag("db.dsn", flags.Lookup("db"))
	viper.BindPFlag("archive.root", flags.Lookup("archive-root"))
	viper.BindPFlag("log.level", flags.Lookup("log-level"))
}

// openStore opens the configured database and checks it is reachable.
func openStore(ctx context.Context) (*db.Store, error) {
	store, err := db.Open(cfg.DB.Driver, cfg.DB.DSN)
	if err != nil {
		return nil, err
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("connect to %s database: %w", cfg.DB.Driver, err)
	}
	loc := cfg.DB.DSN
	if cfg.DB.Driver == db.DriverPostgres {
		loc = "(postgres url)" // may carry credentials
	}
	logger.Info("Open database on", zap.String("driver", cfg.DB.Driver), zap.String("DB_LOC", loc))
	return store, nil
}
