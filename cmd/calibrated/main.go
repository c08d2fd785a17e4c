// Command calibrated runs the estimation-question service.
//
//	@title			Calibrated API
//	@version		1.0
//	@description	Estimation questions with hidden answers: collect guesses, then reveal and rank them.
//	@BasePath		/api/v1
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/calibrated/internal/config"
	"github.com/tbourn/calibrated/internal/repo"
	"github.com/tbourn/calibrated/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// app carries what PersistentPreRunE prepared for the subcommands.
type app struct {
	envFile string
	cfg     config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "calibrated",
		Short:         "Estimation questions with hidden answers",
		Long:          "calibrated serves the question/guess/reveal API and the Discord interactions webhook.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(a), newMigrateCmd(a), newSeedCmd(a))
	return root
}

// load reads the optional dotenv file, then the environment, and configures
// the global logger.
func (a *app) load() error {
	if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	a.cfg = cfg
	return nil
}

// openDB connects and migrates the configured database.
func (a *app) openDB() (*gorm.DB, error) {
	db, err := repo.Open(a.cfg.DB.Driver, a.cfg.DB.Path, a.cfg.DB.URL)
	if err != nil {
		return nil, err
	}
	if err := repo.AutoMigrate(db); err != nil {
		closeDB(db)
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("calibrated failed")
		os.Exit(1)
	}
}
