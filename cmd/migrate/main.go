// Command migrate applies the SQL migrations in ./migrations with goose.
package main

import (
	"flag"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/flightdesk/flightdesk-api/pkg/config"
	"github.com/flightdesk/flightdesk-api/pkg/logger"
)

func main() {
	dir := flag.String("dir", "migrations", "migrations directory")
	down := flag.Bool("down", false, "roll back the latest migration instead of applying")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	sqlDB, err := goose.OpenDBWithDriver("pgx", cfg.DB.ConnectionString())
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer func() { _ = sqlDB.Close() }()

	if *down {
		if err := goose.Down(sqlDB, *dir); err != nil {
			log.Fatal().Err(err).Msg("goose down")
		}
		log.Info().Msg("rolled back latest migration")
		return
	}
	if err := goose.Up(sqlDB, *dir); err != nil {
		log.Fatal().Err(err).Msg("goose up")
	}
	log.Info().Msg("migrations applied")
}
