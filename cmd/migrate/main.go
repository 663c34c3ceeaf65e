package main

import (
	"errors"
	"fmt"
	"os"

	"linkea/internal/db/migrations"

	"github.com/caarlos0/env/v6"
	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

type config struct {
	PostgresqlURL string `env:"POSTGRESQL_URL,required"`
}

const usage = "usage: migrate up|down|version"

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	log := logger.Sugar()

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg := config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalw("Could not load configuration.", "err", err)
	}

	m, err := migrations.New(cfg.PostgresqlURL)
	if err != nil {
		log.Fatalw("Could not initialize migrations.", "err", err)
	}
	defer m.Close()

	switch os.Args[1] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		version, dirty, verr := m.Version()
		if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
			log.Fatalw("Could not read schema version.", "err", verr)
		}
		log.Infow("Schema version.", "version", version, "dirty", dirty)
		return
	default:
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Infow("Schema is up to date.")
		return
	}
	if err != nil {
		log.Fatalw("Migration failed.", "command", os.Args[1], "err", err)
	}
	version, _, _ := m.Version()
	log.Infow("Migration applied.", "command", os.Args[1], "version", version)
}
