// migrate aplica el esquema embebido en migrations/ sobre la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|steps N|version]
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/costeo-fifo/internal/infrastructure/migration"
	"github.com/jhoicas/costeo-fifo/migrations"
	"github.com/jhoicas/costeo-fifo/pkg/config"
	"github.com/jhoicas/costeo-fifo/pkg/logger"
)

func main() {
	logLevel := flag.String("log-level", "info", "nivel de log (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: *logLevel, Service: "migrate"})

	m, err := migration.New(migrations.FS, cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}()

	switch args[0] {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps":
		if len(args) < 2 {
			usage()
			os.Exit(1)
		}
		n, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			log.Fatal().Str("n", args[1]).Msg("steps requiere un entero")
		}
		err = m.Steps(n)
	case "version":
		v, dirty, verr := m.Version()
		err = verr
		if verr == nil {
			log.Info().Uint("version", v).Bool("dirty", dirty).Msg("versión actual")
		}
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Error().Err(err).Str("command", args[0]).Msg("migración fallida")
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: migrate [-log-level info] up|down|steps N|version")
}
