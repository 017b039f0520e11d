package main

import (
	"os"
	"time"

	"github.com/ecocitty/ecocitty/pkg/api"
	"github.com/ecocitty/ecocitty/pkg/stations"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("ECOCITTY_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("ECOCITTY_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "ecocitty",
		Description: "Civic data API for trains, metro, garbage collection and citizen reports",

		Commands: []*cli.Command{
			api.RegisterCLI(),
			stations.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
