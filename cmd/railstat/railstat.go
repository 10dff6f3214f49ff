package main

import (
	"os"
	"time"

	"github.com/railstat/railstat/pkg/collector"
	"github.com/railstat/railstat/pkg/dashboard"
	"github.com/railstat/railstat/pkg/history"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	if os.Getenv("RAILSTAT_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	if os.Getenv("RAILSTAT_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "railstat",
		Description: "Single binary of truth for railstat - tracks Amtrak Auto Train delays",

		Commands: []*cli.Command{
			collector.RegisterCLI(),
			history.RegisterCLI(),
			dashboard.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
