package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/kr/pretty"
	"github.com/railstat/railstat/pkg/amtraker"
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/config"
	"github.com/railstat/railstat/pkg/recordstore"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "collector",
		Usage: "Records Auto Train delay metrics from the live status feed",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run a single collection pass over both directions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.StringSliceFlag{
						Name:  "date",
						Usage: "service date to record (YYYY-MM-DD), defaults to the most recently completed service day",
					},
				},
				Action: func(c *cli.Context) error {
					runtimeConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					location, err := runtimeConfig.Location()
					if err != nil {
						return err
					}

					dates := c.StringSlice("date")
					if len(dates) == 0 {
						dates = []string{autotrain.PreviousServiceDate(time.Now(), location)}
					}
					for _, date := range dates {
						if _, err := time.Parse(autotrain.DateFormat, date); err != nil {
							return fmt.Errorf("invalid date %s, expected YYYY-MM-DD", date)
						}
					}

					statusCollector := &Collector{
						Fetcher:    amtraker.NewClient(runtimeConfig.AmtrakerURL, runtimeConfig.FetchTimeout(), location),
						Store:      recordstore.NewStore(runtimeConfig.StorePath),
						Directions: autotrain.Directions,

						OnTimeGraceMinutes: runtimeConfig.OnTimeGraceMinutes,
					}

					summary, err := statusCollector.Run(context.Background(), dates)
					if err != nil {
						return err
					}

					log.Info().
						Int("recorded", summary.Recorded).
						Int("skipped", summary.Skipped).
						Str("store", runtimeConfig.StorePath).
						Msg("Collection run complete")

					return nil
				},
			},
			{
				Name:  "test-fetch",
				Usage: "fetch and print one train status snapshot without touching the store",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.IntFlag{
						Name:  "train",
						Value: 53,
						Usage: "train number to fetch",
					},
					&cli.StringFlag{
						Name:  "date",
						Usage: "service date to match (YYYY-MM-DD)",
					},
				},
				Action: func(c *cli.Context) error {
					runtimeConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					location, err := runtimeConfig.Location()
					if err != nil {
						return err
					}

					date := c.String("date")
					if date == "" {
						date = autotrain.PreviousServiceDate(time.Now(), location)
					}

					client := amtraker.NewClient(runtimeConfig.AmtrakerURL, runtimeConfig.FetchTimeout(), location)

					snapshot, err := client.FetchTrainStatus(context.Background(), c.Int("train"), date)
					pretty.Println(snapshot, err)

					return nil
				},
			},
		},
	}
}
