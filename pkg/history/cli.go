package history

import (
	"fmt"

	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/config"
	"github.com/railstat/railstat/pkg/performance"
	"github.com/railstat/railstat/pkg/recordstore"
	"github.com/railstat/railstat/pkg/util"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Inspect the recorded Auto Train status table",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list recorded delay metrics",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.IntFlag{
						Name:  "train",
						Usage: "only show this train number",
					},
					&cli.StringFlag{
						Name:  "filter",
						Usage: "expression over Date, TrainNumber, Origin, Destination, ArrivalDelay, DepartureDelay, HasArrivalDelay, HasDepartureDelay and OnTime, e.g. 'HasArrivalDelay && ArrivalDelay > 15'",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "table",
						Usage: "output format, one of table, csv or json",
					},
				},
				Action: func(c *cli.Context) error {
					format := c.String("format")
					if !util.ContainsString([]string{"table", "csv", "json"}, format) {
						return fmt.Errorf("unknown output format %s", format)
					}

					runtimeConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					records, err := recordstore.NewStore(runtimeConfig.StorePath).Load()
					if err != nil {
						return err
					}

					if trainNumber := c.Int("train"); trainNumber != 0 {
						util.InPlaceFilter(&records, func(record autotrain.DelayRecord) bool {
							return record.TrainNumber == trainNumber
						})
					}

					records, err = FilterRecords(records, c.String("filter"))
					if err != nil {
						return err
					}

					switch format {
					case "csv":
						return renderRecordsCSV(records)
					case "json":
						return renderRecordsJSON(records)
					default:
						return renderRecordsTable(records)
					}
				},
			},
			{
				Name:  "summary",
				Usage: "aggregate on-time performance per direction",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.IntFlag{
						Name:  "train",
						Usage: "only summarise this train number",
					},
				},
				Action: func(c *cli.Context) error {
					runtimeConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					records, err := recordstore.NewStore(runtimeConfig.StorePath).Load()
					if err != nil {
						return err
					}

					directions := autotrain.Directions
					if trainNumber := c.Int("train"); trainNumber != 0 {
						util.InPlaceFilter(&records, func(record autotrain.DelayRecord) bool {
							return record.TrainNumber == trainNumber
						})

						directions = []autotrain.Direction{}
						if direction := autotrain.DirectionForTrain(trainNumber); direction != nil {
							directions = append(directions, *direction)
						}
					}

					return renderSummariesTable(performance.Summarise(records, directions))
				},
			},
		},
	}
}
