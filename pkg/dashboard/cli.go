package dashboard

import (
	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/config"
	"github.com/railstat/railstat/pkg/recordstore"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "Provides the delay dashboard and its API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run dashboard web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "config",
						Usage: "path to a YAML config file",
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "listen target for the web server, overrides the config value",
					},
				},
				Action: func(c *cli.Context) error {
					runtimeConfig, err := config.Load(c.String("config"))
					if err != nil {
						return err
					}

					listen := c.String("listen")
					if listen == "" {
						listen = runtimeConfig.Listen
					}

					server := &Server{
						Store:      recordstore.NewStore(runtimeConfig.StorePath),
						Directions: autotrain.Directions,
					}

					return server.SetupServer(listen)
				},
			},
		},
	}
}
