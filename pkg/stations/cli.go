package stations

import (
	"fmt"

	"github.com/kr/pretty"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "stations",
		Usage: "Inspect the bundled station registry",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "list every station with its coordinates",
				Action: func(c *cli.Context) error {
					registry, err := Load()
					if err != nil {
						return err
					}

					for _, station := range registry.All() {
						fmt.Fprintf(c.App.Writer, "%-5s %-20s %9.4f %9.4f\n", station.Code, station.Name, station.Lat, station.Lng)
					}

					return nil
				},
			},
			{
				Name:      "search",
				Usage:     "dump the stations matching a code or name",
				ArgsUsage: "<query>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return cli.Exit("search takes exactly one query", 1)
					}

					registry, err := Load()
					if err != nil {
						return err
					}

					pretty.Fprintf(c.App.Writer, "%# v\n", registry.Search(c.Args().First()))

					return nil
				},
			},
		},
	}
}
