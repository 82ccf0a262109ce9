package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pcvolkmer/ags-example/internal/fancy"
	"github.com/urfave/cli/v3"
)

func newStateFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "state",
		Usage:   "Two digit state id, e.g. 09 (default: all states)",
		Aliases: []string{"st"},
	}
}

func newZipsCmd() *cli.Command {
	return &cli.Command{
		Name:  "zips",
		Usage: "List postal codes assigned to more than one district",
		Flags: []cli.Flag{
			newStateFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the grouped postal codes as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := loadCore(cmd)
			if err != nil {
				return err
			}
			defer c.logger.Sync()

			state := cmd.String("state")
			groups := c.index.GroupedByFirstDigit(state)
			out := cmd.Root().Writer

			if cmd.Bool("json") {
				return json.NewEncoder(out).Encode(groups)
			}

			title := "Ambiguous postal codes"
			if state != "" {
				title += " in state " + state
			}
			fmt.Fprintln(out, fancy.ZipTree(title, groups, c.index.DistrictsOf))
			return nil
		},
	}
}

func newDistrictsCmd() *cli.Command {
	return &cli.Command{
		Name:  "districts",
		Usage: "List districts sharing a postal code with another district",
		Flags: []cli.Flag{newStateFlag()},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := loadCore(cmd)
			if err != nil {
				return err
			}
			defer c.logger.Sync()

			out := cmd.Root().Writer
			for _, d := range c.index.DistrictsTouchingAmbiguousZips(cmd.String("state")) {
				fmt.Fprintln(out, d)
			}
			return nil
		},
	}
}
