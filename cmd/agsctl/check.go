package main

import (
	"context"
	"fmt"

	"github.com/pcvolkmer/ags-example/internal/fancy"
	"github.com/pcvolkmer/ags-example/internal/gazetteer"
	"github.com/urfave/cli/v3"
)

func newCheckCmd() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Validate the gazetteer dataset",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "max-km",
				Usage: "Maximum distance of a municipality from its district center, 0 disables",
				Value: gazetteer.DefaultMaxDistanceKm,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, err := loadCore(cmd)
			if err != nil {
				return err
			}
			defer c.logger.Sync()

			report := gazetteer.Check(c.store, cmd.Float("max-km"))
			out := cmd.Root().Writer

			t := fancy.Tree().Root(fancy.RootStyle.Render("Dataset"))
			t.Child(fmt.Sprintf("entries: %d", report.Entries))
			t.Child(fmt.Sprintf("deprecated: %d", report.Deprecated))
			t.Child(fmt.Sprintf("postal codes: %d", c.index.PostalCodeCount()))
			t.Child(fmt.Sprintf("ambiguous postal codes: %d", c.index.AmbiguousCount()))
			if !report.OK() {
				branch := fancy.BranchNode("violations", fmt.Sprintf("(%d)", len(report.Violations)))
				for _, v := range report.Violations {
					branch.Child(fmt.Sprintf("%s %s: %s",
						v.MunicipalityCode,
						fancy.TruncateString(v.PlaceName, 24),
						fancy.ErrorStyle.Render(v.Problem)))
				}
				t.Child(branch)
			}
			fmt.Fprintln(out, t)

			if !report.OK() {
				return fmt.Errorf("%d violations found", len(report.Violations))
			}
			return nil
		},
	}
}
