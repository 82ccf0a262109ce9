package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pcvolkmer/ags-example/internal/fancy"
	"github.com/pcvolkmer/ags-example/internal/normalizer"
	"github.com/urfave/cli/v3"
)

func newSearchCmd() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search by postal code, place name or \"plz place\"",
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the result as JSON",
			},
		},
		Action: searchAction,
	}
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("query required")
	}
	c, err := loadCore(cmd)
	if err != nil {
		return err
	}
	defer c.logger.Sync()

	raw := strings.Join(cmd.Args().Slice(), " ")
	entries := c.searcher.Rank(normalizer.Normalize(raw))
	out := cmd.Root().Writer

	if cmd.Bool("json") {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintf(out, "No match for %q\n", strings.TrimSpace(raw))
		suggestions := c.suggester.Suggest(raw, c.cfg.Suggest.Limit)
		if len(suggestions) > 0 {
			names := make([]string, 0, len(suggestions))
			for _, s := range suggestions {
				names = append(names, s.PlaceName)
			}
			fmt.Fprintf(out, "Did you mean: %s\n", strings.Join(names, ", "))
		}
		return nil
	}

	for _, e := range entries {
		fmt.Fprintln(out, fancy.EntryLine(e))
	}
	return nil
}
