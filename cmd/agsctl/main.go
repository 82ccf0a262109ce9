// Command agsctl queries the municipality gazetteer from the terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/pcvolkmer/ags-example/app/config"
	"github.com/pcvolkmer/ags-example/internal/gazetteer"
	"github.com/pcvolkmer/ags-example/internal/matcher"
	"github.com/pcvolkmer/ags-example/internal/search"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set during build using ldflags
var Version = "dev"

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "agsctl",
		Version: Version,
		Usage:   "Look up municipality codes and postal codes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Usage:   "Path to a gazetteer CSV file (default: embedded dataset)",
				Aliases: []string{"d"},
				Sources: cli.EnvVars("DATA_FILE"),
			},
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Path to the ranking configuration",
				Value:   "config/ranking.yaml",
				Sources: cli.EnvVars("RANKING_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Commands: []*cli.Command{
			newSearchCmd(),
			newZipsCmd(),
			newDistrictsCmd(),
			newCheckCmd(),
		},
	}
}

// core is the lookup stack shared by all commands.
type core struct {
	cfg       config.LookupCfg
	store     *gazetteer.Store
	index     *search.ZipIndex
	searcher  *search.GazetteerSearcher
	suggester *matcher.Suggester
	logger    *zap.Logger
}

func loadCore(cmd *cli.Command) (*core, error) {
	logger, err := newLogger(cmd.String("log-level"))
	if err != nil {
		return nil, err
	}

	cfg, err := config.Read(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var store *gazetteer.Store
	if path := cmd.String("data"); path != "" {
		store, err = gazetteer.LoadFile(path, logger)
	} else {
		store, err = gazetteer.Default(logger)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load gazetteer: %w", err)
	}

	index := search.NewZipIndex(store)
	return &core{
		cfg:   cfg,
		store: store,
		index: index,
		searcher: search.NewGazetteerSearcher(store, index, search.SearchConfig{
			MinSimilarity:       cfg.Ranking.MinSimilarity,
			MaxResults:          cfg.Ranking.MaxResults,
			StructuredThreshold: cfg.Ranking.StructuredThreshold,
		}, logger),
		suggester: matcher.NewSuggester(store, cfg.Suggest.MaxDistance),
		logger:    logger,
	}, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
