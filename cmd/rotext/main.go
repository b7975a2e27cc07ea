// Command rotext analyzes Romanian text into keywords, triples, a
// knowledge graph, and QA buckets.
//
// Two subcommands are provided:
//
//	rotext serve            start the HTTP API
//	rotext analyze [file]   analyze a file (or --text) and print JSON
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"

	"github.com/ro-ai-labs/ro-text-mining/analyze"
	"github.com/ro-ai-labs/ro-text-mining/ingest"
	"github.com/ro-ai-labs/ro-text-mining/prosepipe"
	"github.com/ro-ai-labs/ro-text-mining/server"
	"github.com/ro-ai-labs/ro-text-mining/stopwords"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})

	app := &cli.App{
		Name:  "rotext",
		Usage: "extract keywords, triples, and QA buckets from text",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to YAML config file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "start the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address (overrides config)"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c.String("config"))
					if err != nil {
						return err
					}
					if addr := c.String("addr"); addr != "" {
						cfg.Addr = addr
					}

					srv := server.New(newAnalyzer(cfg), logger)
					logger.Info("listening", "addr", cfg.Addr)
					return http.ListenAndServe(cfg.Addr, srv.Handler())
				},
			},
			{
				Name:      "analyze",
				Usage:     "analyze a file or --text and print the result as JSON",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "text", Usage: "analyze this text instead of a file"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c.String("config"))
					if err != nil {
						return err
					}

					text := c.String("text")
					if path := c.Args().First(); text == "" && path != "" {
						raw, err := os.ReadFile(path)
						if err != nil {
							return fmt.Errorf("reading %s: %w", path, err)
						}
						text, err = ingest.Extract(raw, path)
						if err != nil {
							return err
						}
					}
					if text == "" {
						return server.ErrNoInput
					}

					res, err := newAnalyzer(cfg).Analyze(text)
					if err != nil {
						return err
					}
					out, err := json.MarshalIndent(res, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(out))
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}

func newAnalyzer(cfg *Config) *analyze.Analyzer {
	stops := stopwords.Load()
	if len(cfg.ExtraStopwords) > 0 {
		merged := make(stopwords.Set, len(stops)+len(cfg.ExtraStopwords))
		for w := range stops {
			merged[w] = struct{}{}
		}
		merged.Add(cfg.ExtraStopwords...)
		stops = merged
	}
	return analyze.New(prosepipe.New(), stops, cfg.TopK)
}
