// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/poiesic/harvest"
	"github.com/poiesic/harvest/config"
	"github.com/poiesic/harvest/search"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "harvest",
		Usage: "Crawl a Reddit listing into a vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file (built-in defaults when omitted)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Action: crawlCommand,
		Commands: []*cli.Command{
			{
				Name:   "crawl",
				Usage:  "Crawl from the saved cursor until the listing is exhausted",
				Action: crawlCommand,
			},
			{
				Name:      "search",
				Usage:     "Find stored posts similar to a query",
				ArgsUsage: "<text>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "n",
						Usage: "Number of results to return",
						Value: search.DefaultN,
					},
					&cli.Int64Flag{
						Name:  "upvotes-min",
						Usage: "Drop posts with fewer upvotes",
					},
				},
			},
			{
				Name:   "stats",
				Usage:  "Show the record count and saved cursor",
				Action: statsCommand,
			},
		},
	}
}

func openHarvester(c *cli.Context) (*harvest.Harvester, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	h, err := harvest.New(cfg, harvest.WithProgressWriter(c.App.ErrWriter))
	if err != nil {
		return nil, fmt.Errorf("failed to open harvester: %w", err)
	}
	return h, nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	parent := c.Context
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func crawlCommand(c *cli.Context) error {
	ctx, stop := signalContext(c)
	defer stop()

	h, err := openHarvester(c)
	if err != nil {
		return err
	}
	defer h.Close()

	result, err := h.Crawl(ctx)
	if err != nil {
		return fmt.Errorf("crawl failed: %w", err)
	}

	fmt.Fprintf(c.App.Writer, "Stopped: %s\n", result.Reason)
	fmt.Fprintf(c.App.Writer, "Requests: %d, pages: %d, posts stored: %d\n",
		result.Requests, result.Pages, result.Upserted)
	fmt.Fprintf(c.App.Writer, "Cursor: %s\n", cursorText(result.Cursor.String()))
	return nil
}

func searchCommand(c *cli.Context) error {
	text := strings.Join(c.Args().Slice(), " ")
	if strings.TrimSpace(text) == "" {
		return errors.New("search text is required")
	}

	ctx, stop := signalContext(c)
	defer stop()

	h, err := openHarvester(c)
	if err != nil {
		return err
	}
	defer h.Close()

	searcher, err := h.NewSearcher()
	if err != nil {
		return err
	}

	results, err := searcher.Search(ctx, search.Query{
		Text:       text,
		N:          c.Int("n"),
		MinUpvotes: c.Int64("upvotes-min"),
	})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(c.App.Writer, "No matching posts.")
		return nil
	}
	for i, r := range results {
		meta := r.Hit.Metadata
		fmt.Fprintf(c.App.Writer, "%d. [%.3f] %s (r/%s, %d upvotes, %d comments)\n",
			i+1, r.Score, meta.Title, meta.Subreddit, meta.Upvotes, meta.NumComments)
		fmt.Fprintf(c.App.Writer, "   %s\n", r.Hit.ID)
	}
	return nil
}

func statsCommand(c *cli.Context) error {
	h, err := openHarvester(c)
	if err != nil {
		return err
	}
	defer h.Close()

	stats, err := h.Stats(c.Context)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "Collection: %s\n", stats.Collection)
	fmt.Fprintf(c.App.Writer, "Records: %d\n", stats.Records)
	fmt.Fprintf(c.App.Writer, "Cursor: %s\n", cursorText(stats.Cursor.String()))
	return nil
}

func cursorText(cursor string) string {
	if cursor == "" {
		return "(none)"
	}
	return cursor
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
