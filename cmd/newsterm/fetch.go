package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/dhowell/newsterm/internal/logging"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/rank"
)

var flagJSON bool

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch once and print the stream to stdout",
	Long:  "fetch runs a single aggregation cycle and prints the ranked items, as text or as JSON for scripting.",
	RunE:  runFetch,
}

func init() {
	fetchCmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON instead of text")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// One-shot runs log to stderr so stdout stays clean for --json.
	logging.InitWriter(os.Stderr, log.WarnLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	ctx, timeout := context.WithTimeout(ctx, 2*cfg.TimeoutDuration()+5*time.Second)
	defer timeout()

	aggregator, ranker := buildPipeline(cfg)
	result := aggregator.Fetch(ctx, cfg.GetCategories())

	if flagJSON {
		return news.WriteJSON(os.Stdout, result.Items)
	}

	for _, item := range result.Items {
		marker := "  "
		if ranker.Classify(item) == rank.TierBreaking {
			marker = "! "
		}
		fmt.Printf("%s[%s] %-18s %s\n", marker, item.Published.Local().Format("15:04"), item.Source, item.Title)
	}
	fmt.Printf("\n%d items from %d sources", len(result.Items), result.SourceCount)
	if result.BreakingNewsCount > 0 {
		fmt.Printf(" (%d breaking)", result.BreakingNewsCount)
	}
	fmt.Println()
	return nil
}
