package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dhowell/newsterm/internal/logging"
	"github.com/dhowell/newsterm/internal/news"
	"github.com/dhowell/newsterm/internal/stream"
	"github.com/dhowell/newsterm/internal/ui"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Run the live news stream TUI",
	RunE:  runStream,
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	aggregator, ranker := buildPipeline(cfg)

	app := ui.NewApp(ranker.Classify, cfg.GetCategories(), cfg.Trading(), aggregator.Refresh)
	program := tea.NewProgram(app, tea.WithAltScreen())

	loop := stream.New(aggregator, cfg.GetCategories(), stream.Config{
		Interval: cfg.RefreshDuration(),
		Backoff:  cfg.BackoffDuration(),
	}, func(result news.Result) {
		program.Send(ui.NewsUpdated{Result: result})
	})
	loop.Start(ctx)

	logging.Info("stream starting",
		"mode", cfg.Mode,
		"categories", len(cfg.GetCategories()),
		"refresh", cfg.RefreshDuration())

	if _, err := program.Run(); err != nil {
		cancel()
		loop.Wait()
		return fmt.Errorf("running ui: %w", err)
	}

	cancel()
	loop.Wait()
	return nil
}
