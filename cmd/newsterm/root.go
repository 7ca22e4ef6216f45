package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagConfig     string
	flagTrading    bool
	flagCategories []string
)

var rootCmd = &cobra.Command{
	Use:   "newsterm",
	Short: "Terminal news stream for traders",
	Long:  "newsterm aggregates breaking news, market headlines and tech stories from dozens of feeds into a live terminal stream.",
	RunE:  runStream,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagTrading, "trading", false, "trading mode: tighter refresh and cache timers")
	rootCmd.PersistentFlags().StringSliceVar(&flagCategories, "category", nil, "categories to stream (repeatable)")

	rootCmd.AddCommand(streamCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("newsterm %s (commit: %s, built: %s)\n", version, commit, date)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
