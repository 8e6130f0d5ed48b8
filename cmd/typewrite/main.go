package main

import (
	"fmt"
	"os"

	"github.com/san-kum/typewrite/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir     string
	selector    string
	speed       int
	repeat      bool
	cursor      bool
	color       string
	interval    int
	preset      string
	output      string
	headless    bool
	record      bool
	hold        bool
	metricsAddr string
)

// main registers the typewrite commands and plays the bundled demo in the
// terminal when no subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:           "typewrite",
		Short:         "typewriter text reveal for html pages",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return playScript(cmd, config.DemoScript(), "demo")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".typewrite", "data directory (env TYPEWRITE_DATA_DIR)")
	addPlayFlags(rootCmd.Flags())

	runCmd := &cobra.Command{
		Use:   "run [page.html]",
		Short: "reveal the elements of a page",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPage,
	}
	runCmd.Flags().StringVar(&selector, "selector", "h1", "css selector of the elements to reveal")
	addOptionFlags(runCmd.Flags())
	addPlayFlags(runCmd.Flags())

	scriptCmd := &cobra.Command{
		Use:   "script [file.yaml]",
		Short: "play a staged script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	addOptionFlags(scriptCmd.Flags())
	addPlayFlags(scriptCmd.Flags())

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "play the built-in demo page",
		RunE: func(cmd *cobra.Command, args []string) error {
			return playScript(cmd, config.DemoScript(), "demo")
		},
	}
	addPlayFlags(demoCmd.Flags())

	planCmd := &cobra.Command{
		Use:   "plan [text]",
		Short: "print the frame schedule for a text",
		Args:  cobra.ExactArgs(1),
		RunE:  planText,
	}
	addOptionFlags(planCmd.Flags())

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rootCmd.AddCommand(runCmd, scriptCmd, demoCmd, planCmd, presetsCmd, listCmd, showCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
