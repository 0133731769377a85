package cmd

import (
	"fmt"
	"os"

	"github.com/jerricksforjesus/JerricksJesus-sub000/pkg/config"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "church-api",
	Short: "Congregation media API server",
	Long: `Congregation Media API - the media backend for the congregation site

This API manages sermon video captions and the worship playlist mirror.

Features:
  • AI-assisted caption generation for sermon videos (WebVTT)
  • Worship playlist mirroring from the YouTube channel
  • Background job queue for long-running media work`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
