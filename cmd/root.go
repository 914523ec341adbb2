package cmd

import (
	"github.com/spf13/cobra"

	"pagelet/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pagelet",
	Short: "Reader-facing behaviors for built documentation sites",
	Long: `Pagelet gives a built documentation site its reader-facing behaviors:
persisted light/dark theme switching, copy buttons on code blocks, and a
collapsible navigation sidebar on small screens. It applies them to the
pages of a built site ahead of time, or serves the site locally with the
behaviors applied on the way out.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
