package cmd

import (
	"github.com/spf13/cobra"

	"pagelet/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize pagelet configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure pagelet for your site and generates a .pagelet.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
