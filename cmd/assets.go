package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagelet/internal/assets"
)

var assetsCmd = &cobra.Command{
	Use:   "assets [dir]",
	Short: "Write the browser runtime files into a directory",
	Long: `Writes pagelet.js and pagelet.css into the given directory (default:
the configured site directory), for sites that reference the runtime
themselves instead of letting enhance inject it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var dir string
		if len(args) > 0 {
			dir = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dir = cfg.SiteDir
		}

		if err := assets.WriteTo(dir); err != nil {
			return fmt.Errorf("writing assets: %w", err)
		}
		fmt.Printf("Runtime assets written to %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assetsCmd)
}
