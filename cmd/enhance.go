package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pagelet/internal/enhance"
	"pagelet/internal/prefs"
	"pagelet/internal/progress"
)

var enhanceCmd = &cobra.Command{
	Use:   "enhance [dir]",
	Short: "Apply the page behaviors to a built site on disk",
	Long: `Rewrites the pages of a built site so they ship already enhanced: the
default theme resolved onto each page, code blocks wrapped with copy
buttons, and references to the browser runtime injected. Run it as the
last step of a site build.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEnhance,
}

func init() {
	enhanceCmd.Flags().String("out", "", "write the enhanced site here instead of in place")
	enhanceCmd.Flags().Bool("write-assets", true, "write pagelet.js and pagelet.css into the output root")
	enhanceCmd.Flags().Bool("inject", true, "inject runtime asset references into each page")
	rootCmd.AddCommand(enhanceCmd)
}

func runEnhance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.SiteDir
	if len(args) > 0 {
		dir = args[0]
	}

	out, _ := cmd.Flags().GetString("out")
	writeAssets, _ := cmd.Flags().GetBool("write-assets")
	inject := cfg.Inject
	if cmd.Flags().Changed("inject") {
		inject, _ = cmd.Flags().GetBool("inject")
	}

	if verbose {
		fmt.Printf("Include: %v\nExclude: %v\n", cfg.Include, cfg.Exclude)
	}

	// A batch run bakes the site's default theme in, not any one reader's
	// saved choice, so it resolves against an empty store.
	res, err := enhance.Run(enhance.Options{
		SiteDir:     dir,
		OutDir:      out,
		Include:     cfg.Include,
		Exclude:     cfg.Exclude,
		Store:       prefs.NewMemory(),
		Probe:       probeFromConfig(cfg),
		Inject:      inject,
		WriteAssets: writeAssets,
		Reporter:    progress.NewReporter(),
	})
	if err != nil {
		return fmt.Errorf("enhancing site: %w", err)
	}

	target := dir
	if out != "" {
		target = out
	}
	fmt.Printf("Enhanced %d pages in %s", res.Enhanced, target)
	if res.Skipped > 0 {
		fmt.Printf(" (%d already enhanced)", res.Skipped)
	}
	fmt.Println()
	return nil
}
