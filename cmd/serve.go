package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"pagelet/internal/prefs"
	"pagelet/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Preview a built site with the page behaviors applied",
	Long: `Serves a built documentation site locally. Every page goes out with the
reader's saved theme already applied, code blocks wrapped with copy buttons,
and the browser runtime injected. With live reload on, edits to the site
refresh connected browsers.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().Bool("open", false, "open the browser once serving")
	serveCmd.Flags().Bool("reload", true, "refresh connected browsers on site changes")
	serveCmd.Flags().Bool("inject", true, "inject runtime asset references into served pages")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dir := cfg.SiteDir
	if len(args) > 0 {
		dir = args[0]
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return fmt.Errorf("site directory %s not found\nBuild your site first, or run `pagelet init` to point at the right directory", dir)
	}

	// Flags override config only when set explicitly.
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if cmd.Flags().Changed("reload") {
		cfg.Serve.Reload, _ = cmd.Flags().GetBool("reload")
	}
	if cmd.Flags().Changed("inject") {
		cfg.Inject, _ = cmd.Flags().GetBool("inject")
	}
	if cmd.Flags().Changed("open") {
		cfg.Serve.Open, _ = cmd.Flags().GetBool("open")
	}

	store, err := prefs.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("opening preference store: %w", err)
	}
	defer store.Close()

	srv := site.New(site.Config{
		Dir:    dir,
		Port:   cfg.Port,
		Inject: cfg.Inject,
		Reload: cfg.Serve.Reload,
	}, store.Page(), probeFromConfig(cfg))

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	url := fmt.Sprintf("http://localhost:%d", cfg.Port)
	fmt.Printf("Serving %s at %s — press Ctrl+C to stop\n", dir, url)
	if verbose {
		fmt.Printf("  Preferences: %s\n", store.Path())
		fmt.Printf("  Reload: %v, Inject: %v\n", cfg.Serve.Reload, cfg.Inject)
	}

	if cfg.Serve.Open {
		site.OpenBrowser(url)
	}

	return srv.Start(ctx)
}
