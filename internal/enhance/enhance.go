// Package enhance applies the page behaviors to a built site on disk: every
// page gets its resolved theme attribute, wrapped code blocks with copy
// controls, and references to the browser runtime that animates them. The
// pass is what `pagelet enhance` runs and what the preview server does per
// request.
package enhance

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pagelet/internal/assets"
	"pagelet/internal/dom"
	"pagelet/internal/page"
	"pagelet/internal/progress"
)

// Options control a batch enhancement pass.
type Options struct {
	// SiteDir is the root of the built site.
	SiteDir string
	// OutDir, when set, receives enhanced copies and leaves SiteDir
	// untouched. Unmatched files are copied through verbatim.
	OutDir string
	// Include and Exclude filter which files count as pages.
	Include []string
	Exclude []string
	// Store and Probe feed theme resolution. Nil values mean no persisted
	// choice and a light ambient preference.
	Store page.ThemeStore
	Probe page.ColorSchemeProbe
	// Inject adds runtime asset references to each enhanced page.
	Inject bool
	// WriteAssets writes the runtime script and stylesheet into the output
	// root.
	WriteAssets bool
	// Reporter receives per-page progress. Nil discards it.
	Reporter progress.Reporter
}

// Result summarizes an enhancement pass.
type Result struct {
	// Enhanced counts pages the behaviors were applied to.
	Enhanced int
	// Skipped counts pages that had already been enhanced.
	Skipped int
}

// Run enhances every matching page under opts.SiteDir.
func Run(opts Options) (Result, error) {
	var res Result

	if opts.Reporter == nil {
		opts.Reporter = progress.Quiet{}
	}

	pages, err := CollectPages(opts.SiteDir, opts.Include, opts.Exclude)
	if err != nil {
		return res, fmt.Errorf("collecting pages: %w", err)
	}
	if len(pages) == 0 {
		return res, fmt.Errorf("no pages found in %s", opts.SiteDir)
	}

	outRoot := opts.SiteDir
	if opts.OutDir != "" {
		outRoot = opts.OutDir
		if err := copyUnmatched(opts.SiteDir, opts.OutDir, pages); err != nil {
			return res, err
		}
	}

	opts.Reporter.Start(len(pages))
	for i, rel := range pages {
		src := filepath.Join(opts.SiteDir, rel)
		dst := filepath.Join(outRoot, rel)
		enhanced, err := enhancePage(src, dst, rel, opts)
		if err != nil {
			return res, fmt.Errorf("enhancing %s: %w", rel, err)
		}
		if enhanced {
			res.Enhanced++
		} else {
			res.Skipped++
		}
		opts.Reporter.Update(i+1, rel)
	}
	opts.Reporter.Finish()

	if opts.WriteAssets {
		if err := assets.WriteTo(outRoot); err != nil {
			return res, err
		}
	}

	return res, nil
}

// enhancePage runs the behaviors over one page and writes the result to
// dst. Pages that already carry the enhancement stamp pass through
// unchanged.
func enhancePage(src, dst, rel string, opts Options) (bool, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return false, err
	}

	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return false, err
	}

	if page.Stamped(doc) {
		if src != dst {
			if err := writeFile(dst, data); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	page.Setup(doc, page.Environment{Store: opts.Store, Probe: opts.Probe})
	if opts.Inject {
		assets.InjectRefs(doc, assetPrefix(rel))
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return false, err
	}
	if err := writeFile(dst, buf.Bytes()); err != nil {
		return false, err
	}
	return true, nil
}

// assetPrefix returns the relative path from a page back to the site root,
// where the runtime assets live.
func assetPrefix(rel string) string {
	depth := strings.Count(filepath.ToSlash(rel), "/")
	return strings.Repeat("../", depth)
}

// copyUnmatched mirrors everything that is not a page into dstDir, so an
// --out run produces a complete site.
func copyUnmatched(srcDir, dstDir string, pages []string) error {
	isPage := make(map[string]bool, len(pages))
	for _, p := range pages {
		isPage[p] = true
	}

	all, err := CollectPages(srcDir, nil, nil)
	if err != nil {
		return fmt.Errorf("collecting site files: %w", err)
	}
	for _, rel := range all {
		if isPage[rel] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(srcDir, rel))
		if err != nil {
			return err
		}
		if err := writeFile(filepath.Join(dstDir, rel), data); err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
