package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/pipeline"
)

// layoutCommand creates the layout command for computing layout snapshots.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [collection.toml]",
		Short: "Compute a layout snapshot from a collection document",
		Long: `Compute a layout snapshot from a collection document.

The layout command reads a TOML or JSON collection (container width, layout
settings and per-section item sizes), places every item into the shortest
column and writes the resulting attributes to a snapshot JSON file.

Flags override the document's settings for this run. Use -o - to write the
snapshot to stdout.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), cmd, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	addLayoutFlags(cmd, &opts)

	return cmd
}

// runLayout loads the collection, computes the layout, and writes the snapshot.
func (c *CLI) runLayout(ctx context.Context, cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	coll, err := collection.Read(input)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)

	toStdout := output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, "Computing layout...")
		spinner.Start()
	}

	result, err := runner.Compute(ctx, coll, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Layout failed")
		}
		return fmt.Errorf("compute layout: %w", err)
	}
	if spinner != nil {
		spinner.Stop()
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if toStdout {
		return collection.WriteSnapshot(result.Snapshot, cmd.OutOrStdout())
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := collection.WriteSnapshotFile(result.Snapshot, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	snap := result.Snapshot
	printSuccess("Layout complete")
	printFile(outputPath)
	printKeyValue("Content", formatFloat(snap.Width)+" × "+formatFloat(snap.ContentHeight))
	printKeyValue("Columns", fmt.Sprintf("%d", snap.Columns))
	printStats(result.Stats.Sections, result.Stats.Items, result.Stats.Attributes, result.CacheInfo.LayoutHit)
	if result.Stats.Items == 0 {
		printWarning("Collection has no items")
	}
	printNewline()
	printNextStep("Preview", appName+" preview "+input)

	return nil
}
