package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/pkg/collection"
	"github.com/matzehuels/waterfall/pkg/errors"
	"github.com/matzehuels/waterfall/pkg/geom"
	"github.com/matzehuels/waterfall/pkg/pipeline"
)

type queryFlags struct {
	rect      string
	scroll    float64
	scrollSet bool
	asJSON    bool
}

// queryCommand creates the query command for viewport lookups.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		flags queryFlags
		opts  pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "query [collection.toml] --rect x,y,w,h",
		Short: "List the attributes visible in a viewport",
		Long: `List the attributes visible in a viewport.

The rectangle is given in content coordinates. Pinned headers are placed for
the scroll offset, which defaults to the rectangle's top edge.`,
		Example: `  waterfall query gallery.toml --rect 0,400,375,812
  waterfall query gallery.toml --rect 0,400,375,812 --scroll 420 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.scrollSet = cmd.Flags().Changed("scroll")
			return c.runQuery(cmd.Context(), cmd, args[0], flags, opts)
		},
	}

	cmd.Flags().StringVar(&flags.rect, "rect", "", "viewport rectangle as x,y,width,height")
	cmd.Flags().Float64Var(&flags.scroll, "scroll", 0, "scroll offset for pinned headers (default: rect y)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print attributes as JSON records")
	_ = cmd.MarkFlagRequired("rect")
	addLayoutFlags(cmd, &opts)

	return cmd
}

func (c *CLI) runQuery(ctx context.Context, cmd *cobra.Command, input string, flags queryFlags, opts pipeline.Options) error {
	rect, err := parseRect(flags.rect)
	if err != nil {
		return err
	}
	scroll := rect.Y
	if flags.scrollSet {
		scroll = flags.scroll
	}

	coll, err := collection.Read(input)
	if err != nil {
		return fmt.Errorf("load collection %s: %w", input, err)
	}

	runner, err := c.newRunner(true)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger
	prog := newProgress(logger)

	result, err := runner.Query(ctx, coll, rect, scroll, opts)
	if err != nil {
		return fmt.Errorf("query layout: %w", err)
	}
	prog.done(fmt.Sprintf("Queried %s", plural(len(result.Attributes), "attribute")))

	out := cmd.OutOrStdout()
	if flags.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(collection.Records(result.Attributes))
	}

	if len(result.Attributes) == 0 {
		fmt.Fprintln(out, StyleDim.Render("No attributes in viewport"))
		return nil
	}
	fmt.Fprintln(out, renderAttributeTable(result.Attributes, coll.SectionName))
	return nil
}

// parseRect parses "x,y,width,height".
func parseRect(s string) (geom.Rect, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return geom.Rect{}, errors.New(errors.ErrCodeInvalidRect, "rect must be x,y,width,height, got %q", s)
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return geom.Rect{}, errors.Wrap(errors.ErrCodeInvalidRect, err, "invalid rect component %q", p)
		}
		v[i] = f
	}
	if err := pipeline.ValidateRect(v[0], v[1], v[2], v[3]); err != nil {
		return geom.Rect{}, err
	}
	return geom.NewRect(v[0], v[1], v[2], v[3]), nil
}
