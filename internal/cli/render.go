package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/callsheet/pkg/pipeline"
)

// renderCommand creates the render command, which writes output artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formats    string
		printPages bool
		scale      int
		flags      pageFlags
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a call sheet to json, xlsx, txt or png",
		Long: `Render a call sheet to json, xlsx, txt or png.

Each format is written next to the document as <document>.<format>, or to
<output>.<format> with -o. The json plan is written as .plan.json. A single format with -o writes exactly that file.

With --print, a 4-page sheet is rendered as its booklet print pages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cfg, args[0])
			if f := parseFormats(formats); len(f) > 0 {
				opts.Formats = f
			}
			if cmd.Flags().Changed("print") {
				opts.Print = printPages
			}
			if scale > 0 {
				opts.Scale = scale
			}
			return c.runRender(cmd.Context(), opts, output, flags.noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): json, xlsx, txt, png (comma-separated)")
	cmd.Flags().BoolVar(&printPages, "print", false, "render booklet print pages (4-page)")
	cmd.Flags().IntVar(&scale, "scale", 0, fmt.Sprintf("png pixels per grid row (default %d)", pipeline.DefaultScale))
	flags.register(cmd)

	return cmd
}

// runRender executes the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinner(ctx, "Rendering call sheet...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(opts.Input, output, opts.Formats)
	formats := make([]string, 0, len(result.Artifacts))
	for f := range result.Artifacts {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Rendered %s", opts.Input)
	for _, f := range formats {
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	printStats(result.Stats.Stats, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	printWarnings(&result.Plan)
	return nil
}

// outputPaths maps each format to the file it is written to.
func outputPaths(input, output string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + fileExtension(f)
	}
	return paths
}

// fileExtension keeps the plan from overwriting a .json document.
func fileExtension(format string) string {
	if format == pipeline.FormatJSON {
		return "plan.json"
	}
	return format
}
