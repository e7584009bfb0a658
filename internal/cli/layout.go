package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/callsheet/pkg/layout"
)

// layoutCommand creates the layout command, which writes the page plan.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  pageFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [document]",
		Short: "Compute the page plan of a call-sheet document",
		Long: `Compute the page plan of a call-sheet document.

The document (.json, .yaml or .toml) is validated, every box is placed on its
section grid, filled rows are numbered per page and sections are assigned to
pages. The plan is written as <document>.plan.json (same format as
'render -f json').

Pages holding more rows than fit are reported; nothing is truncated.
Results are cached, so unchanged documents are not laid out twice.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, flags)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <document>.plan.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the document, computes the plan, and writes it.
func (c *CLI) runLayout(ctx context.Context, input, output string, flags pageFlags) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := flags.options(cfg, input)
	opts.Logger = c.Logger

	doc, err := runner.Load(ctx, opts)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinner(ctx, "Laying out pages...")
	spinner.Start()
	plan, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, doc, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Laid out %d pages", len(plan.Pages)))

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".plan.json"
	}
	if err := layout.WritePlanFile(plan, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete (%s, %s)", plan.Format, plan.Orientation)
	printFile(outputPath)
	printStats(plan.Stats(), cacheHit)
	fmt.Println(pageTable(plan.Pages))
	if len(plan.Print) > 0 {
		printInfo("Booklet print pages")
		fmt.Println(pageTable(plan.Print))
	}
	printWarnings(&plan)
	printNewline()
	printNextStep("Render", appName+" render -f xlsx "+input)

	return nil
}
