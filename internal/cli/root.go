package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/callsheet/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Callsheet lays out and paginates football call sheets",
		Long: `Callsheet places the boxes of a call-sheet document on a page grid,
numbers the filled rows, assigns sections to pages and prints the result as a
2-page sheet or a 4-page booklet.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", c.ConfigPath, "config file")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
