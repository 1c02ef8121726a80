package cli

import (
	"fmt"

	"geomag-cli/internal/docs"
	"geomag-cli/internal/tui"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw, asData bool
	var width int

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{"topics": docs.Topics()}, "geomag docs <topic>")
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, errUsage("docs topic", topic, "geomag docs"))
			}

			switch {
			case asData:
				return writeOut(cmd, app, map[string]any{"topic": topic, "markdown": body})
			case raw:
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(body, width))
			return err
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown")
	cmd.Flags().BoolVar(&asData, "data", false, "Print the markdown inside the output envelope")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for rendered output")
	cmd.MarkFlagsMutuallyExclusive("raw", "data")

	return cmd
}
