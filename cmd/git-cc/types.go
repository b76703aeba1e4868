package main

import (
	"github.com/spf13/cobra"

	"github.com/gorewood/gitcc/internal/output"
)

// newTypesCmd creates the types command.
func newTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the configured commit types",
		Long: `List the commit types offered by the prompt, in order, with their
descriptions and emoji. Types come from the built-in defaults unless a
configuration file sets its own list.`,
		Args: cobra.NoArgs,
		RunE: runTypes,
	}
}

// runTypes executes the types command.
func runTypes(cmd *cobra.Command, _ []string) error {
	printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

	cfg, err := sessionFrom(cmd).config()
	if err != nil {
		printer.Error(err)
		return err
	}

	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{"types": cfg.Types})
	}

	rows := make([][]string, 0, len(cfg.Types))
	for _, t := range cfg.Types {
		rows = append(rows, []string{t.Name, t.Emoji, t.Description})
	}
	printer.Table([]string{"TYPE", "EMOJI", "DESCRIPTION"}, rows)
	return nil
}
