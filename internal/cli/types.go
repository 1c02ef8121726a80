package cli

import (
	"geomag-cli/internal/model"

	"github.com/spf13/cobra"
)

type readingTypeView struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Inclination bool   `json:"inclination"`
}

func newTypesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List reading types in observation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := []readingTypeView{}
			for _, t := range model.ReadingTypes() {
				out = append(out, readingTypeView{Key: t.String(), Label: t.Label(), Inclination: t.IsInclination()})
			}
			return writeOut(cmd, app, out)
		},
	}
}
