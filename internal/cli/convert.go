package cli

import (
	"math"
	"strconv"
	"strings"

	"geomag-cli/internal/geoformat"
	"geomag-cli/internal/validate"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type angleResult struct {
	Decimal float64       `json:"decimal"`
	DMS     geoformat.DMS `json:"dms"`
	Text    string        `json:"text"`
}

func newConvertCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert angles between degrees/minutes/seconds and decimal degrees",
	}
	cmd.AddCommand(newConvertDMSCmd(app))
	cmd.AddCommand(newConvertDecimalCmd(app))
	return cmd
}

func newConvertDMSCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dms <degrees> <minutes> <seconds>",
		Short: "Degrees, minutes and seconds to decimal degrees",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			checks := []struct {
				ok  func(string) bool
				msg string
			}{
				{validate.ValidDegrees, validate.MsgDegrees},
				{validate.ValidMinutes, validate.MsgMinutes},
				{validate.ValidSeconds, validate.MsgSeconds},
			}
			for i, c := range checks {
				if !c.ok(args[i]) {
					return writeErr(cmd, errors.New(c.msg))
				}
			}
			d := geoformat.DMSToDecimal(validate.Number(args[0]), validate.Number(args[1]), validate.Number(args[2]))
			return writeOut(cmd, app, newAngleResult(d))
		},
	}
}

func newConvertDecimalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "decimal <angle>",
		Short: "Decimal degrees to degrees, minutes and seconds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := strconv.ParseFloat(strings.TrimSpace(args[0]), 64)
			if err != nil || math.IsNaN(d) || math.IsInf(d, 0) {
				return writeErr(cmd, errors.Errorf("invalid angle: %q", args[0]))
			}
			return writeOut(cmd, app, newAngleResult(d))
		},
	}
}

func newAngleResult(d float64) angleResult {
	dms := geoformat.DecimalToDMS(d)
	return angleResult{Decimal: d, DMS: dms, Text: dms.String()}
}
