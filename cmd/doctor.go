package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Tiliavir/worklog/internal/render"
)

var doctorFormat string

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the log for missing or misordered entries",
	Long: `doctor reads the whole log and lists every structural problem:
starts without a stop, stops without a start, and entries that go back in
time. It exits with status 1 if any problem was found.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().StringVar(&doctorFormat, "format", "text", "Output format: text, json, yaml")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	format, err := render.ParseFormat(doctorFormat)
	if err != nil {
		return err
	}
	defects, err := engine.Doctor()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == render.Text {
		err = render.DefectsText(out, defects)
	} else {
		err = render.Encode(out, format, defects)
	}
	if err != nil {
		return err
	}
	if len(defects) > 0 {
		return errDefectsFound
	}
	return nil
}
