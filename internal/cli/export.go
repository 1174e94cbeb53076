package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sadopc/upfocus/internal/export"
)

func newExportCmd(open Opener) *cobra.Command {
	var format, out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export retained focus sessions as CSV or JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "csv" && format != "json" {
				return fmt.Errorf("unknown format %q (want csv or json)", format)
			}
			env, err := open()
			if err != nil {
				return err
			}
			defer env.Close()
			sessions := env.Engine().Sessions()

			switch {
			case out == "" && format == "csv":
				return export.WriteCSV(cmd.OutOrStdout(), sessions)
			case out == "":
				return export.WriteJSON(cmd.OutOrStdout(), sessions)
			case format == "csv":
				err = export.ToCSV(sessions, out)
			default:
				err = export.ToJSON(sessions, out)
			}
			if err != nil {
				return err
			}
			env.Log.Info().Str("path", out).Int("sessions", len(sessions)).Msg("exported")
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d sessions to %s\n", len(sessions), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return cmd
}
