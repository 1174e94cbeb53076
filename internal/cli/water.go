package cli

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newWaterCmd(open Opener) *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "water [ML]",
		Short: "Log water intake in millilitres",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !reset && len(args) == 0 {
				return fmt.Errorf("amount in ml required (or --reset)")
			}
			env, err := open()
			if err != nil {
				return err
			}
			defer env.Close()
			eng := env.Engine()

			if reset {
				eng.ResetWater()
			} else {
				ml, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", args[0], err)
				}
				if err := eng.LogWater(ml); err != nil {
					return err
				}
			}

			goal := eng.WaterGoal()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "💧 %s / %s ml today (%d%%)\n",
				humanize.Comma(int64(eng.WaterToday())), humanize.Comma(int64(goal)), int(eng.WaterProgress()*100))
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "Clear today's intake")
	return cmd
}
