package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sadopc/upfocus/internal/engine"
)

func newStatsCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print today's progress, streak, the last 7 days and category totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := open()
			if err != nil {
				return err
			}
			defer env.Close()
			writeStats(cmd.OutOrStdout(), env.Engine())
			return nil
		},
	}
}

func writeStats(w io.Writer, eng *engine.Engine) {
	c := eng.Counters()
	p := eng.Preferences()
	streak := eng.Streak()
	totals := eng.Totals()

	fmt.Fprintf(w, "Today      %d/%d sessions, %d/%d min\n", c.TodayCompleted, p.DailySessionGoal, c.TodayFocusMinutes, p.DailyMinuteGoal)
	fmt.Fprintf(w, "Score      %d  %s\n", eng.FocusScore(), eng.FocusInsight())
	fmt.Fprintf(w, "Streak     %d days (best %d)\n", streak.Current, streak.Best)
	fmt.Fprintf(w, "Lifetime   %s sessions, %s min\n", humanize.Comma(int64(totals.SessionsCompleted)), humanize.Comma(int64(totals.FocusMinutes)))
	fmt.Fprintf(w, "Water      %s / %s ml\n", humanize.Comma(int64(eng.WaterToday())), humanize.Comma(int64(p.WaterGoalML)))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Last 7 days")
	for _, d := range eng.WeeklyFocusData() {
		fmt.Fprintf(w, "  %s %s %s\n", d.Label, d.Key, bar(d.Value))
	}

	var cats []string
	for _, c := range eng.CategoryBreakdown() {
		if c.Minutes > 0 {
			cats = append(cats, fmt.Sprintf("  %s %-9s %s", c.Category.Icon(), c.Category, bar(c.Minutes)))
		}
	}
	if len(cats) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Categories (28 days)")
		fmt.Fprintln(w, strings.Join(cats, "\n"))
	}

	unlocked := eng.UnlockedAchievements()
	if len(unlocked) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Achievements")
	for _, id := range unlocked {
		if info, ok := engine.Lookup(id); ok {
			fmt.Fprintf(w, "  %s %s: %s\n", info.Icon, info.Title, info.Description)
		}
	}
}

// bar draws one block per 5 minutes.
func bar(minutes int) string {
	if minutes <= 0 {
		return "·"
	}
	return strings.Repeat("█", (minutes+4)/5) + fmt.Sprintf(" %dm", minutes)
}
