package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/update"
	"github.com/spf13/cobra"
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))

// withEnv opens the stores for a read-only subcommand and closes them afterwards.
func withEnv(cmd *cobra.Command, flags *rootFlags, fn func(env *appEnv, out io.Writer) error) error {
	env, err := openEnv(cmd.Context(), flags.runtimeConfig(cmd))
	if err != nil {
		return err
	}
	defer env.close()
	return fn(env, cmd.OutOrStdout())
}

func newStatusCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show level, XP and today's check-in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(env *appEnv, out io.Writer) error {
				profile, err := update.LoadProfile(env.cfg.StateFilePath)
				if err != nil {
					env.log.WithError(err).Warn("profile unreadable, using defaults")
				}
				total := env.services.TotalXP()
				level := model.LevelForTotalXP(total)
				next := model.XPRequiredForLevel(level + 1)

				fmt.Fprintln(out, headingStyle.Render(profile.Name+" the "+profile.Character.DisplayName()))
				fmt.Fprintf(out, "Level: %d\n", level)
				fmt.Fprintf(out, "Total XP: %d (next level at %d, %d to go)\n", total, next, max(next-total, 0))
				fmt.Fprintf(out, "Streak: %d days\n", env.services.Reflections.Streak())
				checked := "no"
				if env.services.CheckIns.CheckedInOn(time.Now()) {
					checked = "yes"
				}
				fmt.Fprintf(out, "Checked in today: %s\n", checked)

				open := 0
				for _, t := range env.services.Tasks.Tasks() {
					if !t.Completed {
						open++
					}
				}
				fmt.Fprintf(out, "Open quests: %d\n", open)
				return nil
			})
		},
	}
}

func newStreakCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the reflection streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, flags, func(env *appEnv, out io.Writer) error {
				streak := env.services.Reflections.Streak()
				fmt.Fprintf(out, "%d day streak\n", streak)
				fmt.Fprintln(out, model.StreakMessage(streak))
				return nil
			})
		},
	}
}

func newReportCmd(flags *rootFlags) *cobra.Command {
	var rangeFlag string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print daily wellbeing scores and averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := model.ParseReportRange(rangeFlag)
			if err != nil {
				return err
			}
			return withEnv(cmd, flags, func(env *appEnv, out io.Writer) error {
				start, end := model.ReportWindow(r, time.Now())
				entries := env.services.Reflections.ByDateRange(start, end)
				records := model.AggregateDays(entries, start, end)

				fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("Report (%s) %s to %s", r, model.DayKey(start), model.DayKey(end))))
				for _, rec := range records {
					if !rec.HasData {
						continue
					}
					sleep := "-"
					if rec.HasSleep {
						sleep = fmt.Sprintf("%.1fh", rec.Sleep)
					}
					fmt.Fprintf(out, "%s  mood %d  energy %d  stress %d  sleep %s  (%s)\n",
						model.DayKey(rec.Date), rec.Mood, rec.Energy, rec.Stress, sleep, rec.Source)
				}

				sum := model.SummarizeReport(records, entries)
				if sum.DaysWithData == 0 {
					fmt.Fprintln(out, "No reflections in this range.")
					return nil
				}
				fmt.Fprintf(out, "Averages over %d days: mood %.1f  energy %.1f  stress %.1f  sleep %.1fh\n",
					sum.DaysWithData, sum.AvgMood, sum.AvgEnergy, sum.AvgStress, sum.AvgSleep)
				if sum.WorkoutDays+sum.RestDays > 0 {
					fmt.Fprintf(out, "Workouts: %d  rest days: %d\n", sum.WorkoutDays, sum.RestDays)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rangeFlag, "range", string(model.RangeWeek), "week, month or 3months")
	return cmd
}
