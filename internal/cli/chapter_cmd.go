package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/domain"
	"github.com/spf13/cobra"
)

func parseChapterArg(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid chapter %q: must be a number", s)
	}
	return n, nil
}

func newChapterCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "chapter",
		Aliases: []string{"ch"},
		Short:   "Record and inspect chapter results",
	}

	cmd.AddCommand(
		newChapterCompleteCmd(app),
		newChapterListCmd(app),
	)

	return cmd
}

func newChapterCompleteCmd(app *App) *cobra.Command {
	var (
		wrong   int
		patient domain.Patient
	)

	cmd := &cobra.Command{
		Use:   "complete <chapter>",
		Short: "Record a finished chapter attempt for the active player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chapter, err := parseChapterArg(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if _, ok := app.Progress.ActivePlayer(ctx); !ok {
				fmt.Fprintln(out, formatter.Dim("No active player; result not recorded. Create one with `casewalk player create`."))
				return nil
			}

			app.Progress.SaveChapterResult(ctx, chapter, wrong, patient)

			report := app.Progress.Report(ctx, patient)
			chapter = domain.ClampChapter(chapter)
			view, _ := report.Chapter(chapter)
			fmt.Fprintf(out, "Chapter %d %s  best %s  (%d wrong)\n",
				chapter,
				formatter.PatientBadge(patient),
				formatter.FormatScore(view.Score, view.MaxScore),
				view.Wrong)

			if chapter < domain.ChapterCount {
				if next, ok := report.Chapter(chapter + 1); ok && next.Unlocked {
					fmt.Fprintln(out, formatter.StyleGreen.Render(fmt.Sprintf("Chapter %d unlocked.", next.Chapter)))
				}
			}
			fmt.Fprintln(out, formatter.FormatTotal(report))
			return nil
		},
	}

	cmd.Flags().IntVarP(&wrong, "wrong", "w", 0, "Wrong answers in this attempt (0-4)")
	addPatientFlag(cmd.Flags(), &patient)

	return cmd
}

func newChapterListCmd(app *App) *cobra.Command {
	var patient domain.Patient

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show chapters with lock state and best scores",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.Progress.Report(cmd.Context(), patient)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatChapterReport(report))
			return nil
		},
	}

	addPatientFlag(cmd.Flags(), &patient)

	return cmd
}

func newScoreCmd(app *App) *cobra.Command {
	var patient domain.Patient

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Show the active player's total score",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := app.Progress.Report(cmd.Context(), patient)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTotal(report))
			return nil
		},
	}

	addPatientFlag(cmd.Flags(), &patient)

	return cmd
}
