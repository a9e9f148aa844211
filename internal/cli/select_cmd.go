package cli

import (
	"fmt"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newSelectCmd(app *App) *cobra.Command {
	var patient domain.Patient

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick an unlocked chapter interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("select needs an interactive terminal; use `casewalk chapter list` instead")
			}

			picker := newChapterPicker(app.Progress, patient)
			prog := tea.NewProgram(picker,
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			if _, err := prog.Run(); err != nil {
				return fmt.Errorf("chapter picker: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), describeChoice(picker))
			return nil
		},
	}

	addPatientFlag(cmd.Flags(), &patient)

	return cmd
}

func describeChoice(picker *chapterPicker) string {
	chapter, patient, ok := picker.Chosen()
	if !ok {
		return formatter.Dim("No chapter selected.")
	}
	return fmt.Sprintf("Selected chapter %d %s %s",
		chapter,
		formatter.PatientBadge(patient),
		formatter.Dim(fmt.Sprintf("(internal id %d)", domain.InternalChapterID(chapter, patient))))
}
