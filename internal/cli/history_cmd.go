package cli

import (
	"fmt"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/alexanderramin/casewalk/internal/contract"
	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/alexanderramin/casewalk/internal/savecodec"
	"github.com/spf13/cobra"
)

const defaultHistoryLimit = 10

func newHistoryCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List earlier snapshots of the save record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if app.History == nil {
				fmt.Fprintln(out, formatter.Dim("The configured storage backend keeps no history."))
				return nil
			}
			if limit <= 0 {
				limit = defaultHistoryLimit
			}

			records, err := app.History.History(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("reading save history: %w", err)
			}
			fmt.Fprint(out, formatter.FormatHistory(historyEntries(records)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum snapshots to show")

	return cmd
}

// historyEntries decodes each snapshot for display. Undecodable snapshots
// still get a row with zero counts.
func historyEntries(records []repository.SaveRecord) []contract.HistoryEntry {
	entries := make([]contract.HistoryEntry, 0, len(records))
	for _, rec := range records {
		data, _ := savecodec.Decode(rec.Payload)
		e := contract.HistoryEntry{
			SavedAt:       rec.SavedAt,
			SchemaVersion: rec.SchemaVersion,
			Players:       len(data.Players),
		}
		if active := data.Active(); active != nil {
			e.ActivePlayer = active.Name
		}
		for _, p := range data.Players {
			e.Attempts += len(p.Chapters)
		}
		entries = append(entries, e)
	}
	return entries
}
