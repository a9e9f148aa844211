package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/casewalk/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

// resolvePlayerID maps an exact ID or a unique ID prefix to a player ID.
// Input that matches nothing is returned unchanged.
func resolvePlayerID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("player ID is required")
	}

	players := app.Progress.Players(ctx)
	for _, p := range players {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range players {
		if strings.HasPrefix(p.ID, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return input, nil
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("player ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newPlayerCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage players",
	}

	cmd.AddCommand(
		newPlayerCreateCmd(app),
		newPlayerListCmd(app),
		newPlayerUseCmd(app),
	)

	return cmd
}

func newPlayerCreateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "create [name]",
		Short: "Create a player and make it active",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var name string
			if len(args) == 1 {
				name = args[0]
			} else if app.interactive() {
				if err := playerNameForm(&name).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
						return nil
					}
					return err
				}
			}

			p := app.Progress.CreatePlayer(cmd.Context(), name)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s",
				formatter.StyleGreen.Render("Created player"),
				formatter.FormatPlayer(p))
			return nil
		},
	}
}

func newPlayerListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List players",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			players := app.Progress.Players(ctx)
			var activeID string
			if active, ok := app.Progress.ActivePlayer(ctx); ok {
				activeID = active.ID
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlayers(players, activeID))
			return nil
		},
	}
}

func newPlayerUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <id>",
		Short: "Switch the active player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolvePlayerID(ctx, app, args[0])
			if err != nil {
				return err
			}

			app.Progress.SetActivePlayer(ctx, id)

			out := cmd.OutOrStdout()
			active, ok := app.Progress.ActivePlayer(ctx)
			if !ok || active.ID != id {
				fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("No player matches %q; active player unchanged.", args[0])))
				return nil
			}
			fmt.Fprintf(out, "Active player: %s %s\n", formatter.Bold(active.Name), formatter.TruncID(active.ID))
			return nil
		},
	}
}
