package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/casewalk/internal/contract"
	"github.com/alexanderramin/casewalk/internal/domain"
)

const chapterBarWidth = 10

// FormatChapterReport renders one patient track of the active player as a
// chapter table followed by the total score.
func FormatChapterReport(r contract.ProgressReport) string {
	var b strings.Builder

	who := Dim("no active player")
	if r.HasPlayer {
		who = Bold(r.PlayerName) + " " + TruncID(r.PlayerID)
	}
	b.WriteString(fmt.Sprintf("%s  %s\n\n", who, PatientBadge(r.Patient)))

	headers := []string{"CH", "STATE", "WRONG", "SCORE", "PROGRESS"}
	rows := make([][]string, 0, len(r.Chapters))
	for _, c := range r.Chapters {
		wrong := Dim("--")
		score := Dim("--/" + trimFloat(c.MaxScore))
		bar := RenderProgress(0, chapterBarWidth)
		if c.Attempted {
			wrong = StyleFg.Render(fmt.Sprintf("%d", c.Wrong))
			score = FormatScore(c.Score, c.MaxScore)
			if c.MaxScore > 0 {
				bar = RenderProgress(c.Score/c.MaxScore, chapterBarWidth)
			}
		}
		rows = append(rows, []string{
			Bold(fmt.Sprintf("%d", c.Chapter)),
			LockBadge(c.Unlocked, c.Attempted),
			wrong,
			score,
			bar,
		})
	}
	b.WriteString(RenderTable(headers, rows))

	b.WriteString("\n")
	b.WriteString(FormatTotal(r) + "\n")

	return RenderBox("Chapters", b.String())
}

// FormatTotal renders the one-line total score summary.
func FormatTotal(r contract.ProgressReport) string {
	return fmt.Sprintf("%s %s  %s",
		StyleHeader.Render("TOTAL"),
		FormatScore(r.TotalScore, r.MaxTotal),
		RenderProgress(r.Percent(), chapterBarWidth*2),
	)
}

// FormatPlayers renders the player list with the active one marked.
func FormatPlayers(players []domain.PlayerProfile, activeID string) string {
	if len(players) == 0 {
		return Dim("No players yet. Create one with `casewalk player create`.") + "\n"
	}

	headers := []string{"", "ID", "NAME", "FEMALE", "MALE"}
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		marker := " "
		if p.ID == activeID {
			marker = StyleGreen.Render("●")
		}
		rows = append(rows, []string{
			marker,
			TruncID(p.ID),
			Bold(p.Name),
			trackSummary(p, domain.PatientFemale),
			trackSummary(p, domain.PatientMale),
		})
	}
	return RenderTable(headers, rows)
}

// FormatPlayer renders a single profile as a short detail block.
func FormatPlayer(p domain.PlayerProfile) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", Bold(p.Name), Dim(p.ID)))
	for _, patient := range domain.Patients {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", patient.String(), trackSummary(p, patient)))
	}
	return b.String()
}

// trackSummary reports completed and unlocked chapter counts for one track.
func trackSummary(p domain.PlayerProfile, patient domain.Patient) string {
	done, open := 0, 0
	for ch := 1; ch <= domain.ChapterCount; ch++ {
		if _, ok := p.Attempt(ch, patient); ok {
			done++
		}
		if p.IsUnlocked(ch, patient) {
			open++
		}
	}
	return fmt.Sprintf("%s %s", StyleGreen.Render(fmt.Sprintf("%d done", done)), Dim(fmt.Sprintf("%d open", open)))
}

// FormatHistory renders earlier save snapshots, newest first.
func FormatHistory(entries []contract.HistoryEntry) string {
	if len(entries) == 0 {
		return Dim("No saved history.") + "\n"
	}

	headers := []string{"#", "SAVED", "SCHEMA", "PLAYERS", "ACTIVE", "ATTEMPTS"}
	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		active := Dim("--")
		if e.ActivePlayer != "" {
			active = Bold(e.ActivePlayer)
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			HumanTimestamp(e.SavedAt),
			fmt.Sprintf("v%d", e.SchemaVersion),
			fmt.Sprintf("%d", e.Players),
			active,
			fmt.Sprintf("%d", e.Attempts),
		})
	}
	return RenderTable(headers, rows)
}
