package contract

import (
	"time"

	"github.com/alexanderramin/casewalk/internal/domain"
)

// ChapterView is one row of a patient's chapter list.
type ChapterView struct {
	Chapter   int
	Unlocked  bool
	Attempted bool
	Wrong     int
	Score     float64
	MaxScore  float64
}

// ProgressReport is everything a chapter-selection or results screen needs
// for one patient track of the active player.
type ProgressReport struct {
	Patient    domain.Patient
	PlayerID   string
	PlayerName string
	HasPlayer  bool
	Chapters   []ChapterView
	TotalScore float64
	MaxTotal   float64
}

// Percent returns TotalScore as a fraction of MaxTotal in [0, 1].
func (r ProgressReport) Percent() float64 {
	if r.MaxTotal <= 0 {
		return 0
	}
	pct := r.TotalScore / r.MaxTotal
	if pct > 1 {
		return 1
	}
	return pct
}

// Chapter returns the row for a visible chapter number.
func (r ProgressReport) Chapter(n int) (ChapterView, bool) {
	for _, c := range r.Chapters {
		if c.Chapter == n {
			return c, true
		}
	}
	return ChapterView{}, false
}

// HistoryEntry summarizes one earlier snapshot of the save record.
type HistoryEntry struct {
	SavedAt       time.Time
	SchemaVersion int
	Players       int
	ActivePlayer  string
	Attempts      int
}
