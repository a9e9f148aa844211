package domain

import (
	"slices"
	"strings"
)

// DefaultPlayerName is used when a player is created with a blank name.
const DefaultPlayerName = "Learner"

// ChapterScore is the retained best attempt for one internal chapter id.
type ChapterScore struct {
	Wrong int
}

type PlayerProfile struct {
	ID               string
	Name             string
	UnlockedChapters []int
	Chapters         map[int]ChapterScore
}

// NewPlayerProfile returns a profile with the entry chapter of every
// patient track unlocked and no attempts recorded.
func NewPlayerProfile(id, name string) PlayerProfile {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultPlayerName
	}
	unlocked := make([]int, 0, len(Patients))
	for _, p := range Patients {
		unlocked = append(unlocked, InternalChapterID(1, p))
	}
	return PlayerProfile{
		ID:               id,
		Name:             name,
		UnlockedChapters: unlocked,
		Chapters:         map[int]ChapterScore{},
	}
}

// Attempt returns the stored best attempt for a visible chapter. Chapters
// outside [1, ChapterCount] have none.
func (p *PlayerProfile) Attempt(visible int, patient Patient) (ChapterScore, bool) {
	if !ValidChapter(visible) {
		return ChapterScore{}, false
	}
	cs, ok := p.Chapters[InternalChapterID(visible, patient)]
	return cs, ok
}

// RecordAttempt stores an attempt if it beats the stored one and unlocks
// the following chapter. The profile is normalized afterwards. It reports
// whether the stored attempt was replaced.
func (p *PlayerProfile) RecordAttempt(visible, wrong int, patient Patient) bool {
	visible = ClampChapter(visible)
	wrong = ClampWrong(wrong)
	patient = patient.OrDefault()

	if p.Chapters == nil {
		p.Chapters = map[int]ChapterScore{}
	}

	id := InternalChapterID(visible, patient)
	replaced := true
	if prev, ok := p.Chapters[id]; ok {
		replaced = betterAttempt(visible, wrong, prev.Wrong)
	}
	if replaced {
		p.Chapters[id] = ChapterScore{Wrong: wrong}
	}

	if visible < ChapterCount {
		next := InternalChapterID(visible+1, patient)
		if !slices.Contains(p.UnlockedChapters, next) {
			p.UnlockedChapters = append(p.UnlockedChapters, next)
		}
	}

	p.Normalize()
	return replaced
}

// betterAttempt reports whether a new attempt with wrong answers should
// replace a stored one with prevWrong. Higher score wins; on a tie the
// lower wrong count wins.
func betterAttempt(visible, wrong, prevWrong int) bool {
	next, prev := Score(visible, wrong), Score(visible, prevWrong)
	if next != prev {
		return next > prev
	}
	return wrong < prevWrong
}

// IsUnlocked tests membership of a visible chapter in the normalized
// unlock set. The profile itself is not modified. Out-of-range chapters
// are never unlocked.
func (p *PlayerProfile) IsUnlocked(visible int, patient Patient) bool {
	if !ValidChapter(visible) {
		return false
	}
	id := InternalChapterID(visible, patient)
	return slices.Contains(NormalizeUnlocks(p.UnlockedChapters), id)
}

// Normalize rewrites UnlockedChapters into its canonical contiguous form.
// It reports whether anything changed.
func (p *PlayerProfile) Normalize() bool {
	normalized := NormalizeUnlocks(p.UnlockedChapters)
	if slices.Equal(normalized, p.UnlockedChapters) {
		return false
	}
	p.UnlockedChapters = normalized
	return true
}

// NormalizeUnlocks enforces the contiguous-unlock invariant independently
// per patient track. Ids outside a track's 1..ChapterCount range are
// discarded and each track is rebuilt as the full run 1..max, where max is
// the highest visible chapter present (at least 1). The result is sorted
// ascending and free of duplicates.
func NormalizeUnlocks(raw []int) []int {
	highest := make(map[Patient]int, len(Patients))
	for _, p := range Patients {
		highest[p] = 1
	}
	for _, id := range raw {
		visible, p := VisibleChapter(id)
		if visible < 1 || visible > ChapterCount {
			continue
		}
		if visible > highest[p] {
			highest[p] = visible
		}
	}

	out := make([]int, 0, 2*ChapterCount)
	for _, p := range Patients {
		for v := 1; v <= highest[p]; v++ {
			out = append(out, InternalChapterID(v, p))
		}
	}
	slices.Sort(out)
	return out
}

// Clone returns a deep copy of the profile.
func (p PlayerProfile) Clone() PlayerProfile {
	out := p
	out.UnlockedChapters = slices.Clone(p.UnlockedChapters)
	out.Chapters = make(map[int]ChapterScore, len(p.Chapters))
	for k, v := range p.Chapters {
		out.Chapters[k] = v
	}
	return out
}
