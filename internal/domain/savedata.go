package domain

// CurrentSaveVersion is the schema version written by this build.
const CurrentSaveVersion = 3

// SaveData is the persisted root: every profile plus the active pointer.
type SaveData struct {
	Version        int
	Players        []PlayerProfile
	ActivePlayerID *string
}

// NewSaveData returns an empty save at the current schema version.
func NewSaveData() SaveData {
	return SaveData{Version: CurrentSaveVersion, Players: []PlayerProfile{}}
}

// PlayerIndex returns the index of the profile with the given id, or -1.
func (s *SaveData) PlayerIndex(id string) int {
	for i := range s.Players {
		if s.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// Active returns a pointer into Players for the active profile. A missing
// or dangling active id yields nil.
func (s *SaveData) Active() *PlayerProfile {
	if s.ActivePlayerID == nil {
		return nil
	}
	i := s.PlayerIndex(*s.ActivePlayerID)
	if i < 0 {
		return nil
	}
	return &s.Players[i]
}

// SetActive points the active id at an existing profile. Unknown ids are
// ignored and reported as false.
func (s *SaveData) SetActive(id string) bool {
	if s.PlayerIndex(id) < 0 {
		return false
	}
	s.ActivePlayerID = &id
	return true
}

// AddPlayer appends a profile and makes it active.
func (s *SaveData) AddPlayer(p PlayerProfile) {
	s.Players = append(s.Players, p)
	id := p.ID
	s.ActivePlayerID = &id
}

// Normalize normalizes every profile and reports whether anything changed.
func (s *SaveData) Normalize() bool {
	changed := false
	for i := range s.Players {
		if s.Players[i].Chapters == nil {
			s.Players[i].Chapters = map[int]ChapterScore{}
		}
		if s.Players[i].Normalize() {
			changed = true
		}
	}
	return changed
}
