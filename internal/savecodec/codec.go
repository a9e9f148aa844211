package savecodec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/alexanderramin/casewalk/internal/domain"
)

// Status classifies what Decode found.
type Status string

const (
	StatusEmpty      Status = "empty"
	StatusCorrupt    Status = "corrupt"
	StatusIncomplete Status = "incomplete"
	StatusLoaded     Status = "loaded"
	// StatusNewer marks a record tagged with a version this build does not
	// know. Its data is decoded as far as possible but must not be written
	// back.
	StatusNewer Status = "newer"
)

// Outcome describes a Decode call.
type Outcome struct {
	Status      Status
	FromVersion int
	// Err holds the parse error when Status is StatusCorrupt.
	Err error
}

// Migrated reports whether the record was brought forward from an older
// schema version.
func (o Outcome) Migrated() bool {
	return o.Status == StatusLoaded && o.FromVersion < domain.CurrentSaveVersion
}

// Fresh reports whether Decode substituted an empty save.
func (o Outcome) Fresh() bool {
	switch o.Status {
	case StatusEmpty, StatusCorrupt, StatusIncomplete:
		return true
	}
	return false
}

// ReadOnly reports whether re-encoding the decoded save would lose data
// that is still on disk.
func (o Outcome) ReadOnly() bool {
	return o.Status == StatusNewer
}

// Decode parses a persisted record into a normalized SaveData.
func Decode(data []byte) (domain.SaveData, Outcome) {
	if len(bytes.TrimSpace(data)) == 0 {
		return domain.NewSaveData(), Outcome{Status: StatusEmpty}
	}

	var raw rawSave
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.NewSaveData(), Outcome{Status: StatusCorrupt, Err: err}
	}
	if raw.Players == nil {
		return domain.NewSaveData(), Outcome{Status: StatusIncomplete}
	}

	w := raw.wire()
	from := detectVersion(&w)
	status := StatusLoaded
	if from > domain.CurrentSaveVersion {
		status = StatusNewer
	} else {
		migrate(&w, from)
	}

	save := toDomain(&w)
	save.Normalize()
	return save, Outcome{Status: status, FromVersion: from}
}

// Encode renders a SaveData in the current wire format. Output is
// deterministic for equal inputs.
func Encode(s domain.SaveData) ([]byte, error) {
	players := make([]wirePlayer, 0, len(s.Players))
	for _, p := range s.Players {
		chapters := make(map[string]wireChapter, len(p.Chapters))
		for id, c := range p.Chapters {
			wrong := c.Wrong
			chapters[strconv.Itoa(id)] = wireChapter{Wrong: &wrong}
		}
		unlocked := p.UnlockedChapters
		if unlocked == nil {
			unlocked = []int{}
		}
		players = append(players, wirePlayer{
			ID:               p.ID,
			Name:             p.Name,
			UnlockedChapters: unlocked,
			Chapters:         chapters,
		})
	}

	version := domain.CurrentSaveVersion
	w := wireSave{
		Version:        &version,
		Players:        &players,
		ActivePlayerID: s.ActivePlayerID,
	}
	data, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encoding save: %w", err)
	}
	return data, nil
}

func toDomain(w *wireSave) domain.SaveData {
	save := domain.NewSaveData()
	for _, wp := range *w.Players {
		p := domain.NewPlayerProfile(wp.ID, wp.Name)
		p.UnlockedChapters = append([]int(nil), wp.UnlockedChapters...)
		for key, c := range wp.Chapters {
			id, ok := chapterKey(key)
			if !ok || c.Wrong == nil {
				continue
			}
			if v, _ := domain.VisibleChapter(id); v < 1 || v > domain.ChapterCount {
				continue
			}
			p.Chapters[id] = domain.ChapterScore{Wrong: domain.ClampWrong(*c.Wrong)}
		}
		save.Players = append(save.Players, p)
	}
	if w.ActivePlayerID != nil {
		id := *w.ActivePlayerID
		save.ActivePlayerID = &id
	}
	return save
}

// chapterKey parses a canonical chapter key. "01" and "+1" are rejected so
// they cannot shadow "1".
func chapterKey(key string) (int, bool) {
	id, err := strconv.Atoi(key)
	if err != nil || strconv.Itoa(id) != key {
		return 0, false
	}
	return id, true
}
