package savecodec

import "encoding/json"

type wireSave struct {
	Version        *int          `json:"version,omitempty"`
	Players        *[]wirePlayer `json:"players"`
	ActivePlayerID *string       `json:"activePlayerId"`
}

type wirePlayer struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	UnlockedChapters []int                  `json:"unlockedChapters"`
	Chapters         map[string]wireChapter `json:"chapters"`
}

type wireChapter struct {
	Wrong *int `json:"wrong,omitempty"`
	Stars *int `json:"stars,omitempty"`
}

// rawSave is the first decoding pass. Only the envelope has to be well
// formed; everything below players is decoded entry by entry.
type rawSave struct {
	Version        json.RawMessage    `json:"version"`
	Players        *[]json.RawMessage `json:"players"`
	ActivePlayerID json.RawMessage    `json:"activePlayerId"`
}

type rawPlayer struct {
	ID               json.RawMessage `json:"id"`
	Name             json.RawMessage `json:"name"`
	UnlockedChapters json.RawMessage `json:"unlockedChapters"`
	Chapters         json.RawMessage `json:"chapters"`
}

// wire decodes what it can. A mistyped field drops the smallest enclosing
// entry: a chapter record, an unlock id, or a player without a usable id.
func (r *rawSave) wire() wireSave {
	players := make([]wirePlayer, 0, len(*r.Players))
	for _, msg := range *r.Players {
		if p, ok := decodePlayer(msg); ok {
			players = append(players, p)
		}
	}

	w := wireSave{Players: &players}
	var version *int
	if json.Unmarshal(r.Version, &version) == nil {
		w.Version = version
	}
	var active *string
	if json.Unmarshal(r.ActivePlayerID, &active) == nil {
		w.ActivePlayerID = active
	}
	return w
}

func decodePlayer(msg json.RawMessage) (wirePlayer, bool) {
	var raw rawPlayer
	if err := json.Unmarshal(msg, &raw); err != nil {
		return wirePlayer{}, false
	}
	id, ok := decodeID(raw.ID)
	if !ok {
		return wirePlayer{}, false
	}

	p := wirePlayer{ID: id, Chapters: map[string]wireChapter{}}
	_ = json.Unmarshal(raw.Name, &p.Name)

	var unlocks []json.RawMessage
	if json.Unmarshal(raw.UnlockedChapters, &unlocks) == nil {
		for _, u := range unlocks {
			var n int
			if json.Unmarshal(u, &n) == nil {
				p.UnlockedChapters = append(p.UnlockedChapters, n)
			}
		}
	}

	var chapters map[string]json.RawMessage
	if json.Unmarshal(raw.Chapters, &chapters) == nil {
		for key, c := range chapters {
			var wc wireChapter
			if json.Unmarshal(c, &wc) == nil {
				p.Chapters[key] = wc
			}
		}
	}
	return p, true
}

// decodeID accepts a string id or a bare number, kept in its literal form.
func decodeID(msg json.RawMessage) (string, bool) {
	var id string
	if json.Unmarshal(msg, &id) == nil {
		return id, true
	}
	var num json.Number
	if json.Unmarshal(msg, &num) == nil && num != "" {
		return num.String(), true
	}
	return "", false
}
