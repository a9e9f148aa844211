package savecodec

import "github.com/alexanderramin/casewalk/internal/domain"

// maxStars is the best rating a v1 record could hold.
const maxStars = 3

type migration struct {
	from  int
	apply func(w *wireSave)
}

// migrations run in order; each moves a record from version `from` to
// from+1.
var migrations = []migration{
	{from: 1, apply: migrateV1ToV2},
	{from: 2, apply: migrateV2ToV3},
}

// detectVersion returns the explicit tag when present. Untagged records are
// v1 if any chapter carries only a star rating, otherwise v2.
func detectVersion(w *wireSave) int {
	if w.Version != nil && *w.Version > 0 {
		return *w.Version
	}
	for _, p := range *w.Players {
		for _, c := range p.Chapters {
			if c.Wrong == nil && c.Stars != nil {
				return 1
			}
		}
	}
	return 2
}

// migrate applies every migration from version `from` upward and returns
// the resulting version.
func migrate(w *wireSave, from int) int {
	v := from
	for _, m := range migrations {
		if m.from == v {
			m.apply(w)
			v++
		}
	}
	return v
}

// migrateV1ToV2 converts star ratings into wrong counts. Three stars is a
// perfect run; each missing star is one wrong answer. A record that already
// has a wrong count keeps it. v1 saves predate the male track so their
// chapter keys already sit in the female range.
func migrateV1ToV2(w *wireSave) {
	for i := range *w.Players {
		p := &(*w.Players)[i]
		for key, c := range p.Chapters {
			if c.Wrong == nil && c.Stars != nil {
				wrong := domain.ClampWrong(maxStars - *c.Stars)
				c.Wrong = &wrong
			}
			c.Stars = nil
			p.Chapters[key] = c
		}
	}
}

// migrateV2ToV3 drops chapter keys that are not canonical integers and
// stamps the version.
func migrateV2ToV3(w *wireSave) {
	for i := range *w.Players {
		p := &(*w.Players)[i]
		for key := range p.Chapters {
			if _, ok := chapterKey(key); !ok {
				delete(p.Chapters, key)
			}
		}
	}
	v := 3
	w.Version = &v
}
