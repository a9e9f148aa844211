package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlayerProfile_UnlocksEntryChapters(t *testing.T) {
	p := NewPlayerProfile("p1", "  Alice  ")

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, []int{1, 101}, p.UnlockedChapters)
	assert.Empty(t, p.Chapters)
}

func TestNewPlayerProfile_BlankNameUsesDefault(t *testing.T) {
	p := NewPlayerProfile("p1", " \t\n")
	assert.Equal(t, DefaultPlayerName, p.Name)
}

func TestNormalizeUnlocks(t *testing.T) {
	cases := []struct {
		name string
		raw  []int
		want []int
	}{
		{"empty still unlocks entry chapters", nil, []int{1, 101}},
		{"gap is closed up to the highest chapter", []int{1, 4}, []int{1, 2, 3, 4, 101}},
		{"duplicates collapse", []int{1, 1, 2, 2, 101, 101}, []int{1, 2, 101}},
		{"out of range ids discarded", []int{0, -5, 9, 100, 109, 250, 3}, []int{1, 2, 3, 101}},
		{"tracks are independent", []int{102, 2}, []int{1, 2, 101, 102}},
		{"full tracks", []int{8, 108}, []int{1, 2, 3, 4, 5, 6, 7, 8, 101, 102, 103, 104, 105, 106, 107, 108}},
		{"unsorted input", []int{103, 1, 101, 2}, []int{1, 2, 101, 102, 103}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeUnlocks(tc.raw))
		})
	}
}

func TestNormalizeUnlocks_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 500; i++ {
		raw := randomIDs(rng)
		once := NormalizeUnlocks(raw)
		twice := NormalizeUnlocks(once)
		require.Equal(t, once, twice, "raw=%v", raw)
	}
}

func TestNormalizeUnlocks_AlwaysContiguous(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		raw := randomIDs(rng)
		assertContiguous(t, NormalizeUnlocks(raw))
	}
}

func TestPlayerProfile_Normalize_ReportsChange(t *testing.T) {
	p := PlayerProfile{UnlockedChapters: []int{1, 3, 101}}
	assert.True(t, p.Normalize())
	assert.Equal(t, []int{1, 2, 3, 101}, p.UnlockedChapters)
	assert.False(t, p.Normalize(), "second pass should be a no-op")
}

func TestRecordAttempt_FirstAttemptStoredAndNextUnlocked(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")

	replaced := p.RecordAttempt(1, 1, PatientFemale)

	assert.True(t, replaced)
	assert.Equal(t, ChapterScore{Wrong: 1}, p.Chapters[1])
	assert.Equal(t, []int{1, 2, 101}, p.UnlockedChapters)
}

func TestRecordAttempt_KeepsBestAttempt(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	p.RecordAttempt(1, 0, PatientFemale)

	replaced := p.RecordAttempt(1, 2, PatientFemale)

	assert.False(t, replaced)
	assert.Equal(t, 0, p.Chapters[1].Wrong)
}

func TestRecordAttempt_BetterAttemptReplaces(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	p.RecordAttempt(6, 3, PatientMale)

	replaced := p.RecordAttempt(6, 1, PatientMale)

	assert.True(t, replaced)
	assert.Equal(t, 1, p.Chapters[106].Wrong)
}

func TestRecordAttempt_TieKeepsLowerWrong(t *testing.T) {
	// A stored record with an out-of-range wrong count scores the same as
	// the clamped value; the stricter record wins the tie.
	p := NewPlayerProfile("p1", "Alice")
	p.Chapters[2] = ChapterScore{Wrong: 9}

	replaced := p.RecordAttempt(2, 4, PatientFemale)

	assert.True(t, replaced)
	assert.Equal(t, 4, p.Chapters[2].Wrong)

	assert.False(t, p.RecordAttempt(2, 4, PatientFemale), "identical attempt is not a replacement")
}

func TestRecordAttempt_SkippingAheadClosesGap(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")

	p.RecordAttempt(3, 0, PatientFemale)

	assert.Equal(t, []int{1, 2, 3, 4, 101}, p.UnlockedChapters)
}

func TestRecordAttempt_LastChapterUnlocksNothingNew(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	p.RecordAttempt(7, 0, PatientMale)
	before := append([]int(nil), p.UnlockedChapters...)

	p.RecordAttempt(8, 0, PatientMale)

	assert.Equal(t, before, p.UnlockedChapters)
	assert.Equal(t, []int{1, 101, 102, 103, 104, 105, 106, 107, 108}, p.UnlockedChapters)
	assert.NotContains(t, p.UnlockedChapters, 109)
}

func TestRecordAttempt_ClampsInputs(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")

	p.RecordAttempt(42, -3, PatientFemale)

	assert.Equal(t, ChapterScore{Wrong: 0}, p.Chapters[8])
	_, stray := p.Chapters[42]
	assert.False(t, stray)
}

func TestRecordAttempt_NilChaptersMap(t *testing.T) {
	p := PlayerProfile{ID: "p1", Name: "Alice"}
	assert.NotPanics(t, func() { p.RecordAttempt(1, 0, PatientFemale) })
	assert.Equal(t, 0, p.Chapters[1].Wrong)
}

func TestRecordAttempt_NamespaceIsolation(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	for v := 1; v <= ChapterCount; v++ {
		p.RecordAttempt(v, 0, PatientMale)
	}

	for v := 1; v <= ChapterCount; v++ {
		assert.Equal(t, v == 1, p.IsUnlocked(v, PatientFemale), "female chapter %d", v)
		_, ok := p.Attempt(v, PatientFemale)
		assert.False(t, ok)
	}
}

func TestRecordAttempt_PropertyContiguityAndBestAttempt(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 99))
	for run := 0; run < 200; run++ {
		p := NewPlayerProfile("p", "P")
		best := map[int]float64{}
		bestWrong := map[int]int{}

		for step := 0; step < 30; step++ {
			visible := rng.IntN(12) - 2
			wrong := rng.IntN(8) - 2
			patient := Patients[rng.IntN(len(Patients))]

			p.RecordAttempt(visible, wrong, patient)

			id := InternalChapterID(ClampChapter(visible), patient)
			s := Score(ClampChapter(visible), ClampWrong(wrong))
			if prev, ok := best[id]; !ok || s > prev || (s == prev && ClampWrong(wrong) < bestWrong[id]) {
				best[id] = s
				bestWrong[id] = ClampWrong(wrong)
			}
			assertContiguous(t, p.UnlockedChapters)
		}

		for id, s := range best {
			v, _ := VisibleChapter(id)
			assert.Equal(t, s, Score(v, p.Chapters[id].Wrong), "chapter id %d", id)
			assert.Equal(t, bestWrong[id], p.Chapters[id].Wrong, "chapter id %d", id)
		}
	}
}

func TestClone_IsDeep(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	p.RecordAttempt(1, 0, PatientFemale)

	c := p.Clone()
	c.Chapters[1] = ChapterScore{Wrong: 4}
	c.UnlockedChapters[0] = 99

	assert.Equal(t, 0, p.Chapters[1].Wrong)
	assert.Equal(t, 1, p.UnlockedChapters[0])
}

func randomIDs(rng *rand.Rand) []int {
	n := rng.IntN(12)
	ids := make([]int, n)
	for i := range ids {
		ids[i] = rng.IntN(120) - 5
	}
	return ids
}

func assertContiguous(t *testing.T, unlocked []int) {
	t.Helper()
	for _, p := range Patients {
		seen := map[int]bool{}
		max := 0
		for _, id := range unlocked {
			v, owner := VisibleChapter(id)
			if owner != p {
				continue
			}
			require.GreaterOrEqual(t, v, 1)
			require.LessOrEqual(t, v, ChapterCount)
			seen[v] = true
			if v > max {
				max = v
			}
		}
		require.GreaterOrEqual(t, max, 1, "patient %s has no entry chapter", p)
		for v := 1; v <= max; v++ {
			require.True(t, seen[v], "patient %s missing chapter %d in %v", p, v, unlocked)
		}
	}
}

func TestPlayerProfile_OutOfRangeReads(t *testing.T) {
	p := NewPlayerProfile("p1", "Alice")
	p.RecordAttempt(8, 0, PatientFemale)

	for _, v := range []int{0, -1, 9, 108} {
		assert.False(t, p.IsUnlocked(v, PatientFemale), "chapter %d", v)
		_, ok := p.Attempt(v, PatientFemale)
		assert.False(t, ok, "chapter %d", v)
	}
}
