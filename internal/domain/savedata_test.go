package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveData_AddPlayerSetsActive(t *testing.T) {
	s := NewSaveData()
	s.AddPlayer(NewPlayerProfile("a", "A"))
	s.AddPlayer(NewPlayerProfile("b", "B"))

	require.NotNil(t, s.Active())
	assert.Equal(t, "b", s.Active().ID)
	assert.Equal(t, []string{"a", "b"}, []string{s.Players[0].ID, s.Players[1].ID})
}

func TestSaveData_SetActiveUnknownIsIgnored(t *testing.T) {
	s := NewSaveData()
	s.AddPlayer(NewPlayerProfile("a", "A"))

	assert.False(t, s.SetActive("missing"))
	require.NotNil(t, s.ActivePlayerID)
	assert.Equal(t, "a", *s.ActivePlayerID)
}

func TestSaveData_DanglingActiveIsNil(t *testing.T) {
	s := NewSaveData()
	ghost := "ghost"
	s.ActivePlayerID = &ghost

	assert.Nil(t, s.Active())
}

func TestSaveData_NormalizeHealsEveryProfile(t *testing.T) {
	s := NewSaveData()
	s.Players = []PlayerProfile{
		{ID: "a", UnlockedChapters: []int{1, 5}},
		{ID: "b", UnlockedChapters: []int{1, 101}, Chapters: map[int]ChapterScore{}},
	}

	assert.True(t, s.Normalize())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 101}, s.Players[0].UnlockedChapters)
	assert.NotNil(t, s.Players[0].Chapters)
	assert.False(t, s.Normalize())
}
