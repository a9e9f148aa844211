package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalChapterID_ProjectsPerPatient(t *testing.T) {
	cases := []struct {
		visible int
		patient Patient
		want    int
	}{
		{1, PatientFemale, 1},
		{8, PatientFemale, 8},
		{1, PatientMale, 101},
		{8, PatientMale, 108},
		{3, Patient(""), 3},
		{3, Patient("unknown"), 3},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InternalChapterID(tc.visible, tc.patient), "visible=%d patient=%q", tc.visible, tc.patient)
	}
}

func TestVisibleChapter_InvertsProjection(t *testing.T) {
	for _, p := range Patients {
		for v := 1; v <= ChapterCount; v++ {
			gotV, gotP := VisibleChapter(InternalChapterID(v, p))
			assert.Equal(t, v, gotV)
			assert.Equal(t, p, gotP)
		}
	}
}

func TestClampChapter(t *testing.T) {
	assert.Equal(t, 1, ClampChapter(-3))
	assert.Equal(t, 1, ClampChapter(0))
	assert.Equal(t, 5, ClampChapter(5))
	assert.Equal(t, 8, ClampChapter(9))
	assert.Equal(t, 8, ClampChapter(1000))
}

func TestValidChapter(t *testing.T) {
	for n := -1; n <= ChapterCount+1; n++ {
		assert.Equal(t, n >= 1 && n <= ChapterCount, ValidChapter(n), "chapter %d", n)
	}
}

func TestClampWrong(t *testing.T) {
	assert.Equal(t, 0, ClampWrong(-1))
	assert.Equal(t, 2, ClampWrong(2))
	assert.Equal(t, 4, ClampWrong(7))
}

func TestMaxScore_LookupTable(t *testing.T) {
	for v := 1; v <= 4; v++ {
		assert.Equal(t, 10.0, MaxScore(v), "chapter %d", v)
	}
	for v := 5; v <= 8; v++ {
		assert.Equal(t, 15.0, MaxScore(v), "chapter %d", v)
	}

	total := 0.0
	for v := 1; v <= ChapterCount; v++ {
		total += MaxScore(v)
	}
	assert.Equal(t, MaxTotalScore, total)
}

func TestScore_Formula(t *testing.T) {
	cases := []struct {
		name    string
		visible int
		wrong   int
		want    float64
	}{
		{"perfect short chapter", 1, 0, 10},
		{"two wrong short chapter", 1, 2, 5},
		{"all wrong short chapter", 4, 4, 0},
		{"one wrong long chapter", 5, 1, 11.25},
		{"three wrong long chapter", 8, 3, 3.75},
		{"negative wrong clamps to max", 2, -2, 10},
		{"excess wrong clamps to zero", 6, 9, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Score(tc.visible, tc.wrong))
		})
	}
}

func TestParsePatient(t *testing.T) {
	assert.Equal(t, PatientMale, ParsePatient("male"))
	assert.Equal(t, PatientMale, ParsePatient("  MALE "))
	assert.Equal(t, PatientFemale, ParsePatient("female"))
	assert.Equal(t, PatientFemale, ParsePatient(""))
	assert.Equal(t, PatientFemale, ParsePatient("other"))
}
