package domain

const (
	// ChapterCount is the number of visible chapters per patient.
	ChapterCount = 8

	// PatientOffset separates the male namespace from the female one in
	// the internal chapter id space.
	PatientOffset = 100

	// MaxWrong is the highest wrong-answer count recorded for an attempt.
	MaxWrong = 4

	// MaxTotalScore is the sum of MaxScore over every chapter of one patient.
	MaxTotalScore = 100.0
)

var maxScores = [ChapterCount]float64{10, 10, 10, 10, 15, 15, 15, 15}

// ClampChapter coerces n into the visible chapter range [1, ChapterCount].
func ClampChapter(n int) int {
	return clampInt(n, 1, ChapterCount)
}

// ValidChapter reports whether n is a visible chapter number.
func ValidChapter(n int) bool {
	return n >= 1 && n <= ChapterCount
}

// ClampWrong coerces n into [0, MaxWrong].
func ClampWrong(n int) int {
	return clampInt(n, 0, MaxWrong)
}

// InternalChapterID projects a visible chapter onto the flat storage key
// space: 1..8 for the female track, 101..108 for the male track.
func InternalChapterID(visible int, p Patient) int {
	if p.OrDefault() == PatientMale {
		return PatientOffset + visible
	}
	return visible
}

// VisibleChapter is the inverse of InternalChapterID. The visible number is
// returned unclamped so callers can detect out-of-range ids.
func VisibleChapter(internal int) (int, Patient) {
	if internal > PatientOffset {
		return internal - PatientOffset, PatientMale
	}
	return internal, PatientFemale
}

// MaxScore returns the best achievable score for a visible chapter.
func MaxScore(visible int) float64 {
	return maxScores[ClampChapter(visible)-1]
}

// Score derives the score of an attempt from its wrong-answer count. Each
// wrong answer costs a quarter of the chapter's maximum.
func Score(visible, wrong int) float64 {
	max := MaxScore(visible)
	s := max - float64(wrong)*(max/MaxWrong)
	if s < 0 {
		return 0
	}
	if s > max {
		return max
	}
	return s
}

func clampInt(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
