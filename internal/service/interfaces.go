package service

import (
	"context"

	"github.com/alexanderramin/casewalk/internal/contract"
	"github.com/alexanderramin/casewalk/internal/domain"
)

// ProgressService owns all persisted learner progress. Every method runs a
// full load-mutate-persist cycle and never fails: storage problems are
// reported to the UseCaseObserver and the call degrades to a safe default.
type ProgressService interface {
	CreatePlayer(ctx context.Context, name string) domain.PlayerProfile
	ActivePlayer(ctx context.Context) (domain.PlayerProfile, bool)
	SetActivePlayer(ctx context.Context, id string)
	Players(ctx context.Context) []domain.PlayerProfile

	SaveChapterResult(ctx context.Context, chapter, wrong int, patient domain.Patient)
	ChapterWrong(ctx context.Context, chapter int, patient domain.Patient) int
	ChapterScore(ctx context.Context, chapter int, patient domain.Patient) float64
	IsChapterUnlocked(ctx context.Context, chapter int, patient domain.Patient) bool
	TotalScore(ctx context.Context, patient domain.Patient) float64

	Report(ctx context.Context, patient domain.Patient) contract.ProgressReport
}
