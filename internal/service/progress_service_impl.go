package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/casewalk/internal/contract"
	"github.com/alexanderramin/casewalk/internal/domain"
	"github.com/alexanderramin/casewalk/internal/repository"
	"github.com/alexanderramin/casewalk/internal/savecodec"
	"github.com/google/uuid"
)

type progressService struct {
	saves    repository.SaveRepo
	observer UseCaseObserver
	newID    func() string
	now      func() time.Time
}

// ProgressOption customizes a ProgressService.
type ProgressOption func(*progressService)

// WithIDGenerator replaces uuid-based player ids.
func WithIDGenerator(fn func() string) ProgressOption {
	return func(s *progressService) { s.newID = fn }
}

// WithClock replaces time.Now for save timestamps.
func WithClock(fn func() time.Time) ProgressOption {
	return func(s *progressService) { s.now = fn }
}

// WithObserver sets the use-case observer. A nil observer is ignored.
func WithObserver(obs UseCaseObserver) ProgressOption {
	return func(s *progressService) { s.observer = useCaseObserverOrNoop([]UseCaseObserver{obs}) }
}

func NewProgressService(saves repository.SaveRepo, opts ...ProgressOption) ProgressService {
	s := &progressService{
		saves:    saves,
		observer: NoopUseCaseObserver{},
		newID:    func() string { return uuid.New().String() },
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// snapshot is one loaded save. writable is false when the backing store
// could not be read or holds a newer schema; mutating it would overwrite
// data we never saw.
type snapshot struct {
	data     domain.SaveData
	writable bool
}

// useCase tracks one operation for the observer.
type useCase struct {
	name    string
	read    bool
	started time.Time
	fields  map[string]any
	err     error
}

func (s *progressService) begin(name string, read bool, fields map[string]any) *useCase {
	if fields == nil {
		fields = map[string]any{}
	}
	return &useCase{name: name, read: read, started: s.now(), fields: fields}
}

func (s *progressService) end(ctx context.Context, uc *useCase) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      uc.name,
		StartedAt: uc.started,
		Duration:  s.now().Sub(uc.started),
		Success:   uc.err == nil,
		Err:       uc.err,
		Fields:    uc.fields,
		Read:      uc.read,
	})
}

// load reads and decodes the save. A record that decodes to something
// different from what is stored (migrated or denormalized) is rewritten
// straight away, so healing happens once. Records from a newer build are
// never written.
func (s *progressService) load(ctx context.Context, uc *useCase) snapshot {
	rec, err := s.saves.Load(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return snapshot{data: domain.NewSaveData(), writable: true}
		}
		uc.err = fmt.Errorf("loading save: %w", err)
		return snapshot{data: domain.NewSaveData(), writable: false}
	}

	data, outcome := savecodec.Decode(rec.Payload)
	if outcome.Status != savecodec.StatusLoaded {
		uc.fields["load_status"] = string(outcome.Status)
	}
	if outcome.Migrated() {
		uc.fields["migrated_from"] = outcome.FromVersion
	}
	if outcome.ReadOnly() {
		uc.fields["version"] = outcome.FromVersion
		return snapshot{data: data, writable: false}
	}
	// An unparseable record stays on disk until the next mutation.
	if outcome.Status == savecodec.StatusCorrupt {
		return snapshot{data: data, writable: true}
	}

	encoded, err := savecodec.Encode(data)
	if err != nil {
		uc.err = err
		return snapshot{data: data, writable: true}
	}
	if !bytes.Equal(encoded, rec.Payload) {
		uc.fields["healed"] = true
		s.write(ctx, uc, encoded)
	}
	return snapshot{data: data, writable: true}
}

// persist normalizes and writes the full save.
func (s *progressService) persist(ctx context.Context, uc *useCase, snap snapshot) {
	if !snap.writable {
		uc.fields["skipped_write"] = true
		return
	}
	snap.data.Normalize()
	encoded, err := savecodec.Encode(snap.data)
	if err != nil {
		uc.err = err
		return
	}
	s.write(ctx, uc, encoded)
}

func (s *progressService) write(ctx context.Context, uc *useCase, payload []byte) {
	rec := repository.SaveRecord{
		Payload:       payload,
		SchemaVersion: domain.CurrentSaveVersion,
		SavedAt:       s.now().UTC(),
	}
	if err := s.saves.Persist(ctx, rec); err != nil {
		uc.err = fmt.Errorf("persisting save: %w", err)
	}
}

func (s *progressService) CreatePlayer(ctx context.Context, name string) domain.PlayerProfile {
	uc := s.begin("create-player", false, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	p := domain.NewPlayerProfile(s.newID(), name)
	snap.data.AddPlayer(p)
	s.persist(ctx, uc, snap)

	uc.fields["player_id"] = p.ID
	return p.Clone()
}

func (s *progressService) ActivePlayer(ctx context.Context) (domain.PlayerProfile, bool) {
	uc := s.begin("active-player", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	active := snap.data.Active()
	if active == nil {
		return domain.PlayerProfile{}, false
	}
	return active.Clone(), true
}

func (s *progressService) SetActivePlayer(ctx context.Context, id string) {
	uc := s.begin("set-active-player", false, map[string]any{"player_id": id})
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	if !snap.data.SetActive(id) {
		uc.fields["ignored"] = true
		return
	}
	s.persist(ctx, uc, snap)
}

func (s *progressService) Players(ctx context.Context) []domain.PlayerProfile {
	uc := s.begin("list-players", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	out := make([]domain.PlayerProfile, 0, len(snap.data.Players))
	for _, p := range snap.data.Players {
		out = append(out, p.Clone())
	}
	uc.fields["count"] = len(out)
	return out
}

func (s *progressService) SaveChapterResult(ctx context.Context, chapter, wrong int, patient domain.Patient) {
	patient = patient.OrDefault()
	uc := s.begin("save-chapter-result", false, map[string]any{
		"chapter": chapter,
		"wrong":   wrong,
		"patient": string(patient),
	})
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	active := snap.data.Active()
	if active == nil {
		uc.fields["ignored"] = true
		return
	}
	uc.fields["replaced"] = active.RecordAttempt(chapter, wrong, patient)
	s.persist(ctx, uc, snap)
}

func (s *progressService) ChapterWrong(ctx context.Context, chapter int, patient domain.Patient) int {
	uc := s.begin("chapter-wrong", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	wrong, _ := chapterWrong(snap.data.Active(), chapter, patient)
	return wrong
}

func (s *progressService) ChapterScore(ctx context.Context, chapter int, patient domain.Patient) float64 {
	uc := s.begin("chapter-score", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	return chapterScore(snap.data.Active(), chapter, patient)
}

func (s *progressService) IsChapterUnlocked(ctx context.Context, chapter int, patient domain.Patient) bool {
	uc := s.begin("is-chapter-unlocked", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	return chapterUnlocked(snap.data.Active(), chapter, patient)
}

func (s *progressService) TotalScore(ctx context.Context, patient domain.Patient) float64 {
	uc := s.begin("total-score", true, nil)
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	return totalScore(snap.data.Active(), patient)
}

func (s *progressService) Report(ctx context.Context, patient domain.Patient) contract.ProgressReport {
	patient = patient.OrDefault()
	uc := s.begin("progress-report", true, map[string]any{"patient": string(patient)})
	defer s.end(ctx, uc)

	snap := s.load(ctx, uc)
	active := snap.data.Active()
	report := contract.ProgressReport{
		Patient:  patient,
		MaxTotal: domain.MaxTotalScore,
		Chapters: make([]contract.ChapterView, 0, domain.ChapterCount),
	}
	if active != nil {
		report.HasPlayer = true
		report.PlayerID = active.ID
		report.PlayerName = active.Name
	}
	for v := 1; v <= domain.ChapterCount; v++ {
		wrong, attempted := chapterWrong(active, v, patient)
		report.Chapters = append(report.Chapters, contract.ChapterView{
			Chapter:   v,
			Unlocked:  chapterUnlocked(active, v, patient),
			Attempted: attempted,
			Wrong:     wrong,
			Score:     chapterScore(active, v, patient),
			MaxScore:  domain.MaxScore(v),
		})
	}
	report.TotalScore = totalScore(active, patient)
	return report
}

// chapterWrong returns the stored wrong count and whether an attempt
// exists. A nil player has no attempts.
func chapterWrong(p *domain.PlayerProfile, chapter int, patient domain.Patient) (int, bool) {
	if p == nil {
		return 0, false
	}
	cs, ok := p.Attempt(chapter, patient)
	if !ok {
		return 0, false
	}
	return domain.ClampWrong(cs.Wrong), true
}

// chapterScore is zero for chapters that were never attempted or lie
// outside [1, ChapterCount].
func chapterScore(p *domain.PlayerProfile, chapter int, patient domain.Patient) float64 {
	wrong, ok := chapterWrong(p, chapter, patient)
	if !ok {
		return 0
	}
	return domain.Score(chapter, wrong)
}

// chapterUnlocked treats a missing player as a guest who may open the
// entry chapter of every track and nothing else.
func chapterUnlocked(p *domain.PlayerProfile, chapter int, patient domain.Patient) bool {
	if p == nil {
		return chapter == 1
	}
	return p.IsUnlocked(chapter, patient)
}

func totalScore(p *domain.PlayerProfile, patient domain.Patient) float64 {
	total := 0.0
	for v := 1; v <= domain.ChapterCount; v++ {
		total += chapterScore(p, v, patient)
	}
	return total
}
