package service

import (
	"context"
	"errors"
	"testing"

	"hustle-mentor-be/internal/dto"
	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/pkg/serverutils"
	"hustle-mentor-be/internal/repository/contract"
	"hustle-mentor-be/internal/repository/memory"
	"hustle-mentor-be/internal/repository/specification"
	"hustle-mentor-be/internal/repository/unitofwork"
	"hustle-mentor-be/pkg/events"
	"hustle-mentor-be/pkg/journey"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJourneyRepo struct {
	stored    *entity.Journey
	findErr   error
	upsertErr error
	upserts   []*entity.Journey
}

func (r *fakeJourneyRepo) Upsert(ctx context.Context, j *entity.Journey) error {
	r.upserts = append(r.upserts, j)
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.stored = j
	return nil
}

func (r *fakeJourneyRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Journey, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.stored, nil
}

func (r *fakeJourneyRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	if r.stored == nil {
		return 0, nil
	}
	return 1, nil
}

type fakeActivityRepo struct {
	logs []*entity.ActivityLog
}

func (r *fakeActivityRepo) Create(ctx context.Context, log *entity.ActivityLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeActivityRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	out := make([]*entity.ActivityLog, 0, len(r.logs))
	for _, l := range r.logs {
		keep := true
		for _, spec := range specs {
			if byType, ok := spec.(specification.ByType); ok && l.Type != byType.Type {
				keep = false
			}
		}
		if keep {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.logs)), nil
}

type fakeUow struct {
	journeys   *fakeJourneyRepo
	activities *fakeActivityRepo
}

func (u *fakeUow) JourneyRepository() contract.JourneyRepository {
	return u.journeys
}
func (u *fakeUow) ActivityLogRepository() contract.ActivityLogRepository {
	return u.activities
}

type fakeUowFactory struct {
	uow *fakeUow
}

func (f *fakeUowFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type recordingPublisher struct {
	events []events.JourneyEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.JourneyEvent) error {
	p.events = append(p.events, evt)
	return nil
}

type stubGateway struct {
	text string
	err  error
}

func (g *stubGateway) Guide(ctx context.Context, gc journey.GuidanceContext) (string, error) {
	return g.text, g.err
}

func newTestJourneyService(repo *fakeJourneyRepo, gw journey.Gateway, pub IPublisherService) IJourneyService {
	return NewJourneyService(
		&fakeUowFactory{uow: &fakeUow{journeys: repo, activities: &fakeActivityRepo{}}},
		memory.NewSessionRepository(),
		gw,
		pub,
		noopLogger{},
	)
}

func TestLoadDegradesToEmptyOnReadFailure(t *testing.T) {
	repo := &fakeJourneyRepo{findErr: errors.New("connection reset")}
	svc := newTestJourneyService(repo, &stubGateway{}, nil)

	view, err := svc.GetJourney(context.Background(), "u1")
	require.NoError(t, err, "read failures never surface")
	assert.Empty(t, view.Notes)
	assert.False(t, view.IsLoading)
}

func TestGetJourneyHydratesPersistedNotes(t *testing.T) {
	repo := &fakeJourneyRepo{stored: &entity.Journey{
		UserId:    "u1",
		JourneyId: entity.DefaultJourneyId,
		Notes:     map[string]string{"idea": "braai catering", "plan": "weekend markets"},
	}}
	svc := newTestJourneyService(repo, &stubGateway{}, nil)

	view, err := svc.GetJourney(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "braai catering", view.Notes["idea"])
	assert.Equal(t, "Business Idea", view.Summary[0].Label)
	assert.Equal(t, "braai catering", view.Summary[0].Value)
	assert.Equal(t, "Not captured yet", view.Summary[2].Value)
}

func TestSetNoteUnknownStage(t *testing.T) {
	svc := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{}, nil)

	_, err := svc.SetNote(context.Background(), "u1", &dto.SetNoteRequest{StageId: "bogus", Text: "x"})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestAdvancePersistsAndPublishes(t *testing.T) {
	repo := &fakeJourneyRepo{}
	pub := &recordingPublisher{}
	svc := newTestJourneyService(repo, &stubGateway{}, pub)

	_, err := svc.SetNote(context.Background(), "u1", &dto.SetNoteRequest{StageId: "idea", Text: "sell sneakers"})
	require.NoError(t, err)

	view, err := svc.Advance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, view.ActiveIndex)
	assert.Equal(t, "Saved", view.Status)

	require.Len(t, repo.upserts, 1)
	assert.Equal(t, "u1", repo.upserts[0].UserId)
	assert.Equal(t, entity.DefaultJourneyId, repo.upserts[0].JourneyId)
	assert.Equal(t, "sell sneakers", repo.upserts[0].Notes["idea"])

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeJourneySaved, pub.events[0].Type)
	assert.Equal(t, "u1", pub.events[0].UserId)
}

func TestAdvanceMoveSurvivesWriteFailure(t *testing.T) {
	repo := &fakeJourneyRepo{upsertErr: errors.New("deadlock")}
	svc := newTestJourneyService(repo, &stubGateway{}, nil)

	view, err := svc.Advance(context.Background(), "u1")
	require.NoError(t, err, "the move itself succeeds")
	assert.Equal(t, 1, view.ActiveIndex)
	assert.Equal(t, "Save failed", view.Status)
}

func TestJumpProgressAndTimeline(t *testing.T) {
	svc := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{}, nil)

	view, err := svc.JumpTo(context.Background(), "u1", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ActiveIndex)
	assert.Equal(t, 50, view.Progress)

	require.Len(t, view.Timeline, 6)
	assert.Equal(t, "Done", view.Timeline[0].Status)
	assert.Equal(t, "Done", view.Timeline[1].Status)
	assert.Equal(t, "In progress", view.Timeline[2].Status)
	assert.Equal(t, "Pending", view.Timeline[3].Status)
}

func TestRequestGuidancePublishesOnSuccessOnly(t *testing.T) {
	pub := &recordingPublisher{}
	svc := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{text: "• Do one thing"}, pub)

	view, err := svc.RequestGuidance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Error)
	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeGuidanceGenerated, pub.events[0].Type)

	pubFail := &recordingPublisher{}
	svcFail := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{err: errors.New("boom")}, pubFail)

	view, err = svcFail.RequestGuidance(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Could not get AI guidance. Please try again.", view.Error)
	assert.Empty(t, pubFail.events)
}

func TestToggleUnknownItem(t *testing.T) {
	svc := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{}, nil)

	_, err := svc.ToggleItem(context.Background(), "u1", "no-such-id")

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Status)
}

func TestActivityTypeFilter(t *testing.T) {
	activities := &fakeActivityRepo{logs: []*entity.ActivityLog{
		{Id: uuid.New(), UserId: "u1", Type: events.TypeJourneySaved},
		{Id: uuid.New(), UserId: "u1", Type: events.TypeGuidanceGenerated},
	}}
	svc := NewJourneyService(
		&fakeUowFactory{uow: &fakeUow{journeys: &fakeJourneyRepo{}, activities: activities}},
		memory.NewSessionRepository(),
		&stubGateway{},
		nil,
		noopLogger{},
	)

	res, err := svc.Activity(context.Background(), "u1", events.TypeJourneySaved, 20, 0)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, events.TypeJourneySaved, res[0].Type)

	res, err = svc.Activity(context.Background(), "u1", "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, res, 2, "no type query returns every event")
}

func TestSessionReusedAcrossCalls(t *testing.T) {
	svc := newTestJourneyService(&fakeJourneyRepo{}, &stubGateway{}, nil)

	_, err := svc.SetNote(context.Background(), "u1", &dto.SetNoteRequest{StageId: "idea", Text: "first"})
	require.NoError(t, err)

	view, err := svc.GetJourney(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "first", view.Notes["idea"], "second call sees the same session")
}
