package service

import (
	"context"
	"errors"
	"time"

	"hustle-mentor-be/internal/dto"
	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/pkg/logger"
	"hustle-mentor-be/internal/pkg/serverutils"
	"hustle-mentor-be/internal/repository/memory"
	"hustle-mentor-be/internal/repository/specification"
	"hustle-mentor-be/internal/repository/unitofwork"
	"hustle-mentor-be/pkg/events"
	"hustle-mentor-be/pkg/journey"
)

type IJourneyService interface {
	GetJourney(ctx context.Context, userId string) (*dto.JourneyView, error)
	SetNote(ctx context.Context, userId string, req *dto.SetNoteRequest) (*dto.JourneyView, error)
	Advance(ctx context.Context, userId string) (*dto.JourneyView, error)
	Retreat(ctx context.Context, userId string) (*dto.JourneyView, error)
	JumpTo(ctx context.Context, userId string, index int) (*dto.JourneyView, error)
	RequestGuidance(ctx context.Context, userId string) (*dto.JourneyView, error)
	ToggleItem(ctx context.Context, userId string, itemId string) (*dto.JourneyView, error)
	RequestItemAdvice(ctx context.Context, userId string, itemId string) (*dto.JourneyView, error)
	Activity(ctx context.Context, userId, eventType string, limit, offset int) ([]*dto.ActivityResponse, error)
}

type journeyService struct {
	uowFactory       unitofwork.RepositoryFactory
	sessionRepo      *memory.SessionRepository
	gateway          journey.Gateway
	publisherService IPublisherService
	log              logger.ILogger
}

func NewJourneyService(
	uowFactory unitofwork.RepositoryFactory,
	sessionRepo *memory.SessionRepository,
	gateway journey.Gateway,
	publisherService IPublisherService,
	log logger.ILogger,
) IJourneyService {
	return &journeyService{
		uowFactory:       uowFactory,
		sessionRepo:      sessionRepo,
		gateway:          gateway,
		publisherService: publisherService,
		log:              log,
	}
}

// journeyService is also the persistence adapter the state machine writes
// through.
var _ journey.Store = (*journeyService)(nil)

// Load returns the persisted notes map, or an empty map when no identity is
// available or the read fails. Read failures are logged, never surfaced;
// they degrade to a fresh start.
func (s *journeyService) Load(ctx context.Context, userId string) map[string]string {
	if userId == "" {
		return map[string]string{}
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	j, err := uow.JourneyRepository().FindOne(ctx,
		specification.ByUserId{UserId: userId},
		specification.ByJourneyId{JourneyId: entity.DefaultJourneyId},
	)
	if err != nil {
		s.log.Error("journey", "Failed to load journey", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId,
		})
		return map[string]string{}
	}
	if j == nil || j.Notes == nil {
		return map[string]string{}
	}
	return j.Notes
}

// Save merge-upserts the full notes map. Unlike Load, a failure here is
// surfaced to the caller.
func (s *journeyService) Save(ctx context.Context, userId string, notes map[string]string) error {
	if userId == "" {
		return serverutils.NewWriteFailure(errors.New("identity not available"))
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	j := &entity.Journey{
		UserId:    userId,
		JourneyId: entity.DefaultJourneyId,
		Notes:     notes,
	}
	if err := uow.JourneyRepository().Upsert(ctx, j); err != nil {
		s.log.Error("journey", "Failed to save journey", map[string]interface{}{
			"error":   err.Error(),
			"user_id": userId,
		})
		return serverutils.NewWriteFailure(err)
	}

	s.publish(ctx, events.JourneyEvent{
		Type:   events.TypeJourneySaved,
		UserId: userId,
		Data: map[string]interface{}{
			"stage_count": len(notes),
		},
		OccurredAt: time.Now(),
	})
	return nil
}

func (s *journeyService) GetJourney(ctx context.Context, userId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	return s.view(sess), nil
}

func (s *journeyService) SetNote(ctx context.Context, userId string, req *dto.SetNoteRequest) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	if !sess.SetNote(req.StageId, req.Text) {
		return nil, serverutils.NewInvalidPayload()
	}
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) Advance(ctx context.Context, userId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	// The move proceeds regardless of the save outcome; the failure reaches
	// the user only through the transient status message.
	if err := sess.Advance(ctx, s); err != nil {
		s.log.Warn("journey", "Save before advance failed", map[string]interface{}{
			"user_id": userId,
		})
	}
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) Retreat(ctx context.Context, userId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	if err := sess.Retreat(ctx, s); err != nil {
		s.log.Warn("journey", "Save before retreat failed", map[string]interface{}{
			"user_id": userId,
		})
	}
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) JumpTo(ctx context.Context, userId string, index int) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	sess.JumpTo(index)
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) RequestGuidance(ctx context.Context, userId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	sess.RequestGuidance(ctx, s.gateway)
	s.sessionRepo.Save(sess)

	snap := sess.Snapshot()
	if snap.GuidanceErr == "" {
		s.publish(ctx, events.JourneyEvent{
			Type:   events.TypeGuidanceGenerated,
			UserId: userId,
			Data: map[string]interface{}{
				"stage_id":   snap.ActiveStage.Id,
				"item_count": len(snap.Checklist),
			},
			OccurredAt: time.Now(),
		})
	}
	return s.viewFromSnapshot(snap), nil
}

func (s *journeyService) ToggleItem(ctx context.Context, userId string, itemId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	if !sess.ToggleItem(itemId) {
		return nil, serverutils.NewNotFound("Checklist item not found")
	}
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) RequestItemAdvice(ctx context.Context, userId string, itemId string) (*dto.JourneyView, error) {
	sess := s.session(ctx, userId)
	if !sess.RequestItemAdvice(ctx, s.gateway, itemId) {
		return nil, serverutils.NewNotFound("Checklist item not found")
	}
	s.sessionRepo.Save(sess)
	return s.view(sess), nil
}

func (s *journeyService) Activity(ctx context.Context, userId, eventType string, limit, offset int) ([]*dto.ActivityResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	specs := []specification.Specification{
		specification.ByUserId{UserId: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: offset},
	}
	if eventType != "" {
		specs = append(specs, specification.ByType{Type: eventType})
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	logs, err := uow.ActivityLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ActivityResponse, len(logs))
	for i, l := range logs {
		out[i] = &dto.ActivityResponse{
			Id:        l.Id.String(),
			Type:      l.Type,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		}
	}
	return out, nil
}

// session returns the live state machine for the identity, hydrating a new
// one from the store on first touch.
func (s *journeyService) session(ctx context.Context, userId string) *journey.Session {
	if sess, ok := s.sessionRepo.Get(userId); ok {
		return sess
	}
	sess := journey.NewSession(userId)
	sess.Hydrate(ctx, s)
	s.sessionRepo.Save(sess)
	return sess
}

func (s *journeyService) publish(ctx context.Context, evt events.JourneyEvent) {
	if s.publisherService == nil {
		return
	}
	// Events feed the auxiliary activity trail; a publish failure never
	// fails the request.
	if err := s.publisherService.Publish(ctx, evt); err != nil {
		s.log.Warn("journey", "Failed to publish journey event", map[string]interface{}{
			"error": err.Error(),
			"type":  evt.Type,
		})
	}
}

func (s *journeyService) view(sess *journey.Session) *dto.JourneyView {
	return s.viewFromSnapshot(sess.Snapshot())
}

var summaryStages = []struct {
	StageId string
	Label   string
	Icon    string
}{
	{StageId: "idea", Label: "Business Idea", Icon: "💡"},
	{StageId: "plan", Label: "Plan Notes", Icon: "📄"},
	{StageId: "market", Label: "Market Notes", Icon: "👥"},
}

func (s *journeyService) viewFromSnapshot(snap journey.Snapshot) *dto.JourneyView {
	stages := journey.Stages()

	summary := make([]dto.SummaryItem, len(summaryStages))
	for i, item := range summaryStages {
		value := snap.Notes[item.StageId]
		if value == "" {
			value = "Not captured yet"
		}
		summary[i] = dto.SummaryItem{Label: item.Label, Icon: item.Icon, Value: value}
	}

	timeline := make([]dto.TimelineItem, len(stages))
	for i, stage := range stages {
		status := "Pending"
		if i < snap.ActiveIndex {
			status = "Done"
		} else if i == snap.ActiveIndex {
			status = "In progress"
		}
		timeline[i] = dto.TimelineItem{
			StageId: stage.Id,
			Title:   stage.Title,
			Status:  status,
			HasNote: snap.Notes[stage.Id] != "",
		}
	}

	return &dto.JourneyView{
		ActiveIndex: snap.ActiveIndex,
		ActiveStage: snap.ActiveStage,
		Progress:    (snap.ActiveIndex + 1) * 100 / len(stages),
		Notes:       snap.Notes,
		IsSaving:    snap.IsSaving,
		IsLoading:   snap.IsLoading,
		Status:      snap.Status,
		Response:    snap.Response,
		Error:       snap.GuidanceErr,
		Thinking:    snap.Thinking,
		Checklist:   snap.Checklist,
		Summary:     summary,
		Timeline:    timeline,
	}
}
