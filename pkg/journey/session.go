package journey

import (
	"context"
	"encoding/json"
	"sync"

	"hustle-mentor-be/pkg/checklist"
)

// GuidanceContext carries everything the mentor model needs about one stage.
type GuidanceContext struct {
	StageId       string
	StageTitle    string
	Prompt        string
	Note          string
	PreviousNotes string
}

// Gateway is the hosted-completion capability the session leans on. A failed
// call must be reported as an error; the session never sees upstream detail.
type Gateway interface {
	Guide(ctx context.Context, gc GuidanceContext) (string, error)
}

// Store is the journey persistence boundary. Load degrades to an empty map on
// any failure (the adapter logs, the session never errors on hydration);
// Save surfaces failure to the caller.
type Store interface {
	Load(ctx context.Context, userId string) map[string]string
	Save(ctx context.Context, userId string, notes map[string]string) error
}

const (
	readyResponse        = "Your AI business mentor is ready to help."
	thinkingResponse     = "Thinking..."
	emptyResponse        = "No response received."
	failedResponse       = "No response."
	guidanceErrMessage   = "Could not get AI guidance. Please try again."
	emptyAdviceMessage   = "No advice generated."
	adviceFallbackAdvice = "Could not fetch advice right now."

	statusSaving     = "Saving…"
	statusSaved      = "Saved"
	statusSaveFailed = "Save failed"
)

// Session is the per-identity journey state machine: the active stage index,
// the notes map, the mentor checklist, and the status bits layered over them.
// All mutation goes through its methods. Guidance and per-item advice calls
// release the lock while the gateway is in flight and apply their result only
// if no newer request of the same class has been issued since (last writer
// wins, made explicit with sequence numbers).
type Session struct {
	mu sync.Mutex

	UserId      string
	ActiveIndex int
	Notes       map[string]string
	IsSaving    bool
	IsLoading   bool
	Status      string
	Response    string
	GuidanceErr string
	Thinking    bool
	Checklist   []checklist.Item

	guidanceSeq uint64
	adviceSeq   map[string]uint64
}

func NewSession(userId string) *Session {
	return &Session{
		UserId:    userId,
		Notes:     map[string]string{},
		IsLoading: true,
		Response:  readyResponse,
		Checklist: checklist.Baseline(),
		adviceSeq: map[string]uint64{},
	}
}

// Snapshot is a lock-free copy of the session for rendering.
type Snapshot struct {
	UserId      string
	ActiveIndex int
	ActiveStage Stage
	Notes       map[string]string
	IsSaving    bool
	IsLoading   bool
	Status      string
	Response    string
	GuidanceErr string
	Thinking    bool
	Checklist   []checklist.Item
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		UserId:      s.UserId,
		ActiveIndex: s.ActiveIndex,
		ActiveStage: stages[s.ActiveIndex],
		Notes:       copyNotes(s.Notes),
		IsSaving:    s.IsSaving,
		IsLoading:   s.IsLoading,
		Status:      s.Status,
		Response:    s.Response,
		GuidanceErr: s.GuidanceErr,
		Thinking:    s.Thinking,
		Checklist:   append([]checklist.Item(nil), s.Checklist...),
	}
}

// Hydrate pulls the persisted notes into the session. Runs once after the
// session is created; a failed read simply leaves the map empty.
func (s *Session) Hydrate(ctx context.Context, store Store) {
	notes := store.Load(ctx, s.UserId)
	s.mu.Lock()
	defer s.mu.Unlock()
	if notes == nil {
		notes = map[string]string{}
	}
	s.Notes = notes
	s.IsLoading = false
}

// SetNote records free text for one stage. Unknown stage ids are rejected.
func (s *Session) SetNote(stageId, text string) bool {
	if _, ok := StageById(stageId); !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Notes[stageId] = text
	return true
}

// Advance persists the full notes map and then moves to the next stage. The
// move happens even when the save fails; the failure surfaces only through
// the transient status message and the returned error.
func (s *Session) Advance(ctx context.Context, store Store) error {
	return s.saveThenMove(ctx, store, +1)
}

// Retreat is the symmetric save-then-move toward the first stage.
func (s *Session) Retreat(ctx context.Context, store Store) error {
	return s.saveThenMove(ctx, store, -1)
}

func (s *Session) saveThenMove(ctx context.Context, store Store, delta int) error {
	s.mu.Lock()
	s.IsSaving = true
	s.Status = statusSaving
	notes := copyNotes(s.Notes)
	s.mu.Unlock()

	err := store.Save(ctx, s.UserId, notes)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.IsSaving = false
	if err != nil {
		s.Status = statusSaveFailed
	} else {
		s.Status = statusSaved
	}
	s.ActiveIndex = clampIndex(s.ActiveIndex + delta)
	return err
}

// JumpTo selects a stage directly. Always allowed, always clamped.
func (s *Session) JumpTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ActiveIndex = clampIndex(index)
}

// RequestGuidance asks the gateway for coaching text on the active stage and
// replaces the checklist with the synthesized result. On failure the
// checklist resets to the baseline and the error flag is set for display.
func (s *Session) RequestGuidance(ctx context.Context, gw Gateway) {
	s.mu.Lock()
	s.guidanceSeq++
	seq := s.guidanceSeq
	s.Thinking = true
	s.GuidanceErr = ""
	s.Response = thinkingResponse
	gc := s.activeContextLocked("")
	s.mu.Unlock()

	text, err := gw.Guide(ctx, gc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.guidanceSeq {
		// A newer request was issued while this one was in flight.
		return
	}
	s.Thinking = false
	if err != nil {
		s.GuidanceErr = guidanceErrMessage
		s.Response = failedResponse
		s.Checklist = checklist.Baseline()
		return
	}
	if text == "" {
		text = emptyResponse
	}
	s.Response = text
	s.Checklist = checklist.Synthesize(text)
}

// ToggleItem flips the done flag of one checklist item.
func (s *Session) ToggleItem(itemId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Checklist {
		if s.Checklist[i].Id == itemId {
			s.Checklist[i].Done = !s.Checklist[i].Done
			return true
		}
	}
	return false
}

// RequestItemAdvice fetches a short procedure for a single checklist item.
// Only that item's advice/loading fields are touched; concurrent advice
// requests for other items do not interfere. A failure degrades to a fixed
// placeholder on the item alone.
func (s *Session) RequestItemAdvice(ctx context.Context, gw Gateway, itemId string) bool {
	s.mu.Lock()
	idx := s.itemIndexLocked(itemId)
	if idx < 0 {
		s.mu.Unlock()
		return false
	}
	s.adviceSeq[itemId]++
	seq := s.adviceSeq[itemId]
	s.Checklist[idx].Loading = true
	s.Checklist[idx].Advice = ""
	gc := s.activeContextLocked("Give me a 4-step procedure for: " + s.Checklist[idx].Text)
	s.mu.Unlock()

	advice, err := gw.Guide(ctx, gc)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.adviceSeq[itemId] {
		return true
	}
	// The checklist may have been replaced while the call was in flight.
	idx = s.itemIndexLocked(itemId)
	if idx < 0 {
		return true
	}
	s.Checklist[idx].Loading = false
	if err != nil {
		s.Checklist[idx].Advice = adviceFallbackAdvice
		return true
	}
	if advice == "" {
		advice = emptyAdviceMessage
	}
	s.Checklist[idx].Advice = advice
	return true
}

// activeContextLocked builds the gateway context for the active stage. When
// promptOverride is empty the stage's own guiding question is used.
// Caller must hold s.mu.
func (s *Session) activeContextLocked(promptOverride string) GuidanceContext {
	stage := stages[s.ActiveIndex]
	prompt := stage.Prompt
	if promptOverride != "" {
		prompt = promptOverride
	}
	serialized, _ := json.Marshal(s.Notes)
	return GuidanceContext{
		StageId:       stage.Id,
		StageTitle:    stage.Title,
		Prompt:        prompt,
		Note:          s.Notes[stage.Id],
		PreviousNotes: string(serialized),
	}
}

func (s *Session) itemIndexLocked(itemId string) int {
	for i := range s.Checklist {
		if s.Checklist[i].Id == itemId {
			return i
		}
	}
	return -1
}

func clampIndex(i int) int {
	return min(max(i, 0), len(stages)-1)
}

func copyNotes(notes map[string]string) map[string]string {
	out := make(map[string]string, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}
