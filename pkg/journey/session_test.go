package journey

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu      sync.Mutex
	text    string
	err     error
	calls   []GuidanceContext
	blockCh chan struct{} // when set, Guide waits on it before returning
}

func (g *fakeGateway) Guide(ctx context.Context, gc GuidanceContext) (string, error) {
	g.mu.Lock()
	g.calls = append(g.calls, gc)
	block := g.blockCh
	text, err := g.text, g.err
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return text, err
}

type fakeStore struct {
	loaded  map[string]string
	saveErr error
	saved   []map[string]string
}

func (s *fakeStore) Load(ctx context.Context, userId string) map[string]string {
	if s.loaded == nil {
		return map[string]string{}
	}
	return s.loaded
}

func (s *fakeStore) Save(ctx context.Context, userId string, notes map[string]string) error {
	s.saved = append(s.saved, notes)
	return s.saveErr
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("u1")
	snap := s.Snapshot()

	assert.Equal(t, 0, snap.ActiveIndex)
	assert.Equal(t, "idea", snap.ActiveStage.Id)
	assert.True(t, snap.IsLoading)
	assert.Equal(t, "Your AI business mentor is ready to help.", snap.Response)
	assert.Len(t, snap.Checklist, 7)
}

func TestHydrate(t *testing.T) {
	s := NewSession("u1")
	s.Hydrate(context.Background(), &fakeStore{loaded: map[string]string{"idea": "sell vetkoek"}})

	snap := s.Snapshot()
	assert.False(t, snap.IsLoading)
	assert.Equal(t, "sell vetkoek", snap.Notes["idea"])
}

func TestSetNoteRejectsUnknownStage(t *testing.T) {
	s := NewSession("u1")

	assert.True(t, s.SetNote("plan", "break-even at 40 units"))
	assert.False(t, s.SetNote("nope", "x"))
	assert.Equal(t, "break-even at 40 units", s.Snapshot().Notes["plan"])
}

func TestJumpToClamps(t *testing.T) {
	s := NewSession("u1")

	s.JumpTo(99)
	assert.Equal(t, StageCount()-1, s.Snapshot().ActiveIndex)

	s.JumpTo(-5)
	assert.Equal(t, 0, s.Snapshot().ActiveIndex)

	s.JumpTo(3)
	assert.Equal(t, 3, s.Snapshot().ActiveIndex)
}

func TestAdvanceSavesThenMoves(t *testing.T) {
	s := NewSession("u1")
	s.SetNote("idea", "spaza delivery")
	st := &fakeStore{}

	err := s.Advance(context.Background(), st)
	require.NoError(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.ActiveIndex)
	assert.Equal(t, "Saved", snap.Status)
	assert.False(t, snap.IsSaving)
	require.Len(t, st.saved, 1)
	assert.Equal(t, "spaza delivery", st.saved[0]["idea"])
}

func TestAdvanceMovesEvenWhenSaveFails(t *testing.T) {
	s := NewSession("u1")
	st := &fakeStore{saveErr: errors.New("db down")}

	err := s.Advance(context.Background(), st)
	require.Error(t, err)

	snap := s.Snapshot()
	assert.Equal(t, 1, snap.ActiveIndex)
	assert.Equal(t, "Save failed", snap.Status)
	assert.False(t, snap.IsSaving)
}

func TestRetreatClampsAtFirstStage(t *testing.T) {
	s := NewSession("u1")
	st := &fakeStore{}

	require.NoError(t, s.Retreat(context.Background(), st))
	assert.Equal(t, 0, s.Snapshot().ActiveIndex)
	assert.Len(t, st.saved, 1, "save still happens at the boundary")
}

func TestRequestGuidanceSuccess(t *testing.T) {
	s := NewSession("u1")
	s.SetNote("idea", "tutoring service")
	gw := &fakeGateway{text: "• Register your business\n• Validate demand with 10 interviews"}

	s.RequestGuidance(context.Background(), gw)

	snap := s.Snapshot()
	assert.False(t, snap.Thinking)
	assert.Empty(t, snap.GuidanceErr)
	assert.Equal(t, gw.text, snap.Response)
	assert.Equal(t, "Register your business", snap.Checklist[0].Text)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, "idea", gw.calls[0].StageId)
	assert.Equal(t, "tutoring service", gw.calls[0].Note)
	assert.Contains(t, gw.calls[0].PreviousNotes, "tutoring service")
}

func TestRequestGuidanceFailureResetsChecklist(t *testing.T) {
	s := NewSession("u1")
	s.RequestGuidance(context.Background(), &fakeGateway{text: "• only one thing"})
	require.NotEqual(t, "Register your business legally", s.Snapshot().Checklist[0].Text)

	s.RequestGuidance(context.Background(), &fakeGateway{err: errors.New("upstream 500")})

	snap := s.Snapshot()
	assert.Equal(t, "Could not get AI guidance. Please try again.", snap.GuidanceErr)
	assert.Equal(t, "No response.", snap.Response)
	assert.Equal(t, "Register your business legally", snap.Checklist[0].Text)
	assert.False(t, snap.Thinking)
}

func TestRequestGuidanceEmptyText(t *testing.T) {
	s := NewSession("u1")
	s.RequestGuidance(context.Background(), &fakeGateway{text: ""})

	snap := s.Snapshot()
	assert.Equal(t, "No response received.", snap.Response)
	assert.Empty(t, snap.GuidanceErr)
}

func TestRequestGuidanceStaleResultDiscarded(t *testing.T) {
	s := NewSession("u1")

	slow := &fakeGateway{text: "stale reply", blockCh: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		s.RequestGuidance(context.Background(), slow)
		close(done)
	}()

	// Wait until the slow call is in flight.
	for {
		slow.mu.Lock()
		n := len(slow.calls)
		slow.mu.Unlock()
		if n == 1 {
			break
		}
	}

	s.RequestGuidance(context.Background(), &fakeGateway{text: "fresh reply"})
	close(slow.blockCh)
	<-done

	assert.Equal(t, "fresh reply", s.Snapshot().Response)
}

func TestToggleItem(t *testing.T) {
	s := NewSession("u1")
	id := s.Snapshot().Checklist[0].Id

	assert.True(t, s.ToggleItem(id))
	assert.True(t, s.Snapshot().Checklist[0].Done)

	assert.True(t, s.ToggleItem(id))
	assert.False(t, s.Snapshot().Checklist[0].Done)

	assert.False(t, s.ToggleItem("missing"))
}

func TestRequestItemAdvice(t *testing.T) {
	s := NewSession("u1")
	item := s.Snapshot().Checklist[2]
	gw := &fakeGateway{text: "1. Pick a bank\n2. Bring your ID"}

	ok := s.RequestItemAdvice(context.Background(), gw, item.Id)
	require.True(t, ok)

	got := s.Snapshot().Checklist[2]
	assert.Equal(t, gw.text, got.Advice)
	assert.False(t, got.Loading)

	require.Len(t, gw.calls, 1)
	assert.Equal(t, "Give me a 4-step procedure for: "+item.Text, gw.calls[0].Prompt)
}

func TestRequestItemAdviceFailureFallback(t *testing.T) {
	s := NewSession("u1")
	id := s.Snapshot().Checklist[0].Id

	ok := s.RequestItemAdvice(context.Background(), &fakeGateway{err: errors.New("timeout")}, id)
	require.True(t, ok)

	got := s.Snapshot().Checklist[0]
	assert.Equal(t, "Could not fetch advice right now.", got.Advice)
	assert.False(t, got.Loading)
}

func TestRequestItemAdviceUnknownItem(t *testing.T) {
	s := NewSession("u1")
	assert.False(t, s.RequestItemAdvice(context.Background(), &fakeGateway{}, "ai-99-nothing"))
}

func TestRequestItemAdviceChecklistReplacedInFlight(t *testing.T) {
	s := NewSession("u1")
	id := s.Snapshot().Checklist[0].Id

	slow := &fakeGateway{text: "late advice", blockCh: make(chan struct{})}
	done := make(chan struct{})
	go func() {
		s.RequestItemAdvice(context.Background(), slow, id)
		close(done)
	}()
	for {
		slow.mu.Lock()
		n := len(slow.calls)
		slow.mu.Unlock()
		if n == 1 {
			break
		}
	}

	// Fresh guidance replaces the checklist with model-derived ids.
	s.RequestGuidance(context.Background(), &fakeGateway{text: "• something new"})
	close(slow.blockCh)
	<-done

	for _, item := range s.Snapshot().Checklist {
		assert.NotEqual(t, "late advice", item.Advice)
	}
}

func TestStageCatalog(t *testing.T) {
	all := Stages()
	require.Len(t, all, 6)
	assert.Equal(t, "idea", all[0].Id)
	assert.Equal(t, "launch", all[5].Id)

	st, ok := StageById("finance")
	require.True(t, ok)
	assert.Equal(t, "finance", st.Id)

	_, ok = StageById("bogus")
	assert.False(t, ok)
}
