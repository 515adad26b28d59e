package flightauth

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/flightdesk/flightdesk-api/internal/application/dto"
)

// DefaultDebounce is the quiescence window before a scheduled draft save runs.
const DefaultDebounce = 2 * time.Second

// DraftSaver debounces background draft saves per authorization: each
// Schedule call resets the record's timer, and only the latest payload is
// written once the edits go quiet. Saves for one record never run
// concurrently; a save scheduled while one is in flight waits for it.
// Last-writer-wins, by design of the source workflow.
type DraftSaver struct {
	uc       *AuthorizationUseCase
	debounce time.Duration

	mu      sync.Mutex
	entries map[string]*draftEntry
}

type draftEntry struct {
	timer     *time.Timer
	studentID string
	payload   dto.AuthorizationDraftRequest
	inFlight  bool
	dirty     bool // payload changed while a save was in flight
}

// NewDraftSaver builds the saver. A non-positive debounce falls back to the
// default.
func NewDraftSaver(uc *AuthorizationUseCase, debounce time.Duration) *DraftSaver {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &DraftSaver{
		uc:       uc,
		debounce: debounce,
		entries:  make(map[string]*draftEntry),
	}
}

// Schedule records the latest draft payload for the authorization and
// (re)starts its debounce timer.
func (s *DraftSaver) Schedule(id, studentID string, in dto.AuthorizationDraftRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[id]
	if !ok {
		e = &draftEntry{}
		s.entries[id] = e
	}
	e.studentID = studentID
	e.payload = in
	if e.inFlight {
		e.dirty = true
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(s.debounce, func() { s.fire(id) })
}

// Flush runs any scheduled save for the authorization immediately. Used when
// the record is submitted so the submit sees the latest fields.
func (s *DraftSaver) Flush(id string) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok && e.timer != nil {
		e.timer.Stop()
	}
	s.mu.Unlock()
	if ok {
		s.fire(id)
	}
}

// FlushAll runs every scheduled save immediately. Called on shutdown so no
// edits are lost.
func (s *DraftSaver) FlushAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.entries))
	for id, e := range s.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
		ids = append(ids, id)
	}
	s.mu.Unlock()
	for _, id := range ids {
		s.fire(id)
	}
}

func (s *DraftSaver) fire(id string) {
	s.mu.Lock()
	e, ok := s.entries[id]
	if !ok || e.inFlight {
		s.mu.Unlock()
		return
	}
	e.inFlight = true
	e.dirty = false
	studentID := e.studentID
	payload := e.payload
	s.mu.Unlock()

	_, err := s.uc.SaveDraft(context.Background(), id, studentID, payload)
	if err != nil {
		log.Warn().Err(err).Str("authorization_id", id).Msg("draft auto-save failed")
	}

	s.mu.Lock()
	e.inFlight = false
	if e.dirty {
		// Edits arrived during the save; run another cycle with the newest
		// payload after a fresh debounce window.
		e.timer = time.AfterFunc(s.debounce, func() { s.fire(id) })
	} else {
		delete(s.entries, id)
	}
	s.mu.Unlock()
}
