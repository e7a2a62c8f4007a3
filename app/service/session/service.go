package session

import (
	"companion/app/config"
	"sync"

	"github.com/samber/do"
)

// Store keeps per-user dialog state in memory. Nothing survives a process
// restart, which is intentional.
type Store struct {
	maxTurns int

	mu     sync.RWMutex
	states map[int64]*state
}

func New(di *do.Injector) (*Store, error) {
	cfg := do.MustInvoke[*config.Config](di)

	return NewStore(cfg.Bot.MaxTurns), nil
}

// NewStore creates a store keeping at most maxTurns user/assistant pairs
// per user.
func NewStore(maxTurns int) *Store {
	return &Store{
		maxTurns: maxTurns,
		states:   make(map[int64]*state),
	}
}

// Persona returns the user's persona override, or the default persona.
func (s *Store) Persona(userID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if st, ok := s.states[userID]; ok && st.persona != "" {
		return st.persona
	}

	return DefaultPersona()
}

// SetPersona replaces the user's persona. History is untouched.
func (s *Store) SetPersona(userID int64, persona string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensure(userID).persona = persona
}

func (s *Store) AppendUser(userID int64, content string) {
	s.append(userID, RoleUser, content)
}

func (s *Store) AppendAssistant(userID int64, content string) {
	s.append(userID, RoleAssistant, content)
}

// History returns a snapshot of the user's stored turns, oldest first.
func (s *Store) History(userID int64) []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[userID]
	if !ok {
		return nil
	}

	result := make([]Turn, len(st.history))
	copy(result, st.history)

	return result
}

// Reset drops the persona override and the history together.
func (s *Store) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
}

func (s *Store) append(userID int64, role Role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.ensure(userID)
	st.history = append(st.history, Turn{Role: role, Content: content})

	// keep at most maxTurns user/assistant pairs, dropping oldest first
	if limit := s.maxTurns * 2; len(st.history) > limit {
		st.history = append(st.history[:0:0], st.history[len(st.history)-limit:]...)
	}
}

func (s *Store) ensure(userID int64) *state {
	st, ok := s.states[userID]
	if !ok {
		st = &state{}
		s.states[userID] = st
	}

	return st
}
