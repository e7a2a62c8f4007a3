package conversation

import (
	"companion/app/client/openrouter"
	"companion/app/client/telegram"
	"companion/app/config"
	"companion/app/service/session"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/samber/do"
)

// Completer issues a single completion attempt against the remote model.
type Completer interface {
	Complete(ctx context.Context, messages []session.Turn, model string) (string, error)
}

// Notifier signals the "composing" state to the chat platform.
type Notifier interface {
	SignalTyping(userID int64)
}

type Service struct {
	cfg      *config.Config
	store    *session.Store
	client   Completer
	notifier Notifier

	modelMu sync.RWMutex
	model   string

	locksMu sync.Mutex
	locks   map[int64]*sync.Mutex
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*session.Store](di),
		do.MustInvoke[*openrouter.Client](di),
		do.MustInvoke[*telegram.Client](di),
	), nil
}

func NewService(cfg *config.Config, store *session.Store, client Completer, notifier Notifier) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		client:   client,
		notifier: notifier,
		model:    cfg.OpenRouter.Model,
		locks:    make(map[int64]*sync.Mutex),
	}
}

// HandleMessage runs one dialog cycle for the user and returns the reply
// split into deliverable segments. Every user turn gets exactly one
// assistant turn in history; a completion failure becomes the reply itself.
// Messages of one user are processed strictly one at a time.
func (s *Service) HandleMessage(ctx context.Context, userID int64, text string) []string {
	unlock := s.lockUser(userID)
	defer unlock()

	s.store.AppendUser(userID, text)

	history := s.store.History(userID)
	messages := make([]session.Turn, 0, len(history)+1)
	messages = append(messages, session.Turn{
		Role:    session.RoleSystem,
		Content: s.store.Persona(userID),
	})
	messages = append(messages, history...)

	if s.notifier != nil {
		s.notifier.SignalTyping(userID)
	}

	reply, err := s.client.Complete(ctx, messages, s.Model())
	if err != nil {
		slog.Warn("Completion failed", "user_id", userID, "error", err)
		reply = openrouter.FailureText(err)
	}

	s.store.AppendAssistant(userID, reply)

	return splitMessage(reply, s.cfg.Bot.MaxMessageLength)
}

// Model returns the identifier used for the next completion request.
func (s *Service) Model() string {
	s.modelMu.RLock()
	defer s.modelMu.RUnlock()

	return s.model
}

// SetModel switches the current model. An empty argument is a query and
// changes nothing.
func (s *Service) SetModel(newModel string) string {
	newModel = strings.TrimSpace(newModel)
	if newModel == "" {
		return fmt.Sprintf("Current model: %s", s.Model())
	}

	s.modelMu.Lock()
	s.model = newModel
	s.modelMu.Unlock()

	slog.Info("Model switched", "model", newModel)

	return fmt.Sprintf("Ok, switched model to: %s", newModel)
}

// SetPersona replaces the user's persona. An empty argument yields a usage
// hint and changes nothing.
func (s *Service) SetPersona(userID int64, persona string) string {
	persona = strings.TrimSpace(persona)
	if persona == "" {
		return "Usage: /persona <description>\n" +
			"Example: /persona A calm productivity mentor, gives short actionable advice"
	}

	s.store.SetPersona(userID, persona)

	return "Done! The companion's persona is updated."
}

// Reset drops the user's persona override and dialog history.
func (s *Service) Reset(userID int64) string {
	s.store.Reset(userID)

	return "Cleared the persona and the dialog history. Starting fresh!"
}

func (s *Service) lockUser(userID int64) func() {
	s.locksMu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.locksMu.Unlock()

	lock.Lock()

	return lock.Unlock
}
