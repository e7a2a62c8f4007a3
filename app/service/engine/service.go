package engine

import (
	"companion/app/client/telegram"
	"companion/app/config"
	"companion/app/service/conversation"
	"context"
	"log/slog"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
)

// Transport is the chat platform boundary the engine pulls updates from
// and sends replies to.
type Transport interface {
	Updates() tgbotapi.UpdatesChannel
	StopUpdates()
	Send(chatID int64, text string, html bool) error
}

type Service struct {
	cfg             *config.Config
	transport       Transport
	conversationSvc *conversation.Service
}

func New(di *do.Injector) (*Service, error) {
	return NewService(
		do.MustInvoke[*config.Config](di),
		do.MustInvoke[*telegram.Client](di),
		do.MustInvoke[*conversation.Service](di),
	), nil
}

func NewService(cfg *config.Config, transport Transport, conversationSvc *conversation.Service) *Service {
	return &Service{
		cfg:             cfg,
		transport:       transport,
		conversationSvc: conversationSvc,
	}
}

// Run consumes updates until ctx is cancelled and the updates channel
// drains.
func (s *Service) Run(ctx context.Context) {
	updates := s.transport.Updates()

	go func() {
		<-ctx.Done()
		s.transport.StopUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
			continue
		}

		s.handleMessage(ctx, update.Message)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	start := time.Now()
	userID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		s.reply(chatID, startText, true)
	case "help":
		s.reply(chatID, helpText, true)
	case "setmodel":
		s.reply(chatID, s.conversationSvc.SetModel(msg.CommandArguments()), false)
	case "persona":
		s.reply(chatID, s.conversationSvc.SetPersona(userID, msg.CommandArguments()), false)
	case "reset":
		s.reply(chatID, s.conversationSvc.Reset(userID), false)
	default:
		// model output goes out with markup parsing off, it may contain
		// anything
		for _, segment := range s.conversationSvc.HandleMessage(ctx, userID, msg.Text) {
			s.reply(chatID, segment, false)
		}
	}

	slog.Info("Processed message",
		"user_id", userID,
		"duration", time.Since(start))
}

func (s *Service) reply(chatID int64, text string, html bool) {
	if err := s.transport.Send(chatID, text, html); err != nil {
		slog.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
