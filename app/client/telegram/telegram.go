package telegram

import (
	"companion/app/config"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do"
	"github.com/samber/oops"
)

const updateTimeoutSeconds = 30

type Client struct {
	cfg *config.Config
	api *tgbotapi.BotAPI
}

func NewClient(di *do.Injector) (*Client, error) {
	cfg := do.MustInvoke[*config.Config](di)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, oops.Errorf("failed to authorize telegram bot: %w", err)
	}

	slog.Info("Authorized on telegram", "username", api.Self.UserName)

	return &Client{
		cfg: cfg,
		api: api,
	}, nil
}

// Updates starts long polling and returns the updates channel.
func (c *Client) Updates() tgbotapi.UpdatesChannel {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = updateTimeoutSeconds

	return c.api.GetUpdatesChan(u)
}

// StopUpdates stops long polling; the updates channel is closed afterwards.
func (c *Client) StopUpdates() {
	c.api.StopReceivingUpdates()
}

// Send delivers one message. Model output must be sent with html=false so
// that unescaped characters in it are not interpreted as formatting.
func (c *Client) Send(chatID int64, text string, html bool) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if html {
		msg.ParseMode = tgbotapi.ModeHTML
	}

	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}

	return nil
}

// SignalTyping shows the "typing..." indicator. Best effort.
func (c *Client) SignalTyping(chatID int64) {
	action := tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)

	if _, err := c.api.Request(action); err != nil {
		slog.Debug("Failed to send typing action", "chat_id", chatID, "error", err)
	}
}
