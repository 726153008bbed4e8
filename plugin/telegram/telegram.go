// Package telegram is the transport and notification adapter. It turns
// Telegram updates into conversation events, renders the engine's actions
// back as messages and keyboards, and delivers finished reports to the admin
// chat. The conversation core never imports this package.
package telegram

import (
	"context"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/coffeops/genkabot/internal/profile"
	"github.com/coffeops/genkabot/server/service/report"
)

// Telegram caps bots at roughly 30 messages per second overall; stay under it.
const (
	sendRate  = 25
	sendBurst = 5
)

// Client wraps the bot API with a global send-rate limiter.
type Client struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	limiter     *rate.Limiter
	logger      *slog.Logger
}

func NewClient(profile *profile.Profile, logger *slog.Logger) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(profile.BotToken)
	if err != nil {
		return nil, errors.Wrap(err, "failed to authorize bot")
	}

	logger.Info("authorized on telegram", slog.String("account", bot.Self.UserName))

	return &Client{
		bot:         bot,
		adminChatID: profile.AdminChatID,
		limiter:     rate.NewLimiter(rate.Limit(sendRate), sendBurst),
		logger:      logger,
	}, nil
}

// Perform renders one engine action to the user.
func (c *Client) Perform(ctx context.Context, action report.Action) error {
	var msg tgbotapi.MessageConfig

	switch a := action.(type) {
	case report.SendSelectionPrompt:
		msg = tgbotapi.NewMessage(a.UserID, a.Text)
		msg.ReplyMarkup = selectionKeyboard(a.Sites)
	case report.SendInstructions:
		msg = tgbotapi.NewMessage(a.UserID, report.MsgInstructions)
		msg.ReplyMarkup = ackKeyboard()
	case report.SendEvidencePrompt:
		msg = tgbotapi.NewMessage(a.UserID, report.MsgEvidencePrompt)
		msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	case report.SendMessage:
		msg = tgbotapi.NewMessage(a.UserID, a.Text)
	default:
		return errors.Errorf("unknown action %T", action)
	}

	msg.ParseMode = tgbotapi.ModeHTML
	return c.send(ctx, msg)
}

// Notify delivers the report summary plus the evidence media group to the
// admin chat. Either send failing counts as a delivery failure; the caller
// decides how to degrade.
func (c *Client) Notify(ctx context.Context, summary string, evidenceRefs []string) error {
	msg := tgbotapi.NewMessage(c.adminChatID, summary)
	msg.ParseMode = tgbotapi.ModeHTML
	if err := c.send(ctx, msg); err != nil {
		return errors.Wrap(err, "failed to send report summary")
	}

	if len(evidenceRefs) == 0 {
		return nil
	}

	media := make([]interface{}, 0, len(evidenceRefs))
	for _, ref := range evidenceRefs {
		media = append(media, tgbotapi.NewInputMediaPhoto(tgbotapi.FileID(ref)))
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter interrupted")
	}
	if _, err := c.bot.SendMediaGroup(tgbotapi.NewMediaGroup(c.adminChatID, media)); err != nil {
		return errors.Wrap(err, "failed to send evidence media group")
	}
	return nil
}

func (c *Client) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "rate limiter interrupted")
	}
	if _, err := c.bot.Send(msg); err != nil {
		return errors.Wrap(err, "failed to send message")
	}
	return nil
}

// selectionKeyboard lays out one site per row, like the original bot.
func selectionKeyboard(sites []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(sites))
	for _, name := range sites {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name)))
	}
	keyboard := tgbotapi.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	keyboard.OneTimeKeyboard = true
	return keyboard
}

func ackKeyboard() tgbotapi.ReplyKeyboardMarkup {
	keyboard := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(report.AckPhrase)),
	)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func fullName(user *tgbotapi.User) string {
	return strings.TrimSpace(strings.TrimSpace(user.FirstName) + " " + strings.TrimSpace(user.LastName))
}
