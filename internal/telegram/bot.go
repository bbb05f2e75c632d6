// Package telegram adapts the Telegram Bot API to the session controller:
// inbound messages become controller calls, controller replies become sends.
package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"drivetest-bot/internal/exam"
)

const pollTimeoutSeconds = 60

type Bot struct {
	api        *tgbotapi.BotAPI
	controller *exam.SessionController
	log        *zap.Logger
}

func New(token string, controller *exam.SessionController, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		api:        api,
		controller: controller,
		log:        log,
	}, nil
}

// Run polls for updates until the context is canceled. Each inbound message
// is handled on its own goroutine; the controller serializes per user, so
// one slow user never blocks the others.
func (b *Bot) Run(ctx context.Context) error {
	b.log.Info("starting bot polling", zap.String("username", b.api.Self.UserName))

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = pollTimeoutSeconds
	updates := b.api.GetUpdatesChan(updateCfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			go b.handle(ctx, update.Message)
		}
	}
}

func (b *Bot) handle(ctx context.Context, message *tgbotapi.Message) {
	userID := strconv.FormatInt(message.Chat.ID, 10)
	replies := b.controller.HandleMessage(ctx, userID, displayName(message.From), message.Text)

	for _, reply := range replies {
		if reply.ImageURL != "" {
			b.sendImage(message.Chat.ID, reply.ImageURL, reply.Text)
			continue
		}
		b.sendText(message.Chat.ID, reply.Text)
	}
}

func (b *Bot) sendText(chatID int64, text string) {
	if text == "" {
		return
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.Error("sending message failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendImage(chatID int64, ref, caption string) {
	photo := tgbotapi.NewPhoto(chatID, imageFile(ref))
	photo.Caption = caption

	if _, err := b.api.Send(photo); err != nil {
		b.log.Error("sending image failed",
			zap.Int64("chat_id", chatID),
			zap.String("image", ref),
			zap.Error(err))
		// Keep the question flowing even when the media send fails.
		b.sendText(chatID, caption)
	}
}

func imageFile(ref string) tgbotapi.RequestFileData {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return tgbotapi.FileURL(ref)
	}
	return tgbotapi.FilePath(ref)
}

func displayName(from *tgbotapi.User) string {
	if from == nil {
		return "User"
	}
	switch {
	case from.UserName != "":
		return from.UserName
	case from.FirstName != "":
		return from.FirstName
	}
	return "User"
}
