// Package telegram exposes the assistant as a Telegram bot.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"civiconnect-be/chat"
	"civiconnect-be/models"
	"civiconnect-be/responder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot maps each Telegram chat onto a chat session. Replies are pushed back
// when the service delivers them.
type Bot struct {
	api  sender
	chat *chat.Service

	mu       sync.Mutex
	sessions map[int64]string
	chats    map[string]int64
}

func New(token string, svc *chat.Service) (*Bot, *tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create bot: %w", err)
	}
	log.Printf("Authorized on account %s", api.Self.UserName)
	return newBot(api, svc), api, nil
}

func newBot(api sender, svc *chat.Service) *Bot {
	b := &Bot{
		api:      api,
		chat:     svc,
		sessions: make(map[int64]string),
		chats:    make(map[string]int64),
	}
	svc.OnReply(b.forward)
	return b
}

// Run reads updates until ctx is canceled.
func Run(ctx context.Context, b *Bot, api *tgbotapi.BotAPI) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil {
			continue
		}
		b.handle(ctx, update.Message)
	}
}

func (b *Bot) handle(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		switch msg.Command() {
		case "start", "reset":
			b.start(ctx, msg.Chat.ID)
		case "help":
			b.sendMessage(msg.Chat.ID, responder.Respond("help"))
		default:
			b.sendMessage(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
		}
		return
	}
	b.handleMessage(ctx, msg.Chat.ID, msg.Text)
}

func (b *Bot) start(ctx context.Context, chatID int64) (string, bool) {
	id, greeting, err := b.chat.Start(ctx)
	if err != nil {
		log.Printf("Error starting chat for %d: %v", chatID, err)
		b.sendMessage(chatID, "Sorry, something went wrong. Please try again.")
		return "", false
	}

	b.mu.Lock()
	if old, ok := b.sessions[chatID]; ok {
		delete(b.chats, old)
	}
	b.sessions[chatID] = id
	b.chats[id] = chatID
	b.mu.Unlock()

	b.sendMessage(chatID, greeting.Text)
	return id, true
}

func (b *Bot) session(ctx context.Context, chatID int64) (string, bool) {
	b.mu.Lock()
	id, ok := b.sessions[chatID]
	b.mu.Unlock()
	if ok {
		return id, true
	}
	return b.start(ctx, chatID)
}

func (b *Bot) handleMessage(ctx context.Context, chatID int64, text string) {
	id, ok := b.session(ctx, chatID)
	if !ok {
		return
	}

	_, err := b.chat.Send(ctx, id, text)
	if errors.Is(err, chat.ErrSessionNotFound) {
		// The stored session expired; open a new one and try once more.
		if id, ok = b.start(ctx, chatID); !ok {
			return
		}
		_, err = b.chat.Send(ctx, id, text)
	}
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		b.sendMessage(chatID, "Please type a message.")
	case err != nil:
		log.Printf("Error sending chat message for %d: %v", chatID, err)
		b.sendMessage(chatID, "Sorry, something went wrong. Please try again.")
	}
}

func (b *Bot) forward(sessionID string, reply models.Message) {
	b.mu.Lock()
	chatID, ok := b.chats[sessionID]
	b.mu.Unlock()
	if !ok {
		return
	}
	b.sendMessage(chatID, reply.Text)
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Error sending message: %v", err)
	}
}
