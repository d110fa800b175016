package telegram

import (
	"context"
	"sync"
	"testing"

	"civiconnect-be/chat"
	"civiconnect-be/responder"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []tgbotapi.MessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, m)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) texts(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, m := range f.sent {
		if m.ChatID == chatID {
			out = append(out, m.Text)
		}
	}
	return out
}

func TestMessageOpensSessionAndForwardsReply(t *testing.T) {
	svc := chat.NewService(chat.NewMemoryStore(), 0)
	api := &fakeSender{}
	b := newBot(api, svc)

	b.handleMessage(context.Background(), 42, "how do I sign up?")
	svc.Wait()

	got := api.texts(42)
	want := []string{responder.Greeting, responder.Respond("how do I sign up?")}
	if len(got) != len(want) {
		t.Fatalf("sent %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChatsKeepSeparateSessions(t *testing.T) {
	svc := chat.NewService(chat.NewMemoryStore(), 0)
	api := &fakeSender{}
	b := newBot(api, svc)
	ctx := context.Background()

	b.handleMessage(ctx, 1, "profile")
	b.handleMessage(ctx, 2, "logout")
	svc.Wait()

	if b.sessions[1] == b.sessions[2] {
		t.Fatal("two chats share a session")
	}
	history, err := svc.History(ctx, b.sessions[1])
	if err != nil || len(history) != 3 {
		t.Errorf("chat 1 history = %+v, %v", history, err)
	}
	if got := api.texts(2); len(got) != 2 || got[1] != responder.Respond("logout") {
		t.Errorf("chat 2 got %q", got)
	}
}

func TestBlankMessageIsRejected(t *testing.T) {
	svc := chat.NewService(chat.NewMemoryStore(), 0)
	api := &fakeSender{}
	b := newBot(api, svc)

	b.handleMessage(context.Background(), 7, "   ")
	svc.Wait()

	got := api.texts(7)
	if len(got) != 2 || got[1] != "Please type a message." {
		t.Errorf("sent %q", got)
	}
}
