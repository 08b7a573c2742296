package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"go-jobwatch-agent/internal/models"
)

// Telegram delivers postings as MarkdownV2 messages to a single chat.
type Telegram struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &Telegram{
		api:    api,
		chatID: chatID,
	}, nil
}

func (t *Telegram) Name() string { return "Telegram" }

func (t *Telegram) escapeMarkdown(text string) string {
	replacer := strings.NewReplacer(
		"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(",
		")", "\\)", "~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#",
		"+", "\\+", "-", "\\-", "=", "\\=", "|", "\\|", "{", "\\{",
		"}", "\\}", ".", "\\.", "!", "\\!",
	)
	return replacer.Replace(text)
}

func (t *Telegram) Send(ctx context.Context, p models.Posting) error {
	//build message chunks
	msgText := fmt.Sprintf("💼 *%s*\n", t.escapeMarkdown(p.Title))
	msgText += fmt.Sprintf("🏢 %s\n", t.escapeMarkdown(p.Company))
	msgText += fmt.Sprintf("🔗 [View Job](%s)\n", p.URL)
	if p.Salary != "" {
		msgText += fmt.Sprintf("💰 %s\n", t.escapeMarkdown(p.Salary))
	}

	loc := p.Location
	if loc == "" {
		loc = "Remote"
	}
	msgText += fmt.Sprintf("📍 %s\n", t.escapeMarkdown(loc))

	if len(p.Tags) > 0 {
		msgText += fmt.Sprintf("🏷️ %s\n", t.escapeMarkdown(strings.Join(p.Tags, ", ")))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("🔗 View Job", p.URL),
		),
	)

	msg := tgbotapi.NewMessage(t.chatID, msgText)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyMarkup = keyboard

	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := t.api.Send(msg)
	return err
}

// SendStatus posts a plain run summary line to the chat.
func (t *Telegram) SendStatus(message string) error {
	msg := tgbotapi.NewMessage(t.chatID, "ℹ️ "+message)
	_, err := t.api.Send(msg)
	return err
}
