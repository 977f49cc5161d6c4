package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/quotepicker/stocks/internal/config"
	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/logger"
	"github.com/quotepicker/stocks/internal/quote"
)

const outboxSize = 64

// Selector is the part of the controller the chat drives.
type Selector interface {
	Select(index int)
	Refresh()
	Companies() []quote.Company
}

// Bot renders quotes into a single Telegram chat and turns inline keyboard
// presses into selections.
type Bot struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
	outbox  chan tgbotapi.Chattable
}

func NewBot(cfg *config.Config, log *logger.Logger) *Bot {
	if !cfg.Telegram.Enabled {
		return &Bot{enabled: false, logger: log}
	}

	if err := tgbotapi.SetLogger(log); err != nil {
		log.Warn("set telegram logger", "error", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Bot{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return newBot(bot, cfg.Telegram.ChatID, log)
}

func newBot(bot *tgbotapi.BotAPI, chatID int64, log *logger.Logger) *Bot {
	return &Bot{
		bot:     bot,
		chatID:  chatID,
		enabled: true,
		logger:  log,
		outbox:  make(chan tgbotapi.Chattable, outboxSize),
	}
}

func (b *Bot) Enabled() bool {
	return b.enabled
}

func (b *Bot) SetBusy(busy bool) {
	if busy {
		b.enqueue(tgbotapi.NewChatAction(b.chatID, tgbotapi.ChatTyping))
	}
}

// Render posts a quote. The zeroed placeholder is not worth a message.
func (b *Bot) Render(state display.State, logo []byte) {
	if state.IsZeroed() {
		return
	}
	b.enqueue(quoteMessage(b.chatID, state, logo))
}

func (b *Bot) Alert(message string) {
	b.enqueue(tgbotapi.NewMessage(b.chatID, "⚠️ "+message))
}

// Run sends queued messages and serves chat commands until ctx is done.
func (b *Bot) Run(ctx context.Context, sel Selector) {
	if !b.enabled {
		return
	}

	go b.sendLoop(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.bot.GetUpdatesChan(u)
	defer b.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(update, sel)
		}
	}
}

func (b *Bot) sendLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-b.outbox:
			// Request handles photo uploads and chat actions alike.
			if _, err := b.bot.Request(c); err != nil {
				b.logger.Error("send telegram message", "error", err)
			}
		}
	}
}

func (b *Bot) enqueue(c tgbotapi.Chattable) {
	if !b.enabled {
		return
	}
	select {
	case b.outbox <- c:
	default:
		b.logger.Warn("telegram outbox full, message dropped")
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update, sel Selector) {
	switch {
	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		if cq.Message == nil || cq.Message.Chat == nil || cq.Message.Chat.ID != b.chatID {
			return
		}
		index, err := strconv.Atoi(cq.Data)
		if err != nil {
			b.logger.Warn("bad callback data", "data", cq.Data)
			return
		}
		b.enqueue(tgbotapi.NewCallback(cq.ID, ""))
		sel.Select(index)

	case update.Message != nil:
		msg := update.Message
		if msg.Chat == nil || msg.Chat.ID != b.chatID {
			b.logger.Debug("message from unknown chat ignored")
			return
		}
		switch msg.Command() {
		case "start", "companies":
			b.enqueue(companiesMessage(b.chatID, sel.Companies()))
		case "refresh":
			sel.Refresh()
		default:
			b.enqueue(tgbotapi.NewMessage(b.chatID, helpText))
		}
	}
}

const helpText = "/companies - pick a company\n/refresh - update the current quote"

func caption(state display.State) string {
	marker := "⚪"
	switch state.Color {
	case display.Up:
		marker = "🟢"
	case display.Down:
		marker = "🔴"
	}

	var sb strings.Builder
	sb.WriteString(state.Company)
	sb.WriteString("\nPrice: ")
	sb.WriteString(state.Price)
	sb.WriteString(fmt.Sprintf("\n%s Change: %s", marker, state.Change))
	return sb.String()
}

func quoteMessage(chatID int64, state display.State, logo []byte) tgbotapi.Chattable {
	if len(logo) == 0 {
		return tgbotapi.NewMessage(chatID, caption(state))
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: "logo.png", Bytes: logo})
	photo.Caption = caption(state)
	return photo
}

func companiesMessage(chatID int64, companies []quote.Company) tgbotapi.Chattable {
	if len(companies) == 0 {
		return tgbotapi.NewMessage(chatID, "No companies available")
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(companies))
	for i, c := range companies {
		label := fmt.Sprintf("%s (%s)", c.Name, c.Symbol)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, strconv.Itoa(i)),
		))
	}

	msg := tgbotapi.NewMessage(chatID, "Companies in focus:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
	return msg
}
