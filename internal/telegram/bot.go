// Package telegram connects the wizard to the Telegram Bot API over long
// polling.
package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skaterent/rentbot/internal/audit"
	"github.com/skaterent/rentbot/internal/metrics"
	"github.com/skaterent/rentbot/internal/wizard"
)

const textSlowDown = "⏳ Слишком много запросов. Подождите немного."

const (
	outcomeHandled     = "handled"
	outcomeRateLimited = "rate_limited"
	outcomeIgnored     = "ignored"
	outcomePanic       = "panic"
)

// API is the part of *tgbotapi.BotAPI the bot uses.
type API interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler interface {
	OnText(ctx context.Context, id wizard.Identity, text string) wizard.Response
	OnCallback(ctx context.Context, id wizard.Identity, data string) wizard.Response
}

type Limiter interface {
	Allow(ctx context.Context, telegramID int64) bool
}

// Auditor receives one event per handled update. Message text is never
// included.
type Auditor interface {
	Record(ctx context.Context, ev audit.Event)
}

type Options struct {
	HandlerTimeout time.Duration
	PollTimeout    int
}

type Bot struct {
	api     API
	handler Handler
	limiter Limiter
	auditor Auditor
	opts    Options
	logger  *zap.Logger
}

// NewBot creates the adapter. limiter and auditor may be nil.
func NewBot(api API, handler Handler, limiter Limiter, auditor Auditor, opts Options, logger *zap.Logger) *Bot {
	if opts.HandlerTimeout == 0 {
		opts.HandlerTimeout = 30 * time.Second
	}
	if opts.PollTimeout == 0 {
		opts.PollTimeout = 60
	}
	return &Bot{
		api:     api,
		handler: handler,
		limiter: limiter,
		auditor: auditor,
		opts:    opts,
		logger:  logger,
	}
}

// Run polls updates until ctx is cancelled or the update channel closes, then
// waits for in-flight handlers.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = b.opts.PollTimeout
	cfg.AllowedUpdates = []string{tgbotapi.UpdateTypeMessage, tgbotapi.UpdateTypeCallbackQuery}

	updates := b.api.GetUpdatesChan(cfg)
	b.logger.Info("Polling Telegram updates")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Stopped polling Telegram updates")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// In-flight events finish even when polling stops.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), b.opts.HandlerTimeout)
	defer cancel()

	eventID := uuid.New()
	logger := b.logger.With(zap.String("update_id", eventID.String()))

	ev := audit.Event{ID: eventID, Outcome: outcomeIgnored}
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic while handling update", zap.Any("panic", r))
			ev.Outcome = outcomePanic
		}
		b.audit(ctx, ev, start)
	}()

	switch {
	case update.Message != nil && update.Message.From != nil:
		ev.Action, ev.TelegramID = "message", update.Message.From.ID
		ev.Outcome = b.handleMessage(ctx, logger, update.Message)
	case update.CallbackQuery != nil && update.CallbackQuery.From != nil:
		ev.Action, ev.TelegramID = "callback", update.CallbackQuery.From.ID
		ev.Details = update.CallbackQuery.Data
		ev.Outcome = b.handleCallback(ctx, logger, update.CallbackQuery)
	}
}

func (b *Bot) audit(ctx context.Context, ev audit.Event, start time.Time) {
	if ev.Action == "" {
		return
	}
	metrics.UpdatesAuditedTotal.WithLabelValues(ev.Outcome).Inc()
	if b.auditor == nil {
		return
	}
	ev.DurationMs = time.Since(start).Milliseconds()
	ev.OccurredAt = start.UTC()
	b.auditor.Record(ctx, ev)
}

func (b *Bot) handleMessage(ctx context.Context, logger *zap.Logger, msg *tgbotapi.Message) string {
	if msg.Text == "" {
		return outcomeIgnored
	}
	id := identity(msg.From)
	logger = logger.With(zap.Int64("telegram_id", id.TelegramID))

	if b.limiter != nil && !b.limiter.Allow(ctx, id.TelegramID) {
		b.deliver(logger, Render(msg.Chat.ID, 0, wizard.Response{Text: textSlowDown}))
		return outcomeRateLimited
	}

	logger.Debug("Handling message")
	resp := b.handler.OnText(ctx, id, msg.Text)
	b.deliver(logger, Render(msg.Chat.ID, 0, resp))
	return outcomeHandled
}

func (b *Bot) handleCallback(ctx context.Context, logger *zap.Logger, cb *tgbotapi.CallbackQuery) string {
	id := identity(cb.From)
	logger = logger.With(zap.Int64("telegram_id", id.TelegramID), zap.String("data", cb.Data))

	if b.limiter != nil && !b.limiter.Allow(ctx, id.TelegramID) {
		b.answer(logger, cb.ID, textSlowDown)
		return outcomeRateLimited
	}
	b.answer(logger, cb.ID, "")

	chatID, messageID := id.TelegramID, 0
	if cb.Message != nil {
		chatID = cb.Message.Chat.ID
		messageID = cb.Message.MessageID
	}

	logger.Debug("Handling callback")
	resp := b.handler.OnCallback(ctx, id, cb.Data)
	b.deliver(logger, Render(chatID, messageID, resp))
	return outcomeHandled
}

func (b *Bot) answer(logger *zap.Logger, callbackID, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		logger.Warn("Failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) deliver(logger *zap.Logger, requests []tgbotapi.Chattable) {
	for _, req := range requests {
		if _, err := b.api.Send(req); err != nil {
			logger.Error("Failed to send response", zap.Error(err))
		}
	}
}

func identity(u *tgbotapi.User) wizard.Identity {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return wizard.Identity{TelegramID: u.ID, DisplayName: name}
}
