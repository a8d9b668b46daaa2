package telegram

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"diet-planner/internal/app"
	"diet-planner/internal/config"
	"diet-planner/internal/logger"
	"diet-planner/internal/metrics"
)

const requestTimeout = 30 * time.Second

// Sender is the part of the Telegram API the bot replies through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// UsageReader reports recent planning activity for /metrics.
type UsageReader interface {
	GetDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// Bot answers planning commands sent to a Telegram chat.
type Bot struct {
	api      Sender
	app      *app.App
	usage    UsageReader
	allowed  map[int64]struct{}
	dataPath string
	log      *logger.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook when one is configured.
// usage may be nil, in which case /metrics reports system health only.
func NewBot(cfg *config.Config, a *app.App, usage UsageReader, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log = log.With("component", "telegram")
	log.Info("authorized on account", "username", api.Self.UserName)

	if cfg.TelegramWebhookURL != "" {
		wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
		if err != nil {
			return nil, fmt.Errorf("failed to build webhook for %s: %w", cfg.TelegramWebhookURL, err)
		}
		resp, err := api.Request(wh)
		if err != nil {
			return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
		}
		log.Info("webhook set", "description", resp.Description)
	}

	return newBot(api, a, usage, cfg.TelegramAllowedUserIDs, filepath.Dir(cfg.DatabasePath), log), nil
}

func newBot(api Sender, a *app.App, usage UsageReader, allowedIDs []int64, dataPath string, log *logger.Logger) *Bot {
	allowed := make(map[int64]struct{}, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = struct{}{}
	}
	return &Bot{api: api, app: a, usage: usage, allowed: allowed, dataPath: dataPath, log: log}
}

// WebhookPath is the route the update handler expects, derived from the webhook URL.
func WebhookPath(webhookURL string) string {
	const fallback = "/telegram/webhook"
	i := strings.Index(webhookURL, "://")
	if i < 0 {
		return fallback
	}
	rest := webhookURL[i+3:]
	slash := strings.Index(rest, "/")
	if slash < 0 || slash == len(rest)-1 {
		return fallback
	}
	return rest[slash:]
}

// WebhookHandler acknowledges an update at once and answers it in the background.
func (b *Bot) WebhookHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var update tgbotapi.Update
		if err := c.ShouldBindJSON(&update); err != nil {
			b.log.Warn("failed to parse update", "error", err)
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusOK)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
			defer cancel()
			b.HandleUpdate(ctx, update)
		}()
	}
}

// HandleUpdate answers one update from an allowed user.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}
	if !b.isAllowed(msg.From.ID) {
		b.log.Warn("unauthorized access attempt", "user_id", msg.From.ID, "username", msg.From.UserName)
		return
	}
	b.processMessage(ctx, msg)
}

func (b *Bot) isAllowed(userID int64) bool {
	if len(b.allowed) == 0 {
		return true
	}
	_, ok := b.allowed[userID]
	return ok
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "plan":
		b.handlePlan(ctx, msg)
	case "recommend":
		b.handleRecommend(ctx, msg)
	case "metrics":
		b.handleMetrics(ctx, msg.Chat.ID)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handlePlan(ctx context.Context, msg *tgbotapi.Message) {
	req, err := ParseRequest(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ %s\n\n%s", escapeMarkdown(err.Error()), usageText))
		return
	}
	req.WithAdvice = true

	plan, err := b.app.MealPlan(ctx, req)
	if err != nil {
		b.log.Error("failed to build plan", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "❌ *Error generating plan.*")
		return
	}
	b.reply(msg.Chat.ID, formatPlanMarkdown(plan))
}

func (b *Bot) handleRecommend(ctx context.Context, msg *tgbotapi.Message) {
	req, err := ParseRequest(msg.CommandArguments())
	if err != nil {
		b.reply(msg.Chat.ID, fmt.Sprintf("❌ %s\n\n%s", escapeMarkdown(err.Error()), usageText))
		return
	}

	recs, err := b.app.Recommend(ctx, req)
	if err != nil {
		b.log.Error("failed to recommend", "user_id", msg.From.ID, "error", err)
		b.reply(msg.Chat.ID, "❌ *Error generating recommendations.*")
		return
	}
	b.reply(msg.Chat.ID, formatRecommendationsMarkdown(recs))
}

func (b *Bot) handleMetrics(ctx context.Context, chatID int64) {
	var usage []metrics.DailyUsage
	if b.usage != nil {
		var err error
		usage, err = b.usage.GetDailyUsage(ctx, 7)
		if err != nil {
			b.log.Error("failed to read usage", "error", err)
			b.reply(chatID, "❌ Error fetching metrics.")
			return
		}
	}
	b.reply(chatID, formatMetricsMarkdown(usage, metrics.GetSysHealth(b.dataPath)))
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn("failed to send reply", "chat_id", chatID, "error", err)
	}
}
