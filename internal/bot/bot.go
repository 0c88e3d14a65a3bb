// Package bot receives Telegram updates and turns them into publish
// operations: text messages become essays, photos are uploaded and embedded,
// markdown documents are published under their file name, and a small command
// set covers listing, deleting and connectivity checks.
package bot

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"essaybot/internal/config"
	"essaybot/internal/imaging"
	"essaybot/internal/publisher"
	"essaybot/pkg/logger"
	"essaybot/pkg/metrics"
	"essaybot/pkg/telegram"
)

// pollRetryDelay is how long the update loop waits after a failed poll before
// trying again.
const pollRetryDelay = 3 * time.Second

// Options configure message handling behavior. These settings are typically
// derived from application configuration.
type Options struct {
	// AllowedUsers lists the Telegram user IDs permitted to talk to the bot.
	// An empty list rejects every message.
	AllowedUsers []int64
	// MediaGroupDelay is how long messages of one media group are collected
	// before the group is published as a single essay.
	MediaGroupDelay time.Duration
	// MaxDocumentSize is the largest markdown document accepted.
	MaxDocumentSize int64
	// ListDefaultLimit is how many essays /list shows without an argument.
	ListDefaultLimit int
	// ListMaxLimit caps the /list argument.
	ListMaxLimit int
	// CompressionThreshold is the photo size above which the imaging pipeline
	// compresses before uploading; smaller photos are committed as received.
	CompressionThreshold int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		AllowedUsers:         cfg.Telegram.AllowedUsers,
		MediaGroupDelay:      cfg.Bot.MediaGroupDelay,
		MaxDocumentSize:      cfg.Bot.MaxDocumentSize,
		ListDefaultLimit:     cfg.Bot.ListDefaultLimit,
		ListMaxLimit:         cfg.Bot.ListMaxLimit,
		CompressionThreshold: cfg.Imaging.CompressionThreshold,
	}
}

// Bot wires the Telegram API, the publisher and the imaging pipeline into an
// update-handling loop.
type Bot struct {
	options   Options
	api       telegram.API
	pub       publisher.Publisher
	processor *imaging.Processor

	groups   *mediaGroups
	handlers sync.WaitGroup
}

// New creates a Bot. The processor may be nil when photo compression is not
// wanted.
func New(api telegram.API, pub publisher.Publisher, processor *imaging.Processor, options Options) *Bot {
	b := &Bot{
		options:   options,
		api:       api,
		pub:       pub,
		processor: processor,
	}
	b.groups = newMediaGroups(options.MediaGroupDelay, b.publishMediaGroup)

	return b
}

// Run polls for updates until ctx is canceled. Each update is handled on its
// own goroutine so a slow GitHub round trip never stalls the poll loop.
// Handler goroutines run on a context detached from the poll context, so
// canceling ctx stops polling without aborting in-flight publishes; use
// Shutdown to wait for them.
func (b *Bot) Run(ctx context.Context) error {
	logger.Info(ctx, "bot started, polling for updates...",
		zap.Int("allowedUsers", len(b.options.AllowedUsers)))

	handlerCtx := context.WithoutCancel(ctx)

	var offset int64
	for {
		updates, err := b.api.GetUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() //nolint: wrapcheck
			}

			logger.Error(ctx, "could not poll updates", zap.Error(err))
			select {
			case <-ctx.Done():
				return ctx.Err() //nolint: wrapcheck
			case <-time.After(pollRetryDelay):
				continue
			}
		}

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}

			b.handlers.Add(1)
			go func(update telegram.Update) {
				defer b.handlers.Done()
				b.HandleUpdate(handlerCtx, update)
			}(update)
		}
	}
}

// Shutdown blocks until every in-flight update handler has finished, or until
// ctx expires.
func (b *Bot) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		b.handlers.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err() //nolint: wrapcheck
	}
}

// HandleUpdate classifies, authorizes and dispatches one update. Panics are
// contained here so a single malformed message cannot take the loop down.
func (b *Bot) HandleUpdate(ctx context.Context, update telegram.Update) {
	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "panic while handling update",
				zap.Int64("updateID", update.UpdateID),
				zap.Any("panic", p))
		}
	}()

	msg := update.Message
	if msg == nil {
		return
	}

	ctx = logger.WithFields(ctx,
		zap.Int64("updateID", update.UpdateID),
		zap.Int64("chatID", msg.Chat.ID))

	metrics.UpdatesReceived.WithLabelValues(classify(msg)).Inc()

	if !b.authorized(ctx, msg) {
		return
	}

	switch {
	case strings.HasPrefix(msg.Text, "/"):
		b.handleCommand(ctx, msg)
	case len(msg.Photo) > 0:
		b.handlePhoto(ctx, msg)
	case msg.Document != nil:
		b.handleDocument(ctx, msg)
	case msg.Text != "":
		b.handleText(ctx, msg)
	}
}

// classify maps a message to its metrics kind label.
func classify(msg *telegram.Message) string {
	switch {
	case strings.HasPrefix(msg.Text, "/"):
		return "command"
	case len(msg.Photo) > 0:
		return "photo"
	case msg.Document != nil:
		return "document"
	case msg.Text != "":
		return "text"
	default:
		return "other"
	}
}

// authorized checks the sender against the allowlist. Unknown senders are
// dropped silently; they only leave a warn log and a metric increment.
func (b *Bot) authorized(ctx context.Context, msg *telegram.Message) bool {
	if msg.From != nil {
		for _, allowed := range b.options.AllowedUsers {
			if msg.From.ID == allowed {
				return true
			}
		}
	}

	username, userID := "?", int64(0)
	if msg.From != nil {
		username, userID = msg.From.Username, msg.From.ID
	}
	logger.Warn(ctx, "unauthorized user",
		zap.String("username", username),
		zap.Int64("userID", userID))
	metrics.UpdatesRejected.Inc()

	return false
}

// reply sends a plain-text response, logging instead of failing when the
// send itself errors.
func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.api.SendMessage(ctx, chatID, text, telegram.ParseModePlain); err != nil {
		logger.Error(ctx, "could not send reply", zap.Error(err))
	}
}

// replyMarkdown sends a Markdown-formatted response.
func (b *Bot) replyMarkdown(ctx context.Context, chatID int64, text string) {
	if err := b.api.SendMessage(ctx, chatID, text, telegram.ParseModeMarkdown); err != nil {
		logger.Error(ctx, "could not send reply", zap.Error(err))
	}
}

// chatAction shows a transient activity indicator, best effort.
func (b *Bot) chatAction(ctx context.Context, chatID int64, action string) {
	if err := b.api.SendChatAction(ctx, chatID, action); err != nil {
		logger.Debug(ctx, "could not send chat action", zap.Error(err))
	}
}
