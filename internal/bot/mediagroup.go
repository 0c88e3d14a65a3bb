package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"essaybot/pkg/logger"
	"essaybot/pkg/metrics"
	"essaybot/pkg/telegram"
)

// mediaGroups collects the members of a Telegram media group. The API delivers
// album members as individual messages with a shared MediaGroupID and no end
// marker, so each group is flushed after a quiet period following its last
// message.
type mediaGroups struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*pendingGroup
	flush   func(ctx context.Context, msgs []*telegram.Message)
}

type pendingGroup struct {
	messages []*telegram.Message
	timer    *time.Timer
}

func newMediaGroups(delay time.Duration, flush func(ctx context.Context, msgs []*telegram.Message)) *mediaGroups {
	return &mediaGroups{
		delay:   delay,
		pending: make(map[string]*pendingGroup),
		flush:   flush,
	}
}

// add registers a media-group member and resets the group's flush timer.
func (g *mediaGroups) add(ctx context.Context, msg *telegram.Message) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := msg.MediaGroupID

	group, ok := g.pending[id]
	if !ok {
		group = &pendingGroup{}
		group.timer = time.AfterFunc(g.delay, func() {
			g.take(ctx, id)
		})
		g.pending[id] = group
	} else {
		group.timer.Reset(g.delay)
	}

	group.messages = append(group.messages, msg)
}

func (g *mediaGroups) take(ctx context.Context, id string) {
	g.mu.Lock()
	group, ok := g.pending[id]
	delete(g.pending, id)
	g.mu.Unlock()

	if !ok || len(group.messages) == 0 {
		return
	}

	// members are dispatched on separate goroutines, so collection order is
	// not album order; message IDs carry the album order
	sort.Slice(group.messages, func(i, j int) bool {
		return group.messages[i].MessageID < group.messages[j].MessageID
	})

	g.flush(ctx, group.messages)
}

// publishMediaGroup uploads every photo of a collected media group in arrival
// order and publishes a single essay combining the first non-empty caption
// with all image links.
func (b *Bot) publishMediaGroup(ctx context.Context, msgs []*telegram.Message) {
	chatID := msgs[0].Chat.ID

	ctx = logger.WithFields(ctx,
		zap.String("mediaGroupID", msgs[0].MediaGroupID),
		zap.Int("photos", len(msgs)))

	b.chatAction(ctx, chatID, telegram.ActionUploadPhoto)

	var caption string
	for _, msg := range msgs {
		if c := strings.TrimSpace(msg.Caption); c != "" {
			caption = c

			break
		}
	}

	links := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		url, err := b.uploadPhoto(ctx, msg)
		if err != nil {
			metrics.Publishes.WithLabelValues("image", "error").Inc()
			logger.Error(ctx, "could not upload media group photo", zap.Error(err))
			b.reply(ctx, chatID, fmt.Sprintf("Upload failed: %v", err))

			return
		}
		metrics.Publishes.WithLabelValues("image", "ok").Inc()
		links = append(links, fmt.Sprintf("![image](%s)", url))
	}

	body := strings.Join(links, "\n\n")
	if caption != "" {
		body = caption + "\n\n" + body
	}

	result, err := b.pub.PublishEssay(ctx, body)
	if err != nil {
		metrics.Publishes.WithLabelValues("essay", "error").Inc()
		logger.Error(ctx, "could not publish media group essay", zap.Error(err))
		b.reply(ctx, chatID, fmt.Sprintf("Publish failed: %v", err))

		return
	}

	metrics.Publishes.WithLabelValues("essay", "ok").Inc()
	b.reply(ctx, chatID, fmt.Sprintf("Published (%d images)\nPath: %s", len(msgs), result.FilePath))
}
