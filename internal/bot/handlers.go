package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"essaybot/internal/imaging"
	"essaybot/pkg/logger"
	"essaybot/pkg/metrics"
	"essaybot/pkg/serrors"
	"essaybot/pkg/telegram"
)

const startText = `Essay Bot is ready

Send text to publish it as an essay
Send a photo to upload it and publish an essay
Photo with a caption publishes the caption and photo together
Send a .md file to publish it with the file name as title

/list - recently published essays
/delete - delete an essay
/status - check the GitHub connection
/help - help`

const helpText = `Usage:

1. Plain text - published directly as an essay
2. Photo - uploaded and published as an essay
3. Photo with caption - caption and photo published together
4. Multiple photos - all photos merged into one essay
5. Multiple photos with caption - caption and all photos together
6. .md file - published with the file name as title

Management:
/list [N] - list the N most recent essays
/delete <name> - delete the named essay`

// handleCommand dispatches slash commands. Unknown commands are ignored.
func (b *Bot) handleCommand(ctx context.Context, msg *telegram.Message) {
	fields := strings.Fields(msg.Text)
	command := strings.TrimPrefix(fields[0], "/")
	// commands in group chats arrive as /cmd@botname
	if idx := strings.Index(command, "@"); idx >= 0 {
		command = command[:idx]
	}
	args := fields[1:]

	switch command {
	case "start":
		b.reply(ctx, msg.Chat.ID, startText)
	case "help":
		b.reply(ctx, msg.Chat.ID, helpText)
	case "status":
		b.handleStatus(ctx, msg)
	case "list":
		b.handleList(ctx, msg, args)
	case "delete":
		b.handleDelete(ctx, msg, args)
	default:
		logger.Debug(ctx, "unknown command", zap.String("command", command))
	}
}

// handleStatus replies with the GitHub connectivity check.
func (b *Bot) handleStatus(ctx context.Context, msg *telegram.Message) {
	status, err := b.pub.Status(ctx)
	if err != nil {
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("GitHub connection failed: %v", err))

		return
	}

	b.reply(ctx, msg.Chat.ID, fmt.Sprintf(
		"GitHub connection OK\nUser: %s\nContent repo: %s\nImage repo: %s",
		status.Login, status.ContentRepo, status.ImageRepo))
}

// handleList replies with the most recent essays, newest first.
func (b *Bot) handleList(ctx context.Context, msg *telegram.Message, args []string) {
	limit := b.options.ListDefaultLimit
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			limit = min(n, b.options.ListMaxLimit)
		}
	}

	b.chatAction(ctx, msg.Chat.ID, telegram.ActionTyping)

	essays, err := b.pub.ListEssays(ctx, limit)
	if err != nil {
		logger.Error(ctx, "could not list essays", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Could not fetch the list: %v", err))

		return
	}
	if len(essays) == 0 {
		b.reply(ctx, msg.Chat.ID, "No essays yet")

		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d most recent essays:\n\n", len(essays))
	for i, e := range essays {
		fmt.Fprintf(&sb, "%d. `%s`\n", i+1, e.Name)
	}
	sb.WriteString("\nDelete with /delete <name>")

	b.replyMarkdown(ctx, msg.Chat.ID, sb.String())
}

// handleDelete removes a named essay. Bare file names are resolved against
// the essays directory and ".md" is appended when missing.
func (b *Bot) handleDelete(ctx context.Context, msg *telegram.Message, args []string) {
	if len(args) == 0 {
		b.reply(ctx, msg.Chat.ID, "Usage: /delete <name>\nRun /list to see the file names")

		return
	}

	path := strings.TrimSpace(args[0])
	if !strings.HasPrefix(path, "src/") {
		path = "src/content/essays/" + path
	}
	if !strings.HasSuffix(path, ".md") {
		path += ".md"
	}

	b.chatAction(ctx, msg.Chat.ID, telegram.ActionTyping)

	if err := b.pub.DeleteEssay(ctx, path); err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			b.reply(ctx, msg.Chat.ID, "Essay not found: "+path)

			return
		}
		logger.Error(ctx, "could not delete essay", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Delete failed: %v", err))

		return
	}

	b.reply(ctx, msg.Chat.ID, "Deleted\n"+path)
}

// handleText publishes a plain text message as an essay.
func (b *Bot) handleText(ctx context.Context, msg *telegram.Message) {
	if strings.TrimSpace(msg.Text) == "" {
		return
	}

	b.chatAction(ctx, msg.Chat.ID, telegram.ActionTyping)

	result, err := b.pub.PublishEssay(ctx, msg.Text)
	if err != nil {
		metrics.Publishes.WithLabelValues("essay", "error").Inc()
		logger.Error(ctx, "could not publish essay", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Publish failed: %v", err))

		return
	}

	metrics.Publishes.WithLabelValues("essay", "ok").Inc()
	b.reply(ctx, msg.Chat.ID, "Published\nPath: "+result.FilePath)
}

// handlePhoto routes a photo message: media-group members are collected for
// combined publishing, single photos are published immediately.
func (b *Bot) handlePhoto(ctx context.Context, msg *telegram.Message) {
	if msg.MediaGroupID != "" {
		b.groups.add(ctx, msg)

		return
	}

	b.chatAction(ctx, msg.Chat.ID, telegram.ActionUploadPhoto)

	url, err := b.uploadPhoto(ctx, msg)
	if err != nil {
		metrics.Publishes.WithLabelValues("image", "error").Inc()
		logger.Error(ctx, "could not upload photo", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Upload failed: %v", err))

		return
	}
	metrics.Publishes.WithLabelValues("image", "ok").Inc()

	body := fmt.Sprintf("![image](%s)", url)
	if caption := strings.TrimSpace(msg.Caption); caption != "" {
		body = caption + "\n\n" + body
	}

	result, err := b.pub.PublishEssay(ctx, body)
	if err != nil {
		metrics.Publishes.WithLabelValues("essay", "error").Inc()
		logger.Error(ctx, "could not publish photo essay", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Publish failed: %v", err))

		return
	}

	metrics.Publishes.WithLabelValues("essay", "ok").Inc()
	b.reply(ctx, msg.Chat.ID, "Published\nPath: "+result.FilePath)
}

// uploadPhoto downloads the largest variant of the message's photo, runs it
// through the compression pipeline when it exceeds the threshold, and commits
// it to the image repository.
func (b *Bot) uploadPhoto(ctx context.Context, msg *telegram.Message) (string, error) {
	photo := msg.LargestPhoto()
	if photo == nil {
		return "", serrors.With(serrors.ErrBadRequest, "message carries no photo")
	}

	file, err := b.api.GetFile(ctx, photo.FileID)
	if err != nil {
		return "", fmt.Errorf("could not resolve file: %w", err)
	}

	data, err := b.api.Download(ctx, file.FilePath)
	if err != nil {
		return "", fmt.Errorf("could not download file: %w", err)
	}

	if b.processor != nil && b.options.CompressionThreshold > 0 && len(data) >= b.options.CompressionThreshold {
		compressed, err := b.processor.Compress(data)
		if err != nil {
			return "", fmt.Errorf("could not compress image: %w", err)
		}
		logger.Info(ctx, "compressed image",
			zap.Int("originalKB", len(data)/1024),
			zap.Int("compressedKB", len(compressed)/1024))
		data = compressed
	}

	img, err := b.pub.UploadImage(ctx, data, imaging.Filename(".jpg"))
	if err != nil {
		return "", fmt.Errorf("could not upload image: %w", err)
	}

	return img.URL, nil
}

// handleDocument publishes an uploaded markdown file, using its name as the
// essay title.
func (b *Bot) handleDocument(ctx context.Context, msg *telegram.Message) {
	doc := msg.Document

	if !strings.HasSuffix(strings.ToLower(doc.FileName), ".md") {
		b.reply(ctx, msg.Chat.ID, "Only .md files are supported")

		return
	}
	if b.options.MaxDocumentSize > 0 && doc.FileSize > b.options.MaxDocumentSize {
		b.reply(ctx, msg.Chat.ID,
			fmt.Sprintf("File too large, the limit is %d MB", b.options.MaxDocumentSize/(1024*1024)))

		return
	}

	b.chatAction(ctx, msg.Chat.ID, telegram.ActionTyping)

	file, err := b.api.GetFile(ctx, doc.FileID)
	if err != nil {
		logger.Error(ctx, "could not resolve document", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Publish failed: %v", err))

		return
	}
	raw, err := b.api.Download(ctx, file.FilePath)
	if err != nil {
		logger.Error(ctx, "could not download document", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Publish failed: %v", err))

		return
	}

	// editors on some platforms prepend a UTF-8 BOM
	body := strings.TrimPrefix(string(raw), "\uFEFF")
	if strings.TrimSpace(body) == "" {
		b.reply(ctx, msg.Chat.ID, "File is empty")

		return
	}

	title := strings.TrimSuffix(doc.FileName, ".md")
	title = strings.TrimSuffix(title, ".MD")

	result, err := b.pub.PublishDocument(ctx, body, title)
	if err != nil {
		metrics.Publishes.WithLabelValues("document", "error").Inc()
		logger.Error(ctx, "could not publish document", zap.Error(err))
		b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Publish failed: %v", err))

		return
	}

	metrics.Publishes.WithLabelValues("document", "ok").Inc()
	b.reply(ctx, msg.Chat.ID, fmt.Sprintf("Published post\nTitle: %s\nPath: %s", title, result.FilePath))
}
