// Package telegram defines the interface and wire types used to receive
// updates from and send replies through the Telegram Bot API.
package telegram

import "context"

// Chat actions shown to the user while the bot is working.
const (
	// ActionTyping shows the "typing..." indicator.
	ActionTyping = "typing"
	// ActionUploadPhoto shows the "sending photo..." indicator.
	ActionUploadPhoto = "upload_photo"
)

// Parse modes for outgoing messages.
const (
	// ParseModePlain sends the text without any formatting entity parsing.
	ParseModePlain = ""
	// ParseModeMarkdown enables legacy Markdown parsing.
	ParseModeMarkdown = "Markdown"
)

// User is the sender of a message.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
}

// Chat is the conversation a message belongs to.
type Chat struct {
	ID int64 `json:"id"`
}

// PhotoSize is one resolution variant of a photo. Telegram sends several per
// photo, ordered from smallest to largest.
type PhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Document is a generic file attachment.
type Document struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// Message is the subset of the Bot API message object the bot consumes.
type Message struct {
	MessageID    int64       `json:"message_id"`
	From         *User       `json:"from,omitempty"`
	Chat         Chat        `json:"chat"`
	Text         string      `json:"text,omitempty"`
	Caption      string      `json:"caption,omitempty"`
	MediaGroupID string      `json:"media_group_id,omitempty"`
	Photo        []PhotoSize `json:"photo,omitempty"`
	Document     *Document   `json:"document,omitempty"`
}

// LargestPhoto returns the highest-resolution variant of the message's photo,
// or nil when the message carries none.
func (m *Message) LargestPhoto() *PhotoSize {
	if m == nil || len(m.Photo) == 0 {
		return nil
	}

	return &m.Photo[len(m.Photo)-1]
}

// Update is a single incoming event from getUpdates.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message,omitempty"`
}

// File is the download handle returned by getFile.
type File struct {
	FileID   string `json:"file_id"`
	FilePath string `json:"file_path,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// API is the abstraction over the Telegram Bot API. Implementations must be
// safe for concurrent use.
//
//go:generate mockgen -package mocktelegram -source=interface.go -destination=mock/mocktelegram.go *
type API interface {
	// GetUpdates long-polls for updates with IDs greater than or equal to
	// offset, blocking up to the configured poll timeout.
	GetUpdates(ctx context.Context, offset int64) ([]Update, error)
	// SendMessage sends a text reply to the chat. parseMode is one of the
	// ParseMode constants.
	SendMessage(ctx context.Context, chatID int64, text, parseMode string) error
	// SendChatAction shows a transient activity indicator in the chat.
	SendChatAction(ctx context.Context, chatID int64, action string) error
	// GetFile resolves a file ID into a download handle.
	GetFile(ctx context.Context, fileID string) (*File, error)
	// Download fetches the raw bytes of a file previously resolved by GetFile.
	Download(ctx context.Context, filePath string) ([]byte, error)
}
