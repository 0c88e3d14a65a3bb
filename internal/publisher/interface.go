package publisher

import (
	"context"

	"essaybot/pkg/domain"
)

// Publisher coordinates content assembly and GitHub commits for everything
// the bot can publish.
//
//go:generate mockgen -package mockpublisher -source=interface.go -destination=mock/mockpublisher.go *
type Publisher interface {
	// PublishEssay assembles the text body into an essay file and commits it
	// to the content repository.
	PublishEssay(ctx context.Context, body string) (*domain.PublishResult, error)
	// PublishDocument publishes an uploaded markdown document under the given
	// title, keeping any frontmatter the document already carries.
	PublishDocument(ctx context.Context, body, title string) (*domain.PublishResult, error)
	// UploadImage commits image bytes to the image hosting repository and
	// returns the public CDN URL.
	UploadImage(ctx context.Context, data []byte, filename string) (*domain.UploadedImage, error)
	// ListEssays returns up to limit of the most recently published essays,
	// newest first.
	ListEssays(ctx context.Context, limit int) ([]domain.Essay, error)
	// DeleteEssay removes a published essay by its repository path. It returns
	// a not-found semantic error when the file does not exist.
	DeleteEssay(ctx context.Context, path string) error
	// Status checks GitHub connectivity and reports the authenticated login
	// plus the repository coordinates.
	Status(ctx context.Context) (*domain.ConnectionStatus, error)
}
