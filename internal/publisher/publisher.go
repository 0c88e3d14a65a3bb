// Package publisher implements the publish flows: essays, markdown documents
// and image uploads, all expressed as commits against GitHub repositories.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"essaybot/internal/config"
	"essaybot/internal/content"
	"essaybot/pkg/domain"
	"essaybot/pkg/github"
	"essaybot/pkg/serrors"
)

// commitPreviewLen caps the body excerpt embedded in commit messages.
const commitPreviewLen = 20

// CDN flavors for public image URLs.
const (
	CDNJsDelivr   = "jsdelivr"
	CDNStatically = "statically"
)

// Options configure repository coordinates and the CDN flavor.
type Options struct {
	// Owner is the account owning both repositories.
	Owner string
	// ContentRepo and ContentBranch locate the blog content repository.
	ContentRepo   string
	ContentBranch string
	// ImageRepo, ImageBranch and ImageBasePath locate the image hosting
	// repository and the directory images are stored under.
	ImageRepo     string
	ImageBranch   string
	ImageBasePath string
	// CDN selects the public URL flavor: jsdelivr, statically, or anything
	// else for raw.githubusercontent.com.
	CDN string
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Owner:         cfg.GitHub.Owner,
		ContentRepo:   cfg.GitHub.ContentRepo,
		ContentBranch: cfg.GitHub.ContentBranch,
		ImageRepo:     cfg.Images.Repo,
		ImageBranch:   cfg.Images.Branch,
		ImageBasePath: cfg.Images.BasePath,
		CDN:           cfg.Images.CDN,
	}
}

// publisher is the concrete implementation of the Publisher interface.
type publisher struct {
	options Options
	gh      github.Client
}

// New creates a Publisher backed by the provided GitHub client.
func New(gh github.Client, options Options) Publisher {
	return &publisher{options: options, gh: gh}
}

// contentRef addresses a path in the content repository.
func (p *publisher) contentRef(path string) github.FileRef {
	return github.FileRef{
		Repo:   p.options.ContentRepo,
		Branch: p.options.ContentBranch,
		Path:   path,
	}
}

// commit writes the assembled file, detecting whether it already exists so
// the commit message and result report add versus update.
func (p *publisher) commit(ctx context.Context, path, assembled, preview string) (*domain.PublishResult, error) {
	sha := ""
	action := domain.PublishActionAdd

	existing, err := p.gh.GetFile(ctx, p.contentRef(path))
	switch {
	case err == nil:
		sha = existing.SHA
		action = domain.PublishActionUpdate
	case errors.Is(err, serrors.ErrNotFound):
		// first publish under this path
	default:
		return nil, fmt.Errorf("could not check existing file: %w", err)
	}

	verb := "Add"
	if action == domain.PublishActionUpdate {
		verb = "Update"
	}
	message := fmt.Sprintf("%s essay: %s", verb, preview)

	if err := p.gh.PutFile(ctx, p.contentRef(path), []byte(assembled), message, sha); err != nil {
		return nil, fmt.Errorf("could not put file: %w", err)
	}

	return &domain.PublishResult{FilePath: path, Action: action}, nil
}

// PublishEssay assembles the text body into an essay file and commits it.
func (p *publisher) PublishEssay(ctx context.Context, body string) (*domain.PublishResult, error) {
	if strings.TrimSpace(body) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "empty essay body")
	}

	now := content.Now()
	assembled := content.Assemble(body, now)
	path := content.FilePath(assembled, now)

	return p.commit(ctx, path, assembled, content.Preview(body, commitPreviewLen))
}

// PublishDocument publishes an uploaded markdown document under the given
// title.
func (p *publisher) PublishDocument(ctx context.Context, body, title string) (*domain.PublishResult, error) {
	if strings.TrimSpace(body) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "empty document body")
	}

	now := content.Now()
	assembled := content.AssembleWithTitle(body, title, now)
	path := content.FilePathForTitle(title, now)

	return p.commit(ctx, path, assembled, content.Preview(title, commitPreviewLen))
}

// UploadImage commits image bytes under <base>/<year>/<month>/<filename> in
// the image repository and returns the public CDN URL.
func (p *publisher) UploadImage(ctx context.Context, data []byte, filename string) (*domain.UploadedImage, error) {
	now := content.Now()
	path := fmt.Sprintf("%s/%s/%s/%s", p.options.ImageBasePath, now.Format("2006"), now.Format("01"), filename)

	ref := github.FileRef{
		Repo:   p.options.ImageRepo,
		Branch: p.options.ImageBranch,
		Path:   path,
	}
	if err := p.gh.PutFile(ctx, ref, data, "Upload image: "+filename, ""); err != nil {
		return nil, fmt.Errorf("could not upload image: %w", err)
	}

	return &domain.UploadedImage{
		Path: path,
		URL:  p.cdnURL(path),
	}, nil
}

// cdnURL renders the public URL for an image path per the configured flavor.
func (p *publisher) cdnURL(path string) string {
	o := p.options
	switch o.CDN {
	case CDNJsDelivr:
		return fmt.Sprintf("https://cdn.jsdelivr.net/gh/%s/%s@%s/%s", o.Owner, o.ImageRepo, o.ImageBranch, path)
	case CDNStatically:
		return fmt.Sprintf("https://cdn.statically.io/gh/%s/%s/%s/%s", o.Owner, o.ImageRepo, o.ImageBranch, path)
	default:
		return fmt.Sprintf("https://raw.githubusercontent.com/%s/%s/%s/%s", o.Owner, o.ImageRepo, o.ImageBranch, path)
	}
}

// ListEssays returns up to limit essays, newest first. File names start with
// the publish date, so a descending name sort is a descending date sort.
func (p *publisher) ListEssays(ctx context.Context, limit int) ([]domain.Essay, error) {
	entries, err := p.gh.ListDir(ctx, p.contentRef(content.EssayDir))
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			// nothing published yet
			return nil, nil
		}

		return nil, fmt.Errorf("could not list essays: %w", err)
	}

	essays := make([]domain.Essay, 0, len(entries))
	for _, e := range entries {
		if e.Type != "file" || !strings.HasSuffix(e.Name, ".md") {
			continue
		}
		essays = append(essays, domain.Essay{Name: e.Name, Path: e.Path, SHA: e.SHA})
	}

	sort.Slice(essays, func(i, j int) bool { return essays[i].Name > essays[j].Name })

	if limit > 0 && len(essays) > limit {
		essays = essays[:limit]
	}

	return essays, nil
}

// DeleteEssay removes a published essay by its repository path.
func (p *publisher) DeleteEssay(ctx context.Context, path string) error {
	existing, err := p.gh.GetFile(ctx, p.contentRef(path))
	if err != nil {
		if errors.Is(err, serrors.ErrNotFound) {
			return serrors.With(serrors.ErrNotFound, "essay not found: %s", path)
		}

		return fmt.Errorf("could not resolve essay: %w", err)
	}

	name := path
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		name = path[idx+1:]
	}

	if err := p.gh.DeleteFile(ctx, p.contentRef(path), "Delete essay: "+name, existing.SHA); err != nil {
		return fmt.Errorf("could not delete essay: %w", err)
	}

	return nil
}

// Status checks GitHub connectivity and reports the repository coordinates.
func (p *publisher) Status(ctx context.Context) (*domain.ConnectionStatus, error) {
	login, err := p.gh.VerifyToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not verify token: %w", err)
	}

	return &domain.ConnectionStatus{
		Login:       login,
		ContentRepo: p.options.Owner + "/" + p.options.ContentRepo,
		ImageRepo:   p.options.Owner + "/" + p.options.ImageRepo,
	}, nil
}
