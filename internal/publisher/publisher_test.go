package publisher_test

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"essaybot/internal/publisher"
	"essaybot/pkg/domain"
	"essaybot/pkg/github"
	mockgithub "essaybot/pkg/github/mock"
	"essaybot/pkg/logger"
	"essaybot/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func testOptions() publisher.Options {
	return publisher.Options{
		Owner:         "octocat",
		ContentRepo:   "astro_blog",
		ContentBranch: "main",
		ImageRepo:     "picx-images-hosting",
		ImageBranch:   "master",
		ImageBasePath: "images",
		CDN:           publisher.CDNJsDelivr,
	}
}

func TestPublishEssay_add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	var committedPath string
	gh.EXPECT().GetFile(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "file not found"))
	gh.EXPECT().PutFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
		DoAndReturn(func(_ context.Context, ref github.FileRef, content []byte, message, _ string) error {
			committedPath = ref.Path
			require.Equal(t, "astro_blog", ref.Repo)
			require.Equal(t, "main", ref.Branch)
			require.Equal(t, "Add essay: hello world", message)
			require.True(t, strings.HasPrefix(string(content), "---\npubDate:"))
			require.True(t, strings.HasSuffix(string(content), "hello world"))

			return nil
		})

	res, err := p.PublishEssay(context.Background(), "hello world")
	require.NoError(t, err)
	require.Equal(t, domain.PublishActionAdd, res.Action)
	require.Equal(t, committedPath, res.FilePath)
	require.Regexp(t,
		regexp.MustCompile(`^src/content/essays/\d{4}-\d{2}-\d{2}-hell-\d{6}-\d{3}\.md$`),
		res.FilePath)
}

func TestPublishEssay_updateSendsSHA(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().GetFile(gomock.Any(), gomock.Any()).
		Return(&github.File{Content: []byte("old"), SHA: "abc123"}, nil)
	gh.EXPECT().PutFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "abc123").
		DoAndReturn(func(_ context.Context, _ github.FileRef, _ []byte, message, _ string) error {
			require.True(t, strings.HasPrefix(message, "Update essay: "))

			return nil
		})

	res, err := p.PublishEssay(context.Background(), "hello world")
	require.NoError(t, err)
	require.Equal(t, domain.PublishActionUpdate, res.Action)
}

func TestPublishEssay_emptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := publisher.New(mockgithub.NewMockClient(ctrl), testOptions())

	_, err := p.PublishEssay(context.Background(), "   \n  ")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestPublishEssay_commitPreviewTruncated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	body := "first line\n" + strings.Repeat("x", 40)

	gh.EXPECT().GetFile(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "file not found"))
	gh.EXPECT().PutFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
		DoAndReturn(func(_ context.Context, _ github.FileRef, _ []byte, message, _ string) error {
			preview := strings.TrimPrefix(message, "Add essay: ")
			require.Len(t, preview, 20)
			require.NotContains(t, preview, "\n")

			return nil
		})

	_, err := p.PublishEssay(context.Background(), body)
	require.NoError(t, err)
}

func TestPublishDocument_keepsFrontmatter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	doc := "---\ntitle: \"Kept\"\n---\n\nbody"

	gh.EXPECT().GetFile(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "file not found"))
	gh.EXPECT().PutFile(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "").
		DoAndReturn(func(_ context.Context, ref github.FileRef, content []byte, message, _ string) error {
			require.Equal(t, doc, string(content), "existing frontmatter must be kept verbatim")
			require.Equal(t, "Add essay: My Notes", message)
			require.Contains(t, ref.Path, "-MyNo-", "path slug comes from the title")

			return nil
		})

	_, err := p.PublishDocument(context.Background(), doc, "My Notes")
	require.NoError(t, err)
}

func TestUploadImage_pathAndCDN(t *testing.T) {
	tests := []struct {
		name    string
		cdn     string
		wantURL *regexp.Regexp
	}{
		{
			name:    "jsdelivr",
			cdn:     publisher.CDNJsDelivr,
			wantURL: regexp.MustCompile(`^https://cdn\.jsdelivr\.net/gh/octocat/picx-images-hosting@master/images/\d{4}/\d{2}/pic\.jpg$`),
		},
		{
			name:    "statically",
			cdn:     publisher.CDNStatically,
			wantURL: regexp.MustCompile(`^https://cdn\.statically\.io/gh/octocat/picx-images-hosting/master/images/\d{4}/\d{2}/pic\.jpg$`),
		},
		{
			name:    "raw fallback",
			cdn:     "anything-else",
			wantURL: regexp.MustCompile(`^https://raw\.githubusercontent\.com/octocat/picx-images-hosting/master/images/\d{4}/\d{2}/pic\.jpg$`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			gh := mockgithub.NewMockClient(ctrl)
			opts := testOptions()
			opts.CDN = tt.cdn
			p := publisher.New(gh, opts)

			gh.EXPECT().PutFile(gomock.Any(), gomock.Any(), []byte("jpeg"), "Upload image: pic.jpg", "").
				DoAndReturn(func(_ context.Context, ref github.FileRef, _ []byte, _, _ string) error {
					require.Equal(t, "picx-images-hosting", ref.Repo)
					require.Equal(t, "master", ref.Branch)
					require.Regexp(t, regexp.MustCompile(`^images/\d{4}/\d{2}/pic\.jpg$`), ref.Path)

					return nil
				})

			img, err := p.UploadImage(context.Background(), []byte("jpeg"), "pic.jpg")
			require.NoError(t, err)
			require.Regexp(t, tt.wantURL, img.URL)
		})
	}
}

func TestListEssays_filtersSortsAndLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().ListDir(gomock.Any(), github.FileRef{
		Repo:   "astro_blog",
		Branch: "main",
		Path:   "src/content/essays",
	}).Return([]github.Entry{
		{Name: "2025-01-01-old.md", Path: "src/content/essays/2025-01-01-old.md", Type: "file"},
		{Name: "2025-03-03-new.md", Path: "src/content/essays/2025-03-03-new.md", Type: "file"},
		{Name: "notes.txt", Path: "src/content/essays/notes.txt", Type: "file"},
		{Name: "2025-02-02-mid.md", Path: "src/content/essays/2025-02-02-mid.md", Type: "file"},
		{Name: "attachments", Path: "src/content/essays/attachments", Type: "dir"},
	}, nil)

	essays, err := p.ListEssays(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, essays, 2)
	require.Equal(t, "2025-03-03-new.md", essays[0].Name)
	require.Equal(t, "2025-02-02-mid.md", essays[1].Name)
}

func TestListEssays_emptyWhenDirMissing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().ListDir(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "directory not found"))

	essays, err := p.ListEssays(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, essays)
}

func TestDeleteEssay_success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	path := "src/content/essays/2025-01-01-old.md"
	gh.EXPECT().GetFile(gomock.Any(), github.FileRef{Repo: "astro_blog", Branch: "main", Path: path}).
		Return(&github.File{SHA: "abc123"}, nil)
	gh.EXPECT().DeleteFile(gomock.Any(),
		github.FileRef{Repo: "astro_blog", Branch: "main", Path: path},
		"Delete essay: 2025-01-01-old.md", "abc123").
		Return(nil)

	require.NoError(t, p.DeleteEssay(context.Background(), path))
}

func TestDeleteEssay_notFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().GetFile(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrNotFound, "file not found"))

	err := p.DeleteEssay(context.Background(), "src/content/essays/missing.md")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().VerifyToken(gomock.Any()).Return("octocat", nil)

	status, err := p.Status(context.Background())
	require.NoError(t, err)
	require.Equal(t, "octocat", status.Login)
	require.Equal(t, "octocat/astro_blog", status.ContentRepo)
	require.Equal(t, "octocat/picx-images-hosting", status.ImageRepo)
}

func TestStatus_tokenError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	gh := mockgithub.NewMockClient(ctrl)
	p := publisher.New(gh, testOptions())

	gh.EXPECT().VerifyToken(gomock.Any()).Return("", errors.New("boom"))

	_, err := p.Status(context.Background())
	require.Error(t, err)
}
