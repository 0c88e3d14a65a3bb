package domain

// PublishAction tells whether a publish created a new file or updated an
// existing one.
type PublishAction string

const (
	// PublishActionAdd indicates a new essay file was created.
	PublishActionAdd PublishAction = "add"
	// PublishActionUpdate indicates an existing essay file was overwritten.
	PublishActionUpdate PublishAction = "update"
)

// PublishResult describes the outcome of publishing an essay to the content
// repository.
type PublishResult struct {
	// FilePath is the repository-relative path of the published file.
	FilePath string `json:"filePath"`
	// Action records whether the file was added or updated.
	Action PublishAction `json:"action"`
}

// Essay is a single published essay file as listed from the content
// repository.
type Essay struct {
	// Name is the file name, e.g. "2025-01-02-hello-120000-123.md".
	Name string `json:"name"`
	// Path is the repository-relative path of the file.
	Path string `json:"path"`
	// SHA is the git blob SHA of the file's current content.
	SHA string `json:"sha"`
}

// ConnectionStatus reports the GitHub connectivity check shown by /status.
type ConnectionStatus struct {
	// Login is the authenticated GitHub user name.
	Login string `json:"login"`
	// ContentRepo is the owner/name of the blog content repository.
	ContentRepo string `json:"contentRepo"`
	// ImageRepo is the owner/name of the image hosting repository.
	ImageRepo string `json:"imageRepo"`
}
