// Package github defines the interface and data types used to read and write
// files in GitHub repositories through the contents API.
package github

import (
	"context"
	"time"
)

// RateLimitStatus describes the API rate-limit budget reported by GitHub on
// every response.
type RateLimitStatus struct {
	Limit     int       // Limit is the total number of requests allowed in the current window.
	Remaining int       // Remaining is how many requests are left in the current window.
	ResetAt   time.Time // ResetAt is when the window resets.
}

// File is a repository file fetched through the contents API.
type File struct {
	// Content is the decoded file content.
	Content []byte
	// SHA is the git blob SHA, required for updates and deletes.
	SHA string
}

// Entry is a single directory listing entry.
type Entry struct {
	// Name is the entry's base name.
	Name string
	// Path is the repository-relative path.
	Path string
	// SHA is the git blob SHA.
	SHA string
	// Type is "file" or "dir".
	Type string
}

// FileRef addresses a file or directory in a repository on a branch. An empty
// Branch means the repository's default branch.
type FileRef struct {
	Repo   string
	Branch string
	Path   string
}

// Client is the abstraction over the GitHub contents API. Implementations
// must be safe for concurrent use.
//
//go:generate mockgen -package mockgithub -source=interface.go -destination=mock/mockgithub.go *
type Client interface {
	// GetFile fetches a file's decoded content and blob SHA. It returns a
	// not-found semantic error when the file does not exist.
	GetFile(ctx context.Context, ref FileRef) (*File, error)
	// PutFile creates or updates a file. For updates, sha must be the current
	// blob SHA; for creates it must be empty.
	PutFile(ctx context.Context, ref FileRef, content []byte, message, sha string) error
	// DeleteFile removes a file identified by its current blob SHA.
	DeleteFile(ctx context.Context, ref FileRef, message, sha string) error
	// ListDir lists a directory's entries.
	ListDir(ctx context.Context, ref FileRef) ([]Entry, error)
	// VerifyToken checks the configured token and returns the authenticated
	// user's login.
	VerifyToken(ctx context.Context) (string, error)
}
