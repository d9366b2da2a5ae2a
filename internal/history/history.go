// Package history keeps the data directory under git so every persisted
// snapshot of the project can be recovered.
//
// Uses go-git (pure Go, no git binary needed). Commits are best-effort:
// the document on disk is already the source of truth, history only adds
// a recovery trail, so a failed commit is reported but callers log it
// rather than fail the user-visible operation.
package history

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Commit is one recorded snapshot.
type Commit struct {
	Hash      string    `json:"hash"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Repo wraps a git repository rooted at the data directory.
type Repo struct {
	dir    string
	author object.Signature
	repo   *gogit.Repository
	mu     sync.Mutex
}

// Open opens the repository at dir, initializing it on first use.
func Open(dir, authorName, authorEmail string) (*Repo, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		if !errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("failed to open history repo: %w", err)
		}
		repo, err = gogit.PlainInit(dir, false)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize history repo: %w", err)
		}
	}
	return &Repo{
		dir:    dir,
		author: object.Signature{Name: authorName, Email: authorEmail},
		repo:   repo,
	}, nil
}

// Snapshot stages everything in the data directory and commits it.
// Returns the empty hash without committing when nothing changed.
func (r *Repo) Snapshot(ctx context.Context, msg string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to open worktree: %w", err)
	}
	if err := wt.AddWithOptions(&gogit.AddOptions{All: true}); err != nil {
		return "", fmt.Errorf("failed to stage changes: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("failed to read status: %w", err)
	}
	if status.IsClean() {
		return "", nil
	}
	author := r.author
	author.When = time.Now()
	hash, err := wt.Commit(msg, &gogit.CommitOptions{Author: &author})
	if err != nil {
		return "", fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return hash.String(), nil
}

// Log returns the most recent commits, newest first, limited to n.
// n <= 0 defaults to 50.
func (r *Repo) Log(ctx context.Context, n int) ([]Commit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 {
		n = 50
	}
	head, err := r.repo.Head()
	if err != nil {
		// No commits yet.
		return nil, nil
	}
	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()
	var commits []Commit
	for len(commits) < n {
		c, err := iter.Next()
		if err != nil {
			break
		}
		commits = append(commits, Commit{
			Hash:      c.Hash.String(),
			Message:   c.Message,
			Timestamp: c.Author.When,
		})
	}
	return commits, nil
}
