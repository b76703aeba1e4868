// Package history reads past commits with go-git to feed scope suggestions
// to the prompt and to compute the next semantic version.
package history

import (
	"errors"
	"fmt"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/gorewood/gitcc/internal/conventional"
)

// Repo is a read-only view of a repository's history.
type Repo struct {
	repo *gogit.Repository
}

// Open finds the repository containing path.
func Open(path string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	return &Repo{repo: r}, nil
}

// New wraps an already opened repository.
func New(r *gogit.Repository) *Repo {
	return &Repo{repo: r}
}

// head returns the HEAD commit hash, or false on an unborn branch.
func (r *Repo) head() (plumbing.Hash, bool, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return plumbing.ZeroHash, false, nil
	}
	if err != nil {
		return plumbing.ZeroHash, false, fmt.Errorf("resolving HEAD: %w", err)
	}
	return ref.Hash(), true, nil
}

// Messages returns up to limit commit messages reachable from HEAD, newest
// first. A limit of zero or less means no limit.
func (r *Repo) Messages(limit int) ([]string, error) {
	from, ok, err := r.head()
	if err != nil || !ok {
		return nil, err
	}

	var messages []string
	err = r.walk(from, func(c *object.Commit) error {
		messages = append(messages, c.Message)
		if limit > 0 && len(messages) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	return messages, err
}

func (r *Repo) walk(from plumbing.Hash, fn func(*object.Commit) error) error {
	iter, err := r.repo.Log(&gogit.LogOptions{From: from})
	if err != nil {
		return fmt.Errorf("reading log: %w", err)
	}
	defer iter.Close()
	if err := iter.ForEach(fn); err != nil && !errors.Is(err, storer.ErrStop) {
		return fmt.Errorf("walking log: %w", err)
	}
	return nil
}

// Scopes returns the scopes used by the last depth conventional commits,
// most frequent first, ties broken alphabetically.
func (r *Repo) Scopes(depth int) ([]string, error) {
	messages, err := r.Messages(depth)
	if err != nil {
		return nil, err
	}
	return RankScopes(messages), nil
}

// RankScopes counts scopes across messages; non-conventional messages are
// ignored.
func RankScopes(messages []string) []string {
	counts := map[string]int{}
	for _, text := range messages {
		msg, err := conventional.Parse(text)
		if err != nil || msg.Scope == "" {
			continue
		}
		counts[msg.Scope]++
	}

	scopes := make([]string, 0, len(counts))
	for scope := range counts {
		scopes = append(scopes, scope)
	}
	sort.Slice(scopes, func(i, j int) bool {
		if counts[scopes[i]] != counts[scopes[j]] {
			return counts[scopes[i]] > counts[scopes[j]]
		}
		return scopes[i] < scopes[j]
	})
	return scopes
}
