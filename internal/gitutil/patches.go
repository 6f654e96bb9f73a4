// Package gitutil collects review patches from local Git repositories.
package gitutil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"github.com/sevigo/a11y-warden/internal/core"
)

// ErrNoChanges is returned when the inspected commit touches no reviewable file.
var ErrNoChanges = errors.New("commit has no reviewable changes")

// Client handles interacting with Git repositories.
type Client struct {
	Logger *slog.Logger
}

// NewClient returns a new Client instance.
func NewClient(logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{Logger: logger}
}

// Open opens a Git repository at a given path.
func (c *Client) Open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return repo, nil
}

// HeadPatches returns one patch per file changed by the HEAD commit of the
// repository at path, in tree order. Each patch carries the unified diff of
// that file. Deleted and binary files are skipped.
func (c *Client) HeadPatches(ctx context.Context, path string) ([]core.Patch, error) {
	repo, err := c.Open(path)
	if err != nil {
		return nil, err
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("failed to get commit object for %s: %w", head.Hash(), err)
	}

	c.Logger.InfoContext(ctx, "collecting patches", "path", path, "commit", head.Hash().String()[:7])
	return c.CommitPatches(ctx, commit)
}

// CommitPatches diffs commit against its first parent. A root commit is
// diffed against the empty tree.
func (c *Client) CommitPatches(ctx context.Context, commit *object.Commit) ([]core.Patch, error) {
	toTree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree for commit %s: %w", commit.Hash, err)
	}

	fromTree := &object.Tree{}
	if commit.NumParents() > 0 {
		parent, err := commit.Parent(0)
		if err != nil {
			return nil, fmt.Errorf("failed to get parent of %s: %w", commit.Hash, err)
		}
		if fromTree, err = parent.Tree(); err != nil {
			return nil, fmt.Errorf("failed to get tree for parent %s: %w", parent.Hash, err)
		}
	}

	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff commit %s: %w", commit.Hash, err)
	}

	patches := make([]core.Patch, 0, len(changes))
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			c.Logger.Error("failed to get action for change, skipping", "error", err)
			continue
		}
		if action == merkletrie.Delete {
			continue
		}

		patch, err := change.PatchContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to build patch for %s: %w", change.To.Name, err)
		}
		if isBinary(patch) {
			c.Logger.Debug("skipping binary file", "file", change.To.Name)
			continue
		}

		patches = append(patches, core.Patch{
			Filename: change.To.Name,
			Content:  patch.String(),
		})
	}

	if len(patches) == 0 {
		return nil, ErrNoChanges
	}
	return patches, nil
}

func isBinary(p *object.Patch) bool {
	for _, fp := range p.FilePatches() {
		if fp.IsBinary() {
			return true
		}
	}
	return false
}
