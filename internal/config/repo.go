package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// RepoRoot returns the root of the git worktree containing dir, or dir
// itself when it is not inside a repository.
func RepoRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return abs, nil
		}
		return "", fmt.Errorf("failed to open repository at %s: %w", abs, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repository
		return abs, nil
	}
	return wt.Filesystem.Root(), nil
}
