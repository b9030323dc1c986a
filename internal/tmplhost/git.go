package tmplhost

import (
	"fmt"
	"path"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	gterrors "github.com/alexisbeaulieu97/gridtheme/pkg/errors"
)

// LoadGit loads the theme files below dir as committed at revision in the
// repository containing repoPath. The working tree is not read, so themes
// can be pinned to a tag or commit. An empty revision means HEAD.
func (e *Environment) LoadGit(repoPath, revision, dir string) error {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return gterrors.NewThemeError(repoPath, fmt.Errorf("open repository: %w", err))
	}

	if revision == "" {
		revision = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return gterrors.NewThemeError(repoPath, fmt.Errorf("resolve revision %q: %w", revision, err))
	}

	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return gterrors.NewThemeError(repoPath, fmt.Errorf("read commit %s: %w", hash, err))
	}
	tree, err := commit.Tree()
	if err != nil {
		return gterrors.NewThemeError(repoPath, fmt.Errorf("read tree of %s: %w", hash, err))
	}

	dir = strings.Trim(path.Clean("/"+dir), "/")
	if dir != "" {
		tree, err = tree.Tree(dir)
		if err != nil {
			return gterrors.NewThemeError(repoPath, fmt.Errorf("directory %q at %s: %w", dir, revision, err))
		}
	}

	sources := make(map[string]string)
	err = tree.Files().ForEach(func(file *object.File) error {
		if path.Ext(file.Name) != ThemeExt {
			return nil
		}
		content, err := file.Contents()
		if err != nil {
			return gterrors.NewThemeError(file.Name, err)
		}
		sources[file.Name] = content
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Debug("themes read from git", "repository", repoPath, "revision", hash.String(), "themes", len(sources))
	return e.LoadSources(sources)
}
