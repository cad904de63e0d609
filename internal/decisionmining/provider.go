// Package decisionmining walks a repository's commit history with go-git
// and turns file-churn/co-change signals into long-lived DecisionRecords
// (SPEC_FULL §13 "Decision mining from commit history"), and resolves the
// regression-detection gate's branch-base baseline (spec §4.7, SPEC_FULL
// §14's resolved open question).
package decisionmining

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	drifterrors "github.com/ruizrica/drift-sub012/internal/errors"
)

// Provider wraps a go-git repository handle, replacing the teacher's
// shell-out-to-`git` Provider with the ecosystem library so commit
// walking doesn't depend on a `git` binary on PATH (SPEC_FULL §11 domain
// stack row for go-git).
type Provider struct {
	repo *git.Repository
	root string
}

// Open opens the git repository rooted at (or above) root.
func Open(root string) (*Provider, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, drifterrors.NewIOError("open git repository", root, err)
	}
	return &Provider{repo: repo, root: root}, nil
}

// HeadCommit returns the current HEAD commit hash.
func (p *Provider) HeadCommit() (string, error) {
	head, err := p.repo.Head()
	if err != nil {
		return "", drifterrors.NewIOError("resolve HEAD", p.root, err)
	}
	return head.Hash().String(), nil
}

// MergeBase resolves the merge-base commit between HEAD and baseBranch,
// the `branch-base` baseline source (SPEC_FULL §13).
func (p *Provider) MergeBase(baseBranch string) (string, error) {
	head, err := p.repo.Head()
	if err != nil {
		return "", drifterrors.NewIOError("resolve HEAD", p.root, err)
	}
	headCommit, err := p.repo.CommitObject(head.Hash())
	if err != nil {
		return "", drifterrors.NewIOError("load HEAD commit", p.root, err)
	}

	baseRef, err := p.repo.Reference(plumbing.NewBranchReferenceName(baseBranch), true)
	if err != nil {
		baseRef, err = p.repo.Reference(plumbing.NewRemoteReferenceName("origin", baseBranch), true)
		if err != nil {
			return "", drifterrors.NewIOError("resolve base branch "+baseBranch, p.root, err)
		}
	}
	baseCommit, err := p.repo.CommitObject(baseRef.Hash())
	if err != nil {
		return "", drifterrors.NewIOError("load base commit", p.root, err)
	}

	bases, err := headCommit.MergeBase(baseCommit)
	if err != nil || len(bases) == 0 {
		return "", drifterrors.NewIOError("compute merge-base", p.root, fmt.Errorf("no common ancestor with %s", baseBranch))
	}
	return bases[0].Hash.String(), nil
}

// CommitsSince iterates commits reachable from HEAD, newest first, until
// limit is reached (0 = unbounded).
func (p *Provider) CommitsSince(limit int) ([]*object.Commit, error) {
	head, err := p.repo.Head()
	if err != nil {
		return nil, drifterrors.NewIOError("resolve HEAD", p.root, err)
	}
	iter, err := p.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, drifterrors.NewIOError("walk commit log", p.root, err)
	}
	defer iter.Close()

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(commits) >= limit {
			return storerErrStop
		}
		commits = append(commits, c)
		return nil
	})
	if err != nil && err != storerErrStop {
		return nil, drifterrors.NewIOError("iterate commit log", p.root, err)
	}
	return commits, nil
}

// storerErrStop is a sentinel used to break out of go-git's ForEach early.
var storerErrStop = fmt.Errorf("stop iteration")
