package workspace

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"

	"github.com/ofs/ofss-config/log"
)

// ErrNoRepository is returned when a directory is not inside a git work tree.
var ErrNoRepository = errors.New("not inside a git repository")

// Revision identifies the checked out state of the work tree holding the output root.
type Revision struct {
	Hash   string `yaml:"hash"`
	Branch string `yaml:"branch,omitempty"`
	// Dirty is set when the work tree has uncommitted changes.
	Dirty bool `yaml:"dirty"`
}

func (r Revision) String() string {
	s := r.Hash
	if len(s) > 12 {
		s = s[:12]
	}
	if r.Branch != "" {
		s = r.Branch + "@" + s
	}
	if r.Dirty {
		s += " (dirty)"
	}
	return s
}

// CurrentRevision returns the revision of the git repository containing `dir`.
func CurrentRevision(dir string) (*Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == git.ErrRepositoryNotExists {
		return nil, ErrNoRepository
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open repository at '%s'", dir)
	}

	head, err := repo.Head()
	if err == plumbing.ErrReferenceNotFound {
		log.Debug("Repository at '%s' has no commits.\n", dir)
		return nil, ErrNoRepository
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get repo HEAD")
	}
	log.Debug("Repo HEAD is '%s'.\n", head.Hash().String())

	rev := &Revision{Hash: head.Hash().String()}
	if head.Name().IsBranch() {
		rev.Branch = head.Name().Short()
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get repo worktree")
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get repo status")
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}
