package history

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/gorewood/gitcc/internal/conventional"
)

// Bump is the kind of version increment a set of commits calls for.
type Bump int

// Bumps in increasing order of impact.
const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// Release describes the latest release tag and the version that follows.
type Release struct {
	// Tag is the latest semver tag, empty when the repository has none.
	Tag     string
	Current *semver.Version
	Next    *semver.Version
	Bump    Bump
	// Commits counts commits since Tag.
	Commits int
}

// NextString renders Next with the same "v" prefix convention as Tag.
// Untagged repositories get the prefix.
func (r Release) NextString() string {
	if r.Tag != "" && !strings.HasPrefix(r.Tag, "v") {
		return r.Next.String()
	}
	return "v" + r.Next.String()
}

// BumpFor classifies one message: breaking changes are major, feat is
// minor, fix and perf are patch, anything else (including
// non-conventional messages) does not bump.
func BumpFor(text string) Bump {
	msg, err := conventional.Parse(text)
	if err != nil {
		return BumpNone
	}
	return bumpOf(msg)
}

func bumpOf(msg conventional.Message) Bump {
	switch {
	case msg.Breaking:
		return BumpMajor
	case msg.Type == "feat":
		return BumpMinor
	case msg.Type == "fix" || msg.Type == "perf":
		return BumpPatch
	default:
		return BumpNone
	}
}

// Apply increments v. While the major version is 0 a breaking change only
// bumps the minor version.
func Apply(v *semver.Version, bump Bump) *semver.Version {
	var next semver.Version
	switch bump {
	case BumpMajor:
		if v.Major() == 0 {
			next = v.IncMinor()
		} else {
			next = v.IncMajor()
		}
	case BumpMinor:
		next = v.IncMinor()
	case BumpPatch:
		next = v.IncPatch()
	default:
		return v
	}
	return &next
}

// Change is a conventional commit found in history.
type Change struct {
	Hash    string               `json:"hash"`
	Message conventional.Message `json:"message"`
}

// NextVersion finds the highest semver release tag, scans the commits made
// since it and returns the resulting release. Pre-release tags are ignored.
func (r *Repo) NextVersion() (Release, error) {
	release, _, err := r.Unreleased()
	return release, err
}

// Unreleased is NextVersion that also returns the conventional commits made
// since the release tag, newest first. Commits that do not parse are counted
// but not returned.
func (r *Repo) Unreleased() (Release, []Change, error) {
	release := Release{Current: semver.New(0, 0, 0, "", "")}

	tag, name, tagCommit, err := r.latestTag()
	if err != nil {
		return Release{}, nil, err
	}
	if tag != nil {
		release.Tag = name
		release.Current = tag
	}

	var changes []Change
	head, ok, err := r.head()
	if err != nil {
		return Release{}, nil, err
	}
	if ok {
		released := map[plumbing.Hash]bool{}
		if !tagCommit.IsZero() {
			if err := r.walk(tagCommit, func(c *object.Commit) error {
				released[c.Hash] = true
				return nil
			}); err != nil {
				return Release{}, nil, err
			}
		}
		err = r.walk(head, func(c *object.Commit) error {
			if released[c.Hash] {
				return nil
			}
			release.Commits++
			msg, err := conventional.Parse(c.Message)
			if err != nil {
				return nil //nolint:nilerr // non-conventional commits do not bump
			}
			release.Bump = max(release.Bump, bumpOf(msg))
			changes = append(changes, Change{Hash: c.Hash.String(), Message: msg})
			return nil
		})
		if err != nil {
			return Release{}, nil, err
		}
	}

	release.Next = Apply(release.Current, release.Bump)
	return release, changes, nil
}

// latestTag returns the highest non-prerelease semver tag, its name and the
// commit it points at, peeling annotated tags. Only full MAJOR.MINOR.PATCH
// tags count, so "2024" or "v1" are skipped.
func (r *Repo) latestTag() (*semver.Version, string, plumbing.Hash, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, "", plumbing.ZeroHash, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var (
		best     *semver.Version
		bestName string
		bestHash plumbing.Hash
	)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		v, err := parseTag(name)
		if err != nil || v.Prerelease() != "" {
			return nil //nolint:nilerr // non-semver tags are skipped
		}
		if best != nil && !v.GreaterThan(best) {
			return nil
		}
		hash, err := r.peel(ref.Hash())
		if err != nil {
			return err
		}
		best, bestName, bestHash = v, name, hash
		return nil
	})
	if err != nil {
		return nil, "", plumbing.ZeroHash, fmt.Errorf("reading tags: %w", err)
	}
	return best, bestName, bestHash, nil
}

func parseTag(name string) (*semver.Version, error) {
	return semver.StrictNewVersion(strings.TrimPrefix(name, "v"))
}

// peel resolves an annotated tag object to its commit; lightweight tags
// already point at the commit.
func (r *Repo) peel(hash plumbing.Hash) (plumbing.Hash, error) {
	tagObj, err := r.repo.TagObject(hash)
	if errors.Is(err, plumbing.ErrObjectNotFound) {
		return hash, nil
	}
	if err != nil {
		return plumbing.ZeroHash, err
	}
	commit, err := tagObj.Commit()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("tag %s does not point at a commit: %w", tagObj.Name, err)
	}
	return commit.Hash, nil
}
