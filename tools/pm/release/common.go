package release

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coreos/go-semver/semver"
	"github.com/go-git/go-git/v5"
	"github.com/google/go-github/v49/github"
	"golang.org/x/oauth2"
)

// releaseBranchPrefix names release branches; the version is recoverable
// from the branch name when finishing a release.
const releaseBranchPrefix = "refs/heads/release-v"

// Process carries the state of one release run: the resolved configuration,
// the GitHub and git handles, the files staged for the release commit, and
// the undo actions to run if the release is aborted partway.
type Process struct {
	Config

	gh     *github.Client
	repo   *git.Repository
	remote *git.Remote
	wc     *git.Worktree

	cleanupActions []func()
	addFiles       []string
}

// NewProcess starts a release process for the given version string.
func NewProcess(ctx context.Context, v string, cfg *Config) (*Process, error) {
	p, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := p.setVersion(v); err != nil {
		return nil, err
	}
	return p, nil
}

// NewProcessContinuation resumes a release process from its release branch,
// recovering the version from the branch name. Dies when HEAD is not a
// release branch.
func NewProcessContinuation(ctx context.Context, cfg *Config) (*Process, error) {
	p, err := connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	headRef, err := p.repo.Head()
	if err != nil {
		p.Chokef("unable to find HEAD: %v", err)
	}

	name := string(headRef.Name())
	if !strings.HasPrefix(name, releaseBranchPrefix) {
		p.Choke("you must be on the release branch to finish the process")
	}

	if err := p.setVersion(name[len(releaseBranchPrefix):]); err != nil {
		return nil, err
	}
	return p, nil
}

// connect builds a Process with a working GitHub client and git handles.
func connect(ctx context.Context, cfg *Config) (*Process, error) {
	p := &Process{Config: *cfg}

	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN environment variable is missing")
	}
	tc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))
	p.gh = github.NewClient(tc)

	p.SetupGitRepo()

	return p, nil
}

// setVersion resolves everything derived from the version being released.
func (p *Process) setVersion(v string) error {
	version, err := semver.NewVersion(v)
	if err != nil {
		return err
	}

	p.Version = version
	p.Branch = "release-v" + version.String()
	p.Tag = "v" + version.String()
	p.Today = time.Now().Format("2006-01-02")

	return nil
}

// SetupGitRepo opens the repository in the current directory and resolves
// the origin remote and the working tree. Dies when any of them is missing.
func (p *Process) SetupGitRepo() {
	repo, err := git.PlainOpen(".")
	if err != nil {
		p.Chokef("unable to open git repository at .: %v", err)
	}
	p.repo = repo

	remote, err := repo.Remote("origin")
	if err != nil {
		p.Chokef("unable to connect to remote origin: %v", err)
	}
	p.remote = remote

	wc, err := repo.Worktree()
	if err != nil {
		p.Chokef("unable to examine the working copy: %v", err)
	}
	p.wc = wc
}

// ToAdd stages a file name for the release commit.
func (p *Process) ToAdd(fn string) {
	p.addFiles = append(p.addFiles, fn)
}

// ForCleanup registers an undo action to run if the release is aborted.
func (p *Process) ForCleanup(action func()) {
	p.cleanupActions = append(p.cleanupActions, action)
}

// Cleanup runs the registered undo actions, most recent first.
func (p *Process) Cleanup() {
	for i := len(p.cleanupActions) - 1; i >= 0; i-- {
		p.cleanupActions[i]()
	}
}

// Choke aborts the release: it reports the problem, runs the undo actions,
// and exits.
func (p *Process) Choke(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "Failed: %s\n", msg)
	_, _ = fmt.Fprintln(os.Stderr, "Cancelling release.")
	p.Cleanup()
	os.Exit(1)
}

// Chokef is Choke with a format string.
func (p *Process) Chokef(f string, args ...any) {
	p.Choke(fmt.Sprintf(f, args...))
}
