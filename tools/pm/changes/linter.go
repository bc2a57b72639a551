package changes

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// CheckMode selects how strict the linter is about the WIP section at the
// top of the changelog.
type CheckMode int

const (
	// CheckStandard allows a WIP section but does not require one.
	CheckStandard CheckMode = iota

	// CheckPreRelease requires the changelog to still open with a WIP
	// section that the release process will rewrite.
	CheckPreRelease

	// CheckRelease forbids a WIP section; everything must carry a version
	// and a date before a release goes out.
	CheckRelease
)

// Linter checks that a changelog follows the house format: an optional
// "WIP  TBD" first line, then version headings like "v1.2.3  2026-01-31" in
// descending order, each followed by a blank line and a run of " * " bullets
// whose continuations indent three spaces.
type Linter struct {
	r    io.Reader
	mode CheckMode
}

// NewLinter builds a Linter over the changelog text in r.
func NewLinter(r io.Reader, mode CheckMode) *Linter {
	return &Linter{r: r, mode: mode}
}

// Failure is one linter complaint tied to a line of the changelog.
type Failure struct {
	Line    int
	Message string
}

// Failures collects every complaint found in one pass.
type Failures []Failure

func (fs Failures) String() string {
	msgs := make([]string, len(fs))
	for i, f := range fs {
		msgs[i] = fmt.Sprintf(" * Line %d: %s", f.Line, f.Message)
	}
	return strings.Join(msgs, "\n")
}

// Error is the error returned by Check when the changelog has problems.
type Error struct {
	Failures
}

func (e *Error) Error() string {
	return fmt.Sprintf("Change log linter check failed:\n%s", e.Failures.String())
}

var (
	reHeading  = regexp.MustCompile(`^v(\d\S+) {2}(20\d\d-\d\d-\d\d)$`)
	reBullet   = regexp.MustCompile(`^ \* `)
	reContin   = regexp.MustCompile(`^ {3}.*\S`)
	reBlankish = regexp.MustCompile(`^\s+$`)
)

// lintState carries what the line checks need to know about earlier lines.
type lintState struct {
	lastVersion *semver.Version
	lastDate    string
	lastAnchor  int // line of the WIP line or latest version heading

	prevBlank  bool
	prevBullet bool

	found Failures
}

func (st *lintState) failf(line int, f string, args ...any) {
	st.found = append(st.found, Failure{line, fmt.Sprintf(f, args...)})
}

// Check reads the changelog once and reports every formatting problem found,
// or nil when the changelog is clean.
func (l *Linter) Check() error {
	st := &lintState{}

	sc := bufio.NewScanner(l.r)
	for n := 1; sc.Scan(); n++ {
		l.checkLine(n, sc.Text(), st)
	}

	if len(st.found) > 0 {
		return &Error{st.found}
	}
	return nil
}

func (l *Linter) checkLine(n int, line string, st *lintState) {
	blank, bullet := false, false
	defer func() {
		st.prevBlank = blank
		st.prevBullet = bullet
	}()

	isWIP := line == "WIP" || line == "WIP  TBD"
	if l.mode == CheckPreRelease && n == 1 && !isWIP {
		st.failf(n, "WIP not found during pre-release check")
	}

	switch {
	case isWIP:
		if n > 1 {
			st.failf(n, "WIP found after line 1")
		}
		if l.mode == CheckRelease {
			st.failf(n, "Found WIP line during release")
		}
		st.lastAnchor = n

	case reHeading.MatchString(line):
		l.checkHeading(n, line, st)

	case reBullet.MatchString(line):
		switch {
		case st.lastAnchor == 0:
			st.failf(n, "log bullet before first version heading or WIP")
		case n-1 == st.lastAnchor:
			st.failf(n, "missing blank line before log bullet")
		case n > st.lastAnchor+2 && st.prevBlank:
			st.failf(n, "extra blank line before log bullet")
		}
		bullet = true

	case reContin.MatchString(line):
		if !st.prevBullet {
			st.failf(n, "log line continuation has no bullet to continue")
		}
		bullet = st.prevBullet

	case line == "":
		if st.prevBlank {
			st.failf(n, "consecutive blank lines")
		}
		blank = true

	case reBlankish.MatchString(line):
		st.failf(n, "line looks blank, but has spaces in it")

	default:
		st.failf(n, "badly formatted line")
	}
}

// checkHeading validates one version heading line. Versions and dates run
// newest first, so each heading must be no newer than the one above it.
func (l *Linter) checkHeading(n int, line string, st *lintState) {
	m := reHeading.FindStringSubmatch(line)
	ver, date := m[1], m[2]

	version, err := semver.NewVersion(ver)
	if err != nil {
		st.failf(n, "Unable to parse version number in heading")
		st.lastAnchor = n
		return
	}

	if st.lastVersion != nil && st.lastVersion.LessThan(*version) {
		st.failf(n, "version error %s < %s from line %d",
			version, st.lastVersion, st.lastAnchor)
	}
	if st.lastDate != "" && st.lastDate < date {
		st.failf(n, "date error %s < %s from line %d",
			date, st.lastDate, st.lastAnchor)
	}
	if n != 1 && !st.prevBlank {
		st.failf(n, "version heading line missing blank line before it")
	}

	st.lastVersion = version
	st.lastDate = date
	st.lastAnchor = n
}
