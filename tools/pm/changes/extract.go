package changes

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ExtractSection returns a reader over the bullets recorded under the given
// version's heading in the named changelog. The section runs from the line
// after the heading to the next heading (headings are preceded by a blank
// line, so two blanks in a row mark the end). Fails when the file cannot be
// read or no heading for that version exists.
func ExtractSection(fn, version string) (io.Reader, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	heading := version + "  "
	section := &strings.Builder{}
	found := false
	blanks := 0

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()

		if !found {
			found = strings.HasPrefix(line, heading)
			continue
		}

		if line == "" {
			blanks++
			continue
		}
		if blanks >= 2 {
			break
		}

		section.WriteString(line)
		section.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !found {
		return nil, fmt.Errorf("a change log section for version %s was not found", version)
	}

	return strings.NewReader(section.String()), nil
}
