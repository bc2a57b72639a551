package message

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateBoundary will generate a random MIME boundary that is probably
// unique in most circumstances.
func GenerateBoundary() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// GenerateSafeBoundary will generate a random MIME boundary that is
// guaranteed to be safe with the given corpus of data. Use this when you
// want to generate a boundary for a known set of parts:
//
//	boundary := message.GenerateSafeBoundary(strings.Join(parts, ""))
//
// using this is likely to be total overkill, but in case you're paranoid.
func GenerateSafeBoundary(contents string) string {
	for {
		boundary := GenerateBoundary()
		if !strings.Contains(contents, boundary) {
			return boundary
		}
	}
}

// GenerateMessageID generates a message identifier suitable for the
// Message-id header, scoped to the given domain. The identifier comes back
// without angle brackets.
func GenerateMessageID(domain string) string {
	return fmt.Sprintf("%s@%s", uuid.New().String(), domain)
}
