package field

import (
	"fmt"
	"net/mail"
	"time"

	"github.com/araddon/dateparse"
)

// UnixDateWithEarlyYear is a weird one, eh?
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// ParseTime parses a field body as a date. The RFC 5322 format is attempted
// first, then the wide net of formats dateparse knows, then one oddball
// format that really does turn up in old mail.
//
// It either returns a parsed time or the parse error.
func ParseTime(body string) (time.Time, error) {
	t, err := mail.ParseDate(body)
	if err == nil {
		return t, nil
	}

	t, err = dateparse.ParseAny(body)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(UnixDateWithEarlyYear, body)
	if err == nil {
		return t, nil
	}

	return t, fmt.Errorf("time string %q cannot be parsed", body)
}
