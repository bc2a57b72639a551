package field

import (
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// ParseAddressList parses a field body as an address list. It attempts a
// strict parse of the list first. If that fails, an extremely lenient
// parsing is attempted, which might produce results that can only be
// described as "weird" in the effort to provide some kind of result. It is
// so forgiving, it returns some kind of value for any input.
func ParseAddressList(body string) addr.AddressList {
	al, err := addr.ParseEmailAddressList(body)
	if err != nil {
		al = parseEmailAddressList(body)
	}

	return al
}

// parseEmailAddressList is a fallback for address parsing. The parser in
// github.com/zostay/go-addr is a strict parser, which is useful for getting
// accurate parsing of email addresses, especially for validating data entry.
// When working with the mess that is the Internet, though, you want to get
// something useful even if it's technically wrong.
//
// It works as follows:
//
// 1. Split the string up by commas.
// 2. Each string resulting from the split is trimmed of whitespace.
// 3. The comments are stripped from each string and held.
// 4. All the words at the start are treated as the display name.
// 5. The last word at the end is treated as the email address.
//
// As some address fields have something other than an address in them
// because people on the Internet are weird, the result will be wrong
// sometimes.
//
// We stuff whatever we get into an addr.Mailbox and call it good. As they
// are so rare, we assume we are never dealing with groups. This may lead to
// oddness if a group is encountered.
func parseEmailAddressList(v string) addr.AddressList {
	extractComments := func(s string) (string, string) {
		var clean, comment strings.Builder
		nestLevel := 0
		for _, c := range s {
			switch {
			case c == '(':
				nestLevel++
				if nestLevel == 1 {
					continue
				} else {
					comment.WriteRune(c)
				}
			case c == ')':
				nestLevel--
				switch {
				case nestLevel == 0:
					continue
				case nestLevel < 0:
					nestLevel = 0
					clean.WriteRune(c)
				default:
					comment.WriteRune(c)
				}
			case nestLevel > 0:
				comment.WriteRune(c)
			default:
				clean.WriteRune(c)
			}
		}

		return clean.String(), comment.String()
	}

	mbs := strings.Split(v, ",")
	as := make(addr.AddressList, 0, len(mbs))
	for _, orig := range mbs {
		mb, com := extractComments(orig)

		mb = strings.TrimSpace(mb)
		com = strings.TrimSpace(com)

		parts := strings.Fields(mb)

		var dn, email string
		switch {
		case len(parts) == 0:
			email = ""
		case len(parts) > 1:
			dn = strings.Join(parts[:len(parts)-1], " ")
			email = parts[len(parts)-1]
		default:
			email = parts[0]
		}

		if email != "" {
			var addrSpec *addr.AddrSpec
			if i := strings.Index(email, "@"); i > -1 {
				addrSpec = addr.NewAddrSpecParsed(
					email[:i],
					email[i+1:],
					email,
				)
			} else {
				addrSpec = addr.NewAddrSpecParsed(
					email,
					"",
					email,
				)
			}

			mailbox, err := addr.NewMailboxParsed(dn, addrSpec, com, orig)
			if err != nil {
				mailbox, _ = addr.NewMailboxParsed(dn, addrSpec, "", orig)
			}

			as = append(as, mailbox)
		}
	}

	return as
}
