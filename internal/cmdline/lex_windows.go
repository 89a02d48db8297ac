package cmdline

import (
	"errors"
	"os"
	"strings"
	"unicode/utf8"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Split splits s using cmd.exe conventions: double quotes group, ^ escapes the next
// character outside quotes, backslashes only escape a following quote and %VAR% is
// expanded from the environment
func Split(s string) ([]string, error) {
	var (
		tokens   []string
		arg      strings.Builder
		inArg    bool
		inQuotes bool
	)

	flush := func() {
		if inArg {
			tokens = append(tokens, arg.String())
			arg.Reset()
			inArg = false
		}
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			return nil, errors.New("invalid UTF-8 encoding")

		case r == '^' && !inQuotes && i+size < len(s):
			next, nextSize := utf8.DecodeRuneInString(s[i+size:])
			arg.WriteRune(next)
			inArg = true
			i += size + nextSize

		case r == '\\':
			n := 0
			for i < len(s) && s[i] == '\\' {
				n++
				i++
			}
			if i < len(s) && s[i] == '"' {
				arg.WriteString(strings.Repeat(`\`, n/2))
				if n%2 == 1 {
					arg.WriteByte('"')
				} else {
					inQuotes = !inQuotes
				}
				i++
			} else {
				arg.WriteString(strings.Repeat(`\`, n))
			}
			inArg = true

		case r == '"':
			inQuotes = !inQuotes
			inArg = true
			i += size

		case r == '%' && !inQuotes:
			end := strings.IndexByte(s[i+1:], '%')
			if end < 0 {
				arg.WriteRune(r)
				inArg = true
				i += size
				continue
			}
			name := s[i+1 : i+1+end]
			if value, ok := os.LookupEnv(name); ok {
				arg.WriteString(value)
			} else {
				arg.WriteString(s[i : i+end+2])
			}
			inArg = true
			i += end + 2

		case !inQuotes && (r == ' ' || r == '\t' || r == '\r' || r == '\n'):
			flush()
			i += size

		default:
			arg.WriteRune(r)
			inArg = true
			i += size
		}
	}

	if inQuotes {
		return nil, errUnterminatedQuote
	}
	flush()

	return tokens, nil
}
