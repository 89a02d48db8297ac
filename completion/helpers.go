package completion

import (
	"strings"
)

// escapeZshDescribe escapes a candidate for the value part of a _describe spec
func escapeZshDescribe(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ":", `\:`)
	return s
}
