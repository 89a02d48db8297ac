package completion

import "regexp"

var invalidIdentChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeName makes an application display name usable inside shell function names:
// every character outside [a-zA-Z0-9_] is replaced by "__".
func SanitizeName(name string) string {
	return invalidIdentChars.ReplaceAllString(name, "__")
}
