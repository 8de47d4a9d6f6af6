// names.go holds the stateless URI and filename sanitizing helpers. The
// transforms are simple but the edge policies (leading dashes, hidden
// files, forced extensions) are exact; see the tests.
package filter

import "strings"

// FilterURI reduces s to URI-segment-safe characters in one left-to-right
// pass: spaces become dashes, anything outside [0-9a-zA-Z_-] is dropped,
// doubled dashes collapse, and a leading dash or underscore is dropped.
// The second return is true iff s needed no change.
func FilterURI(s string) (string, bool) {
	var out []rune
	unchanged := true
	for _, c := range s {
		if c == ' ' {
			c = '-'
			unchanged = false
		}
		switch {
		case !isURIChar(c):
			unchanged = false
		case len(out) == 0 && (c == '-' || c == '_'):
			unchanged = false
		case c == '-' && out[len(out)-1] == '-':
			unchanged = false
		default:
			out = append(out, c)
		}
	}
	return string(out), unchanged
}

func isURIChar(c rune) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}

// FilterFilename normalizes name into a safe lowercase filename: any path
// prefix is stripped, spaces become dashes, repeated dashes collapse,
// leading and trailing dashes are trimmed, and when extension is
// non-empty it replaces (or supplies) the filename's extension. Hidden
// names (leading dot) and names empty after all transforms are refused:
// the result is "" and the second return is false.
func FilterFilename(name, extension string) (string, bool) {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "-")
	for strings.Contains(name, "--") {
		name = strings.ReplaceAll(name, "--", "-")
	}
	name = strings.Trim(name, "-")

	if extension != "" {
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			name = name[:i]
		}
		name += "." + extension
	}

	if name == "" || strings.HasPrefix(name, ".") {
		return "", false
	}
	return name, true
}
