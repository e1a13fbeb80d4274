package manifest

import "strings"

// ReplaceFolder substitutes every occurrence of from with to across the whole
// text. Occurrences that already read as to are kept, so applying the same
// rewrite twice never nests the folder a second time (src/render/render).
// When to has no trailing slash it only counts as already present if a path
// boundary follows it: src/renderer.ts is still rewritten.
//
// The substitution is purely textual: any matching substring is rewritten,
// including ones inside comments or unrelated values.
func ReplaceFolder(text, from, to string) string {
	if from == "" || from == to {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for {
		i := strings.Index(text, from)
		if i < 0 {
			b.WriteString(text)
			return b.String()
		}
		b.WriteString(text[:i])
		b.WriteString(to)
		if alreadyReplaced(text[i:], to) {
			text = text[i+len(to):]
		} else {
			text = text[i+len(from):]
		}
	}
}

func alreadyReplaced(text, to string) bool {
	if to == "" || !strings.HasPrefix(text, to) {
		return false
	}
	if strings.HasSuffix(to, "/") || len(text) == len(to) {
		return true
	}
	return !isNameByte(text[len(to)])
}

// isNameByte reports whether c can continue a file or folder name.
func isNameByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_' || c == '.':
		return true
	}
	return false
}
