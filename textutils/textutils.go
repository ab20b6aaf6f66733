package textutils

import (
	"strings"
)

func isBlank(line string) bool {
	return strings.TrimLeft(line, " \t\v\f\r\n") == ""
}

// IndentString prepends indent nIndent times to each line of s.
// Lines consisting only of whitespace are emptied and left unindented;
// a trailing whitespace-only fragment without a newline is dropped.
func IndentString(s string, indent string, nIndent int) string {
	pfx := strings.Repeat(indent, nIndent)

	var res strings.Builder
	res.Grow(len(s) + (strings.Count(s, "\n")+1)*len(pfx))
	for _, line := range strings.SplitAfter(s, "\n") {
		if isBlank(line) {
			if strings.HasSuffix(line, "\n") {
				res.WriteByte('\n')
			}
			continue
		}
		res.WriteString(pfx)
		res.WriteString(line)
	}
	return res.String()
}

// CommentLines turns s into a line comment block, prefixing every line
// with prefix (e.g. "/// "). Blank lines keep the bare prefix without
// trailing whitespace. The result has no trailing newline.
func CommentLines(s string, prefix string) string {
	s = strings.TrimRight(s, " \t\r\n")
	if s == "" {
		return ""
	}
	bare := strings.TrimRight(prefix, " ")
	lines := strings.Split(s, "\n")
	for i, ln := range lines {
		ln = strings.TrimRight(ln, " \t\r")
		if ln == "" {
			lines[i] = bare
		} else {
			lines[i] = prefix + ln
		}
	}
	return strings.Join(lines, "\n")
}
