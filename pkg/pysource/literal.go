package pysource

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// decodeString returns the value of a single string node and whether it is a
// plain literal. Formatted strings (with interpolations) and bytes literals are
// not plain literals.
func decodeString(n *sitter.Node, src []byte) (string, bool) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child != nil && child.Type() == "interpolation" {
			return "", false
		}
	}

	raw := n.Content(src)
	quote := strings.IndexAny(raw, `"'`)
	if quote < 0 {
		return "", false
	}

	prefix := strings.ToLower(raw[:quote])
	if strings.ContainsAny(prefix, "fb") {
		return "", false
	}

	body := raw[quote:]
	delim := body[:1]
	if strings.HasPrefix(body, strings.Repeat(delim, 3)) && len(body) >= 6 {
		delim = strings.Repeat(delim, 3)
	}

	body = strings.TrimPrefix(body, delim)
	body = strings.TrimSuffix(body, delim)

	if strings.Contains(prefix, "r") {
		return body, true
	}

	return unescape(body), true
}

var escapes = map[byte]string{
	'\\': `\`,
	'\'': `'`,
	'"':  `"`,
	'n':  "\n",
	't':  "\t",
	'r':  "\r",
	'0':  "\x00",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'v':  "\v",
	'\n': "",
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}

		if rep, ok := escapes[s[i+1]]; ok {
			sb.WriteString(rep)
			i++
			continue
		}

		// unknown escapes are kept verbatim, as python does
		sb.WriteByte(s[i])
	}

	return sb.String()
}
