package discovery

import (
	"regexp"
	"strings"

	"tfocus/internal/domain"
)

var (
	resourceHeader = regexp.MustCompile(`(?m)^[ \t]*resource[ \t]+"([^"]+)"[ \t]+"([^"]+)"[ \t]*\{`)
	moduleHeader   = regexp.MustCompile(`(?m)^[ \t]*module[ \t]+"([^"]+)"[ \t]*\{`)
	countAttr      = regexp.MustCompile(`^[ \t]*count[ \t]*=`)
	forEachAttr    = regexp.MustCompile(`^[ \t]*for_each[ \t]*=`)
)

// Parse extracts resource and module blocks from the content of one .tf file.
// It matches block headers and balances braces; it does not understand HCL.
func Parse(file string, content []byte) []domain.Resource {
	src := string(content)
	var out []domain.Resource

	for _, m := range resourceHeader.FindAllStringSubmatchIndex(src, -1) {
		body := blockBody(src, m[1])
		hasCount, hasForEach := meta(body)
		out = append(out, domain.Resource{
			Type:       src[m[2]:m[3]],
			Name:       src[m[4]:m[5]],
			File:       file,
			HasCount:   hasCount,
			HasForEach: hasForEach,
		})
	}

	for _, m := range moduleHeader.FindAllStringSubmatchIndex(src, -1) {
		body := blockBody(src, m[1])
		hasCount, hasForEach := meta(body)
		out = append(out, domain.Resource{
			Name:       src[m[2]:m[3]],
			IsModule:   true,
			File:       file,
			HasCount:   hasCount,
			HasForEach: hasForEach,
		})
	}

	return out
}

// blockBody returns the text between the opening brace ending at start and its
// matching closing brace, or the rest of the file if it is unbalanced.
// Braces inside double-quoted strings and comments are ignored.
func blockBody(src string, start int) string {
	depth := 1
	inString, inLineComment, inBlockComment := false, false, false

	for i := start; i < len(src); i++ {
		c := src[i]
		switch {
		case inLineComment:
			if c == '\n' {
				inLineComment = false
			}
		case inBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				inBlockComment = false
				i++
			}
		case inString:
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '#':
			inLineComment = true
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			inLineComment = true
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			inBlockComment = true
			i++
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return src[start:i]
			}
		}
	}
	return src[start:]
}

// meta reports whether count or for_each is set as a top-level attribute of body
func meta(body string) (hasCount, hasForEach bool) {
	depth := 0
	for _, line := range strings.Split(body, "\n") {
		if depth == 0 {
			if countAttr.MatchString(line) {
				hasCount = true
			}
			if forEachAttr.MatchString(line) {
				hasForEach = true
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth < 0 {
			depth = 0
		}
	}
	return hasCount, hasForEach
}
